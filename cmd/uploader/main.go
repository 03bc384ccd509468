package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/anthanhphan/go-media-transfer/internal/uploader/app"
)

func main() {
	var (
		configPath string
		groupID    string
		transcode  bool
	)
	flag.StringVar(&configPath, "configPath", "", "Path to configuration file")
	flag.StringVar(&groupID, "group", "", "Destination group id shared by all files")
	flag.BoolVar(&transcode, "transcode", true, "Re-encode large or lossless audio before upload")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s -group <id> [flags] file...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if groupID == "" || flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	application, err := app.New(configPath)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := application.Run(groupID, flag.Args(), transcode); err != nil {
		log.Fatalf("Upload failed: %v", err)
	}
}
