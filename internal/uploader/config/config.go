package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/anthanhphan/gosdk/conflux"
	"github.com/anthanhphan/gosdk/logger"
)

// ReceiverPartCeiling is the largest request body the receiving platform accepts.
const ReceiverPartCeiling = 4.5 * 1024 * 1024

// Config holds Uploader configuration
type Config struct {
	App       AppConfig       `json:"app" yaml:"app"`
	Receiver  ReceiverConfig  `json:"receiver" yaml:"receiver"`
	Transcode TranscodeConfig `json:"transcode" yaml:"transcode"`
	Metrics   MetricsConfig   `json:"metrics" yaml:"metrics"`
	Logger    logger.Config   `json:"logger" yaml:"logger"`
}

type AppConfig struct {
	ChunkSize          int64 `json:"chunk_size" yaml:"chunk_size"`
	ChunkTimeoutMS     int   `json:"chunk_timeout_ms" yaml:"chunk_timeout_ms"`
	TranscodeThreshold int64 `json:"transcode_threshold" yaml:"transcode_threshold"`
}

type ReceiverConfig struct {
	BaseURL      string `json:"base_url" yaml:"base_url"`
	ChunkPath    string `json:"chunk_path" yaml:"chunk_path"`
	FinalizePath string `json:"finalize_path" yaml:"finalize_path"`
}

type TranscodeConfig struct {
	FFmpegPath  string `json:"ffmpeg_path" yaml:"ffmpeg_path"`   // empty = resolve from PATH
	FFprobePath string `json:"ffprobe_path" yaml:"ffprobe_path"` // empty = resolve from PATH
	ScratchDir  string `json:"scratch_dir" yaml:"scratch_dir"`   // empty = os.TempDir()
	BitrateKbps int    `json:"bitrate_kbps" yaml:"bitrate_kbps"`
	SampleRate  int    `json:"sample_rate" yaml:"sample_rate"`
	Channels    int    `json:"channels" yaml:"channels"`
}

type MetricsConfig struct {
	Addr string `json:"addr" yaml:"addr"` // empty = disabled
}

// DefaultConfig returns configuration with default values
func DefaultConfig() *Config {
	return &Config{
		App: AppConfig{
			ChunkSize:          3.5 * 1024 * 1024, // 3.5MB
			ChunkTimeoutMS:     120000,
			TranscodeThreshold: 50 * 1024 * 1024, // 50MB
		},
		Receiver: ReceiverConfig{
			BaseURL:      "http://localhost:8095",
			ChunkPath:    "/api/uploads/chunk",
			FinalizePath: "/api/uploads/finalize",
		},
		Transcode: TranscodeConfig{
			BitrateKbps: 48,
			SampleRate:  24000,
			Channels:    1,
		},
		Logger: logger.Config{
			LogLevel:    logger.LevelInfo,
			LogEncoding: logger.EncodingJSON,
		},
	}
}

// ChunkTimeout returns the per-chunk transfer deadline.
func (c *Config) ChunkTimeout() time.Duration {
	return time.Duration(c.App.ChunkTimeoutMS) * time.Millisecond
}

// Validate checks values the pipeline cannot run without.
func (c *Config) Validate() error {
	switch {
	case c.App.ChunkSize <= 0:
		return errors.New("chunk_size must be positive")
	case c.App.ChunkSize >= ReceiverPartCeiling:
		return fmt.Errorf("chunk_size %d exceeds receiver ceiling %d", c.App.ChunkSize, int64(ReceiverPartCeiling))
	case c.App.ChunkTimeoutMS <= 0:
		return errors.New("chunk_timeout_ms must be positive")
	case c.App.TranscodeThreshold <= 0:
		return errors.New("transcode_threshold must be positive")
	case c.Receiver.BaseURL == "":
		return errors.New("receiver.base_url is required")
	}
	return nil
}

// Load loads configuration from file
func Load(path string) (*Config, error) {
	configPath := path
	if configPath == "" {
		env := os.Getenv("ENV")
		if env == "" {
			env = "local"
		}
		configPath = filepath.Join("internal", "uploader", "config", env+".yaml")
	}

	cfg := DefaultConfig()

	parsedCfg, err := conflux.ParseConfig(configPath, cfg)
	if err != nil {
		// The logger is configured from this file, so it cannot report here yet.
		log.Printf("Config file not found or failed to parse, using defaults if file not specified. Path: %s, Error: %v", configPath, err)
		if path != "" {
			return nil, err
		}
		return cfg, nil
	}

	if err := parsedCfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configPath, err)
	}
	return parsedCfg, nil
}

// MustLoad loads configuration or exits on error
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}
