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

const (
	BackendDisk = "disk"
	BackendS3   = "s3"

	TrackerMemory = "memory"
	TrackerRedis  = "redis"
)

// Config holds Receiver configuration
type Config struct {
	Server  ServerConfig  `json:"server" yaml:"server"`
	App     AppConfig     `json:"app" yaml:"app"`
	Storage StorageConfig `json:"storage" yaml:"storage"`
	S3      S3Config      `json:"s3" yaml:"s3"`
	Redis   RedisConfig   `json:"redis" yaml:"redis"`
	Breaker BreakerConfig `json:"breaker" yaml:"breaker"`
	Logger  logger.Config `json:"logger" yaml:"logger"`
}

type ServerConfig struct {
	Addr          string `json:"addr" yaml:"addr"`
	PublicBaseURL string `json:"public_base_url" yaml:"public_base_url"`
	RequestLog    bool   `json:"request_log" yaml:"request_log"`
}

type AppConfig struct {
	NodeID             int64 `json:"node_id" yaml:"node_id"`
	MaxPartSize        int64 `json:"max_part_size" yaml:"max_part_size"`
	SessionTTLSeconds  int   `json:"session_ttl_seconds" yaml:"session_ttl_seconds"`
	SweepIntervalSec   int   `json:"sweep_interval_seconds" yaml:"sweep_interval_seconds"`
	CleanupWorkers     int   `json:"cleanup_workers" yaml:"cleanup_workers"`
	CleanupQueueSize   int   `json:"cleanup_queue_size" yaml:"cleanup_queue_size"`
	AssembleTimeoutSec int   `json:"assemble_timeout_seconds" yaml:"assemble_timeout_seconds"`
}

type StorageConfig struct {
	Backend string `json:"backend" yaml:"backend"` // disk | s3
	Tracker string `json:"tracker" yaml:"tracker"` // memory | redis
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

type S3Config struct {
	Bucket       string `json:"bucket" yaml:"bucket"`
	Region       string `json:"region" yaml:"region"`
	Endpoint     string `json:"endpoint" yaml:"endpoint"` // empty = AWS default
	UsePathStyle bool   `json:"use_path_style" yaml:"use_path_style"`
}

type RedisConfig struct {
	Addr     string `json:"addr" yaml:"addr"`
	Password string `json:"password" yaml:"password"`
	DB       int    `json:"db" yaml:"db"`
}

// BreakerConfig guards calls to remote backends (S3, Redis).
type BreakerConfig struct {
	FailureThreshold int `json:"failure_threshold" yaml:"failure_threshold"`
	OpenTimeoutMS    int `json:"open_timeout_ms" yaml:"open_timeout_ms"`
}

// DefaultConfig returns configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:          ":8095",
			PublicBaseURL: "http://localhost:8095/media",
		},
		App: AppConfig{
			NodeID:             1,
			MaxPartSize:        4.5 * 1024 * 1024, // 4.5MB
			SessionTTLSeconds:  24 * 60 * 60,
			SweepIntervalSec:   10 * 60,
			CleanupWorkers:     2,
			CleanupQueueSize:   128,
			AssembleTimeoutSec: 300,
		},
		Storage: StorageConfig{
			Backend: BackendDisk,
			Tracker: TrackerMemory,
			DataDir: "./data/receiver",
		},
		S3: S3Config{
			Region: "us-east-1",
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Breaker: BreakerConfig{
			FailureThreshold: 5,
			OpenTimeoutMS:    30000,
		},
		Logger: logger.Config{
			LogLevel:    logger.LevelInfo,
			LogEncoding: logger.EncodingJSON,
		},
	}
}

func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.App.SessionTTLSeconds) * time.Second
}

func (c *Config) SweepInterval() time.Duration {
	return time.Duration(c.App.SweepIntervalSec) * time.Second
}

func (c *Config) AssembleTimeout() time.Duration {
	return time.Duration(c.App.AssembleTimeoutSec) * time.Second
}

func (c *Config) BreakerOpenTimeout() time.Duration {
	return time.Duration(c.Breaker.OpenTimeoutMS) * time.Millisecond
}

// Validate checks values the receiver cannot run without.
func (c *Config) Validate() error {
	switch {
	case c.Server.Addr == "":
		return errors.New("server.addr is required")
	case c.Server.PublicBaseURL == "":
		return errors.New("server.public_base_url is required")
	case c.App.MaxPartSize <= 0:
		return errors.New("max_part_size must be positive")
	case c.App.SessionTTLSeconds <= 0:
		return errors.New("session_ttl_seconds must be positive")
	case c.App.AssembleTimeoutSec <= 0:
		return errors.New("assemble_timeout_seconds must be positive")
	case c.Storage.DataDir == "":
		return errors.New("storage.data_dir is required")
	case c.Breaker.FailureThreshold <= 0:
		return errors.New("breaker.failure_threshold must be positive")
	case c.Breaker.OpenTimeoutMS <= 0:
		return errors.New("breaker.open_timeout_ms must be positive")
	}

	switch c.Storage.Backend {
	case BackendDisk:
	case BackendS3:
		if c.S3.Bucket == "" {
			return errors.New("s3.bucket is required for the s3 backend")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}

	switch c.Storage.Tracker {
	case TrackerMemory:
	case TrackerRedis:
		if c.Redis.Addr == "" {
			return errors.New("redis.addr is required for the redis tracker")
		}
	default:
		return fmt.Errorf("unknown session tracker %q", c.Storage.Tracker)
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
		configPath = filepath.Join("internal", "receiver", "config", env+".yaml")
	}

	cfg := DefaultConfig()

	parsedCfg, err := conflux.ParseConfig(configPath, cfg)
	if err != nil {
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
