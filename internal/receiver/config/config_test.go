package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, int64(4718592), cfg.App.MaxPartSize)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL())
	assert.Equal(t, 10*time.Minute, cfg.SweepInterval())
	assert.Equal(t, 5*time.Minute, cfg.AssembleTimeout())
	assert.Equal(t, 30*time.Second, cfg.BreakerOpenTimeout())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		errContains string
	}{
		{name: "NoAddr", mutate: func(c *Config) { c.Server.Addr = "" }, errContains: "server.addr"},
		{name: "NoPublicURL", mutate: func(c *Config) { c.Server.PublicBaseURL = "" }, errContains: "public_base_url"},
		{name: "ZeroPartSize", mutate: func(c *Config) { c.App.MaxPartSize = 0 }, errContains: "max_part_size"},
		{name: "ZeroTTL", mutate: func(c *Config) { c.App.SessionTTLSeconds = 0 }, errContains: "session_ttl_seconds"},
		{name: "ZeroAssembleTimeout", mutate: func(c *Config) { c.App.AssembleTimeoutSec = 0 }, errContains: "assemble_timeout_seconds"},
		{name: "NoDataDir", mutate: func(c *Config) { c.Storage.DataDir = "" }, errContains: "data_dir"},
		{name: "ZeroBreakerThreshold", mutate: func(c *Config) { c.Breaker.FailureThreshold = 0 }, errContains: "breaker.failure_threshold"},
		{name: "ZeroBreakerTimeout", mutate: func(c *Config) { c.Breaker.OpenTimeoutMS = 0 }, errContains: "breaker.open_timeout_ms"},
		{name: "UnknownBackend", mutate: func(c *Config) { c.Storage.Backend = "ftp" }, errContains: "unknown storage backend"},
		{name: "S3WithoutBucket", mutate: func(c *Config) { c.Storage.Backend = BackendS3 }, errContains: "s3.bucket"},
		{name: "UnknownTracker", mutate: func(c *Config) { c.Storage.Tracker = "etcd" }, errContains: "unknown session tracker"},
		{name: "RedisWithoutAddr", mutate: func(c *Config) {
			c.Storage.Tracker = TrackerRedis
			c.Redis.Addr = ""
		}, errContains: "redis.addr"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestLoad_ExplicitMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_ImplicitMissingFileFallsBackToDefaults(t *testing.T) {
	t.Setenv("ENV", "does-not-exist")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Storage, cfg.Storage)
}
