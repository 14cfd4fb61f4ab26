package config

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// allConfigKeys lists every TRAILTAIL_ env var that Load() reads.
var allConfigKeys = []string{
	"TRAILTAIL_API_BASE_URL",
	"TRAILTAIL_USE_BACKEND_API",
	"TRAILTAIL_REQUEST_TIMEOUT",
	"TRAILTAIL_OFFLINE_NOTICE_DURATION",
	"TRAILTAIL_CRITICAL_PATH_PREFIX",
	"TRAILTAIL_LISTEN_ADDR",
	"TRAILTAIL_DB_PATH",
	"TRAILTAIL_LOG_LEVEL",
	"TRAILTAIL_SECRET_KEY",
}

// isolateConfigEnv saves and unsets all TRAILTAIL_ env vars so tests don't
// inherit values from the host environment (e.g. a running dev server).
// t.Cleanup restores original values after the test.
func isolateConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range allConfigKeys {
		if orig, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, orig) })
		} else {
			t.Cleanup(func() { os.Unsetenv(key) })
		}
		os.Unsetenv(key)
	}
}

func TestLoad_Success(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("TRAILTAIL_API_BASE_URL", "https://trails.example.com/api/v1/")
	t.Setenv("TRAILTAIL_USE_BACKEND_API", "false")
	t.Setenv("TRAILTAIL_REQUEST_TIMEOUT", "2s")
	t.Setenv("TRAILTAIL_OFFLINE_NOTICE_DURATION", "10s")
	t.Setenv("TRAILTAIL_CRITICAL_PATH_PREFIX", "/narratives")
	t.Setenv("TRAILTAIL_LISTEN_ADDR", "0.0.0.0:9090")
	t.Setenv("TRAILTAIL_DB_PATH", "/tmp/test.db")
	t.Setenv("TRAILTAIL_LOG_LEVEL", "debug")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "https://trails.example.com/api/v1", cfg.APIBaseURL)
	assert.False(t, cfg.UseBackendAPI)
	assert.Equal(t, 2*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 10*time.Second, cfg.OfflineNoticeDuration)
	assert.Equal(t, "/narratives", cfg.CriticalPathPrefix)
	assert.Equal(t, "0.0.0.0:9090", cfg.ListenAddr)
	assert.Equal(t, "/tmp/test.db", cfg.DBPath)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestLoad_Defaults(t *testing.T) {
	isolateConfigEnv(t)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:8001/api/v1", cfg.APIBaseURL)
	assert.True(t, cfg.UseBackendAPI)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 5*time.Second, cfg.OfflineNoticeDuration)
	assert.Equal(t, "/routes", cfg.CriticalPathPrefix)
	assert.Equal(t, "127.0.0.1:8080", cfg.ListenAddr)
	assert.Equal(t, "trailtail.db", cfg.DBPath)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
	assert.Nil(t, cfg.SecretKey)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{name: "relative base URL", key: "TRAILTAIL_API_BASE_URL", value: "/api/v1", wantErr: "TRAILTAIL_API_BASE_URL"},
		{name: "non-http base URL", key: "TRAILTAIL_API_BASE_URL", value: "ftp://example.com", wantErr: "TRAILTAIL_API_BASE_URL"},
		{name: "zero timeout", key: "TRAILTAIL_REQUEST_TIMEOUT", value: "0s", wantErr: "TRAILTAIL_REQUEST_TIMEOUT"},
		{name: "negative notice duration", key: "TRAILTAIL_OFFLINE_NOTICE_DURATION", value: "-1s", wantErr: "TRAILTAIL_OFFLINE_NOTICE_DURATION"},
		{name: "unknown log level", key: "TRAILTAIL_LOG_LEVEL", value: "loud", wantErr: "TRAILTAIL_LOG_LEVEL"},
		{name: "unparseable duration", key: "TRAILTAIL_REQUEST_TIMEOUT", value: "not-a-duration", wantErr: "parse env"},
		{name: "unparseable bool", key: "TRAILTAIL_USE_BACKEND_API", value: "maybe", wantErr: "parse env"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateConfigEnv(t)
			t.Setenv(tt.key, tt.value)

			cfg, err := Load()

			assert.Nil(t, cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_SecretKey_Valid(t *testing.T) {
	isolateConfigEnv(t)
	// 64 hex chars = 32 bytes
	t.Setenv("TRAILTAIL_SECRET_KEY", "0102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f20")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Len(t, cfg.SecretKey, 32)
}

func TestLoad_SecretKey_TooShort(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("TRAILTAIL_SECRET_KEY", "deadbeef")

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TRAILTAIL_SECRET_KEY")
}

func TestLoad_SecretKey_NotHex(t *testing.T) {
	isolateConfigEnv(t)
	// 64 chars but not valid hex
	t.Setenv("TRAILTAIL_SECRET_KEY", "zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz")

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TRAILTAIL_SECRET_KEY")
}
