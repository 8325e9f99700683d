package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON_Success(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "config.json")

	jsonBody := `{
		"app": {"token": "tok", "token_file": "/tmp/token"},
		"storage": {"db": {"dsn": "client.db"}},
		"adapter": {"http_address": "https://api.example.com", "request_timeout": "30s"},
		"workers": {
			"sync_interval": "2m",
			"probe_interval": 5000000000,
			"retry_base": "1s",
			"retry_max": "20s",
			"max_retries": 5
		},
		"diagnostics": {"http_address": "localhost:9099"},
		"log": {"file": "/tmp/log"}
	}`
	require.NoError(t, os.WriteFile(p, []byte(jsonBody), 0o600))

	cfg, err := parseJSON(p)
	require.NoError(t, err)

	assert.Equal(t, "tok", cfg.App.Token)
	assert.Equal(t, "/tmp/token", cfg.App.TokenFile)
	assert.Equal(t, "client.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "https://api.example.com", cfg.Adapter.HTTPAddress)
	assert.Equal(t, 30*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, 2*time.Minute, cfg.Workers.SyncInterval)
	assert.Equal(t, 5*time.Second, cfg.Workers.ProbeInterval)
	assert.Equal(t, time.Second, cfg.Workers.RetryBase)
	assert.Equal(t, 20*time.Second, cfg.Workers.RetryMax)
	assert.Equal(t, 5, cfg.Workers.MaxRetries)
	assert.Equal(t, "localhost:9099", cfg.Diagnostics.HTTPAddress)
	assert.Equal(t, "/tmp/log", cfg.Log.File)
}

func TestParseJSON_Errors(t *testing.T) {
	dir := t.TempDir()

	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte(`{`), 0o600))

	badDuration := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(badDuration, []byte(`{"adapter": {"request_timeout": "forever"}}`), 0o600))

	for _, p := range []string{filepath.Join(dir, "missing.json"), broken, badDuration} {
		_, err := parseJSON(p)
		assert.Error(t, err, p)
	}
}

func TestDuration_RoundTrip(t *testing.T) {
	d := Duration(90 * time.Second)
	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `"1m30s"`, string(b))

	var back Duration
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, d, back)

	assert.Error(t, json.Unmarshal([]byte(`true`), &back))
}
