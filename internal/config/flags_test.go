package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags_AllFlags(t *testing.T) {
	cfg, err := ParseFlags([]string{
		"-a", "https://api.example.com/v1",
		"-d", "client.db",
		"-config", "cfg.json",
		"-token", "tok",
		"-token-file", "/tmp/token",
		"-request-timeout", "7s",
		"-sync-interval", "1m",
		"-probe-interval", "3s",
		"-diag", "localhost:9099",
		"-log-file", "/tmp/bizsync.log",
	})
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com/v1", cfg.Adapter.HTTPAddress)
	assert.Equal(t, 7*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, "client.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "cfg.json", cfg.JSONFilePath)
	assert.Equal(t, "tok", cfg.App.Token)
	assert.Equal(t, "/tmp/token", cfg.App.TokenFile)
	assert.Equal(t, time.Minute, cfg.Workers.SyncInterval)
	assert.Equal(t, 3*time.Second, cfg.Workers.ProbeInterval)
	assert.Equal(t, "localhost:9099", cfg.Diagnostics.HTTPAddress)
	assert.Equal(t, "/tmp/bizsync.log", cfg.Log.File)
}

func TestParseFlags_Empty(t *testing.T) {
	cfg, err := ParseFlags(nil)
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown flag", args: []string{"-x"}},
		{name: "bad duration", args: []string{"-sync-interval", "soon"}},
		{name: "bad diag address", args: []string{"-diag", "nope"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFlags(tt.args)
			assert.Error(t, err)
		})
	}
}

func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    NetAddress
		wantErr bool
	}{
		{name: "localhost", in: "localhost:8080", want: NetAddress{Host: "localhost", Port: 8080}},
		{name: "empty host", in: ":9000", want: NetAddress{Port: 9000}},
		{name: "ip", in: "127.0.0.1:1", want: NetAddress{Host: "127.0.0.1", Port: 1}},
		{name: "no port", in: "localhost", wantErr: true},
		{name: "port out of range", in: "localhost:70000", wantErr: true},
		{name: "port not a number", in: "localhost:http", wantErr: true},
		{name: "bad host", in: "example.com:80", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a NetAddress
			err := a.Set(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, a)
		})
	}
}

func TestNetAddress_String(t *testing.T) {
	assert.Equal(t, "", (&NetAddress{}).String())
	assert.Equal(t, "localhost:80", (&NetAddress{Host: "localhost", Port: 80}).String())
}
