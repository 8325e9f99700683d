package config

import (
	"fmt"
	"time"
)

// ClientApp holds session settings.
type ClientApp struct {
	// Token is a bearer token used verbatim.
	Token string
	// TokenFile is re-read on every access when set.
	TokenFile string
}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the base URL of the remote API.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// DSN is the SQLite connection string used by the client.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
}

// ClientWorkers contains client background worker and retry settings.
type ClientWorkers struct {
	SyncInterval  time.Duration
	ProbeInterval time.Duration
	RetryBase     time.Duration
	RetryMax      time.Duration
	MaxRetries    int
}

// ClientDiagnostics holds the optional diagnostics listener address.
type ClientDiagnostics struct {
	HTTPAddress string
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	App         ClientApp
	Adapter     ClientAdapter
	Storage     ClientStorage
	Workers     ClientWorkers
	Diagnostics ClientDiagnostics
	LogFile     string
}

// GetClientConfig builds and validates a client config view from defaults,
// an optional JSON file, the environment and the command-line args.
func GetClientConfig(args []string) (*ClientConfig, error) {
	cfg, err := GetStructuredConfig(args)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	return newClientConfig(cfg)
}

// GetClientConfigWith is like [GetClientConfig] but takes already parsed
// overrides instead of raw flags. It is used by binaries that own their own
// flag parsing.
func GetClientConfigWith(overrides *StructuredConfig) (*ClientConfig, error) {
	cfg, err := newConfigBuilder().
		withDefaults().
		withEnv().
		with(overrides).
		build()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	return newClientConfig(cfg)
}

func newClientConfig(cfg *StructuredConfig) (*ClientConfig, error) {
	clientCfg := &ClientConfig{
		App: ClientApp{
			Token:     cfg.App.Token,
			TokenFile: cfg.App.TokenFile,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{
			DB: ClientDB{
				DSN: cfg.Storage.DB.DSN,
			},
		},
		Workers: ClientWorkers{
			SyncInterval:  cfg.Workers.SyncInterval,
			ProbeInterval: cfg.Workers.ProbeInterval,
			RetryBase:     cfg.Workers.RetryBase,
			RetryMax:      cfg.Workers.RetryMax,
			MaxRetries:    cfg.Workers.MaxRetries,
		},
		Diagnostics: ClientDiagnostics{HTTPAddress: cfg.Diagnostics.HTTPAddress},
		LogFile:     cfg.Log.File,
	}

	return clientCfg, clientCfg.validate()
}
