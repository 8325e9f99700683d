package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-bizsync/internal/client"
	"github.com/MKhiriev/go-bizsync/internal/config"
	"github.com/MKhiriev/go-bizsync/internal/logger"
	"github.com/MKhiriev/go-bizsync/models"
)

// cli holds the persistent flags and the state resolved by the root
// pre-run. Subcommands read cfg and log after it ran.
type cli struct {
	configPath string
	apiAddress string
	dsn        string
	token      string
	tokenFile  string
	logFile    string
	offline    bool
	json       bool

	buildInfo models.AppBuildInfo
	cfg       *config.ClientConfig
	log       *logger.Logger
}

// skipConfigCommands lists commands that run without a resolved config.
var skipConfigCommands = map[string]bool{
	"syncctl version": true,
}

func newRootCmd() *cobra.Command {
	c := &cli{buildInfo: models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)}

	cmd := &cobra.Command{
		Use:           "syncctl",
		Short:         "Operate the go-bizsync offline sync engine",
		Long:          "Inspect and drain the durable sync queue, reload cached resources and run the engine headless.",
		Version:       c.buildInfo.BuildVersion(),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if skipConfigCommands[cmd.CommandPath()] {
				return nil
			}
			return c.loadConfig()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&c.configPath, "config", "c", "", "JSON config file path")
	flags.StringVarP(&c.apiAddress, "api", "a", "", "remote API base URL")
	flags.StringVarP(&c.dsn, "db", "d", "", "sqlite database path")
	flags.StringVar(&c.token, "token", "", "bearer token")
	flags.StringVar(&c.tokenFile, "token-file", "", "file holding the bearer token")
	flags.StringVar(&c.logFile, "log-file", "", "log file path")
	flags.BoolVar(&c.offline, "offline", false, "do not contact the API; queue and cache only")
	flags.BoolVar(&c.json, "json", false, "output in JSON format")

	cmd.AddCommand(newQueueCmd(c))
	cmd.AddCommand(newSyncCmd(c))
	cmd.AddCommand(newStatusCmd(c))
	cmd.AddCommand(newServeCmd(c))
	cmd.AddCommand(newVersionCmd(c))

	return cmd
}

// loadConfig merges defaults, the environment, the optional JSON file and
// the flags, then opens the log file.
func (c *cli) loadConfig() error {
	cfg, err := config.GetClientConfigWith(c.overrides())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	c.cfg = cfg
	c.log = logger.NewClientLogger("syncctl", cfg.LogFile)
	return nil
}

func (c *cli) overrides() *config.StructuredConfig {
	return &config.StructuredConfig{
		App:          config.App{Token: c.token, TokenFile: c.tokenFile},
		Storage:      config.Storage{DB: config.DB{DSN: c.dsn}},
		Adapter:      config.Adapter{HTTPAddress: c.apiAddress},
		Log:          config.Log{File: c.logFile},
		JSONFilePath: c.configPath,
	}
}

// openApp assembles the runtime without starting it.
func (c *cli) openApp(ctx context.Context) (*client.App, error) {
	app, err := client.NewApp(ctx, c.cfg, client.Options{BuildInfo: c.buildInfo, Offline: c.offline}, c.log)
	if err != nil {
		return nil, fmt.Errorf("opening sync engine: %w", err)
	}
	return app, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
