// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"net"
	"strings"
)

// maxRetriesLimit bounds WORKERS_MAX_RETRIES.
const maxRetriesLimit = 10

// validate checks that the merged [ClientConfig] can be used at startup.
//
// An in-memory sqlite DSN is rejected: the queue must survive restarts.
func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	w := cfg.Workers
	if w.SyncInterval <= 0 || w.ProbeInterval <= 0 || w.RetryBase <= 0 || w.RetryMax < w.RetryBase {
		return ErrInvalidWorkerConfigs
	}
	if w.MaxRetries < 0 || w.MaxRetries > maxRetriesLimit {
		return ErrInvalidWorkerConfigs
	}

	if addr := cfg.Diagnostics.HTTPAddress; addr != "" {
		if _, _, err := net.SplitHostPort(addr); err != nil {
			return ErrInvalidDiagnosticsConfigs
		}
	}

	return nil
}
