// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package config provides configuration loading, merging, and validation for
// the go-bizsync binaries.
//
// Configuration is assembled from several sources; later sources override
// earlier non-zero fields:
//  1. Built-in defaults
//  2. JSON config file (path taken from CONFIG or -c/-config)
//  3. Environment variables
//  4. Command-line flags (or explicit overrides supplied by a CLI framework)
//
// The entry points are [GetStructuredConfig] for the raw merged view and
// [GetClientConfig] / [GetClientConfigWith] for the validated client view.
package config
