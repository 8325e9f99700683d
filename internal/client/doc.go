// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client assembles the sync runtime of a single process.
//
// It wires the local database, the REST adapter, connectivity monitoring,
// the per-resource managers and the background workers, then runs them
// either behind the terminal queue viewer or headless.
package client
