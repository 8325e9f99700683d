// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package engine implements offline-first synchronization of server-owned
// collections.
//
// A [Manager] owns one resource. Local mutations (Add, Update, Remove) are
// applied optimistically in memory, recorded in a durable FIFO queue and
// replayed against the remote API by ProcessQueue. Records created offline
// carry a negative temporary id ([LocalID]) until the server assigns the
// real one ([RemoteID]); queued follow-up mutations are retargeted in the
// same step. Load serves the local cache while the API is unreachable and
// replaces it wholesale once a fetch succeeds, keeping every in-flight
// optimistic entity visible (see [Merge]).
//
// A [Registry] fans ProcessQueue and Load out across all managers.
package engine
