// Package connectivity reports whether the remote API is reachable and
// notifies subscribers when that changes.
//
// [ProbeMonitor] derives the state from periodic HEAD requests against the
// API base URL. [Manual] holds an operator-controlled state and is used by
// the CLI in offline mode and by tests.
package connectivity
