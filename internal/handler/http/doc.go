// Package http implements the diagnostics API of a running sync engine.
//
// The routes expose the durable queue, per-resource summaries and the
// exposed entities, and let an operator trigger a sync or drop stuck
// mutations. Request tracing and access logging are applied to every route
// before it reaches the sync service.
package http
