// Package server runs the diagnostics HTTP listener.
//
// A server can run in the foreground until a termination signal arrives, or
// as a background worker next to the sync job and the connectivity probe.
package server
