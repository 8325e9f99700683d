// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used by the
// go-bizsync diagnostics API.
//
// All Msg* constants are human-readable message strings written into HTTP
// response bodies in place of internal error texts.
package app

const (
	// MsgInternalServerError replaces storage and other unexpected failures
	// so SQL details stay in the log.
	MsgInternalServerError = "internal server error"

	// MsgRequestCanceled is returned when the engine was shutting down or
	// the caller went away before the operation finished.
	MsgRequestCanceled = "request canceled, engine is shutting down"

	// MsgRequestTimeout is returned when a sync did not finish in time.
	MsgRequestTimeout = "sync timed out"
)
