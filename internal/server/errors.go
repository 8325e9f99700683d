// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

var (
	errNoServersAreCreated = errors.New("no servers are created")

	// errNoListenAddress wraps errNoServersAreCreated when the handlers exist
	// but the diagnostics address is empty.
	errNoListenAddress = errors.Join(errNoServersAreCreated, errors.New("diagnostics address is empty"))
)
