// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import "errors"

// errNoHandlersAreCreated is returned by NewHandlers when no diagnostics
// address is configured. Callers that treat the diagnostics API as optional
// check the address before calling NewHandlers.
var errNoHandlersAreCreated = errors.New("no handlers are created")
