package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-bizsync/internal/config"
	"github.com/MKhiriev/go-bizsync/internal/logger"
	"github.com/MKhiriev/go-bizsync/internal/service"
)

// newTestServices returns services with no sync service. http.NewHandler only
// stores it, so this is safe for construction-time tests.
func newTestServices() *service.ClientServices {
	return &service.ClientServices{}
}

func TestNewHandlers_WithAddress(t *testing.T) {
	cfg := config.ClientDiagnostics{HTTPAddress: "127.0.0.1:7070"}

	h, err := NewHandlers(newTestServices(), nil, cfg, logger.Nop())

	require.NoError(t, err)
	require.NotNil(t, h)
	assert.NotNil(t, h.HTTP, "expected HTTP handler to be initialised")
}

func TestNewHandlers_NoAddress(t *testing.T) {
	h, err := NewHandlers(newTestServices(), nil, config.ClientDiagnostics{}, logger.Nop())

	assert.Nil(t, h)
	assert.ErrorIs(t, err, errNoHandlersAreCreated)
}
