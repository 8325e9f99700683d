package server

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-bizsync/internal/config"
	"github.com/MKhiriev/go-bizsync/internal/engine"
	"github.com/MKhiriev/go-bizsync/internal/handler"
	handlerhttp "github.com/MKhiriev/go-bizsync/internal/handler/http"
	"github.com/MKhiriev/go-bizsync/internal/logger"
	"github.com/MKhiriev/go-bizsync/internal/mock"
)

// freeAddress reserves a loopback port and releases it for the server.
func freeAddress(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func TestNewServer_RequiresHTTPHandler(t *testing.T) {
	tests := []struct {
		name     string
		handlers *handler.Handlers
		cfg      config.ClientDiagnostics
	}{
		{name: "nil handlers", cfg: config.ClientDiagnostics{HTTPAddress: ":0"}},
		{name: "no http handler", handlers: &handler.Handlers{}, cfg: config.ClientDiagnostics{HTTPAddress: ":0"}},
		{name: "no address", handlers: &handler.Handlers{HTTP: handlerhttp.NewHandler(nil, nil, logger.Nop())}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewServer(tt.handlers, tt.cfg, logger.Nop())

			assert.Nil(t, s)
			assert.ErrorIs(t, err, errNoServersAreCreated)
			if tt.handlers != nil && tt.handlers.HTTP != nil {
				assert.ErrorIs(t, err, errNoListenAddress)
			}
		})
	}
}

func TestServer_RunServesUntilStop(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mock.NewMockSyncService(ctrl)
	svc.EXPECT().Summaries().Return([]engine.Summary{{Resource: "clients"}}).AnyTimes()

	addr := freeAddress(t)
	cfg := config.ClientDiagnostics{HTTPAddress: addr}
	handlers := &handler.Handlers{HTTP: handlerhttp.NewHandler(svc, nil, logger.Nop())}

	s, err := NewServer(handlers, cfg, logger.Nop())
	require.NoError(t, err)

	s.Run(context.Background())

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/api/resources")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	s.Stop()

	_, err = http.Get("http://" + addr + "/api/resources")
	assert.Error(t, err, "listener must be closed after Stop")
}

func TestServer_StopsWhenContextCancelled(t *testing.T) {
	handlers := &handler.Handlers{HTTP: handlerhttp.NewHandler(nil, nil, logger.Nop())}
	s, err := NewServer(handlers, config.ClientDiagnostics{HTTPAddress: freeAddress(t)}, logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	s.Run(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return after the context was cancelled")
	}
}

func TestServer_StopWithoutRun(t *testing.T) {
	handlers := &handler.Handlers{HTTP: handlerhttp.NewHandler(nil, nil, logger.Nop())}
	s, err := NewServer(handlers, config.ClientDiagnostics{HTTPAddress: freeAddress(t)}, logger.Nop())
	require.NoError(t, err)

	assert.NotPanics(t, s.Stop)
}
