// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-bizsync/internal/config"
	"github.com/MKhiriev/go-bizsync/internal/logger"
	"github.com/MKhiriev/go-bizsync/internal/utils"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func newTestAdapter(t *testing.T, serverURL string, token string) ResourceAPI {
	t.Helper()
	adapterCfg := config.ClientAdapter{HTTPAddress: serverURL, RequestTimeout: 5 * time.Second}

	a, err := NewHTTPResourceAdapter(adapterCfg, staticToken(token), logger.Nop())
	require.NoError(t, err)
	return a
}

// ── constructor ─────────────────────────────────────────────────────────────

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "localhost:8080", want: "http://localhost:8080"},
		{in: " https://api.example.com/v1/ ", want: "https://api.example.com/v1"},
		{in: "", wantErr: true},
		{in: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizeBaseURL(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewHTTPResourceAdapter_InvalidAddress(t *testing.T) {
	_, err := NewHTTPResourceAdapter(config.ClientAdapter{}, nil, logger.Nop())
	assert.Error(t, err)
}

// ── List ────────────────────────────────────────────────────────────────────

func TestList_Envelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/clients", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"clients":[{"id":1,"business_name":"A"},{"id":"2","business_name":"B"}],"total":2}`))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, "tok")
	records, err := a.List(context.Background(), "/clients", "clients")

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.JSONEq(t, `{"id":1,"business_name":"A"}`, string(records[0]))
}

func TestList_BareArrayAndNull(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{name: "bare array", body: `[{"id":1}]`, want: 1},
		{name: "null collection", body: `{"jobs":null}`, want: 0},
		{name: "empty collection", body: `{"jobs":[]}`, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			records, err := newTestAdapter(t, srv.URL, "").List(context.Background(), "/jobs", "jobs")
			require.NoError(t, err)
			assert.NotNil(t, records)
			assert.Len(t, records, tt.want)
		})
	}
}

func TestList_Malformed(t *testing.T) {
	for _, body := range []string{`{"other":[]}`, `not json`, `{"jobs":{"id":1}}`} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(body))
		}))

		_, err := newTestAdapter(t, srv.URL, "").List(context.Background(), "/jobs", "jobs")
		assert.ErrorIs(t, err, ErrMalformedResponse, body)
		srv.Close()
	}
}

func TestList_NoTokenNoAuthorizationHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL, "").List(context.Background(), "/jobs", "jobs")
	require.NoError(t, err)
}

func TestList_ForwardsTraceID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "trace-1", r.Header.Get(TraceIDHeader))
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	ctx := context.WithValue(context.Background(), utils.TraceIDCtxKey, "trace-1")
	_, err := newTestAdapter(t, srv.URL, "tok").List(ctx, "/jobs", "jobs")
	require.NoError(t, err)
}

// ── Create ──────────────────────────────────────────────────────────────────

func TestCreate_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/clients", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "req-1", r.Header.Get(IdempotencyKeyHeader))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"business_name":"Acme"}`, string(body))

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"client_id":42}`))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, "tok")
	res, err := a.Create(context.Background(), "/clients", json.RawMessage(`{"business_name":"Acme"}`), "req-1")

	require.NoError(t, err)
	assert.JSONEq(t, `42`, string(res["client_id"]))
}

func TestCreate_EmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	res, err := newTestAdapter(t, srv.URL, "").Create(context.Background(), "/jobs", nil, "r")
	require.NoError(t, err)
	assert.Empty(t, res)
}

func TestCreate_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL, "").Create(context.Background(), "/jobs", nil, "r")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInternalServerError)

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)
	assert.Equal(t, "boom", httpErr.Body)
	assert.Equal(t, "HTTP 500: internal server error: boom", httpErr.Error())
}

// ── Update / Delete ─────────────────────────────────────────────────────────

func TestUpdate_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/payments/7", r.URL.Path)
		assert.Equal(t, "req-2", r.Header.Get(IdempotencyKeyHeader))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := newTestAdapter(t, srv.URL, "tok").
		Update(context.Background(), "/payments", 7, json.RawMessage(`{"price":10}`), "req-2")
	require.NoError(t, err)
}

func TestDelete_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/folders/3", r.URL.Path)
		assert.Equal(t, "req-3", r.Header.Get(IdempotencyKeyHeader))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	err := newTestAdapter(t, srv.URL, "tok").Delete(context.Background(), "/folders", 3, "req-3")
	require.NoError(t, err)
}

func TestMutations_StatusMapping(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{status: http.StatusBadRequest, want: ErrBadRequest},
		{status: http.StatusUnauthorized, want: ErrUnauthorized},
		{status: http.StatusForbidden, want: ErrForbidden},
		{status: http.StatusNotFound, want: ErrNotFound},
		{status: http.StatusConflict, want: ErrConflict},
		{status: http.StatusUnprocessableEntity, want: ErrUnprocessableEntity},
		{status: http.StatusTooManyRequests, want: ErrTooManyRequests},
		{status: http.StatusBadGateway, want: ErrBadGateway},
		{status: http.StatusServiceUnavailable, want: ErrServiceUnavailable},
		{status: http.StatusTeapot, want: ErrUnexpectedStatus},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			a := newTestAdapter(t, srv.URL, "")
			err := a.Update(context.Background(), "/jobs", 1, nil, "r")
			assert.ErrorIs(t, err, tt.want)

			err = a.Delete(context.Background(), "/jobs", 1, "r")
			assert.ErrorIs(t, err, tt.want)

			var httpErr *HTTPError
			require.True(t, errors.As(err, &httpErr))
			assert.Equal(t, tt.status, httpErr.HTTPStatus())
		})
	}
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	err := newTestAdapter(t, url, "").Delete(context.Background(), "/jobs", 1, "r")
	require.Error(t, err)

	var httpErr *HTTPError
	assert.False(t, errors.As(err, &httpErr))
}
