package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-bizsync/internal/config"
	"github.com/MKhiriev/go-bizsync/internal/logger"
	"github.com/MKhiriev/go-bizsync/internal/utils"
)

// IdempotencyKeyHeader carries the queue item request id on every mutation
// so a replayed submission can be recognized by the server.
const IdempotencyKeyHeader = "Idempotency-Key"

// TraceIDHeader forwards the trace id of a diagnostics request to the API.
const TraceIDHeader = "X-Trace-ID"

type httpResourceAdapter struct {
	client *utils.HTTPClient
	tokens TokenSource

	logger *logger.Logger
}

// NewHTTPResourceAdapter constructs the resty implementation of
// [ResourceAPI]. It normalises and validates the base URL from
// adapterCfg.HTTPAddress and configures the request timeout.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPResourceAdapter(adapterCfg config.ClientAdapter, tokens TokenSource, logger *logger.Logger) (ResourceAPI, error) {
	baseURL, err := NormalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := utils.NewHTTPClient()
	client.
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout).
		SetHeader("Accept", "application/json")

	return &httpResourceAdapter{client: client, tokens: tokens, logger: logger}, nil
}

// NormalizeBaseURL defaults the scheme to http and strips trailing slashes.
func NormalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// List implements [ResourceAPI]. It GETs endpoint and extracts the array
// under listKey. A bare JSON array body is accepted as well. A null
// collection yields an empty slice; a missing key is [ErrMalformedResponse].
func (h *httpResourceAdapter) List(ctx context.Context, endpoint, listKey string) ([]json.RawMessage, error) {
	resp, err := h.authedRequest(ctx).Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("list %s request: %w", endpoint, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	body := bytes.TrimSpace(resp.Body())
	if len(body) > 0 && body[0] == '[' {
		return decodeRecords(body)
	}

	var envelope map[string]json.RawMessage
	if err = json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: decode %s envelope: %v", ErrMalformedResponse, endpoint, err)
	}

	raw, ok := envelope[listKey]
	if !ok {
		return nil, fmt.Errorf("%w: %s response has no %q key", ErrMalformedResponse, endpoint, listKey)
	}

	return decodeRecords(raw)
}

func decodeRecords(raw json.RawMessage) ([]json.RawMessage, error) {
	var records []json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("%w: decode records: %v", ErrMalformedResponse, err)
	}
	if records == nil {
		records = make([]json.RawMessage, 0)
	}
	return records, nil
}

// Create implements [ResourceAPI]. It POSTs payload to endpoint.
func (h *httpResourceAdapter) Create(ctx context.Context, endpoint string, payload json.RawMessage, requestID string) (map[string]json.RawMessage, error) {
	resp, err := h.mutationRequest(ctx, payload, requestID).Post(endpoint)
	if err != nil {
		return nil, fmt.Errorf("create %s request: %w", endpoint, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	result := make(map[string]json.RawMessage)
	if body := bytes.TrimSpace(resp.Body()); len(body) > 0 {
		if err = json.Unmarshal(body, &result); err != nil {
			return nil, fmt.Errorf("%w: decode %s create response: %v", ErrMalformedResponse, endpoint, err)
		}
	}

	return result, nil
}

// Update implements [ResourceAPI]. It PUTs payload to endpoint/{id}.
func (h *httpResourceAdapter) Update(ctx context.Context, endpoint string, id int64, payload json.RawMessage, requestID string) error {
	resp, err := h.mutationRequest(ctx, payload, requestID).
		SetPathParam("id", strconv.FormatInt(id, 10)).
		Put(endpoint + "/{id}")
	if err != nil {
		return fmt.Errorf("update %s/%d request: %w", endpoint, id, err)
	}

	return mapHTTPError(resp)
}

// Delete implements [ResourceAPI]. It sends DELETE endpoint/{id}.
func (h *httpResourceAdapter) Delete(ctx context.Context, endpoint string, id int64, requestID string) error {
	resp, err := h.authedRequest(ctx).
		SetHeader(IdempotencyKeyHeader, requestID).
		SetPathParam("id", strconv.FormatInt(id, 10)).
		Delete(endpoint + "/{id}")
	if err != nil {
		return fmt.Errorf("delete %s/%d request: %w", endpoint, id, err)
	}

	return mapHTTPError(resp)
}

func (h *httpResourceAdapter) mutationRequest(ctx context.Context, payload json.RawMessage, requestID string) *resty.Request {
	if len(payload) == 0 {
		payload = json.RawMessage("{}")
	}

	return h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader(IdempotencyKeyHeader, requestID).
		SetBody([]byte(payload))
}

func (h *httpResourceAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if traceID, ok := utils.GetTraceIDFromContext(ctx); ok {
		req.SetHeader(TraceIDHeader, traceID)
	}
	if h.tokens == nil {
		return req
	}
	if token := strings.TrimSpace(h.tokens.Token()); token != "" {
		req.SetAuthToken(token)
	}
	return req
}
