// Package testkit provides helpers for handler-level HTTP tests:
// building JSON requests, executing them against a handler, and
// asserting on the standard response envelope.
//
// Usage:
//
//	rec := testkit.Do(handler, http.MethodPost, "/api/cart",
//	    testkit.JSONBody(map[string]any{"product_id": id, "quantity": 2}))
//	env := testkit.DecodeEnvelope(t, rec)
//	assert.Equal(t, http.StatusOK, rec.Code)
package testkit

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

// Option mutates the outgoing test request before it is served.
type Option func(*http.Request)

// JSONBody marshals v and sets it as the request body with the JSON
// content type.
func JSONBody(v interface{}) Option {
	return func(r *http.Request) {
		raw, _ := json.Marshal(v)
		r.Body = io.NopCloser(bytes.NewReader(raw))
		r.ContentLength = int64(len(raw))
		r.Header.Set("Content-Type", "application/json")
	}
}

// RawBody sets the request body verbatim.
func RawBody(contentType string, raw []byte) Option {
	return func(r *http.Request) {
		r.Body = io.NopCloser(bytes.NewReader(raw))
		r.ContentLength = int64(len(raw))
		r.Header.Set("Content-Type", contentType)
	}
}

// Header sets a request header.
func Header(key, value string) Option {
	return func(r *http.Request) { r.Header.Set(key, value) }
}

// Bearer sets the Authorization header with a bearer token.
func Bearer(token string) Option {
	return Header("Authorization", "Bearer "+token)
}

// Cookie attaches a cookie to the request.
func Cookie(name, value string) Option {
	return func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: name, Value: value})
	}
}

// Do builds a request, applies the options, and serves it through h.
func Do(h http.Handler, method, target string, opts ...Option) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for _, opt := range opts {
		opt(req)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// Envelope mirrors the standard JSON response shape.
type Envelope struct {
	Status  int               `json:"status"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

// DecodeEnvelope parses the recorded response body into an Envelope.
func DecodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env),
		"response is not valid JSON: %s", rec.Body.String())
	return env
}

// DecodeData parses the envelope's data field into dest.
func DecodeData(t *testing.T, rec *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	env := DecodeEnvelope(t, rec)
	require.NoError(t, json.Unmarshal(env.Data, dest),
		"envelope data does not match %T: %s", dest, string(env.Data))
}
