// Package testutil holds helpers shared by handler and model tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "arbiter/pkg/domain-errors"
	"arbiter/pkg/platform/httputil"
)

// NewJSONRequest builds a JSON request. A string body is sent as is, so
// tests can post malformed payloads; anything else is marshaled.
func NewJSONRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()

	var payload io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		payload = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err, "marshal request body")
		payload = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, payload)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// NewRequest builds a request without a body.
func NewRequest(t *testing.T, method, path string) *http.Request {
	t.Helper()
	return httptest.NewRequest(method, path, nil)
}

func DoRequest(handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

// Decode reads the response body into T.
func Decode[T any](t *testing.T, rr *httptest.ResponseRecorder) *T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), "decode %s", rr.Body.String())
	return &out
}

// AssertStatus reports the body on mismatch, which usually names the
// failing check.
func AssertStatus(t *testing.T, rr *httptest.ResponseRecorder, want int) {
	t.Helper()
	assert.Equal(t, want, rr.Code, "body: %s", rr.Body.String())
}

// AssertAPIError checks the status and the envelope category.
func AssertAPIError(t *testing.T, rr *httptest.ResponseRecorder, status int, code dErrors.Code) {
	t.Helper()
	AssertStatus(t, rr, status)
	envelope := Decode[httputil.ErrorResponse](t, rr)
	assert.Equal(t, string(code), envelope.Error)
}

// AssertProgramError checks the status and the numeric resolver code.
func AssertProgramError(t *testing.T, rr *httptest.ResponseRecorder, status int, code uint32) {
	t.Helper()
	AssertStatus(t, rr, status)
	envelope := Decode[httputil.ErrorResponse](t, rr)
	require.NotNil(t, envelope.Code, "envelope has no resolver code: %s", rr.Body.String())
	assert.Equal(t, code, *envelope.Code)
}

// AssertField compares one top-level field of a JSON object response.
func AssertField(t *testing.T, rr *httptest.ResponseRecorder, key string, want any) {
	t.Helper()
	fields := Decode[map[string]any](t, rr)
	assert.Equal(t, want, (*fields)[key], "field %q", key)
}
