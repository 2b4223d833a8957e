package testkit

import (
	"bytes"
	"io"
	"net/http"
	"sync"
)

// RoundTripFunc adapts a function to http.RoundTripper, letting tests
// intercept outgoing requests made through the shared client:
//
//	http.DefaultClient.Transport = testkit.RoundTripFunc(func(r *gohttp.Request) (*gohttp.Response, error) {
//	    return testkit.JSONResponse(200, `{"ok":true}`), nil
//	})
//	defer http.ResetTransport()
type RoundTripFunc func(*http.Request) (*http.Response, error)

func (f RoundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

// JSONResponse builds a synthetic *http.Response with a JSON body.
func JSONResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(bytes.NewReader([]byte(body))),
	}
}

// RequestRecorder is a RoundTripper that records every outgoing request
// and replies with a fixed response. Useful for webhook delivery tests.
type RequestRecorder struct {
	mu       sync.Mutex
	Status   int
	Body     string
	requests []recordedRequest
}

type recordedRequest struct {
	Method string
	URL    string
	Body   []byte
}

// RoundTrip records the request and returns the configured response.
func (rr *RequestRecorder) RoundTrip(r *http.Request) (*http.Response, error) {
	var raw []byte
	if r.Body != nil {
		raw, _ = io.ReadAll(r.Body)
		r.Body.Close()
	}

	rr.mu.Lock()
	rr.requests = append(rr.requests, recordedRequest{
		Method: r.Method,
		URL:    r.URL.String(),
		Body:   raw,
	})
	rr.mu.Unlock()

	status := rr.Status
	if status == 0 {
		status = http.StatusOK
	}
	body := rr.Body
	if body == "" {
		body = `{}`
	}
	return JSONResponse(status, body), nil
}

// Count returns how many requests were recorded.
func (rr *RequestRecorder) Count() int {
	rr.mu.Lock()
	defer rr.mu.Unlock()
	return len(rr.requests)
}

// LastBody returns the body of the most recent request, or nil.
func (rr *RequestRecorder) LastBody() []byte {
	rr.mu.Lock()
	defer rr.mu.Unlock()
	if len(rr.requests) == 0 {
		return nil
	}
	return rr.requests[len(rr.requests)-1].Body
}
