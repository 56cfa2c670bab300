package client

import (
	"fmt"
	"io"
	"net/http"
	"time"
)

// loggingTransport is an http.RoundTripper that writes one line per API
// call, used when the CLI runs with --verbose.
type loggingTransport struct {
	inner http.RoundTripper
	out   io.Writer
}

// NewVerboseClient returns an http.Client that logs every request and its
// outcome to out.
func NewVerboseClient(timeout time.Duration, out io.Writer) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &loggingTransport{
			inner: http.DefaultTransport,
			out:   out,
		},
	}
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.inner.RoundTrip(req)
	duration := time.Since(start).Round(time.Millisecond)

	if err != nil {
		fmt.Fprintf(t.out, "api: %s %s failed after %s: %v\n", req.Method, req.URL.Path, duration, err)
		return resp, err
	}

	fmt.Fprintf(t.out, "api: %s %s -> %d (%s)\n", req.Method, req.URL.Path, resp.StatusCode, duration)
	return resp, err
}
