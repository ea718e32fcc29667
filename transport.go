package agl

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/agl-team/agl-go/internal/metrics"
)

// Doer abstracts the HTTP transport so callers and tests can substitute one.
// *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// newHTTPClient builds the default transport with the per-request timeout
// configured at initialization. Timeout expiry surfaces like any other
// transport failure.
func newHTTPClient(timeoutSeconds float64) *http.Client {
	return &http.Client{
		Timeout: time.Duration(timeoutSeconds * float64(time.Second)),
	}
}

// transport owns credential attachment and asynchronous dispatch for one
// service client. Its fields are set once at construction and never mutated,
// so overlapping in-flight requests read them without synchronization.
type transport struct {
	doer      Doer
	apiKey    string
	logger    *slog.Logger
	collector *metrics.Collector
}

// dispatch sends one request on its own goroutine and hands the outcome to
// done exactly once, on that goroutine. ok is true only when the transport
// succeeded and the status code is one of okStatus; body is the raw response
// body, nil on failure. A nil payload sends no body (GET).
func (t *transport) dispatch(op, method, url string, payload []byte, okStatus []int, done func(ok bool, body []byte)) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.logger.Error("request build failed", "op", op, "error", err)
		done(false, nil)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", t.apiKey)
	req.Header.Set("X-Request-Id", uuid.NewString())

	t.logger.Debug("dispatching request", "op", op, "url", url)

	go func() {
		start := time.Now()
		ok, body := t.roundTrip(op, req, okStatus)
		if t.collector != nil {
			t.collector.Record(op, time.Since(start), ok)
		}
		done(ok, body)
	}()
}

func (t *transport) roundTrip(op string, req *http.Request, okStatus []int) (bool, []byte) {
	resp, err := t.doer.Do(req)
	if err != nil {
		t.logger.Error("request failed", "op", op, "error", err)
		return false, nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.logger.Error("response read failed", "op", op, "error", err)
		return false, nil
	}

	for _, code := range okStatus {
		if resp.StatusCode == code {
			return true, body
		}
	}
	t.logger.Error("server returned error", "op", op, "status", resp.StatusCode)
	return false, nil
}
