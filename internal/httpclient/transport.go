package httpclient

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"
)

var (
	// ErrTimeout is returned when a single request exceeds its deadline.
	ErrTimeout = errors.New("request timed out")
	// ErrTransport is returned for any other network level failure.
	ErrTransport = errors.New("transport error")
)

// Response carries the parts of a hop response the resolver needs.
type Response struct {
	StatusCode int
	// Location is the raw Location header, empty when absent.
	Location string
}

// Transport issues single HEAD requests that never follow redirects.
type Transport struct {
	client  *http.Client
	timeout time.Duration
}

// NewTransport builds a Transport on top of a client created from cfg.
func NewTransport(cfg Config) *Transport {
	return &Transport{client: New(cfg), timeout: cfg.Timeout}
}

// NewTransportWithClient wraps an existing client. The client should not
// follow redirects on its own.
func NewTransportWithClient(c *http.Client, timeout time.Duration) *Transport {
	return &Transport{client: c, timeout: timeout}
}

// Send issues a HEAD request for rawURL. Cancellation of ctx is reported as
// context.Canceled, a per-request deadline as ErrTimeout and everything else
// as ErrTransport.
func (t *Transport) Send(ctx context.Context, rawURL string) (Response, error) {
	reqCtx := ctx
	if t.timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodHead, rawURL, nil)
	if err != nil {
		return Response{}, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	resp, err := t.client.Do(req)
	if err != nil {
		return Response{}, classify(ctx, err)
	}
	_ = resp.Body.Close()

	return Response{StatusCode: resp.StatusCode, Location: resp.Header.Get("Location")}, nil
}

func classify(parent context.Context, err error) error {
	if parent.Err() != nil && errors.Is(parent.Err(), context.Canceled) {
		return fmt.Errorf("request aborted: %w", context.Canceled)
	}
	if errors.Is(err, ErrTimeout) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %w", ErrTransport, err)
}
