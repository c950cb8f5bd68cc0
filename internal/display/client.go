// Package display pushes rendered board frames to an external display endpoint.
package display

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/park285/voicechess/internal/msgcat"
	"github.com/park285/voicechess/internal/render"
	"github.com/park285/voicechess/internal/session"
)

// HeaderProvider supplies per-request headers.
type HeaderProvider func() map[string]string

// Frame is the JSON body posted to /frame.
type Frame struct {
	SessionID   string `json:"session_id"`
	Seq         int64  `json:"seq"`
	Placement   string `json:"placement"`
	ActiveColor string `json:"active_color"`
	Image       string `json:"image,omitempty"` // base64 PNG
}

type Client struct {
	baseURL  string
	http     *fasthttp.Client
	headers  HeaderProvider
	renderer render.BoardRenderer
	catalog  *msgcat.Catalog

	defaultTimeout time.Duration
	retryMax       int
}

type Option func(*Client)

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.defaultTimeout = d
		}
	}
}

func WithHeaderProvider(h HeaderProvider) Option {
	return func(c *Client) { c.headers = h }
}

func WithRetry(max int) Option {
	return func(c *Client) { c.retryMax = max }
}

// WithRenderer attaches a PNG renderer; without one frames carry no image.
func WithRenderer(r render.BoardRenderer, cat *msgcat.Catalog) Option {
	return func(c *Client) {
		c.renderer = r
		c.catalog = cat
	}
}

// WithDialer overrides the TCP dialer (in-memory listeners in tests).
func WithDialer(dial func(addr string) (net.Conn, error)) Option {
	return func(c *Client) { c.http.Dial = dial }
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:        strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:           &fasthttp.Client{ReadTimeout: 10 * time.Second, WriteTimeout: 10 * time.Second, MaxConnsPerHost: 8},
		defaultTimeout: 5 * time.Second,
		retryMax:       3,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Render posts snap as a Frame; it satisfies session.Renderer.
func (c *Client) Render(ctx context.Context, snap session.Snapshot) error {
	frame := Frame{
		SessionID:   snap.SessionID,
		Seq:         snap.Seq,
		Placement:   snap.Placement,
		ActiveColor: string(snap.ActiveColor),
	}
	if c.renderer != nil {
		img, err := render.Snapshot(ctx, c.renderer, snap, c.catalog)
		if err != nil {
			return fmt.Errorf("render frame: %w", err)
		}
		frame.Image = base64.StdEncoding.EncodeToString(img)
	}
	return c.PushFrame(ctx, frame)
}

// PushFrame posts frame, retrying transport errors and 5xx responses.
func (c *Client) PushFrame(ctx context.Context, frame Frame) error {
	return c.doJSON(ctx, fasthttp.MethodPost, "/frame", frame, nil, true)
}

func (c *Client) doJSON(ctx context.Context, method, path string, in any, out any, retry bool) error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer func() {
		fasthttp.ReleaseRequest(req)
		fasthttp.ReleaseResponse(resp)
	}()

	req.Header.SetMethod(method)
	req.SetRequestURI(c.baseURL + path)
	req.Header.SetContentType("application/json")
	if c.headers != nil {
		for k, v := range c.headers() {
			if strings.TrimSpace(k) != "" && strings.TrimSpace(v) != "" {
				req.Header.Set(k, v)
			}
		}
	}
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		req.SetBody(payload)
	}

	attempts := 1
	if retry && c.retryMax > 1 {
		attempts = c.retryMax
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			if err := sleepWithContext(ctx, backoffDuration(attempt-1)); err != nil {
				return lastErr
			}
		}
		if err := c.http.DoDeadline(req, resp, c.deadline(ctx)); err != nil {
			lastErr = fmt.Errorf("request failed: %w", err)
			continue
		}
		status := resp.StatusCode()
		if status < 200 || status >= 300 {
			lastErr = fmt.Errorf("display error: status=%d body=%s", status, truncate(string(resp.Body()), 256))
			if !shouldRetryStatus(status) {
				return lastErr
			}
			continue
		}
		if out != nil {
			if err := json.Unmarshal(resp.Body(), out); err != nil {
				return fmt.Errorf("decode response: %w", err)
			}
		}
		return nil
	}
	if lastErr == nil {
		lastErr = errors.New("unknown error")
	}
	return lastErr
}

func (c *Client) deadline(ctx context.Context) time.Time {
	own := time.Now().Add(c.defaultTimeout)
	if dl, ok := ctx.Deadline(); ok && dl.Before(own) {
		return dl
	}
	return own
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func backoffDuration(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	if attempt > 6 {
		attempt = 6
	}
	return time.Duration(1<<uint(attempt-1)) * 100 * time.Millisecond
}

func shouldRetryStatus(code int) bool {
	switch code {
	case 500, 502, 503, 504:
		return true
	default:
		return false
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
