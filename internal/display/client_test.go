package display

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net"
	"sync"
	"testing"

	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"

	"github.com/park285/voicechess/internal/game"
	"github.com/park285/voicechess/internal/msgcat"
	"github.com/park285/voicechess/internal/render"
	"github.com/park285/voicechess/internal/session"
)

type fakeDisplay struct {
	mu       sync.Mutex
	frames   []Frame
	failures int
	headers  []string
}

func (f *fakeDisplay) handle(ctx *fasthttp.RequestCtx) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if string(ctx.Path()) != "/frame" || !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		return
	}
	if f.failures > 0 {
		f.failures--
		ctx.SetStatusCode(fasthttp.StatusServiceUnavailable)
		return
	}
	var fr Frame
	if err := json.Unmarshal(ctx.PostBody(), &fr); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		return
	}
	f.frames = append(f.frames, fr)
	f.headers = append(f.headers, string(ctx.Request.Header.Peek("X-Display-Token")))
	ctx.SetStatusCode(fasthttp.StatusNoContent)
}

func newTestClient(t *testing.T, fake *fakeDisplay, opts ...Option) *Client {
	t.Helper()
	ln := fasthttputil.NewInmemoryListener()
	srv := &fasthttp.Server{Handler: fake.handle}
	go func() { _ = srv.Serve(ln) }()
	t.Cleanup(func() { _ = ln.Close() })

	opts = append(opts, WithDialer(func(string) (net.Conn, error) { return ln.Dial() }))
	return NewClient("http://display.local", opts...)
}

func TestRenderPostsFrameWithImage(t *testing.T) {
	fake := &fakeDisplay{}
	c := newTestClient(t, fake,
		WithRenderer(render.NewPNGRenderer(16), msgcat.Default()),
		WithHeaderProvider(func() map[string]string { return map[string]string{"X-Display-Token": "abc"} }),
	)

	snap := session.NewSnapshot("s1", 4, game.Initial())
	if err := c.Render(context.Background(), snap); err != nil {
		t.Fatalf("Render: %v", err)
	}

	fake.mu.Lock()
	defer fake.mu.Unlock()
	if len(fake.frames) != 1 {
		t.Fatalf("frames = %d", len(fake.frames))
	}
	fr := fake.frames[0]
	if fr.SessionID != "s1" || fr.Seq != 4 || fr.ActiveColor != "white" {
		t.Fatalf("frame = %+v", fr)
	}
	raw, err := base64.StdEncoding.DecodeString(fr.Image)
	if err != nil || len(raw) < 8 || string(raw[1:4]) != "PNG" {
		t.Fatalf("frame image is not a PNG (err=%v)", err)
	}
	if fake.headers[0] != "abc" {
		t.Fatalf("header = %q", fake.headers[0])
	}
}

func TestPushFrameRetries5xx(t *testing.T) {
	fake := &fakeDisplay{failures: 2}
	c := newTestClient(t, fake, WithRetry(3))
	if err := c.PushFrame(context.Background(), Frame{SessionID: "s1", Seq: 1}); err != nil {
		t.Fatalf("PushFrame: %v", err)
	}
	fake.mu.Lock()
	defer fake.mu.Unlock()
	if len(fake.frames) != 1 {
		t.Fatalf("frames = %d", len(fake.frames))
	}
}

func TestPushFrameGivesUp(t *testing.T) {
	fake := &fakeDisplay{failures: 5}
	c := newTestClient(t, fake, WithRetry(2))
	if err := c.PushFrame(context.Background(), Frame{SessionID: "s1"}); err == nil {
		t.Fatalf("expected error after exhausting retries")
	}
}
