package segmentws

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/park285/voicechess/internal/domain"
)

func newSegmentServer(t *testing.T, segs []domain.Segment, gotHeader chan<- string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if gotHeader != nil {
			gotHeader <- r.Header.Get("X-Api-Key")
		}
		c, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		defer c.Close(websocket.StatusNormalClosure, "done")
		for _, s := range segs {
			if err := wsjson.Write(r.Context(), c, s); err != nil {
				return
			}
		}
		// hold the connection until the client goes away
		_, _, _ = c.Read(r.Context())
	}))
	t.Cleanup(srv.Close)
	return srv
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestWebSocketDeliversSegmentsInOrder(t *testing.T) {
	segs := []domain.Segment{
		{ContextID: "c1", ID: 1, IsFinal: true, Intent: &domain.SegmentIntent{Intent: "move", IsFinal: true}},
		{ContextID: "c1", ID: 2, IsFinal: true},
		{ContextID: "c2", ID: 3, IsFinal: false},
	}
	headers := make(chan string, 1)
	srv := newSegmentServer(t, segs, headers)

	ws := NewWebSocket(wsURL(srv), 0, 10*time.Millisecond)
	ws.SetHeaderProvider(func() map[string]string {
		return map[string]string{"X-Api-Key": "secret", "X-Empty": " "}
	})

	var mu sync.Mutex
	var got []int
	done := make(chan struct{})
	ws.OnSegment(func(seg domain.Segment) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, seg.ID)
		if len(got) == len(segs) {
			close(done)
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := ws.Connect(ctx); err != nil {
		t.Fatalf("connect: %v", err)
	}
	if ws.State() != WSStateConnected {
		t.Fatalf("state = %s, want connected", ws.State())
	}
	if h := <-headers; h != "secret" {
		t.Fatalf("header = %q", h)
	}

	select {
	case <-done:
	case <-ctx.Done():
		t.Fatalf("timed out waiting for segments")
	}
	mu.Lock()
	if len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Fatalf("order = %v", got)
	}
	mu.Unlock()

	if err := ws.Close(ctx); err != nil {
		t.Fatalf("close: %v", err)
	}
	if ws.State() != WSStateDisconnected {
		t.Fatalf("state after close = %s", ws.State())
	}
}

func TestWebSocketRemoveCallback(t *testing.T) {
	ws := NewWebSocket("ws://unused", 0, 0)
	calls := 0
	id := ws.OnSegment(func(domain.Segment) { calls++ })
	ws.RemoveSegmentCallback(id)
	if len(ws.segCbs) != 0 {
		t.Fatalf("callback not removed")
	}
}

func TestWebSocketConnectFailureReportsState(t *testing.T) {
	ws := NewWebSocket("ws://127.0.0.1:1/none", 0, 0)
	var states []WebSocketState
	ws.OnStateChange(func(s WebSocketState) { states = append(states, s) })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := ws.Connect(ctx); err == nil {
		t.Fatalf("expected dial error")
	}
	if ws.State() != WSStateFailed {
		t.Fatalf("state = %s, want failed", ws.State())
	}
	if len(states) < 2 || states[0] != WSStateConnecting {
		t.Fatalf("states = %v", states)
	}
	_ = ws.Close(ctx)
}
