package render

import (
	"bytes"
	"context"
	"image/png"
	"strings"
	"testing"

	nchess "github.com/corentings/chess/v2"

	"github.com/park285/voicechess/internal/board"
	"github.com/park285/voicechess/internal/game"
	"github.com/park285/voicechess/internal/msgcat"
	"github.com/park285/voicechess/internal/session"
)

func TestRenderPNG(t *testing.T) {
	r := NewPNGRenderer(32)
	out, err := r.RenderPNG(context.Background(), board.Initial().Chess(), RenderOptions{HUDTurn: "White to move"})
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := 32*8 + sideMargin*2
	if img.Bounds().Dx() != want {
		t.Fatalf("width = %d, want %d", img.Bounds().Dx(), want)
	}
}

func TestRenderPNGCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewPNGRenderer(16).RenderPNG(ctx, board.Initial().Chess(), RenderOptions{}); err == nil {
		t.Fatalf("expected context error")
	}
	if _, err := NewPNGRenderer(16).RenderPNG(context.Background(), nil, RenderOptions{}); err == nil {
		t.Fatalf("expected error for nil board")
	}
}

func TestHighlightChangesImage(t *testing.T) {
	st := game.Initial()
	st.Board = board.MovePiece(st.Board, board.MustSquare("E2"), board.MustSquare("E4"))
	st.ActiveColor = board.Black
	plain := session.NewSnapshot("s", 1, st)
	lit := plain
	lit.LastMove = &board.Move{From: board.MustSquare("E2"), To: board.MustSquare("E4")}

	r := NewPNGRenderer(24)
	a, err := Snapshot(context.Background(), r, plain, msgcat.Default())
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	b, err := Snapshot(context.Background(), r, lit, msgcat.Default())
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if bytes.Equal(a, b) {
		t.Fatalf("expected highlight to change the image")
	}
}

func TestOptionsFor(t *testing.T) {
	snap := session.NewSnapshot("s", 1, game.Initial())
	snap.LastMove = &board.Move{From: board.MustSquare("G1"), To: board.MustSquare("F3")}
	opts := OptionsFor(snap, msgcat.Default())
	if opts.HUDTurn != "White to move" {
		t.Fatalf("HUDTurn = %q", opts.HUDTurn)
	}
	if opts.Highlight == nil || opts.Highlight.From != nchess.G1 || opts.Highlight.To != nchess.F3 {
		t.Fatalf("highlight = %+v", opts.Highlight)
	}
}

func TestText(t *testing.T) {
	out := Text(board.Initial().Chess())
	if !strings.Contains(out, "A B C D E F G H") {
		t.Fatalf("unexpected drawing:\n%s", out)
	}
}
