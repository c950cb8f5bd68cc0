package game

import (
	"testing"

	"github.com/park285/voicechess/internal/board"
	"github.com/park285/voicechess/internal/domain"
)

func TestParseIntent(t *testing.T) {
	cases := map[string]Intent{
		"reset":   Reset{},
		"Move":    Move{},
		"capture": Capture{},
		"CASTLE":  Castle{},
	}
	for label, want := range cases {
		got := ParseIntent(domain.Segment{Intent: &domain.SegmentIntent{Intent: label}})
		if got.Name() != want.Name() {
			t.Fatalf("ParseIntent(%q) = %T, want %T", label, got, want)
		}
	}
	if got, ok := ParseIntent(domain.Segment{Intent: &domain.SegmentIntent{Intent: "promote"}}).(Unknown); !ok || got.Label != "promote" {
		t.Fatalf("expected Unknown{promote}, got %#v", got)
	}
	if ParseIntent(domain.Segment{}) != nil {
		t.Fatalf("expected nil intent for segment without intent")
	}
}

func TestResolvePiece(t *testing.T) {
	cases := []struct {
		name  string
		color board.Color
		want  board.Piece
	}{
		{"", board.White, 'P'},
		{"", board.Black, 'p'},
		{"ROOK", board.White, 'R'},
		{"bishop", board.Black, 'b'},
		{"King", board.White, 'K'},
	}
	for _, tc := range cases {
		got, err := ResolvePiece(tc.name, tc.color)
		if err != nil || got != tc.want {
			t.Fatalf("ResolvePiece(%q, %s) = %q, %v; want %q", tc.name, tc.color, got, err, tc.want)
		}
	}
	if _, err := ResolvePiece("archbishop", board.White); err == nil {
		t.Fatalf("expected error for unknown piece")
	}
}

func TestHistoryBounded(t *testing.T) {
	h := NewHistory(2)
	a, b, c := Initial(), Initial(), Initial()
	b.ActiveColor = board.Black
	c.LastContextID = "c"
	h.Push(a)
	h.Push(b)
	h.Push(c)
	if h.Len() != 2 {
		t.Fatalf("Len = %d", h.Len())
	}
	snaps := h.Snapshots()
	if snaps[0] != b || snaps[1] != c {
		t.Fatalf("unexpected retained snapshots")
	}
	last, ok := h.Last()
	if !ok || last != c {
		t.Fatalf("Last mismatch")
	}
}
