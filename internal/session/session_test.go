package session

import (
	"context"
	"errors"
	"testing"

	"github.com/park285/voicechess/internal/board"
	"github.com/park285/voicechess/internal/domain"
	"github.com/park285/voicechess/internal/game"
)

func moveSeg(ctx, sq string) domain.Segment {
	return domain.Segment{
		ContextID: ctx,
		Intent:    &domain.SegmentIntent{Intent: "move", IsFinal: true},
		Entities:  []domain.Entity{{Type: domain.EntitySquare, Value: sq, StartPosition: 0}},
		IsFinal:   true,
	}
}

func TestHandleSegmentPublishesOnlyChanges(t *testing.T) {
	var got []Snapshot
	rec := RendererFunc(func(_ context.Context, snap Snapshot) error {
		got = append(got, snap)
		return nil
	})
	s := New(game.NewReducer(game.Options{}, nil), 8, rec)
	ctx := context.Background()

	s.HandleSegment(ctx, moveSeg("c1", "E4"))
	s.HandleSegment(ctx, moveSeg("c1", "E4"))       // nothing new in c1
	s.HandleSegment(ctx, moveSeg("c2", "Z9"))       // invalid square
	st := s.HandleSegment(ctx, moveSeg("c3", "E5")) // black reply

	if len(got) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(got))
	}
	if got[0].Seq != 1 || got[1].Seq != 2 {
		t.Fatalf("unexpected sequence numbers %d, %d", got[0].Seq, got[1].Seq)
	}
	if got[0].SessionID != s.ID() || got[0].ContextID != "c1" {
		t.Fatalf("snapshot metadata = %+v", got[0])
	}
	if got[1].ActiveColor != board.White || st.ActiveColor != board.White {
		t.Fatalf("active color after two moves = %s", got[1].ActiveColor)
	}
	if got[1].LastMove == nil || got[1].LastMove.To != board.MustSquare("E5") {
		t.Fatalf("last move = %+v", got[1].LastMove)
	}
	if n := len(s.History()); n != 3 {
		t.Fatalf("history length = %d, want 3", n)
	}
}

func TestRendererErrorDoesNotBlock(t *testing.T) {
	calls := 0
	failing := RendererFunc(func(context.Context, Snapshot) error { return errors.New("display down") })
	counting := RendererFunc(func(context.Context, Snapshot) error { calls++; return nil })
	s := New(nil, 4, failing)
	s.AddRenderer(counting)

	st := s.HandleSegment(context.Background(), moveSeg("c1", "D4"))
	if st.Board.At(board.MustSquare("D4")) != 'P' {
		t.Fatalf("move not applied")
	}
	if calls != 1 {
		t.Fatalf("second renderer calls = %d", calls)
	}
}

func TestSnapshotBoardRoundTrip(t *testing.T) {
	st := game.Initial()
	st.Board = board.MovePiece(st.Board, board.MustSquare("G1"), board.MustSquare("F3"))
	snap := NewSnapshot("s", 1, st)
	b, err := snap.Board()
	if err != nil {
		t.Fatalf("Board: %v", err)
	}
	if b != st.Board {
		t.Fatalf("board mismatch:\n%s\nvs\n%s", b, st.Board)
	}

	snap.Rows[3] = "short"
	if _, err := snap.Board(); err == nil {
		t.Fatalf("expected error for malformed row")
	}
}
