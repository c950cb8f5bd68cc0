package game

import "github.com/park285/voicechess/internal/board"

// GameState is one immutable snapshot. Transitions return new values and
// never write into a previously returned Board.
type GameState struct {
	Board       board.Board
	ActiveColor board.Color

	// LastContextID is the recognition context whose entities were consumed last.
	// Empty means no context.
	LastContextID              string
	LastConsumedEntityPosition int

	// CommittedContextID and CommittedSegmentID identify the segment of the
	// last move or castle applied.
	CommittedContextID string
	CommittedSegmentID int
	// LastMove is the most recent relocation, nil after reset.
	LastMove *board.Move
}

// Initial returns the starting position with white to move.
func Initial() GameState {
	return GameState{
		Board:       board.Initial(),
		ActiveColor: board.White,
	}
}

// SameBoard reports whether a and b show the same position and side to move.
func SameBoard(a, b GameState) bool {
	return a.Board == b.Board && a.ActiveColor == b.ActiveColor
}
