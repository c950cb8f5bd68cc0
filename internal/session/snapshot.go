package session

import (
	"fmt"
	"time"

	"github.com/park285/voicechess/internal/board"
	"github.com/park285/voicechess/internal/game"
)

// Snapshot is the render-facing view of one committed GameState.
type Snapshot struct {
	SessionID   string      `json:"session_id"`
	Seq         int64       `json:"seq"`
	Placement   string      `json:"placement"`
	Rows        [8]string   `json:"rows"`
	ActiveColor board.Color `json:"active_color"`
	LastMove    *board.Move `json:"last_move,omitempty"`
	ContextID   string      `json:"context_id,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}

// NewSnapshot captures st for session id at sequence seq.
func NewSnapshot(id string, seq int64, st game.GameState) Snapshot {
	snap := Snapshot{
		SessionID:   id,
		Seq:         seq,
		Placement:   st.Board.Placement(),
		Rows:        st.Board.Rows(),
		ActiveColor: st.ActiveColor,
		ContextID:   st.CommittedContextID,
		CreatedAt:   time.Now(),
	}
	if st.LastMove != nil {
		mv := *st.LastMove
		snap.LastMove = &mv
	}
	return snap
}

// Board rebuilds the grid from Rows.
func (s Snapshot) Board() (board.Board, error) {
	var b board.Board
	for r, row := range s.Rows {
		if len(row) != 8 {
			return board.Board{}, fmt.Errorf("snapshot row %d: want 8 squares, got %d", r, len(row))
		}
		for f := 0; f < 8; f++ {
			b[r][f] = board.Piece(row[f])
		}
	}
	return b, nil
}
