package render

import (
	"context"
	"strings"

	"github.com/park285/voicechess/internal/board"
	"github.com/park285/voicechess/internal/msgcat"
	"github.com/park285/voicechess/internal/session"
)

// OptionsFor builds HUD text and the last-move highlight for snap.
func OptionsFor(snap session.Snapshot, cat *msgcat.Catalog) RenderOptions {
	color := string(snap.ActiveColor)
	if color != "" {
		color = strings.ToUpper(color[:1]) + color[1:]
	}
	opts := RenderOptions{
		HUDHeader: cat.RenderOr("status.header", nil, "Voice chess"),
		HUDTurn:   cat.RenderOr("status.turn", map[string]string{"Color": color}, color+" to move"),
	}
	if mv := snap.LastMove; mv != nil {
		opts.Highlight = &MoveHighlight{From: board.ChessSquare(mv.From), To: board.ChessSquare(mv.To)}
	}
	return opts
}

// Snapshot renders snap to PNG bytes.
func Snapshot(ctx context.Context, r BoardRenderer, snap session.Snapshot, cat *msgcat.Catalog) ([]byte, error) {
	b, err := snap.Board()
	if err != nil {
		return nil, err
	}
	return r.RenderPNG(ctx, b.Chess(), OptionsFor(snap, cat))
}
