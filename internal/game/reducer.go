package game

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/park285/voicechess/internal/board"
	"github.com/park285/voicechess/internal/domain"
	"github.com/park285/voicechess/internal/entity"
	"github.com/park285/voicechess/internal/obslog"
	"github.com/park285/voicechess/internal/validator"
)

// ErrUnknownPiece is reported for spoken piece names outside the table.
var ErrUnknownPiece = errors.New("unknown piece")

var pieceNames = map[string]board.Piece{
	"PAWN":   board.Pawn,
	"KNIGHT": board.Knight,
	"BISHOP": board.Bishop,
	"ROOK":   board.Rook,
	"QUEEN":  board.Queen,
	"KING":   board.King,
}

// ResolvePiece maps a spoken piece name to its letter for side c.
// An empty name means pawn.
func ResolvePiece(name string, c board.Color) (board.Piece, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	if name == "" {
		return board.Pawn.For(c), nil
	}
	p, ok := pieceNames[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownPiece, name)
	}
	return p.For(c), nil
}

type castleSquares struct {
	kingFrom, kingTo, rookFrom, rookTo board.Square
}

var castles = map[board.Color]castleSquares{
	board.White: {board.MustSquare("E1"), board.MustSquare("G1"), board.MustSquare("H1"), board.MustSquare("F1")},
	board.Black: {board.MustSquare("E8"), board.MustSquare("G8"), board.MustSquare("H8"), board.MustSquare("F8")},
}

// Options tune how segments are applied.
type Options struct {
	// ApplyOnPartial applies non-final segments too. Off by default so the
	// board does not jitter while recognition is still refining.
	ApplyOnPartial bool
}

// Reducer maps (state, segment) to the next state. It holds no game state itself.
type Reducer struct {
	opts Options
	sink DiagnosticSink
}

func NewReducer(opts Options, sink DiagnosticSink) *Reducer {
	if sink == nil {
		sink = NopSink{}
	}
	return &Reducer{opts: opts, sink: sink}
}

// Reduce returns the state after applying seg. It never fails: ignored
// commands return state unchanged and go to the diagnostic sink.
func (r *Reducer) Reduce(state GameState, seg domain.Segment) GameState {
	in := ParseIntent(seg)
	if in == nil {
		return state
	}
	if !r.opts.ApplyOnPartial && !seg.Final() {
		return state
	}

	switch in := in.(type) {
	case Reset:
		return Initial()
	case Move:
		return r.move(state, seg)
	case Capture:
		return state
	case Castle:
		return r.castle(state, seg)
	case Unknown:
		r.sink.Report(Diagnostic{Kind: UnrecognizedIntent, ContextID: seg.ContextID, Intent: in.Label})
		return state
	default:
		return state
	}
}

func (r *Reducer) move(state GameState, seg domain.Segment) GameState {
	fresh := entity.SelectNewEntities(seg, state.LastContextID, state.LastConsumedEntityPosition)
	if len(fresh) == 0 {
		return state
	}
	fields := entity.FormatEntities(fresh)
	last := entity.LastPosition(fresh, state.LastConsumedEntityPosition)

	if !fields.HasPiece() && !fields.HasSquare() {
		next := state
		next.LastContextID = seg.ContextID
		next.LastConsumedEntityPosition = last
		return next
	}
	if !fields.HasSquare() {
		// destination not heard yet; keep entities available for the next segment
		return state
	}

	diag := Diagnostic{ContextID: seg.ContextID, Intent: "move", Piece: fields.Piece, Square: fields.Square}

	piece, err := ResolvePiece(fields.Piece, state.ActiveColor)
	if err != nil {
		diag.Kind, diag.Err = UnknownPiece, err
		r.sink.Report(diag)
		return state
	}
	diag.Piece = piece.String()

	dst, err := board.TransformCoordinate(fields.Square)
	if err != nil {
		diag.Kind, diag.Err = InvalidSquare, err
		r.sink.Report(diag)
		return state
	}
	diag.Square = dst.Name()

	src, err := validator.SelectSource(state.Board, piece, dst)
	if err != nil {
		diag.Kind, diag.Err = PieceNotFound, err
		r.sink.Report(diag)
		return state
	}

	obslog.L().Debug("move_applied",
		zap.String("context_id", seg.ContextID),
		zap.String("piece", piece.String()),
		zap.String("from", src.Name()),
		zap.String("to", dst.Name()),
	)
	return GameState{
		Board:                      board.MovePiece(state.Board, src, dst),
		ActiveColor:                state.ActiveColor.Toggle(),
		LastContextID:              seg.ContextID,
		LastConsumedEntityPosition: last,
		CommittedContextID:         seg.ContextID,
		CommittedSegmentID:         seg.ID,
		LastMove:                   &board.Move{From: src, To: dst},
	}
}

func (r *Reducer) castle(state GameState, seg domain.Segment) GameState {
	if r.redelivered(state, seg) {
		return state
	}
	sq, ok := castles[state.ActiveColor]
	if !ok {
		return state
	}

	b := board.MovePiece(state.Board, sq.kingFrom, sq.kingTo)
	b = board.MovePiece(b, sq.rookFrom, sq.rookTo)

	pos := state.LastConsumedEntityPosition
	if seg.ContextID != state.LastContextID {
		pos = 0
	}
	fresh := entity.SelectNewEntities(seg, state.LastContextID, state.LastConsumedEntityPosition)

	obslog.L().Debug("castle_applied",
		zap.String("context_id", seg.ContextID),
		zap.String("color", string(state.ActiveColor)),
	)
	return GameState{
		Board:                      b,
		ActiveColor:                state.ActiveColor.Toggle(),
		LastContextID:              seg.ContextID,
		LastConsumedEntityPosition: entity.LastPosition(fresh, pos),
		CommittedContextID:         seg.ContextID,
		CommittedSegmentID:         seg.ID,
		LastMove:                   &board.Move{From: sq.kingFrom, To: sq.kingTo},
	}
}

// redelivered reports whether seg already committed a transition. Only
// partial mode sees the same segment more than once.
func (r *Reducer) redelivered(state GameState, seg domain.Segment) bool {
	return r.opts.ApplyOnPartial &&
		seg.ContextID != "" &&
		seg.ContextID == state.CommittedContextID &&
		seg.ID == state.CommittedSegmentID
}
