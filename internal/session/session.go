package session

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/park285/voicechess/internal/domain"
	"github.com/park285/voicechess/internal/game"
	"github.com/park285/voicechess/internal/obslog"
)

// Renderer consumes committed snapshots (board image, pub/sub, display...).
type Renderer interface {
	Render(ctx context.Context, snap Snapshot) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(ctx context.Context, snap Snapshot) error

func (f RendererFunc) Render(ctx context.Context, snap Snapshot) error { return f(ctx, snap) }

// Session threads one GameState through the reducer for a single speech stream.
// HandleSegment calls are serialized; renderers run in segment order.
type Session struct {
	id      string
	reducer *game.Reducer

	mu        sync.Mutex
	state     game.GameState
	seq       int64
	history   *game.History
	renderers []Renderer
}

// New starts a session at the initial position.
func New(reducer *game.Reducer, historyLimit int, renderers ...Renderer) *Session {
	if reducer == nil {
		reducer = game.NewReducer(game.Options{}, nil)
	}
	s := &Session{
		id:        uuid.NewString(),
		reducer:   reducer,
		state:     game.Initial(),
		history:   game.NewHistory(historyLimit),
		renderers: renderers,
	}
	s.history.Push(s.state)
	return s
}

func (s *Session) ID() string { return s.id }

// AddRenderer attaches r for subsequent snapshots.
func (s *Session) AddRenderer(r Renderer) {
	if r == nil {
		return
	}
	s.mu.Lock()
	s.renderers = append(s.renderers, r)
	s.mu.Unlock()
}

// State returns the latest snapshot.
func (s *Session) State() game.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// History returns the retained board-changing snapshots, oldest first.
func (s *Session) History() []game.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Snapshots()
}

// Current builds a Snapshot of the latest state without advancing the sequence.
func (s *Session) Current() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return NewSnapshot(s.id, s.seq, s.state)
}

// HandleSegment applies seg and fans the result out when the board changed.
func (s *Session) HandleSegment(ctx context.Context, seg domain.Segment) game.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.state
	next := s.reducer.Reduce(prev, seg)
	s.state = next
	if game.SameBoard(prev, next) && prev.LastMove == next.LastMove {
		return next
	}

	s.seq++
	s.history.Push(next)
	snap := NewSnapshot(s.id, s.seq, next)
	obslog.L().Info("segment_applied",
		zap.String("session_id", s.id),
		zap.Int64("seq", s.seq),
		zap.String("context_id", seg.ContextID),
		zap.String("placement", snap.Placement),
		zap.String("active_color", string(next.ActiveColor)),
	)
	for _, r := range s.renderers {
		if err := r.Render(ctx, snap); err != nil {
			obslog.L().Warn("snapshot_render_error",
				zap.String("session_id", s.id),
				zap.Int64("seq", s.seq),
				zap.Error(err),
			)
		}
	}
	return next
}
