package game

import (
	"strings"

	"github.com/park285/voicechess/internal/domain"
)

// Intent is the closed set of commands a segment can carry.
type Intent interface {
	Name() string
	intent()
}

// Reset restores the starting position.
type Reset struct{}

// Move relocates a piece inferred from its spoken type and destination.
type Move struct {
	Entities []domain.Entity
}

// Capture is accepted but has no effect yet.
type Capture struct {
	Entities []domain.Entity
}

// Castle performs the king-side castle for the side to move.
type Castle struct{}

// Unknown is any other intent label.
type Unknown struct {
	Label string
}

func (Reset) Name() string     { return "reset" }
func (Move) Name() string      { return "move" }
func (Capture) Name() string   { return "capture" }
func (Castle) Name() string    { return "castle" }
func (u Unknown) Name() string { return u.Label }

func (Reset) intent()   {}
func (Move) intent()    {}
func (Capture) intent() {}
func (Castle) intent()  {}
func (Unknown) intent() {}

// ParseIntent maps a segment onto an Intent. It returns nil when the segment
// carries no intent.
func ParseIntent(seg domain.Segment) Intent {
	if seg.Intent == nil {
		return nil
	}
	label := strings.ToLower(strings.TrimSpace(seg.Intent.Intent))
	switch label {
	case "reset":
		return Reset{}
	case "move":
		return Move{Entities: seg.Entities}
	case "capture":
		return Capture{Entities: seg.Entities}
	case "castle":
		return Castle{}
	default:
		return Unknown{Label: seg.Intent.Intent}
	}
}
