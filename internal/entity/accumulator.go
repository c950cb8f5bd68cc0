// Package entity tracks which recognized entities of an utterance are still unconsumed.
package entity

import (
	"strings"

	"github.com/park285/voicechess/internal/domain"
)

// Fields is the flattened view of an entity sequence. An empty string means absent.
type Fields struct {
	Piece  string
	Square string
}

func (f Fields) HasPiece() bool  { return f.Piece != "" }
func (f Fields) HasSquare() bool { return f.Square != "" }

// SelectNewEntities returns the entities of seg not consumed yet.
// A context different from lastContextID makes every entity eligible;
// within the same context only entities past lastPosition are returned.
func SelectNewEntities(seg domain.Segment, lastContextID string, lastPosition int) []domain.Entity {
	if seg.ContextID != lastContextID {
		return seg.Entities
	}
	out := make([]domain.Entity, 0, len(seg.Entities))
	for _, e := range seg.Entities {
		if e.StartPosition > lastPosition {
			out = append(out, e)
		}
	}
	return out
}

// FormatEntities folds entities into Fields; for each type the last one wins.
// Entities of unknown type are ignored.
func FormatEntities(entities []domain.Entity) Fields {
	var f Fields
	for _, e := range entities {
		v := strings.TrimSpace(e.Value)
		switch domain.NormalizeEntityType(string(e.Type)) {
		case domain.EntityPiece:
			f.Piece = v
		case domain.EntitySquare:
			f.Square = v
		}
	}
	return f
}

// LastPosition returns the start position of the final entity, or fallback when empty.
func LastPosition(entities []domain.Entity, fallback int) int {
	if len(entities) == 0 {
		return fallback
	}
	return entities[len(entities)-1].StartPosition
}
