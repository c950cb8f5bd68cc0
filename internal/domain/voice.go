package domain

import "strings"

// EntityType classifies a recognized sub-span of speech.
type EntityType string

const (
	EntityPiece  EntityType = "PIECE"
	EntitySquare EntityType = "SQUARE"
)

// Known reports whether t is one of the closed set of entity types.
func (t EntityType) Known() bool {
	switch t {
	case EntityPiece, EntitySquare:
		return true
	default:
		return false
	}
}

// NormalizeEntityType folds the wire spelling ("piece", "Square") onto the enum.
// Unknown spellings are returned upper-cased and fail Known.
func NormalizeEntityType(s string) EntityType {
	return EntityType(strings.ToUpper(strings.TrimSpace(s)))
}

// Entity is one recognized value inside a segment.
type Entity struct {
	Type          EntityType `json:"type"`
	Value         string     `json:"value"`
	StartPosition int        `json:"startPosition"`
	EndPosition   int        `json:"endPosition,omitempty"`
	IsFinal       bool       `json:"isFinal,omitempty"`
}

// SegmentIntent is the intent label attached to a segment.
type SegmentIntent struct {
	Intent  string `json:"intent"`
	IsFinal bool   `json:"isFinal"`
}

// Segment is one incremental recognition update for a context.
// Several segments share a ContextID while an utterance is refined.
type Segment struct {
	ContextID string         `json:"contextId"`
	ID        int            `json:"id"`
	Intent    *SegmentIntent `json:"intent,omitempty"`
	Entities  []Entity       `json:"entities"`
	IsFinal   bool           `json:"isFinal"`
}

// Final reports whether the segment or its intent is marked final.
func (s Segment) Final() bool {
	return s.IsFinal || (s.Intent != nil && s.Intent.IsFinal)
}
