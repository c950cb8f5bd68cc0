package entity

import (
	"testing"

	"github.com/park285/voicechess/internal/domain"
)

func ent(t domain.EntityType, v string, pos int) domain.Entity {
	return domain.Entity{Type: t, Value: v, StartPosition: pos}
}

func TestSelectNewEntities_NewContextReturnsAll(t *testing.T) {
	seg := domain.Segment{ContextID: "ctx-2", Entities: []domain.Entity{
		ent(domain.EntityPiece, "KNIGHT", 1),
		ent(domain.EntitySquare, "F3", 3),
	}}
	got := SelectNewEntities(seg, "ctx-1", 99)
	if len(got) != 2 {
		t.Fatalf("expected all entities for a new context, got %d", len(got))
	}
}

func TestSelectNewEntities_SameContextFiltersConsumed(t *testing.T) {
	seg := domain.Segment{ContextID: "ctx-1", Entities: []domain.Entity{
		ent(domain.EntityPiece, "KNIGHT", 1),
		ent(domain.EntitySquare, "F3", 3),
		ent(domain.EntitySquare, "F4", 5),
	}}
	got := SelectNewEntities(seg, "ctx-1", 3)
	if len(got) != 1 || got[0].Value != "F4" {
		t.Fatalf("expected only F4, got %+v", got)
	}
	if got := SelectNewEntities(seg, "ctx-1", 5); len(got) != 0 {
		t.Fatalf("expected nothing new, got %+v", got)
	}
}

func TestFormatEntities_LastWins(t *testing.T) {
	f := FormatEntities([]domain.Entity{
		ent(domain.EntityPiece, "BISHOP", 0),
		ent(domain.EntitySquare, "C4", 2),
		ent(domain.EntityPiece, "KNIGHT", 4),
		ent("COLOR", "WHITE", 6),
	})
	if f.Piece != "KNIGHT" || f.Square != "C4" {
		t.Fatalf("unexpected fields: %+v", f)
	}
}

func TestFormatEntities_LowercaseTypes(t *testing.T) {
	f := FormatEntities([]domain.Entity{ent("piece", "rook", 0), ent("square", "a4", 1)})
	if !f.HasPiece() || !f.HasSquare() {
		t.Fatalf("expected both fields, got %+v", f)
	}
}

// Accumulating across segments of one context matches formatting their union at once.
func TestAccumulationMatchesUnion(t *testing.T) {
	segs := []domain.Segment{
		{ContextID: "c", Entities: []domain.Entity{ent(domain.EntityPiece, "PAWN", 1)}},
		{ContextID: "c", Entities: []domain.Entity{ent(domain.EntityPiece, "PAWN", 1), ent(domain.EntitySquare, "D3", 4)}},
		{ContextID: "c", Entities: []domain.Entity{ent(domain.EntityPiece, "PAWN", 1), ent(domain.EntitySquare, "D3", 4), ent(domain.EntitySquare, "D4", 7)}},
	}

	lastCtx, lastPos := "", 0
	var acc Fields
	for _, s := range segs {
		fresh := SelectNewEntities(s, lastCtx, lastPos)
		f := FormatEntities(fresh)
		if f.HasPiece() {
			acc.Piece = f.Piece
		}
		if f.HasSquare() {
			acc.Square = f.Square
		}
		lastCtx, lastPos = s.ContextID, LastPosition(fresh, lastPos)
	}

	union := FormatEntities(segs[len(segs)-1].Entities)
	if acc != union {
		t.Fatalf("accumulated %+v, union %+v", acc, union)
	}
}
