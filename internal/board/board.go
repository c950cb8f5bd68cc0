package board

import (
	"fmt"
	"strings"
)

// Color identifies the side to move.
type Color string

const (
	White Color = "white"
	Black Color = "black"
)

// Toggle returns the opposite side.
func (c Color) Toggle() Color {
	if c == Black {
		return White
	}
	return Black
}

// Piece is a single piece letter: case encodes color, letter encodes type.
type Piece byte

// Empty marks an unoccupied square.
const Empty Piece = '.'

const (
	Pawn   Piece = 'P'
	Knight Piece = 'N'
	Bishop Piece = 'B'
	Rook   Piece = 'R'
	Queen  Piece = 'Q'
	King   Piece = 'K'
)

func (p Piece) IsEmpty() bool { return p == Empty || p == 0 }

// Type returns the uppercase letter of the piece regardless of color.
func (p Piece) Type() Piece {
	if p >= 'a' && p <= 'z' {
		return p - 'a' + 'A'
	}
	return p
}

func (p Piece) Color() Color {
	if p >= 'a' && p <= 'z' {
		return Black
	}
	return White
}

// For returns the piece type p colored for side c.
func (p Piece) For(c Color) Piece {
	t := p.Type()
	if c == Black {
		return t - 'A' + 'a'
	}
	return t
}

func (p Piece) String() string { return string(rune(p)) }

// Square is a board coordinate. Rank 0 is the row nearest black's back rank.
type Square struct {
	File int `json:"file"`
	Rank int `json:"rank"`
}

func (s Square) Valid() bool {
	return s.File >= 0 && s.File < 8 && s.Rank >= 0 && s.Rank < 8
}

// Name renders the square the way it is spoken, e.g. "E4".
func (s Square) Name() string {
	if !s.Valid() {
		return "??"
	}
	return fmt.Sprintf("%c%d", files[s.File], 8-s.Rank)
}

func (s Square) String() string { return s.Name() }

// Move is a source/destination pair.
type Move struct {
	From Square `json:"from"`
	To   Square `json:"to"`
}

// Board is an 8x8 rank-major grid. It is an array so assignment copies it.
type Board [8][8]Piece

var initial = Board{
	{'r', 'n', 'b', 'q', 'k', 'b', 'n', 'r'},
	{'p', 'p', 'p', 'p', 'p', 'p', 'p', 'p'},
	{'.', '.', '.', '.', '.', '.', '.', '.'},
	{'.', '.', '.', '.', '.', '.', '.', '.'},
	{'.', '.', '.', '.', '.', '.', '.', '.'},
	{'.', '.', '.', '.', '.', '.', '.', '.'},
	{'P', 'P', 'P', 'P', 'P', 'P', 'P', 'P'},
	{'R', 'N', 'B', 'Q', 'K', 'B', 'N', 'R'},
}

// Initial returns the standard starting position.
func Initial() Board { return initial }

// At returns the piece on s, or Empty when s is off the board.
func (b Board) At(s Square) Piece {
	if !s.Valid() {
		return Empty
	}
	return b[s.Rank][s.File]
}

// MovePiece returns a copy of b with the piece on from relocated to to.
// Whatever stood on to is overwritten; legality is the caller's concern.
func MovePiece(b Board, from, to Square) Board {
	next := b
	if !from.Valid() || !to.Valid() {
		return next
	}
	piece := next[from.Rank][from.File]
	next[from.Rank][from.File] = Empty
	next[to.Rank][to.File] = piece
	return next
}

// Rows returns each rank as an 8-character string, rank 0 first.
func (b Board) Rows() [8]string {
	var out [8]string
	for r := 0; r < 8; r++ {
		var sb strings.Builder
		for f := 0; f < 8; f++ {
			p := b[r][f]
			if p.IsEmpty() {
				p = Empty
			}
			sb.WriteByte(byte(p))
		}
		out[r] = sb.String()
	}
	return out
}

// Placement returns the FEN piece-placement field for b.
func (b Board) Placement() string {
	var sb strings.Builder
	for r := 0; r < 8; r++ {
		if r > 0 {
			sb.WriteByte('/')
		}
		gap := 0
		for f := 0; f < 8; f++ {
			p := b[r][f]
			if p.IsEmpty() {
				gap++
				continue
			}
			if gap > 0 {
				sb.WriteByte(byte('0' + gap))
				gap = 0
			}
			sb.WriteByte(byte(p))
		}
		if gap > 0 {
			sb.WriteByte(byte('0' + gap))
		}
	}
	return sb.String()
}

func (b Board) String() string {
	rows := b.Rows()
	return strings.Join(rows[:], "\n")
}
