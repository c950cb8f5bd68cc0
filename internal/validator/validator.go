// Package validator infers which piece on the board a spoken destination refers to.
//
// The geometry is deliberately shape-only: no path blocking, no pawn direction,
// no capture rules. Queen and king moves are never matched.
package validator

import (
	"fmt"

	"github.com/park285/voicechess/internal/board"
)

type staticErr string

func (e staticErr) Error() string { return string(e) }

// ErrPieceNotFound means no square holds the piece with a matching geometry.
var ErrPieceNotFound error = staticErr("piece not found")

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// IsGeometricMove reports whether piece could travel from src to dst.
func IsGeometricMove(piece board.Piece, src, dst board.Square) bool {
	dRank := abs(src.Rank - dst.Rank)
	dFile := abs(src.File - dst.File)

	switch piece.Type() {
	case board.Pawn:
		return src.File == dst.File && dRank <= 2
	case board.Knight:
		return dRank+dFile == 3 && abs(dRank-dFile) == 1
	case board.Bishop:
		return dRank == dFile
	case board.Rook:
		return src.Rank == dst.Rank || src.File == dst.File
	default:
		return false
	}
}

// SelectSource returns the first square, scanning rank 0..7 then file 0..7,
// holding exactly piece and geometrically able to reach dst.
func SelectSource(b board.Board, piece board.Piece, dst board.Square) (board.Square, error) {
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			if b[r][f] != piece {
				continue
			}
			src := board.Square{File: f, Rank: r}
			if IsGeometricMove(piece, src, dst) {
				return src, nil
			}
		}
	}
	return board.Square{}, fmt.Errorf("%w: %s to %s", ErrPieceNotFound, piece, dst.Name())
}
