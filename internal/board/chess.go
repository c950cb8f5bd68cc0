package board

import nchess "github.com/corentings/chess/v2"

var chessPieces = map[Piece]nchess.Piece{
	'K': nchess.WhiteKing,
	'Q': nchess.WhiteQueen,
	'R': nchess.WhiteRook,
	'B': nchess.WhiteBishop,
	'N': nchess.WhiteKnight,
	'P': nchess.WhitePawn,
	'k': nchess.BlackKing,
	'q': nchess.BlackQueen,
	'r': nchess.BlackRook,
	'b': nchess.BlackBishop,
	'n': nchess.BlackKnight,
	'p': nchess.BlackPawn,
}

// ChessSquare maps s onto the corentings/chess square numbering (A1 = 0).
func ChessSquare(s Square) nchess.Square {
	return nchess.NewSquare(nchess.File(s.File), nchess.Rank(7-s.Rank))
}

// Chess converts b into a corentings/chess board for drawing and rendering.
// Unknown letters are skipped.
func (b Board) Chess() *nchess.Board {
	m := make(map[nchess.Square]nchess.Piece, 32)
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			p, ok := chessPieces[b[r][f]]
			if !ok {
				continue
			}
			m[ChessSquare(Square{File: f, Rank: r})] = p
		}
	}
	return nchess.NewBoard(m)
}
