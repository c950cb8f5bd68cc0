package board

import (
	"fmt"
	"strings"
)

const files = "ABCDEFGH"

type staticErr string

func (e staticErr) Error() string { return string(e) }

// ErrInvalidSquare is returned for square tokens outside A1..H8.
var ErrInvalidSquare error = staticErr("invalid square")

// TransformCoordinate parses a spoken square such as "E4" (case-insensitive).
func TransformCoordinate(square string) (Square, error) {
	s := strings.ToUpper(strings.TrimSpace(square))
	if len(s) != 2 {
		return Square{}, fmt.Errorf("%w: %q", ErrInvalidSquare, square)
	}
	file := strings.IndexByte(files, s[0])
	if file < 0 {
		return Square{}, fmt.Errorf("%w: file %q", ErrInvalidSquare, s[0:1])
	}
	if s[1] < '1' || s[1] > '8' {
		return Square{}, fmt.Errorf("%w: rank %q", ErrInvalidSquare, s[1:2])
	}
	return Square{File: file, Rank: 8 - int(s[1]-'0')}, nil
}

// MustSquare is TransformCoordinate for compile-time constants.
func MustSquare(square string) Square {
	sq, err := TransformCoordinate(square)
	if err != nil {
		panic(err)
	}
	return sq
}
