package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	imagedraw "image/draw"
	"image/png"
	"strings"

	nchess "github.com/corentings/chess/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

type MoveHighlight struct {
	From nchess.Square
	To   nchess.Square
}

type RenderOptions struct {
	Highlight *MoveHighlight
	HUDHeader string
	HUDTurn   string
}

type BoardRenderer interface {
	RenderPNG(ctx context.Context, board *nchess.Board, opts RenderOptions) ([]byte, error)
}

type pngRenderer struct {
	squareSize int
}

// NewPNGRenderer draws boards with squareSize pixels per square (default 64).
func NewPNGRenderer(squareSize int) BoardRenderer {
	if squareSize <= 0 {
		squareSize = 64
	}
	return &pngRenderer{squareSize: squareSize}
}

const (
	sideMargin   = 24
	topMargin    = 48
	bottomMargin = 24
)

var (
	lightSquare     = color.RGBA{233, 207, 163, 255}
	darkSquare      = color.RGBA{187, 136, 96, 255}
	highlightFill   = color.NRGBA{R: 255, G: 228, B: 120, A: 140}
	backgroundColor = color.RGBA{28, 31, 46, 255}
	hudTextColor    = color.NRGBA{R: 236, G: 239, B: 255, A: 255}
	coordinateColor = color.NRGBA{R: 8, G: 214, B: 120, A: 255}
)

var (
	ranksTopDown   = []nchess.Rank{nchess.Rank8, nchess.Rank7, nchess.Rank6, nchess.Rank5, nchess.Rank4, nchess.Rank3, nchess.Rank2, nchess.Rank1}
	filesLeftRight = []nchess.File{nchess.FileA, nchess.FileB, nchess.FileC, nchess.FileD, nchess.FileE, nchess.FileF, nchess.FileG, nchess.FileH}
)

func (r *pngRenderer) RenderPNG(ctx context.Context, board *nchess.Board, opts RenderOptions) ([]byte, error) {
	if board == nil {
		return nil, fmt.Errorf("board is nil")
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	size := r.squareSize
	boardSize := size * 8
	origin := image.Point{X: sideMargin, Y: topMargin}
	img := image.NewRGBA(image.Rect(0, 0, boardSize+sideMargin*2, boardSize+topMargin+bottomMargin))
	imagedraw.Draw(img, img.Bounds(), image.NewUniform(backgroundColor), image.Point{}, imagedraw.Src)

	drawSquares(img, size, origin)
	if opts.Highlight != nil {
		drawSquareOverlay(img, opts.Highlight.From, size, origin, highlightFill)
		drawSquareOverlay(img, opts.Highlight.To, size, origin, highlightFill)
	}
	if err := drawPieces(img, board, size, origin); err != nil {
		return nil, err
	}
	drawCoordinates(img, size, origin)
	drawHUD(img, opts, origin, boardSize)

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func squareRect(sq nchess.Square, size int, origin image.Point) image.Rectangle {
	col := int(sq.File())
	row := 7 - int(sq.Rank())
	x := origin.X + col*size
	y := origin.Y + row*size
	return image.Rect(x, y, x+size, y+size)
}

func drawSquares(dst imagedraw.Image, size int, origin image.Point) {
	for row := range ranksTopDown {
		for col := range filesLeftRight {
			clr := lightSquare
			if (row+col)%2 == 1 {
				clr = darkSquare
			}
			x := origin.X + col*size
			y := origin.Y + row*size
			imagedraw.Draw(dst, image.Rect(x, y, x+size, y+size), image.NewUniform(clr), image.Point{}, imagedraw.Src)
		}
	}
}

func drawPieces(dst imagedraw.Image, board *nchess.Board, size int, origin image.Point) error {
	for sq, piece := range board.SquareMap() {
		if piece == nchess.NoPiece {
			continue
		}
		img, err := renderPieceImage(piece, size)
		if err != nil {
			return err
		}
		imagedraw.Draw(dst, squareRect(sq, size, origin), img, image.Point{}, imagedraw.Over)
	}
	return nil
}

func drawSquareOverlay(img *image.RGBA, sq nchess.Square, size int, origin image.Point, clr color.Color) {
	imagedraw.Draw(img, squareRect(sq, size, origin), image.NewUniform(clr), image.Point{}, imagedraw.Over)
}

func drawCoordinates(img *image.RGBA, size int, origin image.Point) {
	d := &font.Drawer{Dst: img, Src: image.NewUniform(coordinateColor), Face: basicfont.Face7x13}
	for col := range filesLeftRight {
		label := string(rune('a' + col))
		w := d.MeasureString(label).Round()
		d.Dot = fixed.P(origin.X+col*size+(size-w)/2, origin.Y+size*8+16)
		d.DrawString(label)
	}
	for row := range ranksTopDown {
		label := string(rune('8' - row))
		d.Dot = fixed.P(origin.X-14, origin.Y+row*size+size/2+5)
		d.DrawString(label)
	}
}

func drawHUD(img *image.RGBA, opts RenderOptions, origin image.Point, boardSize int) {
	d := &font.Drawer{Dst: img, Src: image.NewUniform(hudTextColor), Face: basicfont.Face7x13}
	header := strings.TrimSpace(opts.HUDHeader)
	if header == "" {
		header = "Voice chess"
	}
	d.Dot = fixed.P(origin.X, origin.Y-18)
	d.DrawString(header)

	if turn := strings.TrimSpace(opts.HUDTurn); turn != "" {
		w := d.MeasureString(turn).Round()
		d.Dot = fixed.P(origin.X+boardSize-w, origin.Y-18)
		d.DrawString(turn)
	}
}

// Text draws the board as ASCII.
func Text(board *nchess.Board) string {
	if board == nil {
		return ""
	}
	return board.Draw()
}
