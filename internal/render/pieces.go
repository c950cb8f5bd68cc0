package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"
	"sync"

	nchess "github.com/corentings/chess/v2"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// Glyph bodies on a 45x45 canvas; FILL and STROKE are substituted per color.
var glyphs = map[nchess.PieceType]string{
	nchess.Pawn: `<circle cx="22.5" cy="15" r="6" fill="FILL" stroke="STROKE" stroke-width="1.5"/>
<path d="M 15 37 L 30 37 L 27 24 L 18 24 Z" fill="FILL" stroke="STROKE" stroke-width="1.5"/>`,
	nchess.Knight: `<path d="M 12 37 L 33 37 L 31 22 L 25 10 L 20 9 L 11 20 L 14 24 L 20 19 L 16 30 Z" fill="FILL" stroke="STROKE" stroke-width="1.5"/>`,
	nchess.Bishop: `<ellipse cx="22.5" cy="18" rx="7" ry="9" fill="FILL" stroke="STROKE" stroke-width="1.5"/>
<circle cx="22.5" cy="7" r="2.5" fill="FILL" stroke="STROKE" stroke-width="1.5"/>
<path d="M 12 37 L 33 37 L 29 28 L 16 28 Z" fill="FILL" stroke="STROKE" stroke-width="1.5"/>`,
	nchess.Rook: `<path d="M 11 37 L 34 37 L 34 33 L 30 30 L 30 16 L 33 13 L 33 8 L 29 8 L 29 11 L 25 11 L 25 8 L 20 8 L 20 11 L 16 11 L 16 8 L 12 8 L 12 13 L 15 16 L 15 30 L 11 33 Z" fill="FILL" stroke="STROKE" stroke-width="1.5"/>`,
	nchess.Queen: `<path d="M 9 14 L 15 30 L 30 30 L 36 14 L 29 25 L 26 10 L 22.5 25 L 19 10 L 16 25 Z" fill="FILL" stroke="STROKE" stroke-width="1.5"/>
<path d="M 13 37 L 32 37 L 30 30 L 15 30 Z" fill="FILL" stroke="STROKE" stroke-width="1.5"/>`,
	nchess.King: `<path d="M 21 4 L 24 4 L 24 8 L 28 8 L 28 11 L 24 11 L 24 15 L 21 15 L 21 11 L 17 11 L 17 8 L 21 8 Z" fill="FILL" stroke="STROKE" stroke-width="1"/>
<path d="M 12 37 L 33 37 L 33 30 L 37 21 L 29 17 L 22.5 22 L 16 17 L 8 21 L 12 30 Z" fill="FILL" stroke="STROKE" stroke-width="1.5"/>`,
}

const glyphDocument = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 45 45" width="45" height="45">%s</svg>`

type pieceCacheKey struct {
	piece nchess.Piece
	size  int
}

var (
	pieceCache   = map[pieceCacheKey]image.Image{}
	pieceCacheMu sync.RWMutex
)

func glyphSVG(piece nchess.Piece) (string, error) {
	body, ok := glyphs[piece.Type()]
	if !ok {
		return "", fmt.Errorf("no glyph for piece %v", piece)
	}
	fill, stroke := "#f8f8f0", "#1a1a1a"
	if piece.Color() == nchess.Black {
		fill, stroke = "#1f1f24", "#d8d8d8"
	}
	body = strings.NewReplacer("FILL", fill, "STROKE", stroke).Replace(body)
	return fmt.Sprintf(glyphDocument, body), nil
}

func renderPieceImage(piece nchess.Piece, size int) (image.Image, error) {
	key := pieceCacheKey{piece: piece, size: size}

	pieceCacheMu.RLock()
	if img, ok := pieceCache[key]; ok {
		pieceCacheMu.RUnlock()
		return img, nil
	}
	pieceCacheMu.RUnlock()

	doc, err := glyphSVG(piece)
	if err != nil {
		return nil, err
	}
	icon, err := oksvg.ReadIconStream(strings.NewReader(doc))
	if err != nil {
		return nil, fmt.Errorf("parse piece svg: %w", err)
	}
	icon.SetTarget(0, 0, float64(size), float64(size))

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Transparent), image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	icon.Draw(raster, 1.0)

	pieceCacheMu.Lock()
	pieceCache[key] = img
	pieceCacheMu.Unlock()

	return img, nil
}
