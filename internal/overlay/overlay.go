// Package overlay renders the highlight ring for a located UI element onto a
// copy of the screenshot, so any client can show the marker without
// reimplementing the geometry.
package overlay

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	"golang.org/x/image/draw"

	"github.com/screenguide/screenguide/internal/models"
)

// Ring thickness in pixels.
const ringThickness = 4

// Accent color of the highlight ring.
var ringColor = color.RGBA{R: 0xFF, G: 0x89, B: 0x26, A: 0xFF}

// MarkPoint decodes the screenshot, draws a ring centered on pt and returns
// the marked image as PNG. The input bytes are never modified.
func MarkPoint(screenshot []byte, pt models.Point) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(screenshot))
	if err != nil {
		return nil, fmt.Errorf("decode screenshot: %w", err)
	}

	bounds := src.Bounds()
	dst := image.NewRGBA(bounds)
	draw.Copy(dst, bounds.Min, src, bounds, draw.Src, nil)

	drawRing(dst, pt)

	var out bytes.Buffer
	if err := png.Encode(&out, dst); err != nil {
		return nil, fmt.Errorf("encode marked screenshot: %w", err)
	}
	return out.Bytes(), nil
}

// drawRing paints an annulus of ringThickness pixels whose outer edge sits at
// pt.Radius. Pixels outside the image are skipped.
func drawRing(dst *image.RGBA, pt models.Point) {
	outer := pt.Radius
	inner := pt.Radius - ringThickness
	if inner < 0 {
		inner = 0
	}
	outerSq := outer * outer
	innerSq := inner * inner

	bounds := dst.Bounds()
	for dy := -outer; dy <= outer; dy++ {
		for dx := -outer; dx <= outer; dx++ {
			distSq := dx*dx + dy*dy
			if distSq > outerSq || distSq < innerSq {
				continue
			}
			x, y := pt.X+dx, pt.Y+dy
			if image.Pt(x, y).In(bounds) {
				dst.SetRGBA(x, y, ringColor)
			}
		}
	}
}
