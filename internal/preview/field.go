package preview

import (
	"github.com/go-gl/mathgl/mgl64"

	"gridviewer/internal/config"
	"gridviewer/pkg/lattice"
)

// FieldParams describes one frame of the screen-space grid field.
type FieldParams struct {
	Width  int
	Height int

	// PixelsPerCell is the screen-space lattice spacing. This is the
	// named scale parameter of the screen-space variant.
	PixelsPerCell float64

	// Pan is the view offset in pixels
	Pan mgl64.Vec2

	// Cursor is the cursor position in lattice units; CursorValid is
	// false while the cursor is outside the view
	Cursor      mgl64.Vec2
	CursorValid bool
}

// ScreenToUV maps a screen pixel to lattice coordinates.
func (p FieldParams) ScreenToUV(x, y float64) mgl64.Vec2 {
	return mgl64.Vec2{
		(x - float64(p.Width)/2 + p.Pan[0]) / p.PixelsPerCell,
		(y - float64(p.Height)/2 + p.Pan[1]) / p.PixelsPerCell,
	}
}

// RenderField rasterizes the grid field into an RGBA buffer of
// 4*Width*Height bytes, premultiplied alpha. The per-pixel math is the
// CPU mirror of the fragment stage: cell lookup, edge-distance coverage,
// cursor-cell highlight.
func RenderField(buf []byte, p FieldParams, cfg *config.Config) {
	cellAt := lattice.HexCell
	if cfg.Features.SquareGrid {
		cellAt = lattice.SquareCell
	}

	cursor := cellAt(p.Cursor)
	highlight := cfg.Features.CursorHighlight && p.CursorValid
	wedgeHighlight := cfg.Features.WedgeHighlight && !cfg.Features.SquareGrid

	rend := cfg.Rendering
	for y := 0; y < p.Height; y++ {
		for x := 0; x < p.Width; x++ {
			uv := p.ScreenToUV(float64(x)+0.5, float64(y)+0.5)
			cell := cellAt(uv)

			lineColor := rend.LineColor
			width := rend.LineWidth
			if highlight && lattice.SameCell(cell.Center, cursor.Center, rend.HighlightRadius) {
				lineColor = rend.HighlightColor
				width = rend.HighlightWidth
				if wedgeHighlight && cell.Wedge == cursor.Wedge {
					lineColor = rend.WedgeColor
				}
			}

			coverage := lattice.Coverage(cell.EdgeDist, width)
			writePixel(buf[4*(y*p.Width+x):], mixColor(lineColor, rend.BaseColor, coverage))
		}
	}
}

// mixColor linearly interpolates from a to b by t, like the shader mix.
func mixColor(a, b [4]float64, t float64) [4]float64 {
	var out [4]float64
	for i := range out {
		out[i] = a[i] + (b[i]-a[i])*t
	}
	return out
}

func writePixel(dst []byte, c [4]float64) {
	// premultiplied alpha
	dst[0] = byte(clampUnit(c[0]*c[3]) * 255)
	dst[1] = byte(clampUnit(c[1]*c[3]) * 255)
	dst[2] = byte(clampUnit(c[2]*c[3]) * 255)
	dst[3] = byte(clampUnit(c[3]) * 255)
}

func clampUnit(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
