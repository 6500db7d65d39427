package preview

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"gridviewer/internal/config"
)

const (
	DefaultPixelsPerCell = 64.0
	MinPixelsPerCell     = 8.0
	MaxPixelsPerCell     = 512.0

	panSpeed  = 6.0
	zoomStep  = 1.25
	TitleText = "Grid Preview (software)"
)

// Game renders the screen-space grid variant on the CPU, as a development
// stand-in for the GPU renderer. It adapts the field rasterizer to the
// ebiten game loop.
type Game struct {
	width, height int
	img           *ebiten.Image
	buf           []byte

	pixelsPerCell float64
	pan           mgl64.Vec2
}

// New constructs a Game rendering at the given internal resolution.
func New(width, height int) *Game {
	return &Game{
		width:         width,
		height:        height,
		img:           ebiten.NewImage(width, height),
		buf:           make([]byte, 4*width*height),
		pixelsPerCell: DefaultPixelsPerCell,
	}
}

// Update handles per-frame input.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		config.ToggleSquareGrid()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		config.ToggleCursorHighlight()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) {
		g.setZoom(g.pixelsPerCell * zoomStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) {
		g.setZoom(g.pixelsPerCell / zoomStep)
	}

	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		g.pan[0] -= panSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
		g.pan[0] += panSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp) {
		g.pan[1] -= panSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown) {
		g.pan[1] += panSpeed
	}

	return nil
}

func (g *Game) setZoom(ppc float64) {
	if ppc < MinPixelsPerCell {
		ppc = MinPixelsPerCell
	}
	if ppc > MaxPixelsPerCell {
		ppc = MaxPixelsPerCell
	}
	g.pixelsPerCell = ppc
}

// Draw rasterizes the grid field and blits it to the screen.
func (g *Game) Draw(screen *ebiten.Image) {
	params := FieldParams{
		Width:         g.width,
		Height:        g.height,
		PixelsPerCell: g.pixelsPerCell,
		Pan:           g.pan,
	}

	cx, cy := ebiten.CursorPosition()
	if cx >= 0 && cy >= 0 && cx < g.width && cy < g.height {
		params.Cursor = params.ScreenToUV(float64(cx), float64(cy))
		params.CursorValid = true
	}

	RenderField(g.buf, params, config.Get())
	g.img.WritePixels(g.buf)
	screen.DrawImage(g.img, nil)
}

// Layout reports the internal rendering resolution; ebiten scales it to
// the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}
