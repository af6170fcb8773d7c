package game

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"

	"github.com/iburimskiy/constellation/internal/config"
	"github.com/iburimskiy/constellation/internal/field"
)

// Game hosts the animator in an ebiten window. The window is the viewport:
// Layout reports its size and Draw lends the screen as the frame surface.
type Game struct {
	log *zap.Logger

	width, height int
	cursor        field.Vec
	cursorKnown   bool

	pointer field.Listeners[func(field.Vec)]
	resize  field.Listeners[func(field.Size)]
	frames  field.FrameSlot

	tap    *frameTap
	debug  bool
	status func() string
}

func New(width, height int, log *zap.Logger) *Game {
	return &Game{
		log:    log,
		width:  width,
		height: height,
		tap:    newFrameTap(config.FrameRingSize),
	}
}

// SetDebug toggles the statistics overlay.
func (g *Game) SetDebug(on bool) { g.debug = on }

// SetStatus sets an extra line for the overlay.
func (g *Game) SetStatus(fn func() string) { g.status = fn }

func (g *Game) Viewport() field.Size {
	return field.Size{Width: float64(g.width), Height: float64(g.height)}
}

func (g *Game) OnPointerMove(fn func(field.Vec)) func() { return g.pointer.Add(fn) }

func (g *Game) OnResize(fn func(field.Size)) func() { return g.resize.Add(fn) }

func (g *Game) RequestFrame(fn func(field.Surface)) field.FrameID { return g.frames.Request(fn) }

func (g *Game) CancelFrame(id field.FrameID) { g.frames.Cancel(id) }

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.debug = !g.debug
	}

	x, y := ebiten.CursorPosition()
	g.moveCursor(field.Vec{X: float64(x), Y: float64(y)})
	return nil
}

// moveCursor notifies pointer listeners when the cursor position changed.
func (g *Game) moveCursor(v field.Vec) {
	if g.cursorKnown && v == g.cursor {
		return
	}
	g.cursor = v
	g.cursorKnown = true
	g.pointer.Each(func(fn func(field.Vec)) { fn(v) })
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.tap.mark(time.Now())

	if fn := g.frames.Take(); fn != nil {
		fn(screenSurface{dst: screen})
	} else {
		screen.Fill(background)
	}

	if g.debug {
		g.drawOverlay(screen)
	}
}

func (g *Game) drawOverlay(screen *ebiten.Image) {
	status := fmt.Sprintf("%dx%d | %s", g.width, g.height, formatFrameTime(g.tap.average()))
	if g.status != nil {
		status += " | " + g.status()
	}
	vector.DrawFilledRect(screen, 8, 8, float32(len(status)*6+8), 20, color.RGBA{R: 20, G: 25, B: 35, A: 200}, false)
	ebitenutil.DebugPrintAt(screen, status, 12, 10)
}

// Layout follows the window size so resizing the window resizes the surface.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth <= 0 || outsideHeight <= 0 {
		return max(g.width, 1), max(g.height, 1)
	}
	g.setViewport(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func (g *Game) setViewport(w, h int) {
	if w == g.width && h == g.height {
		return
	}
	g.width, g.height = w, h
	g.log.Debug("window resized", zap.Int("width", w), zap.Int("height", h))
	size := g.Viewport()
	g.resize.Each(func(fn func(field.Size)) { fn(size) })
}

// Run opens the window and blocks until it is closed.
func Run(g *Game, title string) error {
	ebiten.SetWindowSize(g.width, g.height)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// screenSurface draws the field onto the ebiten screen.
type screenSurface struct {
	dst *ebiten.Image
}

func (s screenSurface) Clear() { s.dst.Fill(background) }

func (s screenSurface) FillCircle(center field.Vec, radius float64, c color.Color) {
	vector.DrawFilledCircle(s.dst, float32(center.X), float32(center.Y), float32(radius), c, true)
}

func (s screenSurface) StrokeLine(from, to field.Vec, width float64, c color.Color) {
	vector.StrokeLine(s.dst, float32(from.X), float32(from.Y), float32(to.X), float32(to.Y), float32(width), c, true)
}
