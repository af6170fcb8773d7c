package terminal

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/iburimskiy/constellation/internal/config"
	"github.com/iburimskiy/constellation/internal/field"
)

const frameInterval = 16 * time.Millisecond // ~60 FPS

// Host runs the animator in a terminal. Event handling and frames share one
// goroutine (Run), so listeners and frame callbacks never race.
type Host struct {
	screen  tcell.Screen
	log     *zap.Logger
	surface *Surface

	pointer field.Listeners[func(field.Vec)]
	resize  field.Listeners[func(field.Size)]
	frames  field.FrameSlot
}

// New wraps an initialized screen and turns on mouse motion reporting.
func New(screen tcell.Screen, gain float64, log *zap.Logger) *Host {
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()
	cols, rows := screen.Size()
	return &Host{
		screen:  screen,
		log:     log,
		surface: NewSurface(cols, rows, gain),
	}
}

func (h *Host) Viewport() field.Size {
	cols, rows := h.surface.Size()
	return field.Size{Width: float64(cols * config.CellWidth), Height: float64(rows * config.CellHeight)}
}

func (h *Host) OnPointerMove(fn func(field.Vec)) func() { return h.pointer.Add(fn) }

func (h *Host) OnResize(fn func(field.Size)) func() { return h.resize.Add(fn) }

func (h *Host) RequestFrame(fn func(field.Surface)) field.FrameID { return h.frames.Request(fn) }

func (h *Host) CancelFrame(id field.FrameID) { h.frames.Cancel(id) }

// handle applies one terminal event and reports whether the user asked to quit.
// Mouse buttons are ignored: the background never takes clicks.
func (h *Host) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			return true
		}

	case *tcell.EventMouse:
		col, row := ev.Position()
		v := field.Vec{
			X: (float64(col) + 0.5) * config.CellWidth,
			Y: (float64(row) + 0.5) * config.CellHeight,
		}
		h.pointer.Each(func(fn func(field.Vec)) { fn(v) })

	case *tcell.EventResize:
		cols, rows := ev.Size()
		h.surface.Resize(cols, rows)
		h.screen.Sync()
		size := h.Viewport()
		h.log.Debug("terminal resized", zap.Int("cols", cols), zap.Int("rows", rows))
		h.resize.Each(func(fn func(field.Size)) { fn(size) })
	}
	return false
}

// frame runs the pending frame callback, if any, and shows the result.
func (h *Host) frame() {
	fn := h.frames.Take()
	if fn == nil {
		return
	}
	fn(h.surface)
	h.surface.Flush(h.screen)
	h.screen.Show()
}

// Run pumps events and frames until ctx is done or the user quits.
func (h *Host) Run(ctx context.Context) error {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	done := make(chan struct{})
	defer close(done)

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-events:
			if h.handle(ev) {
				return nil
			}

		case <-ticker.C:
			h.frame()
		}
	}
}
