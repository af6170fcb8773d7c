package field

import (
	"errors"
	"math/rand"
	"time"

	"go.uber.org/zap"
)

// ErrNoSurface is returned by Start when there is nothing to draw on.
var ErrNoSurface = errors.New("field: no drawing surface")

// Host is the environment the animator runs in: it reports viewport size and
// pointer motion, and calls frame callbacks once per display refresh.
type Host interface {
	Viewport() Size
	OnPointerMove(fn func(Vec)) (cancel func())
	OnResize(fn func(Size)) (cancel func())
	RequestFrame(fn func(Surface)) FrameID
	CancelFrame(id FrameID)
}

// Animator drives a Field on a Host. All methods must be called from the
// host's frame goroutine.
type Animator struct {
	host Host
	phys Physics
	rng  *rand.Rand
	log  *zap.Logger

	field   *Field
	pointer Vec
	size    Size
	links   int

	running     bool
	frame       FrameID
	stopPointer func()
	stopResize  func()
}

type Option func(*Animator)

func WithPhysics(p Physics) Option { return func(a *Animator) { a.phys = p } }

func WithRand(rng *rand.Rand) Option { return func(a *Animator) { a.rng = rng } }

func WithLogger(l *zap.Logger) Option { return func(a *Animator) { a.log = l } }

func NewAnimator(host Host, opts ...Option) *Animator {
	a := &Animator{
		host: host,
		phys: DefaultPhysics(),
		log:  zap.NewNop(),
	}
	for _, o := range opts {
		o(a)
	}
	if a.rng == nil {
		a.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return a
}

// Start sizes the surface, seeds a fresh field, subscribes to pointer and
// resize events and schedules the first frame. A running animator is
// stopped and started over.
func (a *Animator) Start(width, height float64) error {
	if a.host == nil {
		return ErrNoSurface
	}
	if a.running {
		a.Stop()
	}

	a.size = Size{width, height}
	a.pointer = Vec{}
	a.field = NewField(a.rng, a.size, a.phys)
	a.stopPointer = a.host.OnPointerMove(func(v Vec) { a.pointer = v })
	a.stopResize = a.host.OnResize(a.resize)
	a.running = true
	a.frame = a.host.RequestFrame(a.Tick)

	a.log.Debug("animator started",
		zap.Float64("width", width),
		zap.Float64("height", height),
		zap.Int("particles", a.field.Len()))
	return nil
}

// resize re-reads the surface size. Particles keep their coordinates and are
// brought back in bounds by the next wrap.
func (a *Animator) resize(s Size) {
	a.size = s
	a.log.Debug("surface resized", zap.Float64("width", s.Width), zap.Float64("height", s.Height))
}

// Tick runs one frame: step all particles, draw them, draw links between the
// updated positions, then schedule the next frame. A stopped animator does
// nothing. A nil surface still advances the simulation.
func (a *Animator) Tick(s Surface) {
	if !a.running {
		return
	}
	a.frame = 0

	a.field.Step(a.pointer, a.size)
	links := a.field.Links()
	a.links = len(links)
	if s != nil {
		Render(s, a.field, links)
	}

	a.frame = a.host.RequestFrame(a.Tick)
}

// Stop cancels the pending frame and both subscriptions before returning.
func (a *Animator) Stop() {
	if !a.running {
		return
	}
	a.running = false
	if a.frame != 0 {
		a.host.CancelFrame(a.frame)
		a.frame = 0
	}
	if a.stopPointer != nil {
		a.stopPointer()
		a.stopPointer = nil
	}
	if a.stopResize != nil {
		a.stopResize()
		a.stopResize = nil
	}
	a.log.Debug("animator stopped")
}

func (a *Animator) Running() bool { return a.running }

// Field is nil until the first Start.
func (a *Animator) Field() *Field { return a.field }

func (a *Animator) Pointer() Vec { return a.pointer }

func (a *Animator) Size() Size { return a.size }

// Links reports how many connection lines the last frame drew.
func (a *Animator) Links() int { return a.links }
