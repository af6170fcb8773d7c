package field

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewParticleRanges(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	phys := DefaultPhysics()
	size := Size{800, 600}

	for i := 0; i < 1000; i++ {
		p := NewParticle(rng, size, phys)
		assert.GreaterOrEqual(t, p.Pos.X, 0.0)
		assert.Less(t, p.Pos.X, size.Width)
		assert.GreaterOrEqual(t, p.Pos.Y, 0.0)
		assert.Less(t, p.Pos.Y, size.Height)
		assert.LessOrEqual(t, math.Abs(p.Vel.X), 0.2)
		assert.LessOrEqual(t, math.Abs(p.Vel.Y), 0.2)
		assert.GreaterOrEqual(t, p.Radius, 5.0)
		assert.Less(t, p.Radius, 6.5)
		assert.GreaterOrEqual(t, p.Opacity, 0.1)
		assert.Less(t, p.Opacity, 0.3)
	}
}

func TestRepulsion(t *testing.T) {
	phys := DefaultPhysics()
	pointer := Vec{400, 300}

	tests := []struct {
		name      string
		pos       Vec
		wantForce float64
		wantOff   Vec
	}{
		{"on the pointer", Vec{400, 300}, 1, Vec{}},
		{"half way", Vec{325, 300}, 0.5, Vec{-0.75, 0}},
		{"below pointer", Vec{400, 330}, 0.8, Vec{0, 0.48}},
		{"at threshold", Vec{550, 300}, 0, Vec{}},
		{"far away", Vec{0, 0}, 0, Vec{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			off, force := Repulsion(tt.pos, pointer, phys)
			assert.InDelta(t, tt.wantForce, force, 1e-9)
			assert.InDelta(t, tt.wantOff.X, off.X, 1e-9)
			assert.InDelta(t, tt.wantOff.Y, off.Y, 1e-9)
		})
	}
}

func TestRepulsionLinearFalloff(t *testing.T) {
	phys := DefaultPhysics()
	prev := 2.0
	for d := 0.0; d < phys.Threshold; d += 10 {
		_, force := Repulsion(Vec{d, 0}, Vec{}, phys)
		assert.InDelta(t, (phys.Threshold-d)/phys.Threshold, force, 1e-9)
		assert.Less(t, force, prev)
		prev = force
	}
}

func TestWrap(t *testing.T) {
	size := Size{100, 50}

	tests := []struct {
		name string
		in   Vec
		want Vec
	}{
		{"inside", Vec{10, 20}, Vec{10, 20}},
		{"right edge", Vec{100, 20}, Vec{0, 20}},
		{"past right", Vec{180, 20}, Vec{0, 20}},
		{"bottom edge", Vec{10, 50}, Vec{10, 0}},
		{"left", Vec{-0.1, 20}, Vec{math.Nextafter(100, 0), 20}},
		{"top", Vec{10, -3}, Vec{10, math.Nextafter(50, 0)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Wrap(tt.in, size))
		})
	}
}

func TestWrapDegenerateSize(t *testing.T) {
	assert.Equal(t, Vec{}, Wrap(Vec{-1, 3}, Size{}))
}

func TestStepKeepsImmutableFields(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	phys := DefaultPhysics()
	size := Size{320, 200}

	p := NewParticle(rng, size, phys)
	orig := p
	for i := 0; i < 5000; i++ {
		pointer := Vec{rng.Float64() * size.Width, rng.Float64() * size.Height}
		p = p.Step(pointer, size, phys)

		require.Equal(t, orig.Radius, p.Radius)
		require.Equal(t, orig.Opacity, p.Opacity)
		require.Equal(t, orig.Vel, p.Vel)
		require.True(t, p.Pos.X >= 0 && p.Pos.X < size.Width, "x out of bounds: %v", p.Pos.X)
		require.True(t, p.Pos.Y >= 0 && p.Pos.Y < size.Height, "y out of bounds: %v", p.Pos.Y)
	}
}

func TestStepIsValueSemantics(t *testing.T) {
	phys := DefaultPhysics()
	p := Particle{Pos: Vec{10, 10}, Vel: Vec{0.1, -0.1}, Radius: 5, Opacity: 0.2}

	next := p.Step(Vec{500, 500}, Size{100, 100}, phys)

	assert.Equal(t, Vec{10, 10}, p.Pos)
	assert.InDelta(t, 10.1, next.Pos.X, 1e-9)
	assert.InDelta(t, 9.9, next.Pos.Y, 1e-9)
}

func TestParticleColor(t *testing.T) {
	p := Particle{Opacity: 0.2}
	r, g, b, a := p.Color(DefaultPhysics()).RGBA()
	// RGBA is alpha-premultiplied
	assert.Equal(t, uint32(0x3333), a)
	assert.Equal(t, r, g)
	assert.Equal(t, g, b)
}
