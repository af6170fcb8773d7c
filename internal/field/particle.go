package field

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/iburimskiy/constellation/internal/config"
)

// Vec is a 2D coordinate or displacement in surface units.
type Vec struct {
	X, Y float64
}

func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y} }
func (v Vec) Sub(o Vec) Vec { return Vec{v.X - o.X, v.Y - o.Y} }
func (v Vec) Scale(k float64) Vec { return Vec{v.X * k, v.Y * k} }
func (v Vec) Len() float64 { return math.Hypot(v.X, v.Y) }
func (v Vec) Dist(o Vec) float64 { return v.Sub(o).Len() }

// Size is the width and height of a drawing surface.
type Size struct {
	Width, Height float64
}

// Physics holds the tunables of the constellation effect.
type Physics struct {
	Count         int
	Threshold     float64
	Repulsion     float64
	MaxSpeed      float64
	MinRadius     float64
	RadiusSpread  float64
	MinOpacity    float64
	OpacitySpread float64
	LinkAlpha     float64
	LinkWidth     float64
	Tone          uint8
}

// DefaultPhysics returns the look of the portfolio background.
func DefaultPhysics() Physics {
	return Physics{
		Count:         config.ParticleCount,
		Threshold:     config.LinkThreshold,
		Repulsion:     config.RepulsionStrength,
		MaxSpeed:      config.MaxSpeed,
		MinRadius:     config.MinRadius,
		RadiusSpread:  config.RadiusSpread,
		MinOpacity:    config.MinOpacity,
		OpacitySpread: config.OpacitySpread,
		LinkAlpha:     config.MaxLinkAlpha,
		LinkWidth:     config.LinkWidth,
		Tone:          config.ParticleTone,
	}
}

// Particle is a plain record; Step returns an updated copy.
// Radius and Opacity never change after NewParticle.
type Particle struct {
	Pos     Vec
	Vel     Vec
	Radius  float64
	Opacity float64
}

// NewParticle places a particle uniformly inside size with a random drift.
func NewParticle(rng *rand.Rand, size Size, phys Physics) Particle {
	return Particle{
		Pos: Vec{rng.Float64() * size.Width, rng.Float64() * size.Height},
		Vel: Vec{
			(rng.Float64() - 0.5) * 2 * phys.MaxSpeed,
			(rng.Float64() - 0.5) * 2 * phys.MaxSpeed,
		},
		Radius:  phys.MinRadius + rng.Float64()*phys.RadiusSpread,
		Opacity: phys.MinOpacity + rng.Float64()*phys.OpacitySpread,
	}
}

// Repulsion returns the offset that pushes pos away from pointer and the
// linear falloff factor used for it. Both are zero at or beyond the threshold.
func Repulsion(pos, pointer Vec, phys Physics) (Vec, float64) {
	d := pointer.Sub(pos)
	dist := d.Len()
	if dist >= phys.Threshold {
		return Vec{}, 0
	}
	force := (phys.Threshold - dist) / phys.Threshold
	return d.Scale(-force * phys.Repulsion), force
}

// Wrap teleports a position that left the surface to the opposite edge.
// The result lies in [0, Width) x [0, Height) for any non-degenerate size.
func Wrap(pos Vec, size Size) Vec {
	pos.X = wrapAxis(pos.X, size.Width)
	pos.Y = wrapAxis(pos.Y, size.Height)
	return pos
}

func wrapAxis(v, limit float64) float64 {
	if v < 0 {
		v = math.Nextafter(limit, 0)
	}
	if v >= limit {
		v = 0
	}
	return v
}

// Step advances the particle one frame: drift, pointer repulsion, wrap.
func (p Particle) Step(pointer Vec, size Size, phys Physics) Particle {
	p.Pos = p.Pos.Add(p.Vel)
	offset, _ := Repulsion(p.Pos, pointer, phys)
	p.Pos = Wrap(p.Pos.Add(offset), size)
	return p
}

// Color is the fill of the particle: the field tone at the particle's opacity.
func (p Particle) Color(phys Physics) color.Color {
	return toneAlpha(phys.Tone, p.Opacity)
}

func toneAlpha(tone uint8, alpha float64) color.NRGBA {
	return color.NRGBA{R: tone, G: tone, B: tone, A: uint8(clamp01(alpha)*255 + 0.5)}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
