package field

import (
	"image/color"
	"math/rand"
)

// Surface is the drawing target a host lends to the animator for one frame.
type Surface interface {
	Clear()
	FillCircle(center Vec, radius float64, c color.Color)
	StrokeLine(from, to Vec, width float64, c color.Color)
}

// Field is a fixed-length, ordered set of particles.
type Field struct {
	phys      Physics
	particles []Particle
}

// NewField creates phys.Count particles spread over size. Degenerate sizes
// still yield a full field, stacked on the origin.
func NewField(rng *rand.Rand, size Size, phys Physics) *Field {
	f := &Field{
		phys:      phys,
		particles: make([]Particle, phys.Count),
	}
	for i := range f.particles {
		f.particles[i] = NewParticle(rng, size, phys)
	}
	return f
}

func (f *Field) Len() int { return len(f.particles) }

func (f *Field) Physics() Physics { return f.phys }

// Particles returns a copy of the current particle records.
func (f *Field) Particles() []Particle {
	out := make([]Particle, len(f.particles))
	copy(out, f.particles)
	return out
}

// Step advances every particle by one frame against the pointer and bounds.
func (f *Field) Step(pointer Vec, size Size) {
	for i, p := range f.particles {
		f.particles[i] = p.Step(pointer, size, f.phys)
	}
}

// Link is a connection line between particles A < B.
type Link struct {
	A, B     int
	Distance float64
	Alpha    float64
}

// LinkAlpha fades linearly from phys.LinkAlpha at distance 0 to zero at the
// threshold.
func LinkAlpha(dist float64, phys Physics) float64 {
	if dist >= phys.Threshold {
		return 0
	}
	return (1 - dist/phys.Threshold) * phys.LinkAlpha
}

// Links enumerates every unordered pair closer than the threshold.
// 80 particles make 3160 pairs; the scan is brute force.
func (f *Field) Links() []Link {
	var links []Link
	for i := 0; i < len(f.particles); i++ {
		for j := i + 1; j < len(f.particles); j++ {
			d := f.particles[i].Pos.Dist(f.particles[j].Pos)
			if d < f.phys.Threshold {
				links = append(links, Link{A: i, B: j, Distance: d, Alpha: LinkAlpha(d, f.phys)})
			}
		}
	}
	return links
}

// Render clears s, fills every particle, then strokes the given links.
func Render(s Surface, f *Field, links []Link) {
	s.Clear()
	for _, p := range f.particles {
		s.FillCircle(p.Pos, p.Radius, p.Color(f.phys))
	}
	for _, l := range links {
		s.StrokeLine(f.particles[l.A].Pos, f.particles[l.B].Pos, f.phys.LinkWidth, toneAlpha(f.phys.Tone, l.Alpha))
	}
}
