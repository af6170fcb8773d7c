package terminal

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/constellation/internal/config"
	"github.com/iburimskiy/constellation/internal/field"
)

const particleGlyph = '●'

type cellKind uint8

const (
	cellEmpty cellKind = iota
	cellLine
	cellParticle
)

type cell struct {
	kind    cellKind
	glyph   rune
	r, g, b uint8
	alpha   float64
}

// Surface rasterizes field drawing calls into a grid of terminal cells.
// Coordinates are virtual pixels, CellWidth x CellHeight per cell.
// A particle owns its cell; a line only takes a cell from a fainter line.
type Surface struct {
	cols, rows int
	cells      []cell
	gain       float64
}

func NewSurface(cols, rows int, gain float64) *Surface {
	s := &Surface{gain: gain}
	s.Resize(cols, rows)
	return s
}

// Resize reallocates the grid; contents are discarded.
func (s *Surface) Resize(cols, rows int) {
	s.cols, s.rows = max(cols, 0), max(rows, 0)
	s.cells = make([]cell, s.cols*s.rows)
}

func (s *Surface) Size() (cols, rows int) { return s.cols, s.rows }

func (s *Surface) Clear() {
	clear(s.cells)
}

func (s *Surface) at(col, row int) *cell {
	if col < 0 || row < 0 || col >= s.cols || row >= s.rows {
		return nil
	}
	return &s.cells[row*s.cols+col]
}

func toCell(v field.Vec) (int, int) {
	return int(math.Floor(v.X / config.CellWidth)), int(math.Floor(v.Y / config.CellHeight))
}

func cellCenter(col, row int) field.Vec {
	return field.Vec{
		X: (float64(col) + 0.5) * config.CellWidth,
		Y: (float64(row) + 0.5) * config.CellHeight,
	}
}

func (s *Surface) FillCircle(center field.Vec, radius float64, c color.Color) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	alpha := float64(n.A) / 255

	paint := func(col, row int) {
		ce := s.at(col, row)
		if ce == nil || (ce.kind == cellParticle && ce.alpha >= alpha) {
			return
		}
		*ce = cell{kind: cellParticle, glyph: particleGlyph, r: n.R, g: n.G, b: n.B, alpha: alpha}
	}

	c0, r0 := toCell(field.Vec{X: center.X - radius, Y: center.Y - radius})
	c1, r1 := toCell(field.Vec{X: center.X + radius, Y: center.Y + radius})
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			if cellCenter(col, row).Dist(center) <= radius {
				paint(col, row)
			}
		}
	}
	// Small circles may miss every cell center.
	paint(toCell(center))
}

func (s *Surface) StrokeLine(from, to field.Vec, _ float64, c color.Color) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	alpha := float64(n.A) / 255

	x0, y0 := toCell(from)
	x1, y1 := toCell(to)
	glyph := lineGlyph(x1-x0, y1-y0)

	// Bresenham
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := sign(x1-x0), sign(y1-y0)
	e := dx + dy
	for {
		if ce := s.at(x0, y0); ce != nil && ce.kind != cellParticle && ce.alpha < alpha {
			*ce = cell{kind: cellLine, glyph: glyph, r: n.R, g: n.G, b: n.B, alpha: alpha}
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// lineGlyph picks a box-drawing rune for a line's direction in cell space.
// Rows grow downward.
func lineGlyph(dx, dy int) rune {
	ax, ay := abs(dx), abs(dy)
	switch {
	case ay*2 <= ax:
		return '─'
	case ax*2 <= ay:
		return '│'
	case (dx > 0) == (dy > 0):
		return '╲'
	default:
		return '╱'
	}
}

// Flush writes the grid to screen, blending each cell's color over the page
// background with its alpha amplified by gain.
func (s *Surface) Flush(screen tcell.Screen) {
	bg := tcell.NewRGBColor(config.BackgroundR, config.BackgroundG, config.BackgroundB)
	base := tcell.StyleDefault.Background(bg)
	for row := 0; row < s.rows; row++ {
		for col := 0; col < s.cols; col++ {
			ce := s.cells[row*s.cols+col]
			if ce.kind == cellEmpty {
				screen.SetContent(col, row, ' ', nil, base)
				continue
			}
			a := math.Min(ce.alpha*s.gain, 1)
			fg := tcell.NewRGBColor(blend(config.BackgroundR, ce.r, a), blend(config.BackgroundG, ce.g, a), blend(config.BackgroundB, ce.b, a))
			screen.SetContent(col, row, ce.glyph, nil, base.Foreground(fg))
		}
	}
}

func blend(bg, fg uint8, a float64) int32 {
	return int32(math.Round(float64(bg) + (float64(fg)-float64(bg))*a))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
