package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/iburimskiy/constellation/internal/field"
)

func TestFrameTap(t *testing.T) {
	tap := newFrameTap(4)
	start := time.Unix(0, 0)

	assert.Zero(t, tap.average())
	tap.mark(start)
	assert.Empty(t, tap.snapshot(4))

	for i := 1; i <= 6; i++ {
		tap.mark(start.Add(time.Duration(i*i) * time.Millisecond))
	}

	// intervals: 1,3,5,7,9,11 ms; the ring keeps the last four
	want := []time.Duration{5, 7, 9, 11}
	for i := range want {
		want[i] *= time.Millisecond
	}
	assert.Equal(t, want, tap.snapshot(10))
	assert.Equal(t, want[2:], tap.snapshot(2))
	assert.Equal(t, 8*time.Millisecond, tap.average())
}

func TestFormatFrameTime(t *testing.T) {
	assert.Equal(t, "--", formatFrameTime(0))
	assert.Equal(t, "20.0ms (50 fps)", formatFrameTime(20*time.Millisecond))
}

func TestLayoutDispatchesResize(t *testing.T) {
	g := New(800, 600, zaptest.NewLogger(t))
	var sizes []field.Size
	cancel := g.OnResize(func(s field.Size) { sizes = append(sizes, s) })

	w, h := g.Layout(800, 600)
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)
	assert.Empty(t, sizes, "unchanged size is not a resize")

	w, h = g.Layout(1024, 768)
	assert.Equal(t, 1024, w)
	assert.Equal(t, 768, h)
	assert.Equal(t, []field.Size{{Width: 1024, Height: 768}}, sizes)
	assert.Equal(t, field.Size{Width: 1024, Height: 768}, g.Viewport())

	w, h = g.Layout(0, 0)
	assert.Equal(t, 1024, w)
	assert.Equal(t, 768, h)

	cancel()
	g.Layout(640, 480)
	assert.Len(t, sizes, 1)
}

func TestCursorDispatch(t *testing.T) {
	g := New(800, 600, zaptest.NewLogger(t))
	var got []field.Vec
	g.OnPointerMove(func(v field.Vec) { got = append(got, v) })

	g.moveCursor(field.Vec{X: 0, Y: 0})
	g.moveCursor(field.Vec{X: 0, Y: 0})
	g.moveCursor(field.Vec{X: 10, Y: 20})

	assert.Equal(t, []field.Vec{{}, {X: 10, Y: 20}}, got)
}

func TestGameHostsAnimator(t *testing.T) {
	g := New(800, 600, zaptest.NewLogger(t))
	a := field.NewAnimator(g)
	require.NoError(t, a.Start(800, 600))

	g.moveCursor(field.Vec{X: 400, Y: 300})
	g.Layout(400, 300)
	assert.Equal(t, field.Vec{X: 400, Y: 300}, a.Pointer())
	assert.Equal(t, field.Size{Width: 400, Height: 300}, a.Size())

	fn := g.frames.Take()
	require.NotNil(t, fn)
	fn(nil)
	assert.True(t, g.frames.Pending())

	a.Stop()
	assert.False(t, g.frames.Pending())
	assert.Zero(t, g.pointer.Len())
	assert.Zero(t, g.resize.Len())
}
