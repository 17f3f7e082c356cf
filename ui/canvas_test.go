package ui

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
)

func TestCanvasRoundTrip(t *testing.T) {
	c := NewCanvas(800, 600)
	c.CamX, c.CamY, c.CamZoom = -120, 35, 3.5
	for _, p := range []orb.Point{{0, 0}, {13.5, -7}, {800, 600}} {
		x, y := c.MapToScreen(c.ScreenToMap(p[0], p[1]))
		assert.InDelta(t, p[0], x, 1e-9)
		assert.InDelta(t, p[1], y, 1e-9)
	}
}

func TestCanvasCenterOnMapPt(t *testing.T) {
	c := NewCanvas(800, 600)
	c.CamZoom = 2
	c.CenterOnMapPt(orb.Point{10, 20})
	x, y := c.MapToScreen(orb.Point{10, 20})
	assert.InDelta(t, 400, x, 1e-9)
	assert.InDelta(t, 300, y, 1e-9)

	b := c.ScreenBound()
	assert.InDelta(t, -190, b.Min[0], 1e-9)
	assert.InDelta(t, 210, b.Max[0], 1e-9)
	assert.True(t, b.Contains(orb.Point{10, 20}))
}

func TestCanvasZoomAroundCursor(t *testing.T) {
	c := NewCanvas(800, 600)
	c.HandleEvent(NewUserInput(Event{Type: EventMouseMove, X: 100, Y: 50}))
	before := c.CursorInMapSpace()
	c.HandleEvent(NewUserInput(Event{Type: EventScroll, Delta: 5}))
	assert.Greater(t, c.CamZoom, 1.0)
	after := c.CursorInMapSpace()
	assert.InDelta(t, before[0], after[0], 1e-9)
	assert.InDelta(t, before[1], after[1], 1e-9)

	c.HandleEvent(NewUserInput(Event{Type: EventScroll, Delta: -1000}))
	assert.Equal(t, minZoom, c.CamZoom)
}

func TestCanvasDrag(t *testing.T) {
	c := NewCanvas(800, 600)
	c.HandleEvent(NewUserInput(
		Event{Type: EventMouseMove, X: 100, Y: 100},
		Event{Type: EventMouseDown},
		Event{Type: EventMouseMove, X: 130, Y: 90},
	))
	assert.True(t, c.IsDragging())
	assert.Equal(t, -30.0, c.CamX)
	assert.Equal(t, 10.0, c.CamY)

	c.HandleEvent(NewUserInput(Event{Type: EventMouseUp}, Event{Type: EventResize, Width: 1024, Height: 768}))
	assert.False(t, c.IsDragging())
	assert.Equal(t, 1024.0, c.WindowWidth)
}

func TestUserInputKeys(t *testing.T) {
	in := NewUserInput(Event{Type: EventKeyPress, Key: "h"}, Event{Type: EventMouseMove, X: 1, Y: 2})
	assert.False(t, in.KeyPressed("u", "unhide"))
	assert.True(t, in.KeyPressed("h", "hide"))
	assert.False(t, in.KeyPressed("h", "hide"))
	assert.Equal(t, []string{"u: unhide", "h: hide"}, in.Bindings())

	x, y, ok := in.MovedMouse()
	assert.True(t, ok)
	assert.Equal(t, 1.0, x)
	assert.Equal(t, 2.0, y)
	_, _, ok = NewUserInput().MovedMouse()
	assert.False(t, ok)
}
