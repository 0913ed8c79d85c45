package editor

import (
	"math"
	"testing"

	"github.com/Garsondee/Symbol-Sense/internal/config"
	"github.com/Garsondee/Symbol-Sense/internal/symbol"
)

func testCamera() *Camera {
	return NewCamera(config.Default().Camera, 800, 600)
}

func TestCamera_ScreenWorldRoundTrip(t *testing.T) {
	c := testCamera()
	c.Center = symbol.V(12, -3)

	for _, p := range []symbol.Vec2{{X: 0, Y: 0}, {X: 12, Y: -3}, {X: -40, Y: 25.5}} {
		sx, sy := c.WorldToScreen(p)
		if got := c.ScreenToWorld(sx, sy); !got.ApproxEqual(p, 1e-9) {
			t.Fatalf("round trip %v -> (%v,%v) -> %v", p, sx, sy, got)
		}
	}
}

func TestCamera_YUp(t *testing.T) {
	c := testCamera()
	_, syLow := c.WorldToScreen(symbol.V(0, 0))
	_, syHigh := c.WorldToScreen(symbol.V(0, 5))
	if syHigh >= syLow {
		t.Fatalf("higher world Y must be higher on screen: %v vs %v", syHigh, syLow)
	}
	sx, sy := c.WorldToScreen(c.Center)
	if sx != 400 || sy != 300 {
		t.Fatalf("centre maps to (%v,%v), want viewport centre", sx, sy)
	}
	// Ortho 20 over 600px: 15 px per unit.
	if ppu := c.PixelsPerUnit(); math.Abs(ppu-15) > 1e-9 {
		t.Fatalf("ppu = %v, want 15", ppu)
	}
}

func TestCamera_ZoomExponentialAndClamped(t *testing.T) {
	c := testCamera()
	c.Zoom(1)
	want := 20 * math.Exp(-0.1)
	if math.Abs(c.OrthoSize-want) > 1e-9 {
		t.Fatalf("ortho after zoom-in = %v, want %v", c.OrthoSize, want)
	}

	for i := 0; i < 100; i++ {
		c.Zoom(5)
	}
	if c.OrthoSize != c.MinSize {
		t.Fatalf("zoom-in not clamped: %v", c.OrthoSize)
	}
	for i := 0; i < 100; i++ {
		c.Zoom(-5)
	}
	if c.OrthoSize != c.MaxSize {
		t.Fatalf("zoom-out not clamped: %v", c.OrthoSize)
	}
}

func TestCamera_DragKeepsPointUnderCursor(t *testing.T) {
	c := testCamera()
	before := c.ScreenToWorld(100, 100)
	c.DragBy(30, -20)
	after := c.ScreenToWorld(130, 80)
	if !after.ApproxEqual(before, 1e-9) {
		t.Fatalf("grabbed point moved: %v -> %v", before, after)
	}
}
