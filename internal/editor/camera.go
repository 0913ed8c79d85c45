package editor

import (
	"math"

	"github.com/Garsondee/Symbol-Sense/internal/config"
	"github.com/Garsondee/Symbol-Sense/internal/symbol"
)

// Camera is an orthographic 2D camera over a Y-up world. OrthoSize is the
// visible half-height in world units.
type Camera struct {
	Center    symbol.Vec2
	OrthoSize float64

	MinSize   float64
	MaxSize   float64
	PanSpeed  float64 // world units per second at the reference size
	ZoomSpeed float64

	ViewW, ViewH float64 // viewport size in pixels
}

// NewCamera builds a camera from config, centred on the origin.
func NewCamera(cfg config.CameraConfig, viewW, viewH float64) *Camera {
	c := &Camera{
		OrthoSize: cfg.OrthoSize,
		MinSize:   cfg.MinSize,
		MaxSize:   cfg.MaxSize,
		PanSpeed:  cfg.PanSpeed,
		ZoomSpeed: cfg.ZoomSpeed,
		ViewW:     viewW,
		ViewH:     viewH,
	}
	c.clamp()
	return c
}

func (c *Camera) clamp() {
	c.OrthoSize = math.Max(c.MinSize, math.Min(c.MaxSize, c.OrthoSize))
}

// Zoom applies a scroll delta. Positive scroll zooms in.
func (c *Camera) Zoom(scroll float64) {
	if scroll == 0 {
		return
	}
	c.OrthoSize *= math.Exp(-scroll * c.ZoomSpeed * 0.01)
	c.clamp()
}

// Pan moves the camera by a direction scaled with the current zoom, so pans
// feel the same at every zoom level. dt is in seconds.
func (c *Camera) Pan(dir symbol.Vec2, dt float64) {
	c.Center = c.Center.Add(dir.Scale(c.PanSpeed * dt * c.OrthoSize / 10))
}

// PixelsPerUnit is the current world-to-screen scale.
func (c *Camera) PixelsPerUnit() float64 {
	return c.ViewH / (2 * c.OrthoSize)
}

// WorldToScreen maps a world point to screen pixels (Y down).
func (c *Camera) WorldToScreen(p symbol.Vec2) (float64, float64) {
	ppu := c.PixelsPerUnit()
	return (p.X-c.Center.X)*ppu + c.ViewW/2, c.ViewH/2 - (p.Y-c.Center.Y)*ppu
}

// ScreenToWorld maps screen pixels to a world point.
func (c *Camera) ScreenToWorld(sx, sy float64) symbol.Vec2 {
	ppu := c.PixelsPerUnit()
	return symbol.V((sx-c.ViewW/2)/ppu+c.Center.X, (c.ViewH/2-sy)/ppu+c.Center.Y)
}

// DragBy pans so the world point under a screen delta stays under the pointer.
func (c *Camera) DragBy(dxPixels, dyPixels float64) {
	ppu := c.PixelsPerUnit()
	c.Center = c.Center.Add(symbol.V(-dxPixels/ppu, dyPixels/ppu))
}
