package editor

import (
	"bytes"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/rotisserie/eris"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/Garsondee/Symbol-Sense/internal/symbol"
)

// Label sizes in world units, so text scales with the symbol.
const (
	labelSizeWorld    = 0.42
	labelMinPixelSize = 6.0
)

// screenRenderer draws view output onto an ebiten image through the camera.
type screenRenderer struct {
	dst  *ebiten.Image
	cam  *Camera
	face *text.GoTextFaceSource

	frameH float64 // places top/bottom labels outside the frame
}

func newLabelFace() (*text.GoTextFaceSource, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, eris.Wrap(err, "load label font")
	}
	return src, nil
}

// StrokePolyline strokes world-space points with a world-space width.
func (r *screenRenderer) StrokePolyline(points []symbol.Vec2, closed bool, width float64, c symbol.Color) {
	if len(points) < 2 {
		return
	}
	var path vector.Path
	for i, p := range points {
		x, y := r.cam.WorldToScreen(p)
		if i == 0 {
			path.MoveTo(float32(x), float32(y))
			continue
		}
		path.LineTo(float32(x), float32(y))
	}
	if closed {
		path.Close()
	}

	px := width * r.cam.PixelsPerUnit()
	if px < 1 {
		px = 1
	}
	stroke := &vector.StrokeOptions{
		Width:    float32(px),
		LineJoin: vector.LineJoinRound,
		LineCap:  vector.LineCapRound,
	}
	op := &vector.DrawPathOptions{AntiAlias: true}
	op.ColorScale.ScaleWithColor(c)
	vector.StrokePath(r.dst, &path, stroke, op)
}

// DrawLabels draws top above the frame, centre inside it and bottom below it.
func (r *screenRenderer) DrawLabels(anchor symbol.Vec2, labels [3]string, c symbol.Color) {
	ppu := r.cam.PixelsPerUnit()
	size := labelSizeWorld * ppu
	if size < labelMinPixelSize {
		return
	}
	face := &text.GoTextFace{Source: r.face, Size: size}

	offsets := [3]float64{
		r.frameH/2 + labelSizeWorld*0.9,
		0,
		-(r.frameH/2 + labelSizeWorld*0.9),
	}
	for i, s := range labels {
		if s == "" {
			continue
		}
		x, y := r.cam.WorldToScreen(anchor.Add(symbol.V(0, offsets[i])))
		op := &text.DrawOptions{}
		op.GeoM.Translate(x, y)
		op.PrimaryAlign = text.AlignCenter
		op.SecondaryAlign = text.AlignCenter
		op.ColorScale.ScaleWithColor(c)
		text.Draw(r.dst, s, face, op)
	}
}
