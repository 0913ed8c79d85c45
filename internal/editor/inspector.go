package editor

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Inspector panel — rendered into an offscreen buffer at 1× then blitted at inspScale.
const (
	inspScale = 2   // scale factor for inspector text rendering
	inspBufW  = 200 // buffer width in pixels (~32 chars at debug font)
	inspBufH  = 150 // buffer height in pixels
	inspPad   = 4   // padding in buffer-space pixels
	inspLineH = 13  // line height in buffer-space pixels
)

// drawInspector renders the pending form of the selected unit, bottom-left.
func (g *Game) drawInspector(screen *ebiten.Image) {
	id, ok := g.ctrl.Selected()
	if !ok {
		return
	}
	f := g.ctrl.Form()

	buf := g.inspBuf
	buf.Clear()
	bw := float32(inspBufW)
	bh := float32(inspBufH)

	panelBorder := color.RGBA{R: 55, G: 80, B: 55, A: 255}
	vector.FillRect(buf, 0, 0, bw, bh, color.RGBA{R: 14, G: 16, B: 14, A: 230}, false)
	vector.StrokeRect(buf, 0, 0, bw, bh, 1.0, panelBorder, false)
	vector.StrokeLine(buf, 1, 1, bw-1, 1, 1.0, color.RGBA{R: 70, G: 110, B: 70, A: 60}, false)

	lx, ly := inspPad, inspPad
	line := func(text string) {
		ebitenutil.DebugPrintAt(buf, text, lx, ly)
		ly += inspLineH
	}

	line(fmt.Sprintf("[ UNIT %s ]", shortID(id)))
	line(fmt.Sprintf("state: %s", g.ctrl.State()))
	ly += 2
	vector.StrokeLine(buf, float32(lx), float32(ly), bw-float32(inspPad), float32(ly), 1.0, panelBorder, false)
	ly += 4

	line(fmt.Sprintf("frame:       %-6s [^F]", f.Frame))
	line(fmt.Sprintf("affiliation: %-8s [^G]", f.Affiliation))
	for ff := FieldTop; ff < fieldCount; ff++ {
		cursor := " "
		if ff == f.Focus {
			cursor = ">"
		}
		line(fmt.Sprintf("%s%-10s %s", cursor, ff.String()+":", *f.Field(ff)))
	}
	ly += 2
	line("Tab=field  Enter=commit")

	px := 8
	py := g.height - inspBufH*inspScale - 8
	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(float64(inspScale), float64(inspScale))
	opts.GeoM.Translate(float64(px), float64(py))
	screen.DrawImage(buf, opts)
}
