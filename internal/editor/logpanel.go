package editor

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	logPanelWidth = 320
	logMaxEntries = 200
	logLineHeight = 11
)

var categoryColors = map[string]color.RGBA{
	"state": {R: 120, G: 120, B: 140, A: 255},
	"unit":  {R: 70, G: 150, B: 230, A: 255},
	"arrow": {R: 230, G: 200, B: 80, A: 255},
	"form":  {R: 90, G: 200, B: 120, A: 255},
	"file":  {R: 200, G: 120, B: 220, A: 255},
}

// drawLogPanel renders the tail of the action log on the right side of the screen.
func drawLogPanel(screen *ebiten.Image, log *ActionLog, panelX, panelH int) {
	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), float32(panelH), color.RGBA{R: 10, G: 12, B: 10, A: 248}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1.0, color.RGBA{R: 50, G: 70, B: 50, A: 255}, false)

	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), 16, color.RGBA{R: 20, G: 30, B: 20, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "ACTION LOG", panelX+8, 2)
	vector.StrokeLine(screen, float32(panelX), 16, float32(panelX+logPanelWidth), 16, 1.0, color.RGBA{R: 50, G: 80, B: 50, A: 200}, false)

	maxVisible := (panelH - 24) / logLineHeight
	visible := log.Tail(maxVisible)
	recent := 3

	y := 20
	for i, e := range visible {
		if i >= len(visible)-recent {
			vector.FillRect(screen, float32(panelX+2), float32(y), float32(logPanelWidth-4), float32(logLineHeight), color.RGBA{R: 30, G: 40, B: 30, A: 160}, false)
		}
		dot, ok := categoryColors[e.Category]
		if !ok {
			dot = color.RGBA{R: 160, G: 160, B: 160, A: 255}
		}
		vector.FillRect(screen, float32(panelX+5), float32(y+3), 3, 5, dot, false)

		line := fmt.Sprintf("%5d %-5s %s %s", e.Frame, e.Category, e.Key, e.Value)
		ebitenutil.DebugPrintAt(screen, line, panelX+12, y)
		y += logLineHeight
	}
}
