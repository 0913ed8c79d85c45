package editor

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var menuLines = []string{
	"SYMBOL SENSE",
	"",
	"LMB            select unit / place arrow",
	"RMB drag       move unit",
	"MMB drag       pan",
	"WASD / arrows  pan    wheel  zoom",
	"",
	"Ctrl+N         add unit at view centre",
	"Enter          commit edits",
	"Tab            next text field",
	"Ctrl+F / G     cycle frame / affiliation",
	"Ctrl+A         draw arrow   Ctrl+X cancel",
	"Ctrl+D         delete unit",
	"Ctrl+Shift+D   delete unit's arrows",
	"",
	"Ctrl+S / O     save / load map",
	"Ctrl+C / V     copy / paste map",
	"Ctrl+B         reload background",
	"Esc            close menu",
}

// drawMenu renders the overlay menu centred on the map viewport.
func drawMenu(screen *ebiten.Image, viewW, viewH int) {
	const lineH, charW, pad = 16, 6, 12
	maxLen := 0
	for _, l := range menuLines {
		if len(l) > maxLen {
			maxLen = len(l)
		}
	}
	w := maxLen*charW + pad*2
	h := len(menuLines)*lineH + pad*2
	x := (viewW - w) / 2
	y := (viewH - h) / 2

	vector.FillRect(screen, 0, 0, float32(viewW), float32(viewH), color.RGBA{A: 120}, false)
	vector.FillRect(screen, float32(x), float32(y), float32(w), float32(h), color.RGBA{R: 6, G: 10, B: 6, A: 235}, false)
	vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 1.0, color.RGBA{R: 60, G: 100, B: 60, A: 200}, false)
	for i, l := range menuLines {
		ebitenutil.DebugPrintAt(screen, l, x+pad, y+pad+i*lineH)
	}
}
