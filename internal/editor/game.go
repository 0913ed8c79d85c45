// Package editor hosts the interactive map editor: the interaction state
// machine, its headless test harness and the ebiten front end.
package editor

import (
	"fmt"
	"image/color"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"

	"github.com/Garsondee/Symbol-Sense/internal/config"
	"github.com/Garsondee/Symbol-Sense/internal/mapfile"
	"github.com/Garsondee/Symbol-Sense/internal/store"
	"github.com/Garsondee/Symbol-Sense/internal/symbol"
	"github.com/Garsondee/Symbol-Sense/internal/view"
)

// Game is the ebiten front end. The map viewport fills the window left of
// the action log panel.
type Game struct {
	cfg config.Config
	log zerolog.Logger

	store   *store.Store
	layer   *view.Layer
	ctrl    *Controller
	actions *ActionLog

	cam        *Camera
	renderer   *screenRenderer
	background *Background
	inspBuf    *ebiten.Image

	width, height int
	viewW         int
	savePath      string
	showHUD       bool

	panning        bool
	panLastX       int
	panLastY       int
	pointerOverMap bool
}

// New builds the editor. When mapPath names an existing file it is loaded.
func New(cfg config.Config, log zerolog.Logger, mapPath string) (*Game, error) {
	face, err := newLabelFace()
	if err != nil {
		return nil, err
	}
	if mapPath == "" {
		mapPath = mapfile.ResolvePath(cfg.Saves.Dir, cfg.Saves.DefaultName)
	}

	g := &Game{
		cfg:      cfg,
		log:      log,
		store:    store.New(),
		actions:  NewActionLog(logMaxEntries),
		width:    cfg.Window.Width,
		height:   cfg.Window.Height,
		viewW:    cfg.Window.Width - logPanelWidth,
		savePath: mapPath,
		showHUD:  true,
		inspBuf:  ebiten.NewImage(inspBufW, inspBufH),
	}
	g.cam = NewCamera(cfg.Camera, float64(g.viewW), float64(g.height))
	g.layer = view.NewLayer(view.NewBinder(cfg))
	g.layer.SetClusterer(view.NewClusterer(cfg.Cluster))
	g.layer.SetViewportHeight(float64(g.height))
	g.ctrl = NewController(g.store, g.layer, g.actions, log)
	g.renderer = &screenRenderer{cam: g.cam, face: face, frameH: cfg.Frame.Height}

	if _, err := os.Stat(mapPath); err == nil {
		g.load(mapPath)
	} else {
		g.ctrl.Reset(g.cam.OrthoSize)
	}
	return g, nil
}

// Update reads input, runs commands and advances the controller by one frame.
func (g *Game) Update() error {
	g.handleCommands()
	g.handleCamera()

	mx, my := ebiten.CursorPosition()
	g.pointerOverMap = mx >= 0 && mx < g.viewW && my >= 0 && my < g.height
	in := Input{
		Pointer: g.cam.ScreenToWorld(float64(mx), float64(my)),
		Escape:  inpututil.IsKeyJustPressed(ebiten.KeyEscape),
		Ortho:   g.cam.OrthoSize,

		PrimaryHeld:       ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		PrimaryReleased:   inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
		SecondaryHeld:     ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight),
		SecondaryReleased: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonRight),
	}
	if g.pointerOverMap {
		in.PrimaryPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
		in.SecondaryPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight)
	}
	g.ctrl.Frame(in)
	return nil
}

func ctrlHeld() bool {
	return ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
}

// handleCommands maps key presses (edge-triggered) to controller commands.
func (g *Game) handleCommands() {
	pressed := inpututil.IsKeyJustPressed
	if ctrlHeld() {
		switch {
		case pressed(ebiten.KeyN):
			g.ctrl.AddUnit(g.cam.Center)
		case pressed(ebiten.KeyA):
			g.ctrl.BeginArrow()
		case pressed(ebiten.KeyX):
			g.ctrl.CancelArrow()
		case pressed(ebiten.KeyD) && ebiten.IsKeyPressed(ebiten.KeyShift):
			g.ctrl.DeleteArrowsFromSelected()
		case pressed(ebiten.KeyD):
			g.ctrl.DeleteSelected()
		case pressed(ebiten.KeyF):
			g.ctrl.CycleFrame()
		case pressed(ebiten.KeyG):
			g.ctrl.CycleAffiliation()
		case pressed(ebiten.KeyS):
			g.save(g.savePath)
		case pressed(ebiten.KeyO):
			g.load(g.savePath)
		case pressed(ebiten.KeyC):
			g.copyToClipboard()
		case pressed(ebiten.KeyV):
			g.pasteFromClipboard()
		case pressed(ebiten.KeyB):
			g.reloadBackground()
		case pressed(ebiten.KeyH):
			g.showHUD = !g.showHUD
		}
		return
	}

	if _, ok := g.ctrl.Selected(); !ok {
		return
	}
	f := g.ctrl.Form()
	switch {
	case pressed(ebiten.KeyEnter) || pressed(ebiten.KeyNumpadEnter):
		g.ctrl.CommitForm()
		return
	case pressed(ebiten.KeyTab):
		f.NextFocus()
	case pressed(ebiten.KeyBackspace):
		f.Backspace()
	}
	f.Type(ebiten.AppendInputChars(nil))
}

// handleCamera pans with the keyboard or middle mouse and zooms with the wheel.
func (g *Game) handleCamera() {
	var dir symbol.Vec2
	// WASD is reserved for typing while a unit is selected.
	_, typing := g.ctrl.Selected()
	key := func(letter, arrow ebiten.Key) bool {
		if ebiten.IsKeyPressed(arrow) {
			return true
		}
		return !typing && !ctrlHeld() && ebiten.IsKeyPressed(letter)
	}
	if key(ebiten.KeyW, ebiten.KeyArrowUp) {
		dir.Y++
	}
	if key(ebiten.KeyS, ebiten.KeyArrowDown) {
		dir.Y--
	}
	if key(ebiten.KeyA, ebiten.KeyArrowLeft) {
		dir.X--
	}
	if key(ebiten.KeyD, ebiten.KeyArrowRight) {
		dir.X++
	}
	if dir != (symbol.Vec2{}) {
		g.cam.Pan(dir.Normalize(), 1/float64(ebiten.TPS()))
	}

	mx, my := ebiten.CursorPosition()
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle) {
		if g.panning {
			g.cam.DragBy(float64(mx-g.panLastX), float64(my-g.panLastY))
		}
		g.panning = true
		g.panLastX, g.panLastY = mx, my
	} else {
		g.panning = false
	}

	if mx < g.viewW {
		_, wy := ebiten.Wheel()
		g.cam.Zoom(wy)
	}
}

func (g *Game) save(path string) {
	bg := ""
	if g.background != nil {
		bg = g.background.RelPath
	}
	if err := mapfile.Save(path, mapfile.Snapshot(g.store, bg)); err != nil {
		g.log.Warn().Err(err).Str("path", path).Msg("save failed")
		g.actions.Add(g.ctrl.FrameCount(), "", "file", "save_failed", path)
		return
	}
	units, arrows := g.store.Len()
	g.log.Info().Str("path", path).Int("units", units).Int("arrows", arrows).Msg("map saved")
	g.actions.Add(g.ctrl.FrameCount(), "", "file", "save", path)
}

func (g *Game) load(path string) {
	doc, err := mapfile.Load(path)
	if err != nil {
		g.log.Warn().Err(err).Str("path", path).Msg("load failed")
		g.actions.Add(g.ctrl.FrameCount(), "", "file", "load_failed", path)
		return
	}
	g.install(doc, path)
}

// install replaces the map with doc. A document that fails validation leaves
// the current map untouched.
func (g *Game) install(doc mapfile.Document, source string) {
	dangling, err := mapfile.Restore(doc, g.store)
	if err != nil {
		g.log.Warn().Err(err).Str("source", source).Msg("document rejected")
		return
	}
	if dangling > 0 {
		g.log.Warn().Int("arrows", dangling).Msg("arrows reference missing units")
	}
	g.ctrl.Reset(g.cam.OrthoSize)
	g.setBackground(doc.BackgroundRelativePath)
	g.log.Info().Str("source", source).Int("units", len(doc.Units)).Int("arrows", len(doc.Arrows)).Msg("map loaded")
	g.actions.Add(g.ctrl.FrameCount(), "", "file", "load", source)
}

func (g *Game) setBackground(rel string) {
	g.background = nil
	if rel == "" {
		return
	}
	bg, err := LoadBackground(g.cfg.Saves.Dir, rel, g.cfg.Background.TargetWidth)
	if err != nil {
		g.log.Warn().Err(err).Msg("background not loaded")
		// Keep the path so a later save does not drop it.
		g.background = &Background{RelPath: rel}
		return
	}
	g.background = bg
}

func (g *Game) reloadBackground() {
	if g.background == nil {
		return
	}
	g.setBackground(g.background.RelPath)
}

func (g *Game) copyToClipboard() {
	bg := ""
	if g.background != nil {
		bg = g.background.RelPath
	}
	if err := copyDocument(mapfile.Snapshot(g.store, bg)); err != nil {
		g.log.Warn().Err(err).Msg("copy failed")
		return
	}
	g.actions.Add(g.ctrl.FrameCount(), "", "file", "copy", "clipboard")
}

func (g *Game) pasteFromClipboard() {
	doc, err := pasteDocument()
	if err != nil {
		g.log.Warn().Err(err).Msg("paste failed")
		return
	}
	g.install(doc, "clipboard")
}

// Draw renders background, arrows, units and the UI panels.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 12, G: 14, B: 12, A: 255})
	g.background.Draw(screen, g.cam)

	g.renderer.dst = screen
	g.layer.Draw(g.renderer)
	g.drawArrowPreview()

	g.drawInspector(screen)
	drawLogPanel(screen, g.actions, g.viewW, g.height)
	if g.showHUD {
		g.drawHUD(screen)
	}
	if g.ctrl.MenuVisible() {
		drawMenu(screen, g.viewW, g.height)
	}
}

// drawArrowPreview shows where the arrow would go while awaiting its target.
func (g *Game) drawArrowPreview() {
	if g.ctrl.State() != StateAwaitingArrow || !g.pointerOverMap {
		return
	}
	id, _ := g.ctrl.Selected()
	u, ok := g.store.Unit(id)
	if !ok {
		return
	}
	b := g.layer.Binder()
	mx, my := ebiten.CursorPosition()
	to := g.cam.ScreenToWorld(float64(mx), float64(my))
	pts := symbol.RouteWith(u.Pos, to, b.StartOffset(true), b.EndOffset, b.Head)
	c := symbol.AffiliationColor(u.Affiliation)
	c.A = 0.5
	g.renderer.StrokePolyline(pts, false, b.StrokeWidth(g.cam.OrthoSize)*0.8, c)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	units, arrows := g.store.Len()
	line := fmt.Sprintf("units %d  arrows %d  zoom %.1f  %s  [Esc] menu",
		units, arrows, g.cam.OrthoSize, g.ctrl.State())
	ebitenutil.DebugPrintAt(screen, line, 6, 6)
}

// Layout fixes the logical screen to the configured window size.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}
