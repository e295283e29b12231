package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/rs/zerolog"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/Tank-Skirmish/internal/sim"
)

// borderWidth is the pixel gap between the window edge and the battlefield.
const borderWidth = 12

// Game is the ebiten front end around one sim.World.
type Game struct {
	width      int
	height     int
	gameWidth  int // playfield width (log panel takes the rest)
	gameHeight int
	offX       int
	offY       int

	cfg    sim.Config
	loader sim.ModelLoader
	logger zerolog.Logger

	world    *sim.World
	events   *EventLog
	logRead  int // SimLog entries already copied into events
	renderer *screenRenderer
	face     text.Face

	camZoom  float64
	paused   bool
	captured bool

	prevCursorX int
	cursorKnown bool

	status      string
	statusUntil int
}

// New builds the first session. A model load failure is returned unchanged so
// the caller can abort before a window opens.
func New(cfg sim.Config, loader sim.ModelLoader, logger zerolog.Logger, width, height int) (*Game, error) {
	g := &Game{
		width:      width,
		height:     height,
		gameWidth:  width - logPanelWidth - 2*borderWidth,
		gameHeight: height - 2*borderWidth,
		offX:       borderWidth,
		offY:       borderWidth,
		cfg:        cfg,
		loader:     loader,
		logger:     logger,
		events:     NewEventLog(),
		face:       text.NewGoXFace(basicfont.Face7x13),
		camZoom:    1,
		captured:   true,
	}
	if err := g.reset(); err != nil {
		return nil, err
	}
	return g, nil
}

// reset starts a fresh session with the current config.
func (g *Game) reset() error {
	w, err := sim.NewWorld(g.cfg, g.loader, sim.WithLogger(g.logger))
	if err != nil {
		return err
	}
	g.world = w
	g.events = NewEventLog()
	g.logRead = 0
	g.renderer = newScreenRenderer(g.gameWidth, g.gameHeight)
	return nil
}

func (g *Game) Update() error {
	g.handleKeys()

	if !g.paused && g.world.Outcome() == sim.OutcomeOngoing {
		dt := 1 / float64(ebiten.TPS())
		g.world.Step(dt, g.pollInput())
	} else {
		g.cursorKnown = false
	}
	g.drainSimLog()
	return nil
}

// handleKeys processes edge-triggered control keys.
func (g *Game) handleKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.captured = !g.captured
		if g.captured {
			ebiten.SetCursorMode(ebiten.CursorModeCaptured)
		} else {
			ebiten.SetCursorMode(ebiten.CursorModeVisible)
		}
		g.cursorKnown = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.cfg.Seed++
		if err := g.reset(); err != nil {
			g.logger.Error().Err(err).Msg("restart failed")
			g.flash("restart failed")
		} else {
			g.flash(fmt.Sprintf("new session, seed %d", g.cfg.Seed))
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		if err := copyToClipboard(g.world.SimLog().Format()); err != nil {
			g.logger.Warn().Err(err).Msg("clipboard copy failed")
			g.flash("copy failed")
		} else {
			g.flash(fmt.Sprintf("copied %d events", g.world.SimLog().Len()))
		}
	}

	_, wy := ebiten.Wheel()
	if wy > 0 || inpututil.IsKeyJustPressed(ebiten.KeyEqual) {
		g.camZoom *= 1.25
	}
	if wy < 0 || inpututil.IsKeyJustPressed(ebiten.KeyMinus) {
		g.camZoom /= 1.25
	}
	const zoomMin, zoomMax = 0.5, 4.0
	g.camZoom = clamp(g.camZoom, zoomMin, zoomMax)
}

// pollInput samples the held controls and the horizontal cursor travel since
// the last frame.
func (g *Game) pollInput() sim.Input {
	in := sim.Input{
		Forward: ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		Back:    ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown),
		Left:    ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		Right:   ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		Fire:    ebiten.IsKeyPressed(ebiten.KeySpace) || ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
	}
	cx, _ := ebiten.CursorPosition()
	if g.cursorKnown {
		in.MouseDX = float64(cx - g.prevCursorX)
	}
	g.prevCursorX = cx
	g.cursorKnown = true
	return in
}

// drainSimLog moves new combat and state events into the side panel.
func (g *Game) drainSimLog() {
	entries := g.world.SimLog().Entries()
	for _, e := range entries[g.logRead:] {
		if e.Category == sim.CatCombat || e.Category == sim.CatState || e.Key == sim.KeySighted {
			g.events.Add(e)
		}
	}
	g.logRead = len(entries)
}

func (g *Game) flash(msg string) {
	g.status = msg
	g.statusUntil = g.world.Tick() + 120
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 12, G: 14, B: 12, A: 255})

	p := g.world.Player()
	_, target := p.ChaseCamera()
	g.renderer.begin(target.X(), target.Z(), g.camZoom)
	g.renderer.drawGround(g.world.Arena())
	g.world.Render(g.renderer)
	g.renderer.drawTurretBearing(p)

	var blit ebiten.DrawImageOptions
	blit.GeoM.Translate(float64(g.offX), float64(g.offY))
	screen.DrawImage(g.renderer.target, &blit)

	ox, oy := float32(g.offX), float32(g.offY)
	gw, gh := float32(g.gameWidth), float32(g.gameHeight)
	vector.StrokeRect(screen, ox-1, oy-1, gw+2, gh+2, 2.0, color.RGBA{R: 65, G: 90, B: 65, A: 255}, false)

	g.events.Draw(screen, g.offX+g.gameWidth+borderWidth, g.height)
	g.drawHUD(screen)
}

// drawHUD renders the position readout and session status in the top-left
// corner of the battlefield.
func (g *Game) drawHUD(screen *ebiten.Image) {
	p := g.world.Player()
	alive := 0
	for _, e := range g.world.Enemies() {
		if !e.Dead() {
			alive++
		}
	}
	lines := []string{
		fmt.Sprintf("x:%f y:%f", p.Position.X(), p.Position.Z()),
		fmt.Sprintf("hp:%d  enemies:%d/%d  T=%d", p.Health, alive, len(g.world.Enemies()), g.world.Tick()),
	}
	switch g.world.Outcome() {
	case sim.OutcomeWon:
		lines = append(lines, "ALL ENEMIES DESTROYED  R=new session")
	case sim.OutcomeLost:
		lines = append(lines, "TANK DESTROYED  R=new session")
	}
	if g.paused {
		lines = append(lines, "PAUSED")
	}
	if g.status != "" && g.world.Tick() < g.statusUntil {
		lines = append(lines, g.status)
	}
	lines = append(lines, "WASD move  mouse turret  space fire  C copy log  P pause  Esc cursor")

	const lineH = 15
	const padX, padY = 6, 4
	bx, by := float32(g.offX+6), float32(g.offY+6)
	boxW := float32(0)
	for _, l := range lines {
		if w := float32(len(l)*7 + padX*2); w > boxW {
			boxW = w
		}
	}
	boxH := float32(len(lines)*lineH + padY*2)
	vector.FillRect(screen, bx, by, boxW, boxH, color.RGBA{R: 6, G: 10, B: 6, A: 210}, false)
	vector.StrokeRect(screen, bx, by, boxW, boxH, 1.0, color.RGBA{R: 60, G: 100, B: 60, A: 180}, false)

	for i, line := range lines {
		op := &text.DrawOptions{}
		op.GeoM.Translate(float64(bx)+padX, float64(by)+padY+float64(i*lineH))
		op.ColorScale.ScaleWithColor(color.RGBA{R: 200, G: 230, B: 200, A: 255})
		text.Draw(screen, line, g.face, op)
	}
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
