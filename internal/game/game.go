package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/Garsondee/Drone-Harvest/internal/config"
	"github.com/Garsondee/Drone-Harvest/internal/corruption"
)

// borderWidth is the pixel gap between the window edge and the field.
const borderWidth = 16

// hudScale is the integer upscale applied to HUD text.
const hudScale = 2

// statusTicks is how long a status message stays on the HUD.
const statusTicks = 120

type Game struct {
	width      int
	height     int
	fieldW     int
	fieldH     int
	offX       int
	offY       int
	log        *zap.Logger
	session    *Session
	eventLog   *EventLog
	frame      int
	showHUD    bool
	prevKeys   map[ebiten.Key]bool
	status     string
	statusLeft int

	// Offscreen buffer for the field, blitted at the border offset.
	fieldBuf *ebiten.Image
	// Offscreen buffer for HUD text, rendered at 1x then blitted at hudScale.
	hudBuf *ebiten.Image

	// Simulation speed control.
	simSpeed  float64 // multiplier: 0=paused, 0.5, 1, 2
	tickAccum float64 // fractional tick accumulator for sub-1x speeds

	// Deploy press waiting for the next simulation tick.
	pendingDeploy bool
}

// New builds the game window around a fresh session.
func New(cfg *config.Config, log *zap.Logger) (*Game, error) {
	if log == nil {
		log = zap.NewNop()
	}
	s, err := NewSession(cfg, log, 0)
	if err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}
	fw, fh := int(cfg.Field.Width), int(cfg.Field.Height)
	g := &Game{
		width:    borderWidth + fw + borderWidth + logPanelWidth,
		height:   borderWidth + fh + borderWidth,
		fieldW:   fw,
		fieldH:   fh,
		offX:     borderWidth,
		offY:     borderWidth,
		log:      log,
		session:  s,
		eventLog: NewEventLog(),
		showHUD:  true,
		prevKeys: make(map[ebiten.Key]bool),
		simSpeed: 1.0,
	}
	s.Events().SubscribeAll(func(e corruption.Event) {
		g.eventLog.AddEvent(g.session.Tick(), e)
	})
	return g, nil
}

// WindowSize is the outer size the game lays itself out at.
func (g *Game) WindowSize() (int, int) { return g.width, g.height }

func (g *Game) Update() error {
	g.frame++
	if g.statusLeft > 0 {
		g.statusLeft--
	}

	g.advance(g.handleInput())
	return nil
}

// advance runs as many ticks as the sim speed allows this frame. A deploy
// press is held until a tick consumes it.
func (g *Game) advance(in Input) {
	if in.Deploy {
		g.pendingDeploy = true
	}
	if g.session.Over() {
		g.pendingDeploy = false
		return
	}
	if g.simSpeed <= 0 {
		return
	}

	g.tickAccum += g.simSpeed
	for g.tickAccum >= 1.0 {
		g.tickAccum -= 1.0
		in.Deploy = g.pendingDeploy
		g.pendingDeploy = false // one harvester per key press
		g.session.Step(TickDuration, in)
	}
}

// justPressed records k's state for this frame and reports a rising edge.
func (g *Game) justPressed(current map[ebiten.Key]bool, k ebiten.Key) bool {
	current[k] = ebiten.IsKeyPressed(k)
	return current[k] && !g.prevKeys[k]
}

// handleInput polls the keyboard, applies toggles and returns movement intent.
func (g *Game) handleInput() Input {
	currentKeys := map[ebiten.Key]bool{}
	var in Input

	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		in.MoveY--
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		in.MoveY++
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		in.MoveX--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		in.MoveX++
	}
	in.Deploy = g.justPressed(currentKeys, ebiten.KeySpace)

	// P: pause/resume. ,/. step speed.
	speeds := []float64{0, 0.5, 1, 2}
	if g.justPressed(currentKeys, ebiten.KeyP) {
		if g.simSpeed > 0 {
			g.simSpeed = 0
		} else {
			g.simSpeed = 1
		}
	}
	if g.justPressed(currentKeys, ebiten.KeyComma) {
		for i, s := range speeds {
			if s >= g.simSpeed && i > 0 {
				g.simSpeed = speeds[i-1]
				break
			}
		}
	}
	if g.justPressed(currentKeys, ebiten.KeyPeriod) {
		for _, s := range speeds {
			if s > g.simSpeed {
				g.simSpeed = s
				break
			}
		}
	}

	if g.justPressed(currentKeys, ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}
	if g.justPressed(currentKeys, ebiten.KeyR) {
		g.restart()
	}
	if g.justPressed(currentKeys, ebiten.KeyC) {
		g.copySummary()
	}

	g.prevKeys = currentKeys
	return in
}

func (g *Game) restart() {
	g.eventLog.Clear()
	g.session.Restart()
	g.tickAccum = 0
	g.pendingDeploy = false
	g.setStatus("restarted")
}

func (g *Game) copySummary() {
	if err := copyToClipboard(g.session.Summary()); err != nil {
		g.log.Warn("clipboard copy failed", zap.Error(err))
		g.setStatus("clipboard unavailable")
		return
	}
	g.setStatus("summary copied")
}

func (g *Game) setStatus(msg string) {
	g.status = msg
	g.statusLeft = statusTicks
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 8, G: 8, B: 12, A: 255})

	if g.fieldBuf == nil {
		g.fieldBuf = ebiten.NewImage(g.fieldW, g.fieldH)
		g.hudBuf = ebiten.NewImage(g.width/hudScale, g.height/hudScale)
	}
	g.fieldBuf.Clear()
	g.drawField(g.fieldBuf)

	var blit ebiten.DrawImageOptions
	blit.GeoM.Translate(float64(g.offX), float64(g.offY))
	screen.DrawImage(g.fieldBuf, &blit)

	drawFieldBorder(screen, g.offX, g.offY, g.fieldW, g.fieldH)

	logX := g.offX + g.fieldW + g.offX
	g.eventLog.Draw(screen, logX, g.height)

	if g.showHUD {
		g.drawHUD(screen)
	}
	if g.session.Over() {
		g.drawGameOver(screen)
	}
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}
