package main

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
)

// keyHold is how long a key press counts as held. Terminals report
// repeats but no releases.
const keyHold = 150 * time.Millisecond

var (
	styleHUD        = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	stylePlayer     = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleShield     = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	styleProjectile = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleObstacle   = tcell.StyleDefault.Foreground(tcell.ColorLightGray)
	styleCollect    = tcell.StyleDefault.Foreground(tcell.ColorPurple)
	styleBanner     = tcell.StyleDefault.Foreground(tcell.ColorRed)
)

var tierGlyph = [MaxTier + 1]rune{'O', 'o', '.'}

var capabilityGlyph = map[Capability]rune{
	CapShield:     'S',
	CapDoubleFire: 'D',
	CapRapidFire:  'R',
}

// TermRenderer draws snapshots onto a tcell screen, scaling the playfield
// to the rows below the HUD line.
type TermRenderer struct {
	screen tcell.Screen
}

// NewTermRenderer creates a renderer drawing on screen
func NewTermRenderer(screen tcell.Screen) *TermRenderer {
	return &TermRenderer{screen: screen}
}

func (r *TermRenderer) Render(s *Snapshot) {
	r.screen.Clear()
	cols, rows := r.screen.Size()
	if cols < 1 || rows < 2 || s.Width <= 0 || s.Height <= 0 {
		r.screen.Show()
		return
	}
	fieldRows := rows - 1
	cell := func(x, y float64) (int, int) {
		cx := int(x / s.Width * float64(cols))
		cy := 1 + int(y/s.Height*float64(fieldRows))
		return cx, cy
	}
	put := func(x, y float64, ch rune, style tcell.Style) {
		cx, cy := cell(x, y)
		if cx >= 0 && cx < cols && cy >= 1 && cy < rows {
			r.screen.SetContent(cx, cy, ch, nil, style)
		}
	}

	for _, o := range s.Obstacles {
		put(o.X, o.Y, tierGlyph[clampTier(o.Tier)], styleObstacle)
	}
	for _, c := range s.Collectibles {
		ch, ok := capabilityGlyph[c.Kind]
		if !ok {
			ch = '?'
		}
		put(c.X, c.Y, ch, styleCollect)
	}
	for _, p := range s.Projectiles {
		put(p.X, p.Y, '|', styleProjectile)
	}

	ps := stylePlayer
	for _, pw := range s.Powerups {
		if pw.Capability == CapShield {
			ps = styleShield
		}
	}
	put(s.Player.X+s.Player.W/2, s.Player.Y+s.Player.H/2, 'A', ps)

	hud := fmt.Sprintf(" score %d  lives %d  level %d  %s", s.Score, s.Lives, s.Level+1, s.LevelState)
	for _, pw := range s.Powerups {
		hud += fmt.Sprintf("  %s:%d", pw.Capability, pw.Remaining)
	}
	drawText(r.screen, 0, 0, hud, styleHUD)

	switch s.Phase {
	case PhasePaused:
		drawCentered(r.screen, rows/2, "PAUSED  p to resume", styleBanner)
	case PhaseGameOver:
		drawCentered(r.screen, rows/2, "GAME OVER  enter to play again, q to quit", styleBanner)
	case PhaseMenu:
		drawCentered(r.screen, rows/2, "ROCKFALL  enter to start", styleBanner)
	}
	r.screen.Show()
}

func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	cols, _ := screen.Size()
	for _, ch := range text {
		if x >= cols {
			return
		}
		screen.SetContent(x, y, ch, nil, style)
		x++
	}
}

func drawCentered(screen tcell.Screen, y int, text string, style tcell.Style) {
	cols, _ := screen.Size()
	x := (cols - len(text)) / 2
	if x < 0 {
		x = 0
	}
	drawText(screen, x, y, text, style)
}

// heldKeys turns key presses into held controls that lapse after keyHold
type heldKeys struct {
	left, right, up, down, fire time.Time
}

func (h *heldKeys) press(ev *tcell.EventKey, now time.Time) bool {
	until := now.Add(keyHold)
	switch ev.Key() {
	case tcell.KeyLeft:
		h.left = until
	case tcell.KeyRight:
		h.right = until
	case tcell.KeyUp:
		h.up = until
	case tcell.KeyDown:
		h.down = until
	case tcell.KeyRune:
		switch ev.Rune() {
		case ' ':
			h.fire = until
		case 'a':
			h.left = until
		case 'd':
			h.right = until
		case 'w':
			h.up = until
		case 's':
			h.down = until
		default:
			return false
		}
	default:
		return false
	}
	return true
}

func (h *heldKeys) input(now time.Time) PlayerInput {
	return PlayerInput{
		Left:  now.Before(h.left),
		Right: now.Before(h.right),
		Up:    now.Before(h.up),
		Down:  now.Before(h.down),
		Fire:  now.Before(h.fire),
	}
}

// terminalSession is a local single-player run drawn with tcell
type terminalSession struct {
	screen    tcell.Screen
	game      *Game
	driver    *LoopDriver
	renderers *RendererSet
	snap      Snapshot
	keys      heldKeys
}

func newTerminalSession(screen tcell.Screen, cfg SimConfig, seed uint64) *terminalSession {
	ts := &terminalSession{
		screen:    screen,
		game:      NewGame(cfg, seed),
		renderers: NewRendererSet(nil),
	}
	ts.renderers.Register(RendererTerm, NewTermRenderer(screen))
	ts.driver = NewLoopDriver(ts.game, cfg.Step(), cfg.MaxFrameDelta(), cfg.RenderEvery, ts.draw)
	return ts
}

func (ts *terminalSession) draw() {
	ts.game.Capture(&ts.snap, ts.driver.Alpha())
	ts.renderers.Resolve(RendererTerm).Render(&ts.snap)
}

// handleKey applies one key event. It returns false when the user quits.
func (ts *terminalSession) handleKey(ev *tcell.EventKey, now time.Time) bool {
	if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
		return false
	}
	if ev.Key() == tcell.KeyEnter {
		if ts.game.Start() {
			ts.driver.Start()
		}
		return true
	}
	if ev.Key() == tcell.KeyRune {
		switch ev.Rune() {
		case 'q':
			return false
		case 'p':
			if ts.game.Pause() {
				ts.driver.Stop()
			} else if ts.game.Resume() {
				ts.driver.Start()
			}
			ts.draw()
			return true
		case 'r':
			if ts.game.Restart() {
				ts.driver.Start()
			}
			return true
		}
	}
	if ts.keys.press(ev, now) {
		ts.game.SetInput(ts.keys.input(now))
	}
	return true
}

// frame advances the run by the real time since the previous frame
func (ts *terminalSession) frame(now time.Time, elapsed time.Duration) {
	ts.game.SetInput(ts.keys.input(now))
	if ts.driver.Running() {
		ts.driver.Frame(elapsed)
		return
	}
	// idle phases still need a picture
	ts.draw()
}

// RunTerminal plays a local run in the terminal until the user quits
func RunTerminal(cfg SimConfig, seed uint64) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	defer screen.Fini()

	ts := newTerminalSession(screen, cfg, seed)

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return // screen finalized
			}
			eventChan <- ev
		}
	}()

	ticker := time.NewTicker(cfg.Step())
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !ts.handleKey(ev, time.Now()) {
					return nil
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		case now := <-ticker.C:
			ts.frame(now, now.Sub(last))
			last = now
		}
	}
}
