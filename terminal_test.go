package main

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

func newSimScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)
	return screen
}

func screenRow(screen tcell.Screen, y, n int) string {
	var b strings.Builder
	for x := 0; x < n; x++ {
		ch, _, _, _ := screen.GetContent(x, y)
		b.WriteRune(ch)
	}
	return b.String()
}

func TestTermRendererDrawsHUD(t *testing.T) {
	screen := newSimScreen(t)
	g := newTestGame(t)
	g.powerups.Activate(CapShield, 42)

	var s Snapshot
	g.Capture(&s, 0)
	NewTermRenderer(screen).Render(&s)

	want := " score 0  lives 3  level 1  spawning  shield:42"
	if got := screenRow(screen, 0, len(want)); got != want {
		t.Errorf("HUD = %q, want %q", got, want)
	}
}

func TestTermRendererPlacesEntities(t *testing.T) {
	screen := newSimScreen(t)
	g := newTestGame(t)
	placeObstacle(g, TierLarge, 400, 300)

	var s Snapshot
	g.Capture(&s, 0)
	NewTermRenderer(screen).Render(&s)

	// 800x600 maps onto 80 columns and the 23 rows under the HUD
	// y=300 lands on field row 11
	ch, _, _, _ := screen.GetContent(40, 1+11)
	if ch != 'O' {
		t.Errorf("expected large rock glyph, got %q", ch)
	}
	c := g.Player().Center()
	ch, _, _, _ = screen.GetContent(int(c.X/800*80), 1+int(c.Y/600*23))
	if ch != 'A' {
		t.Errorf("expected ship glyph, got %q", ch)
	}
}

func TestTermRendererMenuBanner(t *testing.T) {
	screen := newSimScreen(t)
	g := NewGame(DefaultSimConfig(), 1)

	var s Snapshot
	g.Capture(&s, 0)
	NewTermRenderer(screen).Render(&s)

	if row := screenRow(screen, 12, 80); !strings.Contains(row, "ROCKFALL") {
		t.Errorf("expected menu banner, got %q", row)
	}
}

func TestHeldKeysLapse(t *testing.T) {
	var h heldKeys
	now := time.Now()

	if !h.press(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), now) {
		t.Fatal("arrow key should be handled")
	}
	h.press(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), now)

	in := h.input(now.Add(100 * time.Millisecond))
	if !in.Left || !in.Fire || in.Right {
		t.Errorf("unexpected held input %+v", in)
	}
	if in := h.input(now.Add(200 * time.Millisecond)); in.Left || in.Fire {
		t.Errorf("keys should lapse after the hold, got %+v", in)
	}
	if h.press(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), now) {
		t.Error("unbound rune should be ignored")
	}
}

func TestTerminalSessionKeys(t *testing.T) {
	screen := newSimScreen(t)
	ts := newTerminalSession(screen, DefaultSimConfig(), 7)
	now := time.Now()

	ts.handleKey(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), now)
	if ts.game.Phase() != PhasePlaying || !ts.driver.Running() {
		t.Fatal("enter should start a run")
	}

	ts.frame(now, 50*time.Millisecond)
	if ts.game.Tick() != 3 {
		t.Errorf("expected 3 steps for 50ms, got %d", ts.game.Tick())
	}

	ts.handleKey(tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone), now)
	if ts.game.Phase() != PhasePaused || ts.driver.Running() {
		t.Fatal("p should pause")
	}
	ts.handleKey(tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone), now)
	if ts.game.Phase() != PhasePlaying || !ts.driver.Running() {
		t.Fatal("p should resume")
	}

	if ts.handleKey(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), now) {
		t.Error("q should quit")
	}
	if ts.handleKey(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), now) {
		t.Error("escape should quit")
	}
}
