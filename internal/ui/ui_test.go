package ui

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/consolefps/internal/config"
	"github.com/samdwyer/consolefps/internal/game"
	"github.com/samdwyer/consolefps/internal/gamedata"
	"github.com/samdwyer/consolefps/internal/render"
)

func newSimScreen(t *testing.T, width, height int) (*Screen, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	s, err := NewScreenFrom(sim)
	if err != nil {
		t.Fatalf("NewScreenFrom() error = %v", err)
	}
	sim.SetSize(width, height)
	t.Cleanup(s.Close)
	return s, sim
}

func loadPalette(t *testing.T, id string) *gamedata.PaletteDef {
	t.Helper()
	registry, err := gamedata.LoadPaletteRegistry()
	if err != nil {
		t.Fatalf("LoadPaletteRegistry() error = %v", err)
	}
	palette, err := registry.Resolve(id)
	if err != nil {
		t.Fatalf("Resolve(%q) error = %v", id, err)
	}
	return palette
}

func TestDisplayPresent(t *testing.T) {
	screen, sim := newSimScreen(t, 12, 4)
	d := NewDisplay(screen, loadPalette(t, "classic"))

	if w, h := d.Size(); w != 12 || h != 4 {
		t.Fatalf("Size() = %dx%d, want 12x4", w, h)
	}

	f := render.NewFrame(12, 4)
	f.Set(1, 2, render.Cell{Rune: render.GlyphFull, Kind: render.KindWall, Level: render.LevelFull})
	f.Set(2, 3, render.Cell{Rune: 'x', Kind: render.KindFloor, Level: render.LevelMedium})
	f.WriteString(0, 0, "FPS", render.KindOverlay)
	f.Set(5, 1, render.Cell{Rune: 'P', Kind: render.KindPlayer})

	if err := d.Present(f); err != nil {
		t.Fatalf("Present() error = %v", err)
	}

	tests := []struct {
		x, y  int
		rune  rune
		style tcell.Style
	}{
		{1, 2, render.GlyphFull, d.wall[render.LevelFull]},
		{2, 3, 'x', d.floor[render.LevelMedium]},
		{0, 0, 'F', d.styles[render.KindOverlay]},
		{5, 1, 'P', d.styles[render.KindPlayer]},
		{7, 1, ' ', d.base},
	}
	for _, tt := range tests {
		r, _, style, _ := sim.GetContent(tt.x, tt.y)
		if r != tt.rune {
			t.Errorf("Cell (%d, %d) rune = %q, want %q", tt.x, tt.y, r, tt.rune)
		}
		if style != tt.style {
			t.Errorf("Cell (%d, %d) has the wrong style", tt.x, tt.y)
		}
	}
}

func TestDisplayShadesDiffer(t *testing.T) {
	screen, _ := newSimScreen(t, 4, 4)
	d := NewDisplay(screen, loadPalette(t, "night"))

	if d.wall[render.LevelFull] == d.wall[render.LevelFaint] {
		t.Error("Full and faint walls should be styled differently")
	}
	if d.style(render.Cell{Kind: render.KindWall, Level: 99}) != d.wall[gamedata.ShadeLevels] {
		t.Error("Out of range levels should clamp to the densest style")
	}
}

func TestDisplayNilPalette(t *testing.T) {
	screen, _ := newSimScreen(t, 4, 4)
	d := NewDisplay(screen, nil)

	if err := d.Present(render.NewFrame(4, 4)); err != nil {
		t.Fatalf("Present() error = %v", err)
	}
}

func newTestKeyboard(now *time.Time) *Keyboard {
	k := NewKeyboard(100 * time.Millisecond)
	k.now = func() time.Time { return *now }
	return k
}

func TestKeyboardHoldWindow(t *testing.T) {
	now := time.Unix(0, 0)
	k := newTestKeyboard(&now)

	if k.Pressed(game.IntentForward) {
		t.Error("Forward should not be pressed before any event")
	}

	k.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone))
	if !k.Pressed(game.IntentForward) {
		t.Error("Forward should be pressed right after 'w'")
	}

	now = now.Add(99 * time.Millisecond)
	if !k.Pressed(game.IntentForward) {
		t.Error("Forward should still be held inside the window")
	}

	now = now.Add(2 * time.Millisecond)
	if k.Pressed(game.IntentForward) {
		t.Error("Forward should be released after the window")
	}
}

func TestKeyboardDefaultHoldBridgesRepeatDelay(t *testing.T) {
	now := time.Unix(0, 0)
	k := NewKeyboard(0)
	k.now = func() time.Time { return now }

	if k.hold != DefaultKeyHold {
		t.Fatalf("hold = %v, want %v", k.hold, DefaultKeyHold)
	}

	// First press, then the terminal waits before repeating
	k.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone))
	now = now.Add(450 * time.Millisecond)
	if !k.Pressed(game.IntentForward) {
		t.Error("Forward should stay held through the auto-repeat delay")
	}

	want := int(DefaultKeyHold / time.Millisecond)
	if got := config.Default().UI.KeyHoldMS; got != want {
		t.Errorf("Default key_hold_ms = %d, want %d", got, want)
	}
}

func TestKeyboardBindings(t *testing.T) {
	now := time.Unix(0, 0)
	k := newTestKeyboard(&now)

	tests := []struct {
		ev     *tcell.EventKey
		intent game.Intent
	}{
		{tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), game.IntentTurnLeft},
		{tcell.NewEventKey(tcell.KeyRune, 'D', tcell.ModNone), game.IntentTurnRight},
		{tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), game.IntentForward},
		{tcell.NewEventKey(tcell.KeyRune, 's', tcell.ModNone), game.IntentBackward},
		{tcell.NewEventKey(tcell.KeyRune, 'm', tcell.ModNone), game.IntentToggleMap},
	}

	for _, tt := range tests {
		k.HandleEvent(tt.ev)
		if !k.Pressed(tt.intent) {
			t.Errorf("%v should be pressed after its key", tt.intent)
		}
	}
}

func TestKeyboardQuitLatches(t *testing.T) {
	now := time.Unix(0, 0)
	k := newTestKeyboard(&now)

	k.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	now = now.Add(time.Hour)

	if !k.Pressed(game.IntentQuit) {
		t.Error("Quit should stay pressed once seen")
	}
}

func TestKeyboardIgnoresUnboundAndNonKeyEvents(t *testing.T) {
	now := time.Unix(0, 0)
	k := newTestKeyboard(&now)

	k.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone))
	k.HandleEvent(tcell.NewEventResize(80, 24))

	for _, intent := range []game.Intent{game.IntentTurnLeft, game.IntentTurnRight, game.IntentForward, game.IntentBackward, game.IntentToggleMap, game.IntentQuit} {
		if k.Pressed(intent) {
			t.Errorf("%v should not be pressed", intent)
		}
	}
}

func TestPumpDeliversEventsUntilClose(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	screen, err := NewScreenFrom(sim)
	if err != nil {
		t.Fatalf("NewScreenFrom() error = %v", err)
	}
	k := NewKeyboard(time.Minute)

	done := make(chan struct{})
	go func() {
		screen.Pump(k.HandleEvent)
		close(done)
	}()

	if err := sim.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)); err != nil {
		t.Fatalf("PostEvent() error = %v", err)
	}

	deadline := time.After(5 * time.Second)
	for !k.Pressed(game.IntentQuit) {
		select {
		case <-deadline:
			t.Fatal("Quit key never reached the keyboard")
		case <-time.After(time.Millisecond):
		}
	}

	screen.Close()
	select {
	case <-done:
	case <-deadline:
		t.Fatal("Pump() did not return after Close()")
	}
}

func TestPumpForwardsResize(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	screen, err := NewScreenFrom(sim)
	if err != nil {
		t.Fatalf("NewScreenFrom() error = %v", err)
	}

	resized := make(chan struct{}, 1)
	done := make(chan struct{})
	go func() {
		screen.Pump(func(ev tcell.Event) {
			if _, ok := ev.(*tcell.EventResize); ok {
				select {
				case resized <- struct{}{}:
				default:
				}
			}
		})
		close(done)
	}()

	if err := sim.PostEvent(tcell.NewEventResize(30, 10)); err != nil {
		t.Fatalf("PostEvent() error = %v", err)
	}

	select {
	case <-resized:
	case <-time.After(5 * time.Second):
		t.Fatal("Resize event never reached the handler")
	}

	screen.Close()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Pump() did not return after Close()")
	}
}
