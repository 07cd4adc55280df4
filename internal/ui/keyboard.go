package ui

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/consolefps/internal/game"
)

// DefaultKeyHold is how long a key counts as held after its last event.
// It spans the usual terminal auto-repeat delay so a held key moves
// without stalling between the first press and the first repeat.
const DefaultKeyHold = 500 * time.Millisecond

// Keyboard turns terminal key events into held intents.
//
// Terminals report key presses and auto-repeats but never releases, so a key
// counts as held for a short window after each event. Quit latches: once
// seen it stays pressed.
type Keyboard struct {
	mu       sync.Mutex
	hold     time.Duration
	now      func() time.Time
	lastSeen map[game.Intent]time.Time
	quit     bool

	keys  map[tcell.Key]game.Intent
	runes map[rune]game.Intent
}

// NewKeyboard creates a keyboard with WASD, arrow, quit and minimap bindings.
func NewKeyboard(hold time.Duration) *Keyboard {
	if hold <= 0 {
		hold = DefaultKeyHold
	}
	return &Keyboard{
		hold:     hold,
		now:      time.Now,
		lastSeen: make(map[game.Intent]time.Time),
		keys: map[tcell.Key]game.Intent{
			tcell.KeyLeft:   game.IntentTurnLeft,
			tcell.KeyRight:  game.IntentTurnRight,
			tcell.KeyUp:     game.IntentForward,
			tcell.KeyDown:   game.IntentBackward,
			tcell.KeyEscape: game.IntentQuit,
			tcell.KeyCtrlC:  game.IntentQuit,
		},
		runes: map[rune]game.Intent{
			'a': game.IntentTurnLeft,
			'A': game.IntentTurnLeft,
			'd': game.IntentTurnRight,
			'D': game.IntentTurnRight,
			'w': game.IntentForward,
			'W': game.IntentForward,
			's': game.IntentBackward,
			'S': game.IntentBackward,
			'm': game.IntentToggleMap,
			'M': game.IntentToggleMap,
			'q': game.IntentQuit,
			'Q': game.IntentQuit,
		},
	}
}

// HandleEvent records key events; other events are ignored.
func (k *Keyboard) HandleEvent(ev tcell.Event) {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return
	}

	intent, bound := k.intentFor(key)
	if !bound {
		return
	}

	k.mu.Lock()
	defer k.mu.Unlock()
	if intent == game.IntentQuit {
		k.quit = true
		return
	}
	k.lastSeen[intent] = k.now()
}

// intentFor maps a key event to its bound intent.
func (k *Keyboard) intentFor(ev *tcell.EventKey) (game.Intent, bool) {
	if ev.Key() == tcell.KeyRune {
		intent, ok := k.runes[ev.Rune()]
		return intent, ok
	}
	intent, ok := k.keys[ev.Key()]
	return intent, ok
}

// Pressed reports whether the intent's key was seen within the hold window.
func (k *Keyboard) Pressed(intent game.Intent) bool {
	k.mu.Lock()
	defer k.mu.Unlock()

	if intent == game.IntentQuit {
		return k.quit
	}
	seen, ok := k.lastSeen[intent]
	if !ok {
		return false
	}
	return k.now().Sub(seen) < k.hold
}
