package game

import (
	"math"
	"math/rand"
	"testing"

	"github.com/samdwyer/consolefps/internal/entity"
	"github.com/samdwyer/consolefps/internal/world"
)

func newRoomMap(t *testing.T) *world.Map {
	t.Helper()
	m, err := world.ParseString(`
#####
#...#
#...#
#...#
#####
`)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	return m
}

func TestMoveIntoWallIsRejected(t *testing.T) {
	m := newRoomMap(t)
	// Adjacent to the wall at y = 4, facing it
	p := entity.NewPlayer(2.5, 3.9, 0)

	res := Move(m, p, 0.1, Intents{Forward: true})

	if p.X != 2.5 || p.Y != 3.9 {
		t.Errorf("Position after blocked move = (%v, %v), want (2.5, 3.9)", p.X, p.Y)
	}
	if !res.Blocked || res.Moved {
		t.Errorf("Move() = %+v, want blocked and not moved", res)
	}
}

func TestMoveForwardAndBackward(t *testing.T) {
	m := world.New(10, 10)

	p := entity.NewPlayer(5, 5, 0)
	res := Move(m, p, 0.1, Intents{Forward: true})
	if !res.Moved || res.Blocked {
		t.Errorf("Move(forward) = %+v, want moved", res)
	}
	if math.Abs(p.X-5) > 1e-12 || math.Abs(p.Y-5.5) > 1e-12 {
		t.Errorf("Position after forward = (%v, %v), want (5, 5.5)", p.X, p.Y)
	}

	p = entity.NewPlayer(5, 5, math.Pi/2)
	Move(m, p, 0.2, Intents{Backward: true})
	if math.Abs(p.X-4) > 1e-12 || math.Abs(p.Y-5) > 1e-12 {
		t.Errorf("Position after backward = (%v, %v), want (4, 5)", p.X, p.Y)
	}
}

func TestMoveForwardAndBackwardCancel(t *testing.T) {
	m := world.New(10, 10)
	p := entity.NewPlayer(5, 5, 0.3)

	Move(m, p, 0.1, Intents{Forward: true, Backward: true})

	if math.Abs(p.X-5) > 1e-9 || math.Abs(p.Y-5) > 1e-9 {
		t.Errorf("Position = (%v, %v), want back at (5, 5)", p.X, p.Y)
	}
}

func TestMoveBackwardStillAppliesAfterForwardBlocked(t *testing.T) {
	m := newRoomMap(t)
	p := entity.NewPlayer(2.5, 3.9, 0)

	res := Move(m, p, 0.1, Intents{Forward: true, Backward: true})

	if !res.Blocked || !res.Moved {
		t.Errorf("Move() = %+v, want blocked forward and moved backward", res)
	}
	if math.Abs(p.Y-3.4) > 1e-9 {
		t.Errorf("Y = %v, want 3.4", p.Y)
	}
}

func TestMoveRotation(t *testing.T) {
	m := world.New(10, 10)
	p := entity.NewPlayer(5, 5, 0)

	Move(m, p, 0.2, Intents{TurnRight: true})
	if math.Abs(p.Angle-0.5) > 1e-12 {
		t.Errorf("Angle after right = %v, want 0.5", p.Angle)
	}

	Move(m, p, 0.4, Intents{TurnLeft: true})
	if math.Abs(p.Angle-(-0.5)) > 1e-12 {
		t.Errorf("Angle after left = %v, want -0.5", p.Angle)
	}

	// Both cancel out
	Move(m, p, 0.3, Intents{TurnLeft: true, TurnRight: true})
	if math.Abs(p.Angle-(-0.5)) > 1e-12 {
		t.Errorf("Angle after both = %v, want -0.5", p.Angle)
	}
}

func TestMoveRotatesBeforeTranslating(t *testing.T) {
	m := world.New(20, 20)
	p := entity.NewPlayer(10, 10, 0)
	p.TurnSpeed = math.Pi / 2 // Quarter turn in one second

	Move(m, p, 1, Intents{TurnRight: true, Forward: true})

	// Heading is now +X, so the step goes along X
	if math.Abs(p.X-15) > 1e-9 || math.Abs(p.Y-10) > 1e-9 {
		t.Errorf("Position = (%v, %v), want (15, 10)", p.X, p.Y)
	}
}

func TestMoveIgnoresNonPositiveDt(t *testing.T) {
	m := world.New(10, 10)

	for _, dt := range []float64{0, -0.5} {
		p := entity.NewPlayer(5, 5, 1)
		res := Move(m, p, dt, Intents{TurnLeft: true, Forward: true})
		if res != (MoveResult{}) || p.X != 5 || p.Y != 5 || p.Angle != 1 {
			t.Errorf("Move(dt=%v) changed state: %+v %+v", dt, res, p)
		}
	}
}

func TestMoveOutOfMapIsRejected(t *testing.T) {
	// No border: the only thing stopping the player is the map edge
	m, err := world.Parse([]string{"...", "...", "..."})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	tests := []struct {
		x, y, angle float64
	}{
		{1.5, 2.9, 0},
		{1.5, 0.1, math.Pi},
		{0.1, 1.5, -math.Pi / 2},
		{2.9, 1.5, math.Pi / 2},
	}

	for _, tt := range tests {
		p := entity.NewPlayer(tt.x, tt.y, tt.angle)
		res := Move(m, p, 0.1, Intents{Forward: true})
		if !res.Blocked || p.X != tt.x || p.Y != tt.y {
			t.Errorf("Move() from (%v, %v) heading %v left the map: %+v at (%v, %v)", tt.x, tt.y, tt.angle, res, p.X, p.Y)
		}
	}
}

func TestRandomWalkStaysOpen(t *testing.T) {
	text := `
##########
#........#
#..##....#
#..##..#.#
#......#.#
#.####...#
#........#
##########
`
	m, err := world.ParseString(text)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	p := entity.NewPlayer(1.5, 1.5, 0)
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 5000; i++ {
		in := Intents{
			TurnLeft:  rng.Intn(3) == 0,
			TurnRight: rng.Intn(3) == 0,
			Forward:   rng.Intn(2) == 0,
			Backward:  rng.Intn(4) == 0,
		}
		Move(m, p, 0.01+rng.Float64()*0.1, in)
		if !m.IsOpenAt(p.X, p.Y) {
			t.Fatalf("Step %d left the player in a wall at (%v, %v)", i, p.X, p.Y)
		}
	}
}

// fakeInput reports a fixed set of held intents.
type fakeInput map[Intent]bool

func (f fakeInput) Pressed(i Intent) bool { return f[i] }

func TestReadIntents(t *testing.T) {
	got := ReadIntents(fakeInput{IntentForward: true, IntentTurnLeft: true, IntentQuit: true})
	want := Intents{TurnLeft: true, Forward: true}
	if got != want {
		t.Errorf("ReadIntents() = %+v, want %+v", got, want)
	}
}
