package game

import (
	"github.com/samdwyer/consolefps/internal/entity"
	"github.com/samdwyer/consolefps/internal/world"
)

// Intents is the movement input sampled for one frame.
type Intents struct {
	TurnLeft  bool
	TurnRight bool
	Forward   bool
	Backward  bool
}

// ReadIntents samples the movement intents from an input source.
func ReadIntents(in Input) Intents {
	return Intents{
		TurnLeft:  in.Pressed(IntentTurnLeft),
		TurnRight: in.Pressed(IntentTurnRight),
		Forward:   in.Pressed(IntentForward),
		Backward:  in.Pressed(IntentBackward),
	}
}

// MoveResult reports what a movement step did.
type MoveResult struct {
	Moved   bool // Position changed
	Blocked bool // At least one translation was rejected by a wall
}

// Move applies one frame of input to the player.
//
// Rotation is applied first, then forward and backward translation in that
// order. A translation that would end inside a wall (or outside the map) is
// dropped whole: the player does not slide along walls or move part way.
// A non-positive dt does nothing.
func Move(m *world.Map, p *entity.Player, dt float64, in Intents) MoveResult {
	var res MoveResult
	if dt <= 0 {
		return res
	}

	if in.TurnLeft {
		p.Turn(-p.TurnSpeed * dt)
	}
	if in.TurnRight {
		p.Turn(p.TurnSpeed * dt)
	}

	if in.Forward {
		res = step(m, p, p.MoveSpeed*dt, res)
	}
	if in.Backward {
		res = step(m, p, -p.MoveSpeed*dt, res)
	}
	return res
}

// step translates the player distance units along its heading unless the
// destination cell is a wall.
func step(m *world.Map, p *entity.Player, distance float64, res MoveResult) MoveResult {
	dx, dy := p.Direction()
	nx := p.X + dx*distance
	ny := p.Y + dy*distance

	if !m.IsOpenAt(nx, ny) {
		res.Blocked = true
		return res
	}

	if nx != p.X || ny != p.Y {
		res.Moved = true
	}
	p.X, p.Y = nx, ny
	return res
}
