// Package entity provides the player controlled in the first-person view.
package entity

import "math"

// Reference movement parameters.
const (
	DefaultMoveSpeed = 5.0                    // Cells per second
	DefaultTurnSpeed = DefaultMoveSpeed * 0.5 // Radians per second
)

// Player holds the viewer's position and heading.
// The heading points along (sin Angle, cos Angle) in (X, Y).
type Player struct {
	X, Y      float64 // Continuous position, one unit per cell
	Angle     float64 // Heading in radians
	MoveSpeed float64 // Linear speed in cells per second
	TurnSpeed float64 // Rotation speed in radians per second
}

// NewPlayer creates a player at the given position and heading with reference speeds.
func NewPlayer(x, y, angle float64) *Player {
	return &Player{
		X:         x,
		Y:         y,
		Angle:     angle,
		MoveSpeed: DefaultMoveSpeed,
		TurnSpeed: DefaultTurnSpeed,
	}
}

// Direction returns the unit vector the player is facing.
func (p *Player) Direction() (dx, dy float64) {
	return Direction(p.Angle)
}

// Position returns the current x, y coordinates.
func (p *Player) Position() (float64, float64) {
	return p.X, p.Y
}

// Cell returns the map cell the player stands in.
func (p *Player) Cell() (int, int) {
	return int(p.X), int(p.Y)
}

// Turn rotates the heading by delta radians.
func (p *Player) Turn(delta float64) {
	p.Angle += delta
}

// Direction returns the unit vector for a heading. Every system that turns
// an angle into a direction must use this so movement and rays agree.
func Direction(angle float64) (dx, dy float64) {
	return math.Sin(angle), math.Cos(angle)
}

// WrapAngle maps an angle into [0, 2π).
func WrapAngle(angle float64) float64 {
	const tau = 2 * math.Pi
	a := math.Mod(angle, tau)
	if a < 0 {
		a += tau
	}
	// math.Mod can round a tiny negative up to exactly tau
	if a >= tau {
		a = 0
	}
	return a
}
