package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/consolefps/internal/config"
	"github.com/samdwyer/consolefps/internal/entity"
	"github.com/samdwyer/consolefps/internal/gamedata"
	"github.com/samdwyer/consolefps/internal/raycast"
	"github.com/samdwyer/consolefps/internal/render"
	"github.com/samdwyer/consolefps/internal/telemetry"
	"github.com/samdwyer/consolefps/internal/world"
)

// ErrNoOpenCells is returned when a map leaves nowhere to stand.
var ErrNoOpenCells = errors.New("map has no open cells")

// Sim is the simulation context threaded through movement and rendering.
// It is owned by the frame loop and never shared.
type Sim struct {
	Map        *world.Map
	Player     *entity.Player
	Compositor *render.Compositor
	WrapAngle  bool

	mapLines []string
}

// NewSim creates a simulation over the map. The player must stand in an open cell.
func NewSim(m *world.Map, p *entity.Player, c *render.Compositor) (*Sim, error) {
	if !m.IsOpenAt(p.X, p.Y) {
		return nil, fmt.Errorf("player at (%.2f, %.2f) is not in an open cell", p.X, p.Y)
	}
	return &Sim{
		Map:        m,
		Player:     p,
		Compositor: c,
		mapLines:   m.Lines(),
	}, nil
}

// Update applies one frame of input.
func (s *Sim) Update(dt float64, in Intents) MoveResult {
	res := Move(s.Map, s.Player, dt, in)
	if s.WrapAngle {
		s.Player.Angle = entity.WrapAngle(s.Player.Angle)
	}
	return res
}

// Render draws the scene from the player's view and the overlay into f.
func (s *Sim) Render(f *render.Frame, fps float64, showMap bool) {
	p := s.Player
	x, y := p.Position()
	s.Compositor.RenderScene(f, render.View{X: x, Y: y, Angle: p.Angle})

	cx, cy := p.Cell()
	overlay := render.Overlay{
		Status:  render.StatusLine(x, y, p.Angle, fps),
		PlayerX: cx,
		PlayerY: cy,
	}
	if showMap {
		overlay.Map = s.mapLines
	}
	s.Compositor.DrawOverlay(f, overlay)
}

// Setup builds the simulation described by cfg: map, player and renderer.
func Setup(ctx context.Context, cfg config.Config) (*Sim, error) {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.init")
	defer span.End()

	m, err := LoadMap(ctx, cfg.Map)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	player := &entity.Player{
		X:         cfg.Player.StartX,
		Y:         cfg.Player.StartY,
		Angle:     cfg.Player.Angle,
		MoveSpeed: cfg.Player.MoveSpeed,
		TurnSpeed: cfg.Player.TurnSpeed,
	}

	// Fall back to the nearest open cell when the configured start is blocked
	if !m.IsOpenAt(player.X, player.Y) {
		x, y, ok := m.NearestOpen(player.X, player.Y)
		if !ok {
			span.RecordError(ErrNoOpenCells)
			return nil, ErrNoOpenCells
		}
		span.SetAttributes(attribute.String("warning", "start position blocked, moved to nearest open cell"))
		player.X, player.Y = x, y
	}

	caster := raycast.NewCaster(m)
	caster.Depth = cfg.Screen.Depth
	caster.StepSize = cfg.Screen.StepSize
	caster.BoundaryTolerance = cfg.Screen.BoundaryTolerance

	compositor := render.NewCompositor(caster)
	compositor.FOV = cfg.Screen.FOV
	compositor.CorrectFisheye = cfg.Screen.CorrectFisheye
	compositor.Workers = cfg.Screen.Workers

	sim, err := NewSim(m, player, compositor)
	if err != nil {
		return nil, err
	}
	sim.WrapAngle = cfg.Player.WrapAngle

	span.SetAttributes(
		attribute.Int("map.width", m.Width),
		attribute.Int("map.height", m.Height),
		attribute.Float64("player.start_x", player.X),
		attribute.Float64("player.start_y", player.Y),
		attribute.Int("render.workers", cfg.Screen.Workers),
	)
	return sim, nil
}

// LoadMap builds the map selected by cfg. A file takes precedence over
// generation, which takes precedence over an embedded layout name.
func LoadMap(ctx context.Context, cfg config.MapConfig) (*world.Map, error) {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "map.load")
	defer span.End()

	switch {
	case cfg.File != "":
		span.SetAttributes(attribute.String("map.source", "file"), attribute.String("map.file", cfg.File))
		data, err := os.ReadFile(cfg.File)
		if err != nil {
			return nil, fmt.Errorf("reading map file %s: %w", cfg.File, err)
		}
		m, err := world.ParseString(string(data))
		if err != nil {
			return nil, fmt.Errorf("loading map file %s: %w", cfg.File, err)
		}
		return m, nil

	case cfg.Generate:
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		span.SetAttributes(attribute.String("map.source", "generated"), attribute.Int64("map.seed", seed))
		m, rooms := world.Generate(ctx, cfg.Width, cfg.Height, rand.New(rand.NewSource(seed)))
		span.SetAttributes(attribute.Int("map.room_count", len(rooms)))
		return m, nil

	default:
		name := cfg.Name
		if name == "" {
			name = gamedata.DefaultLayout
		}
		span.SetAttributes(attribute.String("map.source", "embedded"), attribute.String("map.name", name))
		text, err := gamedata.LoadLayout(name)
		if err != nil {
			return nil, err
		}
		m, err := world.ParseString(text)
		if err != nil {
			return nil, fmt.Errorf("loading map %s: %w", name, err)
		}
		return m, nil
	}
}
