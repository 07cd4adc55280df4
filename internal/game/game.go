package game

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/consolefps/internal/render"
	"github.com/samdwyer/consolefps/internal/telemetry"
)

// statsInterval is how many frames pass between stats span events.
const statsInterval = 600

// Options configures the frame loop.
type Options struct {
	FPS     int         // Frame cap; 0 runs as fast as the display allows
	ShowMap bool        // Start with the minimap visible
	Logger  *log.Logger // Defaults to a discarding logger
}

// Stats summarises a run.
type Stats struct {
	Frames     int
	Collisions int
	Seconds    float64 // Simulated time
}

// AverageFPS returns frames per simulated second.
func (s Stats) AverageFPS() float64 {
	if s.Seconds <= 0 {
		return 0
	}
	return float64(s.Frames) / s.Seconds
}

// Game runs the frame loop: time, input, movement, render, present.
type Game struct {
	sim     *Sim
	clock   Clock
	input   Input
	display Display
	logger  *log.Logger

	frame   *render.Frame
	fps     int
	showMap bool
	mapHeld bool
	running bool
	stats   Stats
}

// New creates a game loop over the simulation and its collaborators.
func New(sim *Sim, clock Clock, input Input, display Display, opts Options) *Game {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Game{
		sim:     sim,
		clock:   clock,
		input:   input,
		display: display,
		logger:  logger,
		fps:     opts.FPS,
		showMap: opts.ShowMap,
		running: true,
	}
}

// Run executes frames until the quit intent, a display error, or ctx is done.
func (g *Game) Run(ctx context.Context) error {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.run")
	defer span.End()

	var tick <-chan time.Time
	if g.fps > 0 {
		ticker := time.NewTicker(time.Second / time.Duration(g.fps))
		defer ticker.Stop()
		tick = ticker.C
	}

	g.logger.Printf("game started: map %dx%d, fps cap %d", g.sim.Map.Width, g.sim.Map.Height, g.fps)

	var runErr error
	for g.running {
		if err := ctx.Err(); err != nil {
			break
		}

		if err := g.Step(); err != nil {
			span.RecordError(err)
			runErr = err
			break
		}

		if g.stats.Frames > 0 && g.stats.Frames%statsInterval == 0 {
			g.recordStats(span, "frames")
		}

		if tick != nil {
			select {
			case <-ctx.Done():
			case <-tick:
			}
		}
	}

	g.recordStats(span, "final")
	span.SetAttributes(
		attribute.Int("game.frames", g.stats.Frames),
		attribute.Int("game.collisions", g.stats.Collisions),
		attribute.Float64("game.average_fps", g.stats.AverageFPS()),
	)
	g.logger.Printf("game stopped after %d frames (%.1f fps average, %d collisions)",
		g.stats.Frames, g.stats.AverageFPS(), g.stats.Collisions)

	return runErr
}

// Step runs a single frame.
func (g *Game) Step() error {
	dt := g.clock.Elapsed()

	if g.input.Pressed(IntentQuit) {
		g.running = false
		return nil
	}

	// Toggle on the press edge so a held key flips the map once
	held := g.input.Pressed(IntentToggleMap)
	if held && !g.mapHeld {
		g.showMap = !g.showMap
	}
	g.mapHeld = held

	res := g.sim.Update(dt, ReadIntents(g.input))
	if res.Blocked {
		g.stats.Collisions++
	}
	if dt > 0 {
		g.stats.Seconds += dt
	}

	width, height := g.display.Size()
	if width <= 0 || height <= 0 {
		return nil
	}
	if g.frame == nil {
		g.frame = render.NewFrame(width, height)
	} else if g.frame.Width != width || g.frame.Height != height {
		g.frame.Resize(width, height)
	}

	fps := 0.0
	if dt > 0 {
		fps = 1 / dt
	}
	g.sim.Render(g.frame, fps, g.showMap)
	g.stats.Frames++

	if err := g.display.Present(g.frame); err != nil {
		return fmt.Errorf("presenting frame %d: %w", g.stats.Frames, err)
	}
	return nil
}

// Running reports whether the loop will run another frame.
func (g *Game) Running() bool {
	return g.running
}

// ShowMap reports whether the minimap is visible.
func (g *Game) ShowMap() bool {
	return g.showMap
}

// Stats returns counters for the frames run so far.
func (g *Game) Stats() Stats {
	return g.stats
}

// recordStats adds a span event with the running counters.
func (g *Game) recordStats(span trace.Span, name string) {
	span.AddEvent(name, trace.WithAttributes(
		attribute.Int("game.frames", g.stats.Frames),
		attribute.Int("game.collisions", g.stats.Collisions),
		attribute.Float64("game.average_fps", g.stats.AverageFPS()),
	))
}
