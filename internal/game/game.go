// Package game wires the board, rules, scheduler, menu and terminal front
// end together and runs the main loop.
package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/gridtactics/internal/ai"
	"github.com/samdwyer/gridtactics/internal/anim"
	"github.com/samdwyer/gridtactics/internal/fault"
	"github.com/samdwyer/gridtactics/internal/gamedata"
	"github.com/samdwyer/gridtactics/internal/menu"
	"github.com/samdwyer/gridtactics/internal/resolve"
	"github.com/samdwyer/gridtactics/internal/telemetry"
	"github.com/samdwyer/gridtactics/internal/turn"
	"github.com/samdwyer/gridtactics/internal/ui"
	"github.com/samdwyer/gridtactics/internal/world"
)

// Game holds the entire game state.
type Game struct {
	cfg      Config
	log      logr.Logger
	ctx      context.Context
	screen   *ui.Screen
	renderer *ui.Renderer
	queue    *anim.Queue

	classes   *gamedata.ClassRegistry
	level     *gamedata.LevelDef
	faults    *fault.Reporter
	resolver  *resolve.Resolver
	scheduler *turn.Scheduler
	menu      *menu.Machine

	running bool
}

// New creates a game on the terminal.
func New(cfg Config, log logr.Logger) (*Game, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}
	g, err := newGame(cfg, log, screen)
	if err != nil {
		screen.Close()
		return nil, err
	}
	return g, nil
}

func newGame(cfg Config, log logr.Logger, screen *ui.Screen) (*Game, error) {
	classes, err := gamedata.LoadClassRegistry()
	if err != nil {
		return nil, fmt.Errorf("load classes: %w", err)
	}
	level, err := gamedata.LoadLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	if cfg.HumanTeam >= level.Teams {
		return nil, fmt.Errorf("human team %d does not exist in level %q (%d teams)", cfg.HumanTeam, level.Name, level.Teams)
	}
	w, err := world.Load(level, classes)
	if err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	g := &Game{
		cfg:     cfg,
		log:     log.WithName("game"),
		ctx:     context.Background(),
		screen:  screen,
		queue:   &anim.Queue{},
		classes: classes,
		level:   level,
		running: true,
	}
	g.renderer = ui.NewRenderer(screen, classes)
	g.faults = fault.NewReporter(log.WithName("fault"), g.renderer.Alert)
	g.resolver = resolve.New(w, rand.New(rand.NewSource(seed)), g.queue, g.faults, log)
	g.scheduler = turn.New(turn.Config{NumTeams: level.Teams, HumanTeam: cfg.HumanTeam},
		g.resolver, ai.NewPlanner(g.resolver, log), g.renderer, nil, g.faults, log)
	g.menu = menu.New(g.scheduler, g.resolver, g.restart, log)
	g.scheduler.SetInput(g.menu)

	g.log.Info("game created", "level", level.Name, "seed", seed, "teams", level.Teams, "human_team", cfg.HumanTeam)
	return g, nil
}

// Run executes the main game loop. Terminal events are read on their own
// goroutine; all game state is touched only from this one.
func (g *Game) Run(ctx context.Context) error {
	g.start(ctx)

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(g.cfg.AnimationTick)
	defer ticker.Stop()

	for g.running {
		g.render()
		select {
		case ev, ok := <-events:
			if !ok {
				g.running = false
				break
			}
			g.handleEvent(ctx, ev)
		case <-ticker.C:
			g.queue.Step()
		case <-ctx.Done():
			g.running = false
		}
	}

	// Cleanup
	g.screen.Close()
	return nil
}

// start begins a game on the current world.
func (g *Game) start(ctx context.Context) {
	g.ctx = ctx
	_, span := telemetry.Tracer("game").Start(ctx, "game.init")
	span.SetAttributes(
		attribute.String("level", g.level.Name),
		attribute.Int("teams", g.level.Teams),
		attribute.Int("characters", len(g.resolver.World().Characters())),
	)
	span.End()

	g.scheduler.Start(ctx)
}

// restart reloads the level and starts over.
func (g *Game) restart() {
	w, err := world.Load(g.level, g.classes)
	if err != nil {
		g.faults.Report(fault.New("game.restart", "reload level %q: %v", g.level.Name, err))
		return
	}
	g.log.Info("restarting", "level", g.level.Name)

	g.queue.Clear()
	g.resolver.SetWorld(w)
	g.scheduler.Reset()
	g.menu.Reset()
	g.renderer.Reset()
	g.start(g.ctx)
}

func (g *Game) render() {
	g.renderer.Render(ui.View{
		World:     g.resolver.World(),
		Team:      g.scheduler.CurrentTeam(),
		HumanTeam: g.scheduler.HumanTeam(),
		Selected:  g.scheduler.Selected(),
		Message:   g.menu.Message(),
		Options:   g.menu.Options(),
		Preview:   g.menu.Preview(),
		Effects:   g.queue.Showing(),
	})
}

// handleEvent processes a single terminal event.
func (g *Game) handleEvent(ctx context.Context, ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		g.screen.Sync()
		return
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC || (ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q')) {
			g.running = false
			return
		}
	}

	if mev, ok := g.renderer.Translate(ev, g.menu.Options()); ok {
		g.menu.Handle(ctx, mev)
	}
}

// Close cleans up game resources.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
	}
}
