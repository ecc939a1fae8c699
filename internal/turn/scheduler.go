// Package turn cycles through teams and the characters on them, handing
// each character to the player or the AI and detecting the end of the game.
package turn

import (
	"context"

	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/gridtactics/internal/action"
	"github.com/samdwyer/gridtactics/internal/entity"
	"github.com/samdwyer/gridtactics/internal/fault"
	"github.com/samdwyer/gridtactics/internal/grid"
	"github.com/samdwyer/gridtactics/internal/resolve"
	"github.com/samdwyer/gridtactics/internal/telemetry"
	"github.com/samdwyer/gridtactics/internal/world"
)

// Executor runs actions through the resolution pipeline.
type Executor interface {
	World() *world.World
	Execute(ctx context.Context, a action.Action, onComplete func()) resolve.CheckResult
}

// Chooser picks actions for computer-controlled characters.
type Chooser interface {
	ChooseAction(ctx context.Context, subject *entity.Entity) action.Action
}

// Presenter shows turn state to the player.
type Presenter interface {
	ClearHighlights()
	Highlight(p grid.Position)
	Focus(e *entity.Entity)
	ShowGameOver(o Outcome)
}

// InputRequester collects the human player's decisions.
type InputRequester interface {
	RequestInput(subject *entity.Entity)
	GameOver(o Outcome)
}

// Config holds the fixed parameters of a scheduler.
type Config struct {
	NumTeams  int
	HumanTeam int
}

// Scheduler owns the turn state: the current team, its roster and the
// selected character. It is not safe for concurrent use; every call must
// come from the goroutine that drives the game.
type Scheduler struct {
	cfg       Config
	exec      Executor
	ai        Chooser
	presenter Presenter
	input     InputRequester
	faults    *fault.Reporter
	log       logr.Logger
	ctx       context.Context

	state       State
	outcome     Outcome
	currentTeam int
	members     []*entity.Entity
	selected    *entity.Entity

	tasks    []func()
	draining bool
}

// New creates a scheduler. Start begins the first round.
func New(cfg Config, exec Executor, ai Chooser, presenter Presenter, input InputRequester, faults *fault.Reporter, log logr.Logger) *Scheduler {
	return &Scheduler{
		cfg:       cfg,
		exec:      exec,
		ai:        ai,
		presenter: presenter,
		input:     input,
		faults:    faults,
		log:       log.WithName("turn"),
		ctx:       context.Background(),
	}
}

// SetInput replaces the human input collaborator.
func (s *Scheduler) SetInput(input InputRequester) { s.input = input }

// =============================================================================
// Queries
// =============================================================================

// State returns the scheduler state.
func (s *Scheduler) State() State { return s.state }

// Outcome returns how the game ended, or OutcomeNone while it runs.
func (s *Scheduler) Outcome() Outcome { return s.outcome }

// CurrentTeam returns the team whose turn it is.
func (s *Scheduler) CurrentTeam() int { return s.currentTeam }

// HumanTeam returns the team controlled by the player.
func (s *Scheduler) HumanTeam() int { return s.cfg.HumanTeam }

// Selected returns the character holding the turn, or nil.
func (s *Scheduler) Selected() *entity.Entity { return s.selected }

// Members returns the roster snapshotted when the current team started.
func (s *Scheduler) Members() []*entity.Entity { return s.members }

// IsOnCurrentTeam reports whether e is a character on the team whose turn it is.
func (s *Scheduler) IsOnCurrentTeam(e *entity.Entity) bool {
	if s.state == StateGameOver || s.state == StateIdle || !e.IsCharacter() {
		return false
	}
	return e.Character.Team == s.currentTeam
}

// CanMoveThisTurn reports whether e may still act this round.
func (s *Scheduler) CanMoveThisTurn(e *entity.Entity) bool {
	return s.IsOnCurrentTeam(e) && e.Character.Ready() && s.exec.World().Contains(e)
}

// =============================================================================
// Turn cycle
// =============================================================================

// Start begins play with the first team that has a ready character,
// counting from team 0.
func (s *Scheduler) Start(ctx context.Context) {
	s.ctx = ctx
	s.post(func() {
		s.log.Info("game started", "teams", s.cfg.NumTeams, "human_team", s.cfg.HumanTeam)
		if s.CheckForGameEnd() {
			return
		}
		s.currentTeam = s.cfg.NumTeams - 1
		s.EndTeam()
	})
}

// Reset clears all turn state so Start can begin a new game.
func (s *Scheduler) Reset() {
	s.state = StateIdle
	s.outcome = OutcomeNone
	s.currentTeam = 0
	s.members = nil
	s.selected = nil
	s.tasks = nil
}

// StartTeam snapshots team's characters, readies each of them and hands the
// turn to the first one. It reports false, leaving the team without an
// active character, when nobody on the team can act.
func (s *Scheduler) StartTeam(team int) bool {
	_, span := telemetry.Tracer("turn").Start(s.ctx, "turn.start_team")
	defer span.End()

	s.currentTeam = team
	s.members = s.exec.World().TeamMembers(team)
	for _, m := range s.members {
		m.Character.ReadyActions()
	}
	s.state = StateTeamActive
	s.selected = nil

	first := s.nextReady(nil)
	span.SetAttributes(
		attribute.Int("team", team),
		attribute.Int("members", len(s.members)),
		attribute.Bool("ready", first != nil),
	)
	if first == nil {
		return false
	}

	s.log.V(1).Info("team started", "team", team, "members", len(s.members))
	s.post(func() { s.StartCharacter(first) })
	return true
}

// StartCharacter gives c the turn. Human characters wait for input; the AI
// acts at once and the turn moves on when the action's animation finishes.
func (s *Scheduler) StartCharacter(c *entity.Entity) {
	ctx, span := telemetry.Tracer("turn").Start(s.ctx, "turn.start_character")
	defer span.End()

	span.SetAttributes(
		attribute.String("character", c.Name),
		attribute.String("id", c.ID),
		attribute.Int("team", c.Character.Team),
		attribute.Int("ap", c.Character.ActionPoints),
	)

	s.state = StateCharacterActive
	s.selected = c
	s.showReady()
	s.presenter.Focus(c)

	if c.Character.Team == s.cfg.HumanTeam {
		s.input.RequestInput(c)
		return
	}

	a := s.ai.ChooseAction(ctx, c)
	if res := s.exec.Execute(ctx, a, func() { s.EndCharacter(c) }); !res.Valid {
		s.faults.Report(fault.New("turn.start_character", "AI chose an illegal action %s: %s", a, res.Reason),
			"character", c.ID)
		c.Character.ActionPoints = 0
		s.EndCharacter(c)
	}
}

// EndCharacter finishes c's current action. If the game is not over the
// turn passes to the next ready character on the team, c itself first, or
// to the next team.
func (s *Scheduler) EndCharacter(c *entity.Entity) {
	s.post(func() {
		if s.state == StateGameOver {
			return
		}
		s.selected = nil
		if s.CheckForGameEnd() {
			return
		}
		if next := s.nextReady(c); next != nil {
			s.StartCharacter(next)
			return
		}
		s.EndTeam()
	})
}

// EndTeam passes play round-robin to the next team with a ready character.
// If no team can act after a full cycle an internal error is reported and
// the scheduler goes idle.
func (s *Scheduler) EndTeam() {
	_, span := telemetry.Tracer("turn").Start(s.ctx, "turn.end_team")
	defer span.End()

	from := s.currentTeam
	span.SetAttributes(attribute.Int("from_team", from))
	for i := 1; i <= s.cfg.NumTeams; i++ {
		team := (from + i) % s.cfg.NumTeams
		if s.StartTeam(team) {
			span.SetAttributes(attribute.Int("to_team", team))
			return
		}
	}

	s.state = StateIdle
	s.presenter.ClearHighlights()
	span.SetAttributes(attribute.Bool("stalled", true))
	s.faults.Report(fault.New("turn.end_team", "no team has a ready character after %d attempts", s.cfg.NumTeams))
}

// CheckForGameEnd reports whether one side has been wiped out and, if so,
// moves to StateGameOver and tells the player. Defeat is checked first.
func (s *Scheduler) CheckForGameEnd() bool {
	if s.state == StateGameOver {
		return true
	}

	humans, others := 0, 0
	for _, c := range s.exec.World().Characters() {
		if !c.Character.IsAlive() {
			continue
		}
		if c.Character.Team == s.cfg.HumanTeam {
			humans++
		} else {
			others++
		}
	}

	switch {
	case humans == 0:
		s.endGame(OutcomeDefeat)
	case others == 0:
		s.endGame(OutcomeVictory)
	default:
		return false
	}
	return true
}

func (s *Scheduler) endGame(o Outcome) {
	_, span := telemetry.Tracer("turn").Start(s.ctx, "turn.game_end")
	span.SetAttributes(attribute.String("outcome", o.String()))
	span.End()

	s.state = StateGameOver
	s.outcome = o
	s.selected = nil
	s.tasks = nil
	s.log.Info("game over", "outcome", o.String())

	s.presenter.ClearHighlights()
	s.presenter.ShowGameOver(o)
	s.input.GameOver(o)
}

// Select hands the turn to another ready character on the human team. It
// reports false when that is not allowed.
func (s *Scheduler) Select(c *entity.Entity) bool {
	if s.state != StateCharacterActive || s.currentTeam != s.cfg.HumanTeam || !s.CanMoveThisTurn(c) {
		return false
	}
	if c == s.selected {
		return true
	}
	s.log.V(1).Info("switched character", "from", s.selected.ID, "to", c.ID)
	s.StartCharacter(c)
	return true
}

// nextReady returns prefer if it can still act, else the first ready roster
// member still on the board.
func (s *Scheduler) nextReady(prefer *entity.Entity) *entity.Entity {
	w := s.exec.World()
	if prefer != nil && prefer.Character.Ready() && w.Contains(prefer) {
		return prefer
	}
	for _, m := range s.members {
		if m.Character.Ready() && w.Contains(m) {
			return m
		}
	}
	return nil
}

func (s *Scheduler) showReady() {
	s.presenter.ClearHighlights()
	w := s.exec.World()
	for _, m := range s.members {
		if m.Character.Ready() && w.Contains(m) {
			s.presenter.Highlight(m.Pos)
		}
	}
}

// post queues fn and, unless a drain is already running further up the
// stack, runs queued tasks until none remain. Completion callbacks that
// fire synchronously therefore never nest turn transitions.
func (s *Scheduler) post(fn func()) {
	s.tasks = append(s.tasks, fn)
	if s.draining {
		return
	}
	s.draining = true
	defer func() { s.draining = false }()
	for len(s.tasks) > 0 {
		next := s.tasks[0]
		s.tasks = s.tasks[1:]
		next()
	}
}
