// Package menu turns the player's clicks and button presses into actions.
package menu

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/samdwyer/gridtactics/internal/action"
	"github.com/samdwyer/gridtactics/internal/entity"
	"github.com/samdwyer/gridtactics/internal/grid"
	"github.com/samdwyer/gridtactics/internal/resolve"
	"github.com/samdwyer/gridtactics/internal/turn"
	"github.com/samdwyer/gridtactics/internal/world"
)

// Mode is what the menu is waiting for.
type Mode int

const (
	// ModeInactive - it is not the player's turn.
	ModeInactive Mode = iota
	// ModeChooseAction - waiting for an action button or a board click.
	ModeChooseAction
	// ModeChooseTarget - an action needing a target or square is pending.
	ModeChooseTarget
	// ModeBusy - an action is resolving; input is ignored.
	ModeBusy
	// ModeGameOver - only restart is offered.
	ModeGameOver
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case ModeInactive:
		return "inactive"
	case ModeChooseAction:
		return "choose_action"
	case ModeChooseTarget:
		return "choose_target"
	case ModeBusy:
		return "busy"
	case ModeGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Turn is the view of the scheduler the menu needs.
type Turn interface {
	IsOnCurrentTeam(e *entity.Entity) bool
	CanMoveThisTurn(e *entity.Entity) bool
	Selected() *entity.Entity
	Select(e *entity.Entity) bool
	EndCharacter(e *entity.Entity)
}

// Executor validates and runs actions.
type Executor interface {
	World() *world.World
	Check(a action.Action) resolve.CheckResult
	Execute(ctx context.Context, a action.Action, onComplete func()) resolve.CheckResult
}

// Machine is the player's side of the turn: it receives input requests from
// the scheduler and events from the front end.
type Machine struct {
	turn    Turn
	exec    Executor
	restart func()
	log     logr.Logger

	mode    Mode
	subject *entity.Entity
	pending action.Kind
	message string
	preview []grid.Position
}

// New creates a menu. restart is called when the player asks for a new game.
func New(t Turn, exec Executor, restart func(), log logr.Logger) *Machine {
	return &Machine{turn: t, exec: exec, restart: restart, log: log.WithName("menu")}
}

// Mode returns the current mode.
func (m *Machine) Mode() Mode { return m.mode }

// Subject returns the character the player is commanding, or nil.
func (m *Machine) Subject() *entity.Entity { return m.subject }

// Pending returns the action kind awaiting a target in ModeChooseTarget.
func (m *Machine) Pending() action.Kind { return m.pending }

// Message returns the latest prompt or rejection reason.
func (m *Machine) Message() string { return m.message }

// RequestInput hands control of c to the player.
func (m *Machine) RequestInput(c *entity.Entity) {
	m.subject = c
	m.mode = ModeChooseAction
	m.message = fmt.Sprintf("%s's turn (%d AP)", c.Name, c.Character.ActionPoints)
}

// GameOver switches to the terminal menu.
func (m *Machine) GameOver(o turn.Outcome) {
	m.mode = ModeGameOver
	m.subject = nil
	m.message = o.Message() + " Press R to play again."
}

// Reset returns the menu to its initial state.
func (m *Machine) Reset() {
	m.mode = ModeInactive
	m.subject = nil
	m.message = ""
}

// Options returns the buttons to show in the current mode.
func (m *Machine) Options() []Option {
	switch m.mode {
	case ModeChooseAction, ModeChooseTarget:
		var opts []Option
		for _, k := range action.Kinds() {
			d, _ := k.Describe()
			if d.AlwaysAvailable || m.subject.Character.Knows(d.ID) {
				opts = append(opts, Option{Label: d.Name, Event: ButtonPressed{Kind: k}})
			}
		}
		if m.mode == ModeChooseTarget {
			opts = append(opts, Option{Label: "Cancel", Event: CancelPressed{}})
		}
		return opts
	case ModeGameOver:
		return []Option{{Label: "Restart", Event: RestartPressed{}}}
	default:
		return nil
	}
}

// Handle applies one player event.
func (m *Machine) Handle(ctx context.Context, ev Event) {
	switch m.mode {
	case ModeChooseAction, ModeChooseTarget:
		m.handleTurnEvent(ctx, ev)
	case ModeGameOver:
		if _, ok := ev.(RestartPressed); ok {
			m.log.Info("restart requested")
			m.Reset()
			if m.restart != nil {
				m.restart()
			}
		}
	}
}

func (m *Machine) handleTurnEvent(ctx context.Context, ev Event) {
	switch ev := ev.(type) {
	case ButtonPressed:
		m.choose(ctx, ev.Kind)
	case CancelPressed:
		if m.mode == ModeChooseTarget {
			m.mode = ModeChooseAction
			m.message = "Choose an action"
		}
	case TileClicked:
		if ev.Entity == nil {
			ev.Entity = m.exec.World().EntityAt(ev.Pos)
		}
		if m.mode == ModeChooseTarget {
			m.execute(ctx, m.build(m.pending, ev.Pos, ev.Entity))
			return
		}
		m.clickBoard(ctx, ev)
	}
}

// choose starts kind: nullary kinds run at once, the rest wait for a target.
func (m *Machine) choose(ctx context.Context, k action.Kind) {
	d, ok := k.Describe()
	if !ok {
		return
	}
	if d.Shape == action.ShapeNone {
		m.execute(ctx, m.build(k, m.subject.Pos, nil))
		return
	}
	m.mode = ModeChooseTarget
	m.pending = k
	m.message = "Choose a target for " + d.Name
	m.preview = m.targets()
}

// clickBoard interprets a click made without choosing an action first:
// select a teammate, attack an enemy, use a door or lever, or walk.
func (m *Machine) clickBoard(ctx context.Context, ev TileClicked) {
	t := ev.Entity
	switch {
	case t == m.subject:
		m.message = "Choose an action"
	case t.IsCharacter() && m.turn.IsOnCurrentTeam(t):
		if !m.turn.Select(t) {
			m.message = t.Name + " has no action points left"
		}
	case t.IsCharacter():
		m.execute(ctx, m.build(action.MeleeAttack, ev.Pos, t))
	case t != nil && t.Interactable():
		m.execute(ctx, m.build(action.Interact, ev.Pos, t))
	default:
		m.execute(ctx, m.build(action.Move, ev.Pos, nil))
	}
}

// build makes a candidate action of kind k aimed at pos.
func (m *Machine) build(k action.Kind, pos grid.Position, target *entity.Entity) action.Action {
	s := m.subject
	switch k {
	case action.Move:
		return action.NewMove(s, m.pathTo(pos, s.Character.Speed))
	case action.MeleeAttack:
		return action.NewMeleeAttack(s, target, m.pathTo(pos, s.Character.Speed+1))
	case action.Interact:
		return action.NewInteract(s, target, m.pathTo(pos, s.Character.Speed+1))
	case action.SwapPlaces:
		return action.NewSwapPlaces(s, target)
	case action.RangedAttack:
		return action.NewRangedAttack(s, target)
	case action.SpecialAttack:
		return action.NewSpecialAttack(s)
	case action.FireballSpell:
		return action.NewFireballSpell(s, pos)
	default:
		return action.NewEndTurn(s)
	}
}

// pathTo returns the shortest path to pos within budget, or the direct
// two-square path when pos was not reached so that Check explains why.
func (m *Machine) pathTo(pos grid.Position, budget int) []grid.Position {
	from := m.subject.Pos
	if path := m.exec.World().FindPaths(from, budget).Path(from, pos); path != nil {
		return path
	}
	return []grid.Position{from, pos}
}

// execute runs a, or shows why it was refused.
func (m *Machine) execute(ctx context.Context, a action.Action) {
	prev := m.mode
	subject := m.subject

	m.mode = ModeBusy
	m.message = subject.Name + ": " + a.Kind.Name()
	res := m.exec.Execute(ctx, a, func() { m.turn.EndCharacter(subject) })
	if !res.Valid {
		m.mode = prev
		m.message = res.Reason
		m.log.V(1).Info("action refused", "action", a.String(), "reason", res.Reason)
	}
}

// Preview returns the squares where a click would succeed for the pending
// action, for highlighting. It is empty outside ModeChooseTarget.
func (m *Machine) Preview() []grid.Position {
	if m.mode != ModeChooseTarget {
		return nil
	}
	return m.preview
}

func (m *Machine) targets() []grid.Position {
	w := m.exec.World()
	var out []grid.Position
	for y := 0; y < w.Height; y++ {
		for x := 0; x < w.Width; x++ {
			p := grid.Pos(x, y)
			if m.exec.Check(m.build(m.pending, p, w.EntityAt(p))).Valid {
				out = append(out, p)
			}
		}
	}
	return out
}
