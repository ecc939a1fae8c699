package action

import (
	"fmt"
	"slices"

	"github.com/samdwyer/gridtactics/internal/entity"
	"github.com/samdwyer/gridtactics/internal/grid"
)

// Action is one concrete use of a Kind. Which of Target, Square and Path are
// set follows the kind's Shape. When Path is set, Path[0] is the subject's
// square and consecutive entries are 8-adjacent.
type Action struct {
	Kind    Kind
	Subject *entity.Entity
	Target  *entity.Entity
	Square  grid.Position
	Path    []grid.Position
}

// NewMove walks the subject along path to its last square.
func NewMove(subject *entity.Entity, path []grid.Position) Action {
	a := Action{Kind: Move, Subject: subject, Path: slices.Clone(path)}
	if len(path) > 0 {
		a.Square = path[len(path)-1]
	}
	return a
}

// NewMeleeAttack walks the subject along path up to, but not onto, the
// target's square and strikes it.
func NewMeleeAttack(subject, target *entity.Entity, path []grid.Position) Action {
	return withPathTarget(MeleeAttack, subject, target, path)
}

// NewInteract walks the subject along path up to the target and uses it.
func NewInteract(subject, target *entity.Entity, path []grid.Position) Action {
	return withPathTarget(Interact, subject, target, path)
}

func withPathTarget(k Kind, subject, target *entity.Entity, path []grid.Position) Action {
	a := Action{Kind: k, Subject: subject, Target: target, Path: slices.Clone(path)}
	if target != nil {
		a.Square = target.Pos
	}
	return a
}

// NewSwapPlaces exchanges squares with a teammate.
func NewSwapPlaces(subject, target *entity.Entity) Action {
	return Action{Kind: SwapPlaces, Subject: subject, Target: target, Square: posOf(target)}
}

// NewRangedAttack shoots a target within RangedAttackRange.
func NewRangedAttack(subject, target *entity.Entity) Action {
	return Action{Kind: RangedAttack, Subject: subject, Target: target, Square: posOf(target)}
}

// NewSpecialAttack strikes every adjacent enemy.
func NewSpecialAttack(subject *entity.Entity) Action {
	return Action{Kind: SpecialAttack, Subject: subject, Square: posOf(subject)}
}

// NewFireballSpell hurls a fireball at square.
func NewFireballSpell(subject *entity.Entity, square grid.Position) Action {
	return Action{Kind: FireballSpell, Subject: subject, Square: square}
}

// NewEndTurn spends the subject's remaining action points.
func NewEndTurn(subject *entity.Entity) Action {
	return Action{Kind: EndTurn, Subject: subject, Square: posOf(subject)}
}

func posOf(e *entity.Entity) grid.Position {
	if e == nil {
		return grid.Position{}
	}
	return e.Pos
}

// Cost returns the action-point cost of a. Undeclared kinds cost 0.
func (a Action) Cost() int {
	d, ok := a.Kind.Describe()
	if !ok {
		return 0
	}
	return d.cost(a)
}

// String describes the action for logs.
func (a Action) String() string {
	subject := "<nil>"
	if a.Subject != nil {
		subject = a.Subject.Name
	}
	switch {
	case a.Target != nil:
		return fmt.Sprintf("%s %s -> %s %v", a.Kind, subject, a.Target.Name, a.Square)
	case len(a.Path) > 0:
		return fmt.Sprintf("%s %s via %v", a.Kind, subject, a.Path)
	default:
		return fmt.Sprintf("%s %s", a.Kind, subject)
	}
}
