// Package ai picks actions for characters not controlled by the player.
package ai

import (
	"context"

	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/gridtactics/internal/action"
	"github.com/samdwyer/gridtactics/internal/entity"
	"github.com/samdwyer/gridtactics/internal/grid"
	"github.com/samdwyer/gridtactics/internal/resolve"
	"github.com/samdwyer/gridtactics/internal/telemetry"
	"github.com/samdwyer/gridtactics/internal/world"
)

// Rules is the view of the resolution pipeline the AI needs.
type Rules interface {
	World() *world.World
	Check(a action.Action) resolve.CheckResult
}

// Planner chooses one action at a time for a character.
type Planner struct {
	rules Rules
	log   logr.Logger
}

// NewPlanner creates a planner that validates its choices against rules.
func NewPlanner(rules Rules, log logr.Logger) *Planner {
	return &Planner{rules: rules, log: log.WithName("ai")}
}

// ChooseAction returns a legal action for subject. It walks toward the
// nearest enemy by path length and attacks when it can get there. When no
// enemy is within twice its speed, or no shorter move is legal, it ends the
// turn.
func (p *Planner) ChooseAction(ctx context.Context, subject *entity.Entity) action.Action {
	_, span := telemetry.Tracer("ai").Start(ctx, "ai.choose")
	defer span.End()

	a, distance := p.choose(subject)
	span.SetAttributes(
		attribute.String("subject", subject.Name),
		attribute.String("kind", a.Kind.String()),
		attribute.Int("target_distance", distance),
	)
	p.log.V(1).Info("chose action", "subject", subject.ID, "action", a.String(), "target_distance", distance)
	return a
}

func (p *Planner) choose(subject *entity.Entity) (action.Action, int) {
	w := p.rules.World()
	m := w.FindPaths(subject.Pos, 2*subject.Character.Speed)

	target, path := nearestEnemy(w, m, subject)
	if target == nil {
		return action.NewEndTurn(subject), -1
	}
	distance := len(path) - 1

	if attack := action.NewMeleeAttack(subject, target, path); p.rules.Check(attack).Valid {
		return attack, distance
	}

	// Only Move is retried on the shortened path.
	for len(path) > 2 {
		path = path[:len(path)-1]
		if move := action.NewMove(subject, path); p.rules.Check(move).Valid {
			return move, distance
		}
	}
	return action.NewEndTurn(subject), distance
}

// nearestEnemy returns the first living character of another team with the
// shortest path from subject in m, and that path.
func nearestEnemy(w *world.World, m *grid.PathMap, subject *entity.Entity) (*entity.Entity, []grid.Position) {
	var (
		best     *entity.Entity
		bestPath []grid.Position
	)
	for _, c := range w.Characters() {
		if c.Character.Team == subject.Character.Team || !c.Character.IsAlive() {
			continue
		}
		path := m.Path(subject.Pos, c.Pos)
		if path == nil {
			continue
		}
		if best == nil || len(path) < len(bestPath) {
			best, bestPath = c, path
		}
	}
	return best, bestPath
}
