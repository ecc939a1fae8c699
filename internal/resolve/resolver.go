// Package resolve validates, applies and animates actions.
//
// Every action goes through three strictly ordered phases: Check decides
// legality without touching state, DoStateUpdate commits the game-state
// change, and Animate shows it and reports completion exactly once.
package resolve

import (
	"context"
	"math/rand"

	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/gridtactics/internal/action"
	"github.com/samdwyer/gridtactics/internal/anim"
	"github.com/samdwyer/gridtactics/internal/entity"
	"github.com/samdwyer/gridtactics/internal/fault"
	"github.com/samdwyer/gridtactics/internal/grid"
	"github.com/samdwyer/gridtactics/internal/telemetry"
	"github.com/samdwyer/gridtactics/internal/world"
)

// CheckResult is the outcome of validating an action. Reason is a message
// for the player and is set exactly when Valid is false.
type CheckResult struct {
	Valid  bool
	Reason string
}

// OK is the passing CheckResult.
func OK() CheckResult { return CheckResult{Valid: true} }

// Reject returns a failing CheckResult with the given reason.
func Reject(reason string) CheckResult { return CheckResult{Reason: reason} }

// Hit records damage dealt to one character.
type Hit struct {
	Target *entity.Entity
	Damage int
	Killed bool
}

// Outcome is what DoStateUpdate changed, for Animate to show.
type Outcome struct {
	From    grid.Position   // subject's square before the action
	Walked  []grid.Position // squares stepped onto, in order
	Hits    []Hit
	Toggled []*entity.Entity // doors and levers that changed state
	Spent   int
}

// Resolver runs the check/update/animate pipeline against a world.
type Resolver struct {
	world  *world.World
	rng    *rand.Rand
	player anim.Player
	faults *fault.Reporter
	log    logr.Logger
}

// New creates a resolver. player may be nil, in which case animations
// complete immediately.
func New(w *world.World, rng *rand.Rand, player anim.Player, faults *fault.Reporter, log logr.Logger) *Resolver {
	return &Resolver{
		world:  w,
		rng:    rng,
		player: player,
		faults: faults,
		log:    log.WithName("resolve"),
	}
}

// World returns the world actions are resolved against.
func (r *Resolver) World() *world.World { return r.world }

// SetWorld swaps in a new world, e.g. after a restart.
func (r *Resolver) SetWorld(w *world.World) { r.world = w }

// Execute checks a and, if legal, applies it and starts its animation.
// onComplete runs once the animation finishes; it is not called for an
// illegal action, whose rejection is returned instead.
func (r *Resolver) Execute(ctx context.Context, a action.Action, onComplete func()) CheckResult {
	_, span := telemetry.Tracer("resolve").Start(ctx, "action.execute")
	defer span.End()

	span.SetAttributes(
		attribute.String("kind", a.Kind.String()),
		attribute.String("subject", nameOf(a.Subject)),
		attribute.Int("ap_cost", a.Cost()),
	)

	res := r.Check(a)
	span.SetAttributes(attribute.Bool("valid", res.Valid))
	if !res.Valid {
		span.SetAttributes(attribute.String("reason", res.Reason))
		r.log.V(1).Info("action rejected", "action", a.String(), "reason", res.Reason)
		return res
	}

	out := r.DoStateUpdate(a)
	span.SetAttributes(attribute.Int("hits", len(out.Hits)))
	r.log.V(1).Info("action resolved", "action", a.String(), "spent", out.Spent, "hits", len(out.Hits))

	r.Animate(a, out, onComplete)
	return res
}

func nameOf(e *entity.Entity) string {
	if e == nil {
		return ""
	}
	return e.Name
}

// rollDamage returns a uniform integer in [lo, hi].
func (r *Resolver) rollDamage(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.rng.Intn(hi-lo+1)
}
