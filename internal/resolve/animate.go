package resolve

import (
	"github.com/samdwyer/gridtactics/internal/action"
	"github.com/samdwyer/gridtactics/internal/anim"
	"github.com/samdwyer/gridtactics/internal/fault"
)

// Animate shows the outcome of a and calls done exactly once when finished.
func (r *Resolver) Animate(a action.Action, out Outcome, done func()) {
	anim.Run(r.Sequence(a, out), r.player, done)
}

// Sequence builds the animation tree for an applied action.
func (r *Resolver) Sequence(a action.Action, out Outcome) anim.Node {
	subject := a.Subject

	switch a.Kind {
	case action.Move:
		return r.walkNode(a, out)
	case action.MeleeAttack:
		return anim.Series(
			r.walkNode(a, out),
			anim.Leaf(anim.Effect{Kind: anim.EffectLunge, Entity: subject, From: subject.Pos, To: a.Square}),
			hitsNode(out.Hits),
		)
	case action.Interact:
		flashes := make([]anim.Node, 0, len(out.Toggled))
		for _, t := range out.Toggled {
			flashes = append(flashes, anim.Leaf(anim.Effect{Kind: anim.EffectFlash, Entity: t, To: t.Pos}))
		}
		return anim.Series(r.walkNode(a, out), anim.Parallel(flashes...))
	case action.SwapPlaces:
		return anim.Parallel(
			anim.Leaf(anim.Effect{Kind: anim.EffectFlash, Entity: subject, From: out.From, To: subject.Pos}),
			anim.Leaf(anim.Effect{Kind: anim.EffectFlash, Entity: a.Target, From: subject.Pos, To: a.Target.Pos}),
		)
	case action.RangedAttack:
		return anim.Series(
			anim.Leaf(anim.Effect{Kind: anim.EffectProjectile, Entity: subject, From: subject.Pos, To: a.Square}),
			hitsNode(out.Hits),
		)
	case action.SpecialAttack:
		return anim.Series(
			anim.Leaf(anim.Effect{Kind: anim.EffectBlast, Entity: subject, From: subject.Pos, To: subject.Pos}),
			hitsNode(out.Hits),
		)
	case action.FireballSpell:
		return anim.Series(
			anim.Leaf(anim.Effect{Kind: anim.EffectProjectile, Entity: subject, From: subject.Pos, To: a.Square}),
			anim.Leaf(anim.Effect{Kind: anim.EffectBlast, From: a.Square, To: a.Square}),
			hitsNode(out.Hits),
		)
	case action.EndTurn:
		return anim.NoOp()
	default:
		r.faults.Report(fault.New("resolve.animate", "unhandled action kind %d", a.Kind))
		return anim.NoOp()
	}
}

func (r *Resolver) walkNode(a action.Action, out Outcome) anim.Node {
	steps := make([]anim.Node, 0, len(out.Walked))
	from := out.From
	for _, p := range out.Walked {
		steps = append(steps, anim.Leaf(anim.Effect{Kind: anim.EffectStep, Entity: a.Subject, From: from, To: p}))
		from = p
	}
	return anim.Series(steps...)
}

// hitsNode flashes every hit target with its damage number at once; a
// defeated target then fades out.
func hitsNode(hits []Hit) anim.Node {
	nodes := make([]anim.Node, 0, len(hits))
	for _, h := range hits {
		impact := anim.Parallel(
			anim.Leaf(anim.Effect{Kind: anim.EffectFlash, Entity: h.Target, To: h.Target.Pos}),
			anim.Leaf(anim.Effect{Kind: anim.EffectDamageNumber, Entity: h.Target, To: h.Target.Pos, Amount: h.Damage}),
		)
		if h.Killed {
			impact = anim.Series(impact, anim.Leaf(anim.Effect{Kind: anim.EffectFade, Entity: h.Target, To: h.Target.Pos}))
		}
		nodes = append(nodes, impact)
	}
	return anim.Parallel(nodes...)
}
