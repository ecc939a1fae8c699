// Package anim sequences presentation effects as a tree of leaves, series
// and parallel groups. The tree never touches game state; it only tells a
// Player what to show and waits for each effect to report completion.
package anim

import (
	"github.com/samdwyer/gridtactics/internal/entity"
	"github.com/samdwyer/gridtactics/internal/grid"
)

// EffectKind identifies a visual effect.
type EffectKind int

const (
	EffectStep EffectKind = iota // entity moves one square
	EffectLunge                  // entity lunges toward a square and back
	EffectProjectile             // something flies From -> To
	EffectBlast                  // area burst centred on To
	EffectFlash                  // entity flashes (hit, swap, toggle)
	EffectDamageNumber           // floating number above To, fades out
	EffectFade                   // entity fades out of play
)

// String returns the effect name.
func (k EffectKind) String() string {
	switch k {
	case EffectStep:
		return "step"
	case EffectLunge:
		return "lunge"
	case EffectProjectile:
		return "projectile"
	case EffectBlast:
		return "blast"
	case EffectFlash:
		return "flash"
	case EffectDamageNumber:
		return "damage_number"
	case EffectFade:
		return "fade"
	default:
		return "unknown"
	}
}

// Effect is one thing for the presentation layer to show.
type Effect struct {
	Kind   EffectKind
	Entity *entity.Entity
	From   grid.Position
	To     grid.Position
	Amount int
}

// Player shows a single effect and calls done once it has finished.
type Player interface {
	Play(e Effect, done func())
}

// Node is a node of an animation tree.
type Node interface {
	run(p Player, done func())
}

type leaf struct{ effect Effect }

type series []Node

type parallel []Node

type noOp struct{}

// Leaf wraps a single effect.
func Leaf(e Effect) Node { return leaf{effect: e} }

// Series runs nodes strictly one after another.
func Series(nodes ...Node) Node { return series(nodes) }

// Parallel starts every node at once and completes after the last of them.
func Parallel(nodes ...Node) Node { return parallel(nodes) }

// NoOp completes immediately.
func NoOp() Node { return noOp{} }

// Run plays n with p and calls done exactly once when the whole tree has
// completed. A nil player completes every leaf immediately.
func Run(n Node, p Player, done func()) {
	if n == nil {
		n = noOp{}
	}
	n.run(p, once(done))
}

func (l leaf) run(p Player, done func()) {
	if p == nil {
		done()
		return
	}
	p.Play(l.effect, once(done))
}

func (s series) run(p Player, done func()) {
	var step func(i int)
	step = func(i int) {
		if i == len(s) {
			done()
			return
		}
		s[i].run(p, once(func() { step(i + 1) }))
	}
	step(0)
}

func (par parallel) run(p Player, done func()) {
	remaining := len(par)
	if remaining == 0 {
		done()
		return
	}
	for _, n := range par {
		n.run(p, once(func() {
			remaining--
			if remaining == 0 {
				done()
			}
		}))
	}
}

func (noOp) run(_ Player, done func()) { done() }

// once guards a completion callback against being invoked twice.
func once(f func()) func() {
	fired := false
	return func() {
		if fired || f == nil {
			return
		}
		fired = true
		f()
	}
}

// Leaves returns the effects of n in tree order.
func Leaves(n Node) []Effect {
	switch n := n.(type) {
	case leaf:
		return []Effect{n.effect}
	case series:
		var out []Effect
		for _, c := range n {
			out = append(out, Leaves(c)...)
		}
		return out
	case parallel:
		var out []Effect
		for _, c := range n {
			out = append(out, Leaves(c)...)
		}
		return out
	default:
		return nil
	}
}
