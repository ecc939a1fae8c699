package resolve

import (
	"github.com/samdwyer/gridtactics/internal/action"
	"github.com/samdwyer/gridtactics/internal/entity"
	"github.com/samdwyer/gridtactics/internal/fault"
	"github.com/samdwyer/gridtactics/internal/grid"
)

// DoStateUpdate commits a, which must already have passed Check. Action
// points are spent first; a character killed by the action is removed from
// the world.
func (r *Resolver) DoStateUpdate(a action.Action) Outcome {
	subject := a.Subject
	out := Outcome{From: subject.Pos, Spent: a.Cost()}
	subject.Character.SpendActionPoints(out.Spent)

	switch a.Kind {
	case action.Move:
		r.walk(subject, a.Path, &out)
	case action.MeleeAttack:
		r.walk(subject, a.Path[:len(a.Path)-1], &out)
		r.damage(a.Target, subject.Character.Attack, &out)
	case action.Interact:
		r.walk(subject, a.Path[:len(a.Path)-1], &out)
		r.toggle(a.Target, &out)
	case action.SwapPlaces:
		subject.Pos, a.Target.Pos = a.Target.Pos, subject.Pos
	case action.RangedAttack:
		r.damage(a.Target, max(subject.Character.Attack-1, 1), &out)
	case action.SpecialAttack:
		for _, t := range r.world.CharactersWithin(subject.Pos, 1) {
			if t != subject && isEnemy(subject, t) {
				r.damage(t, r.rollDamage(action.SpecialAttackMinDamage, action.SpecialAttackMaxDamage), &out)
			}
		}
	case action.FireballSpell:
		for _, t := range r.world.CharactersWithin(a.Square, 1) {
			r.damage(t, r.rollDamage(action.FireballMinDamage, action.FireballMaxDamage), &out)
		}
	case action.EndTurn:
	default:
		r.faults.Report(fault.New("resolve.update", "unhandled action kind %d", a.Kind),
			"subject", subject.ID)
	}

	return out
}

// walk moves subject along path (path[0] is its current square).
func (r *Resolver) walk(subject *entity.Entity, path []grid.Position, out *Outcome) {
	for _, p := range path[1:] {
		subject.Pos = p
		out.Walked = append(out.Walked, p)
	}
}

func (r *Resolver) damage(t *entity.Entity, amount int, out *Outcome) {
	if !t.IsCharacter() || !t.Character.IsAlive() {
		return
	}
	dealt := t.Character.TakeDamage(amount)
	hit := Hit{Target: t, Damage: dealt}
	if !t.Character.IsAlive() {
		hit.Killed = true
		r.world.Remove(t)
		r.log.Info("character defeated", "name", t.Name, "id", t.ID, "team", t.Character.Team)
	}
	out.Hits = append(out.Hits, hit)
}

func (r *Resolver) toggle(t *entity.Entity, out *Outcome) {
	switch t.Kind {
	case entity.KindDoor:
		t.Door.Open = !t.Door.Open
		out.Toggled = append(out.Toggled, t)
	case entity.KindLever:
		t.Lever.Pulled = !t.Lever.Pulled
		out.Toggled = append(out.Toggled, t)
		for _, id := range t.Lever.Doors {
			door := r.world.ByID(id)
			if door == nil || door.Kind != entity.KindDoor {
				r.faults.Report(fault.New("resolve.update", "lever %s links missing door %s", t.ID, id))
				continue
			}
			if door.Door.Open && r.occupiedByOther(door) {
				continue
			}
			door.Door.Open = !door.Door.Open
			out.Toggled = append(out.Toggled, door)
		}
	default:
		r.faults.Report(fault.New("resolve.update", "interact on non-interactable %s (%s)", t.ID, t.Kind))
	}
}
