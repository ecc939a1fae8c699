package resolve

import (
	"fmt"

	"github.com/samdwyer/gridtactics/internal/action"
	"github.com/samdwyer/gridtactics/internal/entity"
	"github.com/samdwyer/gridtactics/internal/fault"
	"github.com/samdwyer/gridtactics/internal/grid"
)

// Check validates a without changing any state.
func (r *Resolver) Check(a action.Action) CheckResult {
	if res := r.commonCheck(a); !res.Valid {
		return res
	}

	switch a.Kind {
	case action.Move:
		return r.checkMove(a)
	case action.MeleeAttack:
		return r.checkApproach(a, "attack", func(t *entity.Entity) string {
			if !isEnemy(a.Subject, t) {
				return "You can only attack enemies"
			}
			return ""
		})
	case action.Interact:
		return r.checkApproach(a, "use", func(t *entity.Entity) string {
			if !t.Interactable() {
				return "There is nothing to use there"
			}
			if t.Kind == entity.KindDoor && t.Door.Open && r.occupiedByOther(t) {
				return "Something is in the doorway"
			}
			return ""
		})
	case action.SwapPlaces:
		return r.checkSwap(a)
	case action.RangedAttack:
		return r.checkRanged(a)
	case action.SpecialAttack:
		return OK()
	case action.FireballSpell:
		return r.checkFireball(a)
	case action.EndTurn:
		return OK()
	default:
		r.faults.Report(fault.New("resolve.check", "unhandled action kind %d", a.Kind))
		return Reject("That action is not available")
	}
}

// commonCheck applies the gates shared by every kind: the subject must be
// an active character, must know the action, and must afford it.
func (r *Resolver) commonCheck(a action.Action) CheckResult {
	d, ok := a.Kind.Describe()
	if !ok {
		r.faults.Report(fault.New("resolve.check", "unknown action kind %d", a.Kind))
		return Reject("That action is not available")
	}
	if !a.Subject.IsCharacter() {
		return Reject("Select a character first")
	}
	c := a.Subject.Character
	if !c.IsAlive() || !r.world.Contains(a.Subject) {
		return Reject(a.Subject.Name + " is out of the fight")
	}
	if !d.AlwaysAvailable && !c.Knows(d.ID) {
		return Reject(fmt.Sprintf("%s does not know %s", a.Subject.Name, d.Name))
	}
	if cost := a.Cost(); c.ActionPoints < cost {
		return Reject(fmt.Sprintf("Not enough action points (need %d, have %d)", cost, c.ActionPoints))
	}
	return OK()
}

func (r *Resolver) checkMove(a action.Action) CheckResult {
	if len(a.Path) < 2 {
		return Reject("Choose where to move")
	}
	speed := a.Subject.Character.Speed
	m := r.world.FindPaths(a.Subject.Pos, speed)
	if !m.IsPathValid(a.Subject.Pos, a.Path, true) {
		return Reject("You can't move there")
	}
	if len(a.Path)-1 > speed || !m.CanMoveTo(a.Path[len(a.Path)-1]) {
		return Reject("That is too far to move")
	}
	return OK()
}

// checkApproach validates kinds that walk up to a target and act on its
// square. predicate returns a rejection reason or "".
func (r *Resolver) checkApproach(a action.Action, verb string, predicate func(*entity.Entity) string) CheckResult {
	t := a.Target
	if t == nil || !r.world.Contains(t) {
		return Reject("There is nothing there to " + verb)
	}
	if reason := predicate(t); reason != "" {
		return Reject(reason)
	}
	if len(a.Path) < 2 || a.Path[len(a.Path)-1] != t.Pos {
		return Reject("You can't reach that")
	}
	speed := a.Subject.Character.Speed
	m := r.world.FindPaths(a.Subject.Pos, speed+1)
	if !m.IsPathValid(a.Subject.Pos, a.Path, false) {
		return Reject("You can't reach that")
	}
	if len(a.Path)-2 > speed || !m.IsReachable(t.Pos) {
		return Reject("That is too far away to " + verb)
	}
	return OK()
}

func (r *Resolver) checkSwap(a action.Action) CheckResult {
	t := a.Target
	switch {
	case t == nil || !r.world.Contains(t):
		return Reject("There is no one there to swap with")
	case t == a.Subject:
		return Reject("You cannot swap with yourself")
	case !t.IsCharacter():
		return Reject("You can only swap with a character")
	case t.Character.Team != a.Subject.Character.Team:
		return Reject("You can only swap with a teammate")
	}
	return OK()
}

func (r *Resolver) checkRanged(a action.Action) CheckResult {
	t := a.Target
	if t == nil || !r.world.Contains(t) || !isEnemy(a.Subject, t) {
		return Reject("You can only shoot at enemies")
	}
	if grid.Distance(a.Subject.Pos, t.Pos) > action.RangedAttackRange {
		return Reject(fmt.Sprintf("Target is out of range (max %d)", action.RangedAttackRange))
	}
	return OK()
}

func (r *Resolver) checkFireball(a action.Action) CheckResult {
	if !r.world.InBounds(a.Square) {
		return Reject("Choose a square on the board")
	}
	if grid.Distance(a.Subject.Pos, a.Square) > action.FireballRange {
		return Reject(fmt.Sprintf("Target is out of range (max %d)", action.FireballRange))
	}
	return OK()
}

func isEnemy(subject, t *entity.Entity) bool {
	return t.IsCharacter() && t.Character.IsAlive() &&
		t.Character.Team != subject.Character.Team
}

// occupiedByOther reports whether a blocking entity other than e shares e's square.
func (r *Resolver) occupiedByOther(e *entity.Entity) bool {
	for _, o := range r.world.Entities {
		if o != e && o.Pos == e.Pos && o.BlocksMovement() {
			return true
		}
	}
	return false
}
