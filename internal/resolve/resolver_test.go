package resolve

import (
	"context"
	"math/rand"
	"strings"
	"testing"

	"github.com/go-logr/logr"

	"github.com/samdwyer/gridtactics/internal/action"
	"github.com/samdwyer/gridtactics/internal/anim"
	"github.com/samdwyer/gridtactics/internal/entity"
	"github.com/samdwyer/gridtactics/internal/fault"
	"github.com/samdwyer/gridtactics/internal/grid"
	"github.com/samdwyer/gridtactics/internal/world"
)

// testWorld is a 10x10 open board with a resolver over it.
type testWorld struct {
	w      *world.World
	r      *Resolver
	player *anim.Immediate
	faults *fault.Reporter
}

func newTestWorld() *testWorld {
	w := world.New(10, 10)
	player := &anim.Immediate{}
	faults := fault.NewReporter(logr.Discard(), nil)
	return &testWorld{
		w:      w,
		r:      New(w, rand.New(rand.NewSource(1)), player, faults, logr.Discard()),
		player: player,
		faults: faults,
	}
}

// add places a ready character with speed 3, 10 health, attack 3 and 6 AP.
func (tw *testWorld) add(name string, team, x, y int, actions ...string) *entity.Entity {
	e := entity.NewCharacter(name, team, grid.Pos(x, y), entity.Character{
		Speed:           3,
		MaxHealth:       10,
		Attack:          3,
		MaxActionPoints: 6,
		ActionIDs:       actions,
	})
	e.Character.ReadyActions()
	tw.w.Add(e)
	return e
}

func line(from grid.Position, dx, dy, steps int) []grid.Position {
	path := []grid.Position{from}
	for i := 1; i <= steps; i++ {
		path = append(path, from.Add(dx*i, dy*i))
	}
	return path
}

func wantValid(t *testing.T, name string, res CheckResult) {
	t.Helper()
	if !res.Valid || res.Reason != "" {
		t.Errorf("%s: Check() = %+v, want valid", name, res)
	}
}

func wantReject(t *testing.T, name string, res CheckResult, reason string) {
	t.Helper()
	if res.Valid || !strings.Contains(strings.ToLower(res.Reason), strings.ToLower(reason)) {
		t.Errorf("%s: Check() = %+v, want rejection containing %q", name, res, reason)
	}
}

func TestCommonCheck(t *testing.T) {
	tw := newTestWorld()
	hero := tw.add("Hero", 0, 1, 1)
	foe := tw.add("Foe", 1, 3, 1)

	wantReject(t, "unlearned ranged", tw.r.Check(action.NewRangedAttack(hero, foe)), "does not know")
	wantReject(t, "no subject", tw.r.Check(action.NewEndTurn(nil)), "select a character")

	hero.Character.ActionPoints = 1
	wantReject(t, "too few AP", tw.r.Check(action.NewSwapPlaces(hero, foe)), "need 2, have 1")

	tw.w.Remove(hero)
	wantReject(t, "removed subject", tw.r.Check(action.NewEndTurn(hero)), "out of the fight")

	if tw.faults.Count() != 0 {
		t.Errorf("player mistakes reported %d internal faults", tw.faults.Count())
	}
}

func TestUnknownKindIsInternalError(t *testing.T) {
	tw := newTestWorld()
	hero := tw.add("Hero", 0, 1, 1)

	res := tw.r.Check(action.Action{Kind: action.Kind(42), Subject: hero})

	if res.Valid {
		t.Error("unknown kind passed Check")
	}
	if !tw.faults.Alerted() {
		t.Error("unknown kind should raise an internal fault")
	}
}

func TestCheckMove(t *testing.T) {
	tw := newTestWorld()
	hero := tw.add("Hero", 0, 1, 1)
	tw.add("Blocker", 1, 3, 1)

	wantValid(t, "three steps", tw.r.Check(action.NewMove(hero, line(hero.Pos, 1, 1, 3))))
	wantReject(t, "four steps", tw.r.Check(action.NewMove(hero, line(hero.Pos, 1, 1, 4))), "too far")
	wantReject(t, "onto occupied", tw.r.Check(action.NewMove(hero, line(hero.Pos, 1, 0, 2))), "can't move")
	wantReject(t, "stand still", tw.r.Check(action.NewMove(hero, []grid.Position{hero.Pos})), "choose where")
	wantReject(t, "gap", tw.r.Check(action.NewMove(hero, []grid.Position{hero.Pos, grid.Pos(3, 3)})), "can't move")
	wantReject(t, "wrong start", tw.r.Check(action.NewMove(hero, line(grid.Pos(1, 2), 1, 0, 1))), "can't move")
}

func TestMoveUpdatesPositionAndSpends(t *testing.T) {
	tw := newTestWorld()
	hero := tw.add("Hero", 0, 1, 1)
	path := line(hero.Pos, 1, 0, 3)

	done := 0
	res := tw.r.Execute(context.Background(), action.NewMove(hero, path), func() { done++ })

	wantValid(t, "move", res)
	if hero.Pos != grid.Pos(4, 1) {
		t.Errorf("hero at %v, want (4,1)", hero.Pos)
	}
	if hero.Character.ActionPoints != 3 {
		t.Errorf("AP = %d, want 3", hero.Character.ActionPoints)
	}
	if done != 1 {
		t.Errorf("onComplete called %d times, want 1", done)
	}
	if len(tw.player.Played) != 3 {
		t.Errorf("played %d effects, want 3 steps", len(tw.player.Played))
	}
}

func TestExecuteRejectedLeavesStateAlone(t *testing.T) {
	tw := newTestWorld()
	hero := tw.add("Hero", 0, 1, 1)

	done := 0
	res := tw.r.Execute(context.Background(), action.NewMove(hero, line(hero.Pos, 1, 0, 5)), func() { done++ })

	if res.Valid {
		t.Fatal("five-step move should be rejected")
	}
	if done != 0 || hero.Pos != grid.Pos(1, 1) || hero.Character.ActionPoints != 6 {
		t.Errorf("rejected action changed state: done=%d pos=%v AP=%d", done, hero.Pos, hero.Character.ActionPoints)
	}
	if len(tw.player.Played) != 0 {
		t.Error("rejected action should not animate")
	}
}

func TestMeleeAttack(t *testing.T) {
	tw := newTestWorld()
	hero := tw.add("Hero", 0, 1, 1)
	foe := tw.add("Foe", 1, 4, 1)
	friend := tw.add("Friend", 0, 1, 3)

	wantReject(t, "friend", tw.r.Check(action.NewMeleeAttack(hero, friend, line(hero.Pos, 0, 1, 2))), "only attack enemies")
	wantReject(t, "path misses target", tw.r.Check(action.NewMeleeAttack(hero, foe, line(hero.Pos, 1, 0, 2))), "can't reach")
	wantReject(t, "no target", tw.r.Check(action.NewMeleeAttack(hero, nil, line(hero.Pos, 1, 0, 2))), "nothing there")

	a := action.NewMeleeAttack(hero, foe, line(hero.Pos, 1, 0, 3))
	wantValid(t, "approach and strike", tw.r.Check(a))
	if a.Cost() != 4 {
		t.Errorf("Cost() = %d, want 4", a.Cost())
	}

	out := tw.r.DoStateUpdate(a)

	if hero.Pos != grid.Pos(3, 1) {
		t.Errorf("attacker at %v, want (3,1) next to the target", hero.Pos)
	}
	if foe.Character.Health != 7 {
		t.Errorf("target health = %d, want 7", foe.Character.Health)
	}
	if len(out.Hits) != 1 || out.Hits[0].Damage != 3 || out.Hits[0].Killed {
		t.Errorf("Hits = %+v", out.Hits)
	}
	if hero.Character.ActionPoints != 2 {
		t.Errorf("AP = %d, want 2", hero.Character.ActionPoints)
	}
}

func TestMeleeTooFar(t *testing.T) {
	tw := newTestWorld()
	hero := tw.add("Hero", 0, 0, 0)
	foe := tw.add("Foe", 1, 5, 0)

	wantReject(t, "five squares", tw.r.Check(action.NewMeleeAttack(hero, foe, line(hero.Pos, 1, 0, 5))), "too far")
}

func TestKillRemovesAndFades(t *testing.T) {
	tw := newTestWorld()
	hero := tw.add("Hero", 0, 1, 1)
	foe := tw.add("Foe", 1, 2, 1)
	foe.Character.Health = 2

	res := tw.r.Execute(context.Background(), action.NewMeleeAttack(hero, foe, line(hero.Pos, 1, 0, 1)), func() {})

	wantValid(t, "finishing blow", res)
	if tw.w.Contains(foe) {
		t.Error("defeated character still on the board")
	}
	last := tw.player.Played[len(tw.player.Played)-1]
	if last.Kind != anim.EffectFade || last.Entity != foe {
		t.Errorf("last effect = %v on %v, want fade on the defeated target", last.Kind, last.Entity)
	}
}

func TestInteractDoorAndLever(t *testing.T) {
	tw := newTestWorld()
	hero := tw.add("Hero", 0, 1, 1)
	door := entity.NewDoor(grid.Pos(5, 5), false)
	lever := entity.NewLever(grid.Pos(3, 1), door.ID)
	rock := entity.NewScenery("Rock", grid.Pos(1, 2), 'o', true)
	tw.w.Add(door)
	tw.w.Add(lever)
	tw.w.Add(rock)

	wantReject(t, "rock", tw.r.Check(action.NewInteract(hero, rock, line(hero.Pos, 0, 1, 1))), "nothing to use")

	a := action.NewInteract(hero, lever, line(hero.Pos, 1, 0, 2))
	wantValid(t, "lever", tw.r.Check(a))
	if a.Cost() != 2 {
		t.Errorf("Cost() = %d, want 2", a.Cost())
	}
	out := tw.r.DoStateUpdate(a)

	if !lever.Lever.Pulled || !door.Door.Open {
		t.Errorf("lever pulled = %v, door open = %v, want both true", lever.Lever.Pulled, door.Door.Open)
	}
	if len(out.Toggled) != 2 {
		t.Errorf("Toggled = %d entities, want 2", len(out.Toggled))
	}
	if hero.Pos != grid.Pos(2, 1) {
		t.Errorf("hero at %v, want (2,1)", hero.Pos)
	}
	if !tw.w.FindPaths(hero.Pos, 5).CanMoveTo(door.Pos) {
		t.Error("open door should be walkable")
	}
}

func TestLeverSkipsOccupiedDoorway(t *testing.T) {
	tw := newTestWorld()
	hero := tw.add("Hero", 0, 1, 1)
	door := entity.NewDoor(grid.Pos(5, 5), true)
	lever := entity.NewLever(grid.Pos(2, 1), door.ID)
	tw.w.Add(door)
	tw.w.Add(lever)
	tw.add("Squatter", 1, 5, 5)

	tw.r.DoStateUpdate(action.NewInteract(hero, lever, line(hero.Pos, 1, 0, 1)))

	if !door.Door.Open {
		t.Error("door closed on an occupied doorway")
	}
}

func TestSwapPlaces(t *testing.T) {
	tw := newTestWorld()
	hero := tw.add("Hero", 0, 1, 1)
	friend := tw.add("Friend", 0, 7, 7)
	foe := tw.add("Foe", 1, 2, 2)

	wantReject(t, "self", tw.r.Check(action.NewSwapPlaces(hero, hero)), "cannot swap with yourself")
	wantReject(t, "enemy", tw.r.Check(action.NewSwapPlaces(hero, foe)), "teammate")
	wantReject(t, "nobody", tw.r.Check(action.NewSwapPlaces(hero, nil)), "no one")

	a := action.NewSwapPlaces(hero, friend)
	wantValid(t, "teammate", tw.r.Check(a))
	tw.r.DoStateUpdate(a)

	if hero.Pos != grid.Pos(7, 7) || friend.Pos != grid.Pos(1, 1) {
		t.Errorf("after swap hero=%v friend=%v", hero.Pos, friend.Pos)
	}
	if hero.Character.ActionPoints != 4 {
		t.Errorf("AP = %d, want 4", hero.Character.ActionPoints)
	}
}

func TestRangedAttack(t *testing.T) {
	tw := newTestWorld()
	archer := tw.add("Archer", 0, 0, 0, "ranged_attack")
	near := tw.add("Near", 1, 4, 3)
	far := tw.add("Far", 1, 5, 0)
	friend := tw.add("Friend", 0, 1, 1)

	wantReject(t, "out of range", tw.r.Check(action.NewRangedAttack(archer, far)), "out of range")
	wantReject(t, "friend", tw.r.Check(action.NewRangedAttack(archer, friend)), "only shoot")

	a := action.NewRangedAttack(archer, near)
	wantValid(t, "in range", tw.r.Check(a))
	out := tw.r.DoStateUpdate(a)

	if len(out.Hits) != 1 || out.Hits[0].Damage != 2 {
		t.Errorf("Hits = %+v, want one hit for 2", out.Hits)
	}
	if archer.Pos != grid.Pos(0, 0) {
		t.Error("ranged attack should not move the archer")
	}
}

func TestSpecialAttackHitsAdjacentEnemiesOnly(t *testing.T) {
	tw := newTestWorld()
	knight := tw.add("Knight", 0, 4, 4, "special_attack")
	a1 := tw.add("A1", 1, 5, 5)
	a2 := tw.add("A2", 1, 3, 4)
	friend := tw.add("Friend", 0, 4, 5)
	distant := tw.add("Distant", 1, 6, 4)

	a := action.NewSpecialAttack(knight)
	wantValid(t, "special", tw.r.Check(a))
	out := tw.r.DoStateUpdate(a)

	if len(out.Hits) != 2 {
		t.Fatalf("Hits = %d, want 2", len(out.Hits))
	}
	for _, h := range out.Hits {
		if h.Target != a1 && h.Target != a2 {
			t.Errorf("special attack hit %s", h.Target.Name)
		}
		if h.Damage < action.SpecialAttackMinDamage || h.Damage > action.SpecialAttackMaxDamage {
			t.Errorf("damage %d outside [%d,%d]", h.Damage, action.SpecialAttackMinDamage, action.SpecialAttackMaxDamage)
		}
	}
	if friend.Character.Health != 10 || distant.Character.Health != 10 || knight.Character.Health != 10 {
		t.Error("special attack hurt a friend, a distant enemy or the user")
	}
}

func TestFireballFriendlyFire(t *testing.T) {
	tw := newTestWorld()
	mage := tw.add("Mage", 0, 0, 0, "fireball_spell")
	friend := tw.add("Friend", 0, 4, 4)
	foe := tw.add("Foe", 1, 5, 5)
	outside := tw.add("Outside", 1, 7, 7)

	wantReject(t, "out of range", tw.r.Check(action.NewFireballSpell(mage, grid.Pos(6, 6))), "out of range")
	wantReject(t, "off board", tw.r.Check(action.NewFireballSpell(mage, grid.Pos(-1, 0))), "on the board")

	a := action.NewFireballSpell(mage, grid.Pos(5, 4))
	wantValid(t, "fireball", tw.r.Check(a))
	out := tw.r.DoStateUpdate(a)

	if len(out.Hits) != 2 {
		t.Fatalf("Hits = %d, want friend and foe", len(out.Hits))
	}
	for _, h := range out.Hits {
		if h.Damage < action.FireballMinDamage || h.Damage > action.FireballMaxDamage {
			t.Errorf("damage %d outside [%d,%d]", h.Damage, action.FireballMinDamage, action.FireballMaxDamage)
		}
	}
	if friend.Character.Health == 10 || foe.Character.Health == 10 {
		t.Error("fireball should damage everyone next to the target square")
	}
	if outside.Character.Health != 10 {
		t.Error("fireball hurt a character two squares away")
	}
	if mage.Character.ActionPoints != 6-action.FireballCost {
		t.Errorf("AP = %d, want %d", mage.Character.ActionPoints, 6-action.FireballCost)
	}
}

func TestEndTurnSpendsEverything(t *testing.T) {
	tw := newTestWorld()
	hero := tw.add("Hero", 0, 1, 1)
	hero.Character.ActionPoints = 1

	done := 0
	res := tw.r.Execute(context.Background(), action.NewEndTurn(hero), func() { done++ })

	wantValid(t, "end turn", res)
	if hero.Character.ActionPoints != 0 || hero.Character.Ready() {
		t.Errorf("AP = %d after end turn, want 0", hero.Character.ActionPoints)
	}
	if done != 1 {
		t.Errorf("onComplete called %d times, want 1", done)
	}
}

func TestAnimateUnknownKindStillCompletes(t *testing.T) {
	tw := newTestWorld()
	hero := tw.add("Hero", 0, 1, 1)

	done := 0
	tw.r.Animate(action.Action{Kind: action.Kind(42), Subject: hero}, Outcome{}, func() { done++ })

	if done != 1 {
		t.Errorf("onComplete called %d times, want 1", done)
	}
	if !tw.faults.Alerted() {
		t.Error("unknown kind in Animate should raise an internal fault")
	}
}
