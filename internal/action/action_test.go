package action

import (
	"testing"

	"github.com/samdwyer/gridtactics/internal/entity"
	"github.com/samdwyer/gridtactics/internal/grid"
)

func straightPath(n int) []grid.Position {
	path := make([]grid.Position, n)
	for i := range path {
		path[i] = grid.Pos(i, 0)
	}
	return path
}

func TestActionCosts(t *testing.T) {
	hero := entity.NewCharacter("Hero", 0, grid.Pos(0, 0), entity.Character{MaxHealth: 5, MaxActionPoints: 6})
	hero.Character.ReadyActions()
	hero.Character.SpendActionPoints(1)
	foe := entity.NewCharacter("Foe", 1, grid.Pos(3, 0), entity.Character{MaxHealth: 5})
	door := entity.NewDoor(grid.Pos(3, 0), false)

	tests := []struct {
		name string
		a    Action
		want int
	}{
		{"move 3 steps", NewMove(hero, straightPath(4)), 3},
		{"melee along 4 squares", NewMeleeAttack(hero, foe, straightPath(4)), 4},
		{"melee adjacent", NewMeleeAttack(hero, foe, straightPath(2)), 2},
		{"interact along 4 squares", NewInteract(hero, door, straightPath(4)), 3},
		{"interact adjacent", NewInteract(hero, door, straightPath(2)), 1},
		{"swap", NewSwapPlaces(hero, foe), 2},
		{"ranged", NewRangedAttack(hero, foe), 2},
		{"special", NewSpecialAttack(hero), 3},
		{"fireball", NewFireballSpell(hero, grid.Pos(4, 4)), FireballCost},
		{"end turn spends remaining", NewEndTurn(hero), 5},
		{"unknown kind", Action{Kind: Kind(42), Subject: hero}, 0},
	}

	for _, tt := range tests {
		if got := tt.a.Cost(); got != tt.want {
			t.Errorf("%s: Cost() = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestKindDescriptors(t *testing.T) {
	always := map[Kind]bool{Move: true, MeleeAttack: true, Interact: true, SwapPlaces: true, EndTurn: true}

	for _, k := range Kinds() {
		d, ok := k.Describe()
		if !ok {
			t.Fatalf("Describe(%d) not found", k)
		}
		if d.Kind != k {
			t.Errorf("descriptor for %v has Kind %v", k, d.Kind)
		}
		if d.AlwaysAvailable != always[k] {
			t.Errorf("%v.AlwaysAvailable = %v, want %v", k, d.AlwaysAvailable, always[k])
		}
		parsed, ok := ParseKind(d.ID)
		if !ok || parsed != k {
			t.Errorf("ParseKind(%q) = %v, %v", d.ID, parsed, ok)
		}
	}

	if _, ok := Kind(-1).Describe(); ok {
		t.Error("Describe(-1) should fail")
	}
	if Kind(99).String() != "unknown" {
		t.Errorf("Kind(99).String() = %q, want unknown", Kind(99).String())
	}
	if _, ok := ParseKind("dance"); ok {
		t.Error("ParseKind(dance) should fail")
	}
}

func TestConstructorsCopyPath(t *testing.T) {
	hero := entity.NewCharacter("Hero", 0, grid.Pos(0, 0), entity.Character{MaxHealth: 5})
	path := straightPath(3)

	a := NewMove(hero, path)
	path[2] = grid.Pos(9, 9)

	if a.Path[2] != grid.Pos(2, 0) {
		t.Error("NewMove should copy the path")
	}
	if a.Square != grid.Pos(2, 0) {
		t.Errorf("NewMove().Square = %v, want (2,0)", a.Square)
	}
}
