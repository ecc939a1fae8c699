package entity

import (
	"testing"

	"github.com/samdwyer/gridtactics/internal/gamedata"
	"github.com/samdwyer/gridtactics/internal/grid"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindScenery, "scenery"},
		{KindCharacter, "character"},
		{KindDoor, "door"},
		{KindLever, "lever"},
		{Kind(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.expected {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.expected)
		}
	}
}

func TestCapabilities(t *testing.T) {
	door := NewDoor(grid.Pos(1, 1), false)
	lever := NewLever(grid.Pos(2, 2), door.ID)
	rubble := NewScenery("Rubble", grid.Pos(3, 3), ',', false)
	barrel := NewScenery("Barrel", grid.Pos(4, 4), 'o', true)
	hero := NewCharacter("Hero", 0, grid.Pos(5, 5), Character{MaxHealth: 5})

	tests := []struct {
		e            *Entity
		blocks       bool
		interactable bool
		character    bool
	}{
		{door, true, true, false},
		{lever, true, true, false},
		{rubble, false, false, false},
		{barrel, true, false, false},
		{hero, true, false, true},
	}

	for _, tt := range tests {
		if got := tt.e.BlocksMovement(); got != tt.blocks {
			t.Errorf("%s.BlocksMovement() = %v, want %v", tt.e.Name, got, tt.blocks)
		}
		if got := tt.e.Interactable(); got != tt.interactable {
			t.Errorf("%s.Interactable() = %v, want %v", tt.e.Name, got, tt.interactable)
		}
		if got := tt.e.IsCharacter(); got != tt.character {
			t.Errorf("%s.IsCharacter() = %v, want %v", tt.e.Name, got, tt.character)
		}
	}

	door.Door.Open = true
	if door.BlocksMovement() {
		t.Error("open door should not block movement")
	}
}

func TestCharacterActionPoints(t *testing.T) {
	e := NewCharacter("Hero", 0, grid.Pos(0, 0), Character{MaxHealth: 10, MaxActionPoints: 4})
	c := e.Character

	if c.Ready() {
		t.Error("Ready() = true before ReadyActions")
	}
	c.ReadyActions()
	if c.ActionPoints != 4 || !c.Ready() {
		t.Errorf("after ReadyActions: AP = %d, Ready = %v", c.ActionPoints, c.Ready())
	}
	c.SpendActionPoints(3)
	if c.ActionPoints != 1 {
		t.Errorf("ActionPoints after spending 3 = %d, want 1", c.ActionPoints)
	}
	c.SpendActionPoints(5)
	if c.ActionPoints != 0 || c.Ready() {
		t.Errorf("ActionPoints after overspend = %d, want 0", c.ActionPoints)
	}
}

func TestCharacterTakeDamage(t *testing.T) {
	e := NewCharacter("Hero", 0, grid.Pos(0, 0), Character{MaxHealth: 10, MaxActionPoints: 4})
	c := e.Character
	c.ReadyActions()

	if got := c.TakeDamage(4); got != 4 {
		t.Errorf("TakeDamage(4) = %d, want 4", got)
	}
	if got := c.TakeDamage(0); got != 0 {
		t.Errorf("TakeDamage(0) = %d, want 0", got)
	}
	if got := c.TakeDamage(100); got != 6 {
		t.Errorf("TakeDamage(100) = %d, want 6", got)
	}
	if c.IsAlive() || c.Ready() {
		t.Error("character at 0 health should be dead and not ready")
	}
}

func TestNewCharacterFromClass(t *testing.T) {
	def := &gamedata.ClassDef{
		ID:           "archer",
		Name:         "Archer",
		Symbol:       "A",
		Speed:        4,
		Health:       9,
		Attack:       3,
		ActionPoints: 5,
		Actions:      []string{"ranged_attack"},
	}

	e := NewCharacterFromClass(def, "Wren", 0, grid.Pos(2, 3))

	if e.Symbol != 'A' || e.Name != "Wren" || e.Pos != grid.Pos(2, 3) {
		t.Errorf("unexpected entity %+v", e)
	}
	c := e.Character
	if c.Health != 9 || c.MaxHealth != 9 || c.Speed != 4 || c.MaxActionPoints != 5 {
		t.Errorf("unexpected stats %+v", c)
	}
	if !c.Knows("ranged_attack") || c.Knows("fireball_spell") {
		t.Error("Knows() does not reflect class actions")
	}

	def.Actions[0] = "changed"
	if !c.Knows("ranged_attack") {
		t.Error("character action list aliases the class definition")
	}
	if e.ID == "" {
		t.Error("entity ID should be set")
	}
}
