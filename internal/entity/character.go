package entity

import (
	"slices"

	"github.com/google/uuid"

	"github.com/samdwyer/gridtactics/internal/gamedata"
	"github.com/samdwyer/gridtactics/internal/grid"
)

// Character is the payload of a KindCharacter entity.
type Character struct {
	Class string
	Team  int
	Speed int

	Health, MaxHealth             int
	Attack                        int
	ActionPoints, MaxActionPoints int

	// ActionIDs lists the learned action kinds (by action ID) that are not
	// universally available.
	ActionIDs []string
}

// NewCharacter creates a character entity with explicit stats.
func NewCharacter(name string, team int, pos grid.Position, c Character) *Entity {
	c.Team = team
	if c.Health == 0 {
		c.Health = c.MaxHealth
	}
	return &Entity{
		ID:        uuid.NewString(),
		Name:      name,
		Kind:      KindCharacter,
		Pos:       pos,
		Symbol:    '@',
		Character: &c,
	}
}

// NewCharacterFromClass creates a character from a class definition.
// Action points start empty; the scheduler readies them at team start.
func NewCharacterFromClass(def *gamedata.ClassDef, name string, team int, pos grid.Position) *Entity {
	e := NewCharacter(name, team, pos, Character{
		Class:           def.ID,
		Speed:           def.Speed,
		MaxHealth:       def.Health,
		Attack:          def.Attack,
		MaxActionPoints: def.ActionPoints,
		ActionIDs:       slices.Clone(def.Actions),
	})
	e.Symbol = def.SymbolRune()
	return e
}

// IsAlive returns true if the character has health remaining.
func (c *Character) IsAlive() bool { return c.Health > 0 }

// Ready reports whether the character may still act this round.
func (c *Character) Ready() bool {
	return c.IsAlive() && c.ActionPoints > 0
}

// ReadyActions refills the action point budget.
func (c *Character) ReadyActions() {
	c.ActionPoints = c.MaxActionPoints
}

// SpendActionPoints deducts n points, never going below zero.
func (c *Character) SpendActionPoints(n int) {
	c.ActionPoints = max(c.ActionPoints-n, 0)
}

// Knows reports whether the character has learned the action with the given ID.
func (c *Character) Knows(actionID string) bool {
	return slices.Contains(c.ActionIDs, actionID)
}

// TakeDamage reduces health and returns actual damage taken.
// A character reduced to zero health also loses its remaining action points.
func (c *Character) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := min(amount, c.Health)
	c.Health -= actual
	if c.Health == 0 {
		c.ActionPoints = 0
	}
	return actual
}
