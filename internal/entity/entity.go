// Package entity provides the things that occupy board squares: characters,
// doors, levers and scenery.
package entity

import (
	"github.com/google/uuid"

	"github.com/samdwyer/gridtactics/internal/grid"
)

// Kind tags what an Entity is. Exactly one of the Entity's kind payloads
// (Character, Door, Lever) is non-nil, matching Kind; scenery has none.
type Kind int

const (
	KindScenery Kind = iota
	KindCharacter
	KindDoor
	KindLever
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindScenery:
		return "scenery"
	case KindCharacter:
		return "character"
	case KindDoor:
		return "door"
	case KindLever:
		return "lever"
	default:
		return "unknown"
	}
}

// Entity is anything placed on the board.
type Entity struct {
	ID     string
	Name   string
	Kind   Kind
	Pos    grid.Position
	Symbol rune

	Character *Character
	Door      *Door
	Lever     *Lever

	blocks bool // scenery only
}

// Door is the payload of a KindDoor entity. Closed doors block movement.
type Door struct {
	Open bool
}

// Lever is the payload of a KindLever entity. Pulling it toggles every
// linked door, identified by entity ID.
type Lever struct {
	Pulled bool
	Doors  []string
}

// NewDoor creates a door at pos.
func NewDoor(pos grid.Position, open bool) *Entity {
	return &Entity{
		ID:     uuid.NewString(),
		Name:   "Door",
		Kind:   KindDoor,
		Pos:    pos,
		Symbol: '+',
		Door:   &Door{Open: open},
	}
}

// NewLever creates a lever at pos linked to the given door entity IDs.
func NewLever(pos grid.Position, doorIDs ...string) *Entity {
	return &Entity{
		ID:     uuid.NewString(),
		Name:   "Lever",
		Kind:   KindLever,
		Pos:    pos,
		Symbol: '/',
		Lever:  &Lever{Doors: doorIDs},
	}
}

// NewScenery creates a static prop.
func NewScenery(name string, pos grid.Position, symbol rune, blocks bool) *Entity {
	return &Entity{
		ID:     uuid.NewString(),
		Name:   name,
		Kind:   KindScenery,
		Pos:    pos,
		Symbol: symbol,
		blocks: blocks,
	}
}

// IsCharacter reports whether e is a character.
func (e *Entity) IsCharacter() bool {
	return e != nil && e.Kind == KindCharacter && e.Character != nil
}

// BlocksMovement reports whether e currently prevents standing on its square.
func (e *Entity) BlocksMovement() bool {
	switch e.Kind {
	case KindCharacter:
		return true
	case KindDoor:
		return !e.Door.Open
	case KindLever:
		return true
	default:
		return e.blocks
	}
}

// Interactable reports whether the Interact action can target e.
func (e *Entity) Interactable() bool {
	return e != nil && (e.Kind == KindDoor || e.Kind == KindLever)
}

// Glyph returns what to draw for e, reflecting door and lever state.
func (e *Entity) Glyph() rune {
	if e.Kind == KindDoor {
		if e.Door.Open {
			return '\''
		}
		return '+'
	}
	if e.Kind == KindLever && e.Lever.Pulled {
		return '\\'
	}
	return e.Symbol
}
