// Package action defines the closed set of action kinds, their action-point
// costs, and the Action record built from a subject, target and path.
package action

// Kind identifies an action. The set is closed; every switch over Kind in
// this module handles each value.
type Kind int

const (
	Move Kind = iota
	MeleeAttack
	Interact
	SwapPlaces
	RangedAttack
	SpecialAttack
	FireballSpell
	EndTurn
)

// Shape is what an action needs besides its subject.
type Shape int

const (
	// ShapeNone needs nothing else.
	ShapeNone Shape = iota
	// ShapeTarget needs a target entity.
	ShapeTarget
	// ShapeSquare needs a target square.
	ShapeSquare
	// ShapePath needs a path whose last square is the destination.
	ShapePath
	// ShapePathTarget needs a path ending on the target entity's square.
	ShapePathTarget
)

const (
	// RangedAttackRange is the maximum Chebyshev distance for RangedAttack.
	RangedAttackRange = 4
	// FireballRange is the maximum Chebyshev distance from caster to the
	// fireball's target square.
	FireballRange = 5
	// FireballCost is the flat cost of FireballSpell.
	FireballCost = 3

	SpecialAttackMinDamage = 1
	SpecialAttackMaxDamage = 4
	FireballMinDamage      = 2
	FireballMaxDamage      = 5
)

// Descriptor is the immutable description of one Kind.
type Descriptor struct {
	Kind  Kind
	ID    string // stable identifier, matches character action lists
	Name  string // button label
	Shape Shape
	// AlwaysAvailable kinds may be used by any character; the rest must be
	// in the character's learned action list.
	AlwaysAvailable bool

	cost func(a Action) int
}

var descriptors = [...]Descriptor{
	Move: {
		Kind: Move, ID: "move", Name: "Move", Shape: ShapePath, AlwaysAvailable: true,
		cost: func(a Action) int { return len(a.Path) - 1 },
	},
	MeleeAttack: {
		Kind: MeleeAttack, ID: "melee_attack", Name: "Attack", Shape: ShapePathTarget, AlwaysAvailable: true,
		cost: func(a Action) int { return (len(a.Path) - 2) + 2 },
	},
	Interact: {
		Kind: Interact, ID: "interact", Name: "Interact", Shape: ShapePathTarget, AlwaysAvailable: true,
		cost: func(a Action) int { return (len(a.Path) - 2) + 1 },
	},
	SwapPlaces: {
		Kind: SwapPlaces, ID: "swap_places", Name: "Swap", Shape: ShapeTarget, AlwaysAvailable: true,
		cost: func(Action) int { return 2 },
	},
	RangedAttack: {
		Kind: RangedAttack, ID: "ranged_attack", Name: "Shoot", Shape: ShapeTarget,
		cost: func(Action) int { return 2 },
	},
	SpecialAttack: {
		Kind: SpecialAttack, ID: "special_attack", Name: "Whirlwind", Shape: ShapeNone,
		cost: func(Action) int { return 3 },
	},
	FireballSpell: {
		Kind: FireballSpell, ID: "fireball_spell", Name: "Fireball", Shape: ShapeSquare,
		cost: func(Action) int { return FireballCost },
	},
	EndTurn: {
		Kind: EndTurn, ID: "end_turn", Name: "End Turn", Shape: ShapeNone, AlwaysAvailable: true,
		cost: func(a Action) int {
			if a.Subject == nil || a.Subject.Character == nil {
				return 0
			}
			return a.Subject.Character.ActionPoints
		},
	},
}

// Kinds returns every kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, len(descriptors))
	for i := range descriptors {
		out[i] = Kind(i)
	}
	return out
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	return k >= 0 && int(k) < len(descriptors)
}

// Describe returns the descriptor for k. ok is false for undeclared values.
func (k Kind) Describe() (d Descriptor, ok bool) {
	if !k.Valid() {
		return Descriptor{}, false
	}
	return descriptors[k], true
}

// String returns the action ID, or "unknown".
func (k Kind) String() string {
	if !k.Valid() {
		return "unknown"
	}
	return descriptors[k].ID
}

// Name returns the display name, or "Unknown".
func (k Kind) Name() string {
	if !k.Valid() {
		return "Unknown"
	}
	return descriptors[k].Name
}

// ParseKind returns the kind with the given ID.
func ParseKind(id string) (Kind, bool) {
	for _, d := range descriptors {
		if d.ID == id {
			return d.Kind, true
		}
	}
	return 0, false
}
