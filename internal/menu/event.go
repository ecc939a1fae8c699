package menu

import (
	"github.com/samdwyer/gridtactics/internal/action"
	"github.com/samdwyer/gridtactics/internal/entity"
	"github.com/samdwyer/gridtactics/internal/grid"
)

// Event is something the player did.
type Event interface {
	isEvent()
}

// TileClicked is a click on a board square. Entity is what was struck
// there, if anything.
type TileClicked struct {
	Pos    grid.Position
	Entity *entity.Entity
}

// ButtonPressed chooses an action kind.
type ButtonPressed struct {
	Kind action.Kind
}

// CancelPressed backs out of target selection.
type CancelPressed struct{}

// RestartPressed starts a new game after the current one has ended.
type RestartPressed struct{}

func (TileClicked) isEvent()    {}
func (ButtonPressed) isEvent()  {}
func (CancelPressed) isEvent()  {}
func (RestartPressed) isEvent() {}

// Option is a button the front end should offer.
type Option struct {
	Label string
	Event Event
}
