package gamedata

import "github.com/gdamore/tcell/v2"

// ClassDef defines a character archetype loaded from JSON.
type ClassDef struct {
	ID           string   `json:"id"`           // Unique identifier (e.g., "knight")
	Name         string   `json:"name"`         // Display name (e.g., "Knight")
	Symbol       string   `json:"symbol"`       // Single character for rendering (e.g., "K")
	Color        string   `json:"color"`        // Hex color code (e.g., "#FFD700")
	Speed        int      `json:"speed"`        // Squares per move action
	Health       int      `json:"health"`       // Maximum health
	Attack       int      `json:"attack"`       // Melee damage
	ActionPoints int      `json:"actionPoints"` // Action point budget per turn
	Actions      []string `json:"actions"`      // Learned action IDs beyond the universal ones
}

// SymbolRune returns the symbol as a rune for rendering.
func (c *ClassDef) SymbolRune() rune {
	if len(c.Symbol) == 0 {
		return '?'
	}
	return rune(c.Symbol[0])
}

// TCellColor returns the class color, or white if the color is malformed.
func (c *ClassDef) TCellColor() tcell.Color {
	color := tcell.GetColor(c.Color)
	if color == tcell.ColorDefault {
		return tcell.ColorWhite
	}
	return color
}

// ClassesFile represents the structure of classes.json.
type ClassesFile struct {
	Classes []ClassDef `json:"classes"`
}

// LoadClasses loads class definitions from the embedded classes.json file.
func LoadClasses() ([]ClassDef, error) {
	file, err := Load[ClassesFile]("classes.json")
	if err != nil {
		return nil, err
	}
	return file.Classes, nil
}

