package gamedata

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// LevelDef describes a level's static layout and its initial entity placement.
// Layout rows use '#' for walls and '.' for floor; every row must have the
// same width.
type LevelDef struct {
	Name    string       `yaml:"name"`
	Teams   int          `yaml:"teams"`
	Layout  []string     `yaml:"layout"`
	Units   []UnitDef    `yaml:"units"`
	Doors   []DoorDef    `yaml:"doors"`
	Levers  []LeverDef   `yaml:"levers"`
	Scenery []SceneryDef `yaml:"scenery"`
}

// UnitDef places a character of a class on a team.
type UnitDef struct {
	Class string `yaml:"class"`
	Name  string `yaml:"name"`
	Team  int    `yaml:"team"`
	X     int    `yaml:"x"`
	Y     int    `yaml:"y"`
}

// DoorDef places a door. Key is local to the level file and is what levers
// refer to.
type DoorDef struct {
	Key  string `yaml:"key"`
	X    int    `yaml:"x"`
	Y    int    `yaml:"y"`
	Open bool   `yaml:"open"`
}

// LeverDef places a lever that toggles the listed doors.
type LeverDef struct {
	X     int      `yaml:"x"`
	Y     int      `yaml:"y"`
	Doors []string `yaml:"doors"`
}

// SceneryDef places a static prop.
type SceneryDef struct {
	Name   string `yaml:"name"`
	Symbol string `yaml:"symbol"`
	X      int    `yaml:"x"`
	Y      int    `yaml:"y"`
	Blocks bool   `yaml:"blocks"`
}

// Width returns the layout width.
func (l *LevelDef) Width() int {
	if len(l.Layout) == 0 {
		return 0
	}
	return len(l.Layout[0])
}

// Height returns the layout height.
func (l *LevelDef) Height() int {
	return len(l.Layout)
}

// Validate checks the layout is rectangular and every placement is on the board.
func (l *LevelDef) Validate() error {
	if l.Height() == 0 || l.Width() == 0 {
		return fmt.Errorf("level %q has an empty layout", l.Name)
	}
	for i, row := range l.Layout {
		if len(row) != l.Width() {
			return fmt.Errorf("level %q row %d has width %d, want %d", l.Name, i, len(row), l.Width())
		}
	}
	if l.Teams < 2 {
		return fmt.Errorf("level %q declares %d teams, need at least 2", l.Name, l.Teams)
	}

	onBoard := func(x, y int) bool {
		return x >= 0 && x < l.Width() && y >= 0 && y < l.Height()
	}
	for _, u := range l.Units {
		if !onBoard(u.X, u.Y) {
			return fmt.Errorf("level %q unit %q at (%d,%d) is off the board", l.Name, u.Name, u.X, u.Y)
		}
		if u.Team < 0 || u.Team >= l.Teams {
			return fmt.Errorf("level %q unit %q has team %d outside [0,%d)", l.Name, u.Name, u.Team, l.Teams)
		}
	}
	keys := make(map[string]bool, len(l.Doors))
	for _, d := range l.Doors {
		if !onBoard(d.X, d.Y) {
			return fmt.Errorf("level %q door %q at (%d,%d) is off the board", l.Name, d.Key, d.X, d.Y)
		}
		keys[d.Key] = true
	}
	for _, lv := range l.Levers {
		if !onBoard(lv.X, lv.Y) {
			return fmt.Errorf("level %q lever at (%d,%d) is off the board", l.Name, lv.X, lv.Y)
		}
		for _, k := range lv.Doors {
			if !keys[k] {
				return fmt.Errorf("level %q lever at (%d,%d) links unknown door %q", l.Name, lv.X, lv.Y, k)
			}
		}
	}
	for _, s := range l.Scenery {
		if !onBoard(s.X, s.Y) {
			return fmt.Errorf("level %q scenery %q at (%d,%d) is off the board", l.Name, s.Name, s.X, s.Y)
		}
	}
	return nil
}

// LoadLevel loads and validates levels/<name>.yaml.
func LoadLevel(name string) (*LevelDef, error) {
	level, err := LoadYAML[LevelDef](path.Join("levels", name+".yaml"))
	if err != nil {
		return nil, err
	}
	if level.Name == "" {
		level.Name = name
	}
	if err := level.Validate(); err != nil {
		return nil, err
	}
	return &level, nil
}

// LevelNames lists the embedded levels in sorted order.
func LevelNames() ([]string, error) {
	entries, err := fs.ReadDir(dataFS, "levels")
	if err != nil {
		return nil, fmt.Errorf("failed to list embedded levels: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), ".yaml"); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}
