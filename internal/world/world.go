package world

import (
	"fmt"
	"slices"

	"github.com/samdwyer/gridtactics/internal/entity"
	"github.com/samdwyer/gridtactics/internal/gamedata"
	"github.com/samdwyer/gridtactics/internal/grid"
)

// World holds the board state shared by resolution, AI and the scheduler.
type World struct {
	Width    int
	Height   int
	Tiles    [][]Tile // indexed [y][x]
	Entities []*entity.Entity

	// static is the blocked-map derived from Tiles by UpdateMapForNewLevel.
	static [][]bool
}

// New creates an open world of floor tiles. UpdateMapForNewLevel has already
// been applied.
func New(width, height int) *World {
	tiles := make([][]Tile, height)
	for y := range tiles {
		tiles[y] = make([]Tile, width)
		for x := range tiles[y] {
			tiles[y][x] = TileFloor
		}
	}
	w := &World{Width: width, Height: height, Tiles: tiles}
	w.UpdateMapForNewLevel()
	return w
}

// FromLayout builds a world from rows of '#' (wall) and '.' (floor).
func FromLayout(rows []string) (*World, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty layout")
	}
	w := New(len(rows[0]), len(rows))
	for y, row := range rows {
		if len(row) != w.Width {
			return nil, fmt.Errorf("layout row %d has width %d, want %d", y, len(row), w.Width)
		}
		for x, ch := range row {
			switch Tile(ch) {
			case TileWall, TileFloor:
				w.Tiles[y][x] = Tile(ch)
			default:
				return nil, fmt.Errorf("layout row %d column %d: unknown tile %q", y, x, ch)
			}
		}
	}
	w.UpdateMapForNewLevel()
	return w, nil
}

// Load builds a world from a level definition, creating characters from the
// class registry and linking levers to their doors.
func Load(level *gamedata.LevelDef, classes *gamedata.ClassRegistry) (*World, error) {
	w, err := FromLayout(level.Layout)
	if err != nil {
		return nil, fmt.Errorf("level %q: %w", level.Name, err)
	}

	for _, u := range level.Units {
		def, err := classes.Require(u.Class)
		if err != nil {
			return nil, fmt.Errorf("level %q unit %q: %w", level.Name, u.Name, err)
		}
		w.Add(entity.NewCharacterFromClass(def, u.Name, u.Team, grid.Pos(u.X, u.Y)))
	}

	doorIDs := make(map[string]string, len(level.Doors))
	for _, d := range level.Doors {
		door := entity.NewDoor(grid.Pos(d.X, d.Y), d.Open)
		doorIDs[d.Key] = door.ID
		w.Add(door)
	}
	for _, lv := range level.Levers {
		ids := make([]string, 0, len(lv.Doors))
		for _, key := range lv.Doors {
			ids = append(ids, doorIDs[key])
		}
		w.Add(entity.NewLever(grid.Pos(lv.X, lv.Y), ids...))
	}
	for _, s := range level.Scenery {
		symbol := '*'
		if len(s.Symbol) > 0 {
			symbol = rune(s.Symbol[0])
		}
		w.Add(entity.NewScenery(s.Name, grid.Pos(s.X, s.Y), symbol, s.Blocks))
	}

	w.UpdateMapForNewLevel()
	return w, nil
}

// UpdateMapForNewLevel rebuilds the static blocked-map from the tile layout.
// It must be called whenever Tiles change and before the next FindPaths.
func (w *World) UpdateMapForNewLevel() {
	w.static = make([][]bool, w.Height)
	for y := range w.static {
		w.static[y] = make([]bool, w.Width)
		for x := range w.static[y] {
			w.static[y][x] = !w.Tiles[y][x].IsPassable()
		}
	}
}

// FindPaths runs a reachability search from start over the static map with
// every movement-blocking entity overlaid as blocked.
func (w *World) FindPaths(start grid.Position, maxDistance int) *grid.PathMap {
	occupied := make([]grid.Position, 0, len(w.Entities))
	for _, e := range w.Entities {
		if e.BlocksMovement() {
			occupied = append(occupied, e.Pos)
		}
	}
	return grid.FindPaths(w.static, occupied, start, maxDistance)
}

// InBounds reports whether p is on the board.
func (w *World) InBounds(p grid.Position) bool {
	return p.X >= 0 && p.X < w.Width && p.Y >= 0 && p.Y < w.Height
}

// IsPassable returns true if the given position is floor.
func (w *World) IsPassable(x, y int) bool {
	if x < 0 || x >= w.Width || y < 0 || y >= w.Height {
		return false
	}
	return w.Tiles[y][x].IsPassable()
}

// GetTile returns the tile at the given position.
func (w *World) GetTile(x, y int) Tile {
	if x < 0 || x >= w.Width || y < 0 || y >= w.Height {
		return TileWall
	}
	return w.Tiles[y][x]
}

// Add places an entity on the board.
func (w *World) Add(e *entity.Entity) {
	w.Entities = append(w.Entities, e)
}

// Remove takes an entity off the board. It reports whether e was present.
func (w *World) Remove(e *entity.Entity) bool {
	i := slices.Index(w.Entities, e)
	if i < 0 {
		return false
	}
	w.Entities = slices.Delete(w.Entities, i, i+1)
	return true
}

// Contains reports whether e is still on the board.
func (w *World) Contains(e *entity.Entity) bool {
	return slices.Contains(w.Entities, e)
}

// EntityAt returns the entity at p, preferring a character over props that
// share the square. It returns nil for an empty square.
func (w *World) EntityAt(p grid.Position) *entity.Entity {
	var found *entity.Entity
	for _, e := range w.Entities {
		if e.Pos != p {
			continue
		}
		if e.IsCharacter() {
			return e
		}
		if found == nil {
			found = e
		}
	}
	return found
}

// ByID returns the entity with the given ID, or nil.
func (w *World) ByID(id string) *entity.Entity {
	for _, e := range w.Entities {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// Characters returns every character on the board in placement order.
func (w *World) Characters() []*entity.Entity {
	var out []*entity.Entity
	for _, e := range w.Entities {
		if e.IsCharacter() {
			out = append(out, e)
		}
	}
	return out
}

// TeamMembers returns the characters on team in placement order.
func (w *World) TeamMembers(team int) []*entity.Entity {
	var out []*entity.Entity
	for _, e := range w.Entities {
		if e.IsCharacter() && e.Character.Team == team {
			out = append(out, e)
		}
	}
	return out
}

// CharactersWithin returns the characters within Chebyshev distance r of
// center, including any standing on center itself.
func (w *World) CharactersWithin(center grid.Position, r int) []*entity.Entity {
	var out []*entity.Entity
	for _, e := range w.Entities {
		if e.IsCharacter() && grid.Distance(e.Pos, center) <= r {
			out = append(out, e)
		}
	}
	return out
}
