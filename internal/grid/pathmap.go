package grid

// Tile is one cell of a PathMap.
// Parent is meaningful only when Reached is set; it points one step back
// toward the search origin. The origin is its own parent.
type Tile struct {
	Blocked bool
	Reached bool
	Parent  Position
}

// PathMap is a per-query reachability overlay. It is built fresh for each
// search, filled in by Search, and read-only afterwards.
type PathMap struct {
	Width  int
	Height int
	Tiles  [][]Tile // indexed [y][x]
}

// NewPathMap clones the static blocked grid (indexed [y][x]) and marks every
// occupied position as blocked on top of it.
func NewPathMap(static [][]bool, occupied []Position) *PathMap {
	height := len(static)
	width := 0
	if height > 0 {
		width = len(static[0])
	}

	tiles := make([][]Tile, height)
	for y := range tiles {
		tiles[y] = make([]Tile, width)
		for x := range tiles[y] {
			tiles[y][x].Blocked = static[y][x]
		}
	}

	m := &PathMap{Width: width, Height: height, Tiles: tiles}
	for _, p := range occupied {
		if m.InBounds(p) {
			m.Tiles[p.Y][p.X].Blocked = true
		}
	}
	return m
}

// FindPaths builds a fresh map and runs a search from start.
func FindPaths(static [][]bool, occupied []Position, start Position, maxDistance int) *PathMap {
	m := NewPathMap(static, occupied)
	m.Search(start, maxDistance)
	return m
}

// InBounds reports whether p lies on the map.
func (m *PathMap) InBounds(p Position) bool {
	return p.X >= 0 && p.X < m.Width && p.Y >= 0 && p.Y < m.Height
}

// At returns the tile at p. p must be in bounds.
func (m *PathMap) At(p Position) Tile {
	return m.Tiles[p.Y][p.X]
}

type frontier struct {
	pos       Position
	remaining int
}

// Search runs an 8-connected breadth-first search from start, expanding at
// most maxDistance steps. Blocked squares are reached (their parent is set)
// but never expanded, so they are valid endpoints for attacks and
// interactions but never intermediate steps. A square's parent is written
// once, by the first layer that reaches it.
func (m *PathMap) Search(start Position, maxDistance int) {
	if !m.InBounds(start) {
		return
	}
	m.Tiles[start.Y][start.X].Reached = true
	m.Tiles[start.Y][start.X].Parent = start

	queue := []frontier{{pos: start, remaining: maxDistance}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.remaining <= 0 {
			continue
		}
		for _, d := range neighbourOffsets {
			next := cur.pos.Add(d[0], d[1])
			if !m.InBounds(next) {
				continue
			}
			tile := &m.Tiles[next.Y][next.X]
			if tile.Reached {
				continue
			}
			tile.Reached = true
			tile.Parent = cur.pos
			if !tile.Blocked {
				queue = append(queue, frontier{pos: next, remaining: cur.remaining - 1})
			}
		}
	}
}

// Path walks parent links back from end to start and returns the squares in
// walking order, start first and end last. It returns nil when end was not
// reached from start.
func (m *PathMap) Path(start, end Position) []Position {
	if !m.InBounds(start) || !m.InBounds(end) {
		return nil
	}

	var reversed []Position
	cur := end
	for steps := 0; ; steps++ {
		tile := m.At(cur)
		if !tile.Reached || steps > m.Width*m.Height {
			return nil
		}
		reversed = append(reversed, cur)
		if cur == start {
			break
		}
		if tile.Parent == cur {
			// reached the origin of a search that did not start at start
			return nil
		}
		cur = tile.Parent
	}

	path := make([]Position, len(reversed))
	for i, p := range reversed {
		path[len(reversed)-1-i] = p
	}
	return path
}

// IsReachable reports whether the last search reached p. Blocked squares
// adjacent to the walkable region count: they can be acted on.
func (m *PathMap) IsReachable(p Position) bool {
	return m.InBounds(p) && m.At(p).Reached
}

// CanMoveTo reports whether p was reached and can be stood on.
func (m *PathMap) CanMoveTo(p Position) bool {
	return m.IsReachable(p) && !m.At(p).Blocked
}

// IsPathValid checks an externally supplied path: it must start at from,
// every step must be 8-adjacent to the previous one, and every square but
// the last must be unblocked. The last square is only required to be
// unblocked when moveToLast is set.
func (m *PathMap) IsPathValid(from Position, path []Position, moveToLast bool) bool {
	if len(path) == 0 || path[0] != from {
		return false
	}
	for i := 1; i < len(path); i++ {
		if !Adjacent(path[i-1], path[i]) || !m.InBounds(path[i]) {
			return false
		}
		last := i == len(path)-1
		if m.At(path[i]).Blocked && (!last || moveToLast) {
			return false
		}
	}
	if len(path) == 1 && moveToLast {
		// standing still onto the mover's own (occupied) square
		return m.InBounds(from) && !m.At(from).Blocked
	}
	return true
}

// ReachableSquares returns every square reached by the last search except
// the origin, in row-major order.
func (m *PathMap) ReachableSquares() []Position {
	var out []Position
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			t := m.Tiles[y][x]
			if t.Reached && t.Parent != (Position{X: x, Y: y}) {
				out = append(out, Position{X: x, Y: y})
			}
		}
	}
	return out
}
