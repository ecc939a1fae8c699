// Package grid provides positions and breadth-first pathfinding over a
// blocked/unblocked tile grid.
package grid

import "fmt"

// Position is a square on the board. X grows to the right, Y grows down.
type Position struct {
	X, Y int
}

// Pos is shorthand for Position{X: x, Y: y}.
func Pos(x, y int) Position {
	return Position{X: x, Y: y}
}

// Add returns p offset by (dx, dy).
func (p Position) Add(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// String returns "(x,y)".
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Distance returns the Chebyshev (L∞) distance between two positions.
func Distance(a, b Position) int {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	return max(dx, dy)
}

// Adjacent reports whether a and b are distinct 8-connected neighbours.
func Adjacent(a, b Position) bool {
	return Distance(a, b) == 1
}

// neighbourOffsets lists the 8 directions in search order: N, NE, E, SE, S, SW, W, NW.
// The order is part of the search contract: ties between equal-length paths
// are decided by it.
var neighbourOffsets = [8][2]int{
	{0, -1}, {1, -1}, {1, 0}, {1, 1},
	{0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
}

// Neighbours returns the 8 positions surrounding p in search order,
// without bounds filtering.
func Neighbours(p Position) []Position {
	out := make([]Position, 0, len(neighbourOffsets))
	for _, d := range neighbourOffsets {
		out = append(out, p.Add(d[0], d[1]))
	}
	return out
}
