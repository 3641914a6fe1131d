package shared

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// BoardRadius is the largest absolute value either axis may take.
	BoardRadius = 8
	// GridSize is the edge length of the dense backing grid.
	GridSize = 2*BoardRadius + 1
	// MaxReach bounds |x|+|y| for a playable cell.
	MaxReach = 12
	// GardenReach bounds |x|+|y| for cells that belong to a garden.
	GardenReach = 7
)

// Coord is a position in game space, centered on the origin.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func C(x, y int) Coord { return Coord{X: x, Y: y} }

func (c Coord) Add(o Coord) Coord { return Coord{X: c.X + o.X, Y: c.Y + o.Y} }
func (c Coord) Sub(o Coord) Coord { return Coord{X: c.X - o.X, Y: c.Y - o.Y} }
func (c Coord) Scale(k int) Coord { return Coord{X: c.X * k, Y: c.Y * k} }
func (c Coord) Mirror() Coord { return Coord{X: -c.X, Y: -c.Y} }
func (c Coord) Valid() bool { return IsValidPosition(c.X, c.Y) }
func (c Coord) Manhattan() int { return abs(c.X) + abs(c.Y) }
func (c Coord) Storage() (int, int) { return ToStorageIndex(c.X, c.Y) }

func (c Coord) String() string {
	return fmt.Sprintf("%d,%d", c.X, c.Y)
}

// ParseCoord accepts "x,y" with optional surrounding whitespace or parentheses.
func ParseCoord(s string) (Coord, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "(")
	s = strings.TrimSuffix(s, ")")
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return Coord{}, false
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return Coord{}, false
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return Coord{}, false
	}
	return Coord{X: x, Y: y}, true
}

// IsValidPosition reports whether (x, y) lies inside the playable diamond.
func IsValidPosition(x, y int) bool {
	return abs(x) <= BoardRadius && abs(y) <= BoardRadius && C(x, y).Manhattan() <= MaxReach
}

// ToStorageIndex translates game space into backing-grid indices.
func ToStorageIndex(x, y int) (row, col int) {
	return x + BoardRadius, y + BoardRadius
}

// FromStorageIndex is the inverse of ToStorageIndex.
func FromStorageIndex(row, col int) (x, y int) {
	return row - BoardRadius, col - BoardRadius
}

// InGrid reports whether the backing grid has a slot for c. Slots outside
// the diamond exist but are never playable.
func InGrid(c Coord) bool {
	return abs(c.X) <= BoardRadius && abs(c.Y) <= BoardRadius
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
