package shared

type Direction uint8

const (
	DirN Direction = iota
	DirE
	DirS
	DirW
)

func (d Direction) String() string {
	switch d {
	case DirN:
		return "N"
	case DirE:
		return "E"
	case DirS:
		return "S"
	case DirW:
		return "W"
	default:
		return "?"
	}
}

// Delta is the unit step for d. North is +y.
func (d Direction) Delta() Coord {
	switch d {
	case DirN:
		return Coord{X: 0, Y: 1}
	case DirE:
		return Coord{X: 1, Y: 0}
	case DirS:
		return Coord{X: 0, Y: -1}
	case DirW:
		return Coord{X: -1, Y: 0}
	default:
		return Coord{}
	}
}

// Cardinals lists the four orthogonal directions in a fixed order.
var Cardinals = [...]Direction{DirN, DirE, DirS, DirW}

var (
	// Diagonals are the four unit diagonal steps.
	Diagonals = [...]Coord{
		{X: 1, Y: 1},
		{X: 1, Y: -1},
		{X: -1, Y: 1},
		{X: -1, Y: -1},
	}
	// Surroundings is the 8-neighbourhood of a cell.
	Surroundings = [...]Coord{
		{X: -1, Y: 1}, {X: 0, Y: 1}, {X: 1, Y: 1},
		{X: -1, Y: 0}, {X: 1, Y: 0},
		{X: -1, Y: -1}, {X: 0, Y: -1}, {X: 1, Y: -1},
	}
)

// Adjacent reports whether a and b are distinct cells of one 8-neighbourhood.
func Adjacent(a, b Coord) bool {
	dx := abs(a.X - b.X)
	dy := abs(a.Y - b.Y)
	return (dx|dy) != 0 && dx <= 1 && dy <= 1
}
