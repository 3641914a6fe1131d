package game

import "ginseng_paisho/internal/shared"

// Zone is a bitset of the region flags a cell belongs to.
type Zone uint8

const (
	ZoneNeutralGarden Zone = 1 << iota
	ZoneRedGarden
	ZoneWhiteGarden
	ZoneNorthShrine
	ZoneEastShrine
	ZoneSouthShrine
	ZoneWestShrine
)

const (
	ZoneNone   Zone = 0
	ZoneShrine Zone = ZoneNorthShrine | ZoneEastShrine | ZoneSouthShrine | ZoneWestShrine
)

func (z Zone) Has(flag Zone) bool { return z&flag != 0 }

func (z Zone) IsShrine() bool { return z.Has(ZoneShrine) }
func (z Zone) IsRedGarden() bool { return z.Has(ZoneRedGarden) }
func (z Zone) IsWhiteGarden() bool { return z.Has(ZoneWhiteGarden) }

func (z Zone) String() string {
	if z == ZoneNone {
		return "none"
	}
	names := [...]string{"neutral", "red", "white", "north-shrine", "east-shrine", "south-shrine", "west-shrine"}
	out := ""
	for i, name := range names {
		if z&(1<<i) == 0 {
			continue
		}
		if out != "" {
			out += "|"
		}
		out += name
	}
	return out
}

// shrineCells maps each shrine to its four-cell cluster. North is +y; the
// guest's lotus starts in the north shrine.
var shrineCells = map[Zone][4]Coord{
	ZoneNorthShrine: {{X: -1, Y: 8}, {X: 0, Y: 8}, {X: 1, Y: 8}, {X: 0, Y: 7}},
	ZoneSouthShrine: {{X: -1, Y: -8}, {X: 0, Y: -8}, {X: 1, Y: -8}, {X: 0, Y: -7}},
	ZoneEastShrine:  {{X: 8, Y: -1}, {X: 8, Y: 0}, {X: 8, Y: 1}, {X: 7, Y: 0}},
	ZoneWestShrine:  {{X: -8, Y: -1}, {X: -8, Y: 0}, {X: -8, Y: 1}, {X: -7, Y: 0}},
}

// gardenZone classifies a cell by the sign of x*y. Cells on either axis
// belong to both gardens and are tagged neutral.
func gardenZone(x, y int) Zone {
	if shared.C(x, y).Manhattan() > shared.GardenReach {
		return ZoneNone
	}
	var z Zone
	if x*y > 0 {
		z = ZoneWhiteGarden
	} else {
		z = ZoneRedGarden
	}
	if x*y == 0 {
		z |= ZoneWhiteGarden | ZoneNeutralGarden
	}
	return z
}

// homeShrine is where a side's lotus starts and returns to when captured.
func homeShrine(side Side) Zone {
	if side == Host {
		return ZoneSouthShrine
	}
	return ZoneNorthShrine
}

// lotusHome is the starting cell of a side's lotus.
func lotusHome(side Side) Coord {
	if side == Host {
		return Coord{X: 0, Y: -shared.BoardRadius}
	}
	return Coord{X: 0, Y: shared.BoardRadius}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
