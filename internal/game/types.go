// path: internal/game/types.go
package game

import (
	"fmt"
	"strings"

	"ginseng_paisho/internal/shared"
)

type Coord = shared.Coord

// Side identifies the owner of a piece. The guest moves on odd turns.
type Side uint8

const (
	Guest Side = iota
	Host
)

func (s Side) Opposite() Side {
	if s == Guest {
		return Host
	}
	return Guest
}

func (s Side) Index() int { return int(s) }

func (s Side) String() string {
	if s == Host {
		return "host"
	}
	return "guest"
}

func ParseSide(s string) (Side, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "host":
		return Host, true
	case "guest":
		return Guest, true
	default:
		return Guest, false
	}
}

func (s Side) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Side) UnmarshalText(text []byte) error {
	v, ok := ParseSide(string(text))
	if !ok {
		return fmt.Errorf("invalid side %q", text)
	}
	*s = v
	return nil
}

// Kind is the closed set of tile types. The declaration order is also the
// order captured pools are presented in.
type Kind uint8

const (
	KindWhiteLotus Kind = iota
	KindDragon
	KindBadgermole
	KindSkyBison
	KindKoi
	KindWheel
	KindGinseng
	KindOrchid
	KindLionTurtle
	kindCount
)

// Kinds lists every tile type in pool order.
var Kinds = [...]Kind{
	KindWhiteLotus,
	KindDragon,
	KindBadgermole,
	KindSkyBison,
	KindKoi,
	KindWheel,
	KindGinseng,
	KindOrchid,
	KindLionTurtle,
}

func (k Kind) String() string {
	switch k {
	case KindWhiteLotus:
		return "White Lotus"
	case KindDragon:
		return "Dragon"
	case KindBadgermole:
		return "Badgermole"
	case KindSkyBison:
		return "Sky Bison"
	case KindKoi:
		return "Koi"
	case KindWheel:
		return "Wheel"
	case KindGinseng:
		return "Ginseng"
	case KindOrchid:
		return "Orchid"
	case KindLionTurtle:
		return "Lion Turtle"
	default:
		return fmt.Sprintf("kind(%d)", k)
	}
}

func (k Kind) Valid() bool { return k < kindCount }

// HasAbility reports whether the kind carries a targeted ability.
func (k Kind) HasAbility() bool { return k == KindDragon || k == KindBadgermole }

// BoostEligible reports whether the kind gains range next to its lotus.
func (k Kind) BoostEligible() bool { return k == KindSkyBison }

func ParseKind(s string) (Kind, bool) {
	norm := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
	for _, k := range Kinds {
		if strings.ToLower(strings.ReplaceAll(k.String(), " ", "")) == norm {
			return k, true
		}
	}
	return 0, false
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *Kind) UnmarshalText(text []byte) error {
	v, ok := ParseKind(string(text))
	if !ok {
		return fmt.Errorf("invalid kind %q", text)
	}
	*k = v
	return nil
}

// Status is the game's lifecycle state. Every value except StatusRunning is
// terminal.
type Status uint8

const (
	StatusRunning Status = iota
	StatusHostWin
	StatusGuestWin
	StatusDraw
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusHostWin:
		return "host-win"
	case StatusGuestWin:
		return "guest-win"
	case StatusDraw:
		return "draw"
	default:
		return "?"
	}
}

func (s Status) Terminal() bool { return s != StatusRunning }

func ParseStatus(s string) (Status, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "running":
		return StatusRunning, true
	case "host-win":
		return StatusHostWin, true
	case "guest-win":
		return StatusGuestWin, true
	case "draw":
		return StatusDraw, true
	default:
		return StatusRunning, false
	}
}

func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Status) UnmarshalText(text []byte) error {
	v, ok := ParseStatus(string(text))
	if !ok {
		return fmt.Errorf("invalid status %q", text)
	}
	*s = v
	return nil
}

// winFor is the status reached when side wins.
func winFor(side Side) Status {
	if side == Host {
		return StatusHostWin
	}
	return StatusGuestWin
}

// FlightPolicy decides when a boosted Sky Bison may jump instead of walk.
type FlightPolicy uint8

const (
	// FlightGameToggle follows Options.BisonFlight.
	FlightGameToggle FlightPolicy = iota
	// FlightOff never flies.
	FlightOff
	// FlightAlways flies whenever boosted, regardless of the toggle.
	FlightAlways
)

func (f FlightPolicy) String() string {
	switch f {
	case FlightGameToggle:
		return "toggle"
	case FlightOff:
		return "off"
	case FlightAlways:
		return "always"
	default:
		return "?"
	}
}

func FlightPolicyStrings() []string {
	return []string{FlightGameToggle.String(), FlightOff.String(), FlightAlways.String()}
}

func ParseFlightPolicy(s string) (FlightPolicy, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "toggle":
		return FlightGameToggle, true
	case "off":
		return FlightOff, true
	case "always":
		return FlightAlways, true
	default:
		return FlightGameToggle, false
	}
}

func (f FlightPolicy) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

func (f *FlightPolicy) UnmarshalText(text []byte) error {
	v, ok := ParseFlightPolicy(string(text))
	if !ok {
		return fmt.Errorf("invalid flight policy %q; valid: %v", text, FlightPolicyStrings())
	}
	*f = v
	return nil
}

// FlightOverride forces flight on or off for a single move query.
type FlightOverride uint8

const (
	FlightDefault FlightOverride = iota
	FlightForceOn
	FlightForceOff
)

// MoveOptions tweaks a single destination query.
type MoveOptions struct {
	Flight FlightOverride
}
