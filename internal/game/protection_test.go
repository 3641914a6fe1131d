package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineOfSightProtection(t *testing.T) {
	t.Run("clear line at distance five", func(t *testing.T) {
		g := newBareGame(t, Options{LineOfSightProtection: true})
		koi := put(t, g, KindKoi, Guest, C(0, 0))
		put(t, g, KindGinseng, Guest, C(5, 0))
		assert.True(t, g.IsProtected(koi))
	})

	t.Run("blocker at distance two", func(t *testing.T) {
		g := newBareGame(t, Options{LineOfSightProtection: true})
		koi := put(t, g, KindKoi, Guest, C(0, 0))
		put(t, g, KindGinseng, Guest, C(5, 0))
		put(t, g, KindWheel, Host, C(2, 0))
		assert.False(t, g.IsProtected(koi))
	})

	t.Run("unlimited range", func(t *testing.T) {
		g := newBareGame(t, Options{LineOfSightProtection: true})
		koi := put(t, g, KindKoi, Guest, C(0, -1))
		put(t, g, KindGinseng, Guest, C(0, 6))
		assert.True(t, g.IsProtected(koi))
	})

	t.Run("enemy ginseng blocks", func(t *testing.T) {
		g := newBareGame(t, Options{LineOfSightProtection: true})
		koi := put(t, g, KindKoi, Guest, C(0, 0))
		put(t, g, KindGinseng, Host, C(0, 1))
		put(t, g, KindGinseng, Guest, C(0, 2))
		assert.False(t, g.IsProtected(koi))
	})

	t.Run("diagonal does not count", func(t *testing.T) {
		g := newBareGame(t, Options{LineOfSightProtection: true})
		koi := put(t, g, KindKoi, Guest, C(0, 0))
		put(t, g, KindGinseng, Guest, C(1, 1))
		assert.False(t, g.IsProtected(koi))
	})
}

func TestProximityProtection(t *testing.T) {
	t.Run("ignores blockers within reach", func(t *testing.T) {
		g := newBareGame(t, Options{})
		koi := put(t, g, KindKoi, Guest, C(0, 0))
		put(t, g, KindGinseng, Guest, C(-5, 0))
		put(t, g, KindWheel, Host, C(-2, 0))
		assert.Equal(t, ProtectionProximity, g.ProtectionMode())
		assert.True(t, g.IsProtected(koi))
	})

	t.Run("every radius in every direction", func(t *testing.T) {
		for i := 1; i <= proximityReach; i++ {
			for _, off := range []Coord{C(i, 0), C(-i, 0), C(0, i), C(0, -i)} {
				g := newBareGame(t, Options{})
				koi := put(t, g, KindKoi, Guest, C(0, 0))
				put(t, g, KindGinseng, Guest, off)
				assert.True(t, g.IsProtected(koi), "ginseng at %s", off)
			}
		}
	})

	t.Run("out of reach", func(t *testing.T) {
		g := newBareGame(t, Options{})
		koi := put(t, g, KindKoi, Guest, C(0, 0))
		put(t, g, KindGinseng, Guest, C(6, 0))
		assert.False(t, g.IsProtected(koi))
	})
}

func TestProtectedTileCannotBeCaptured(t *testing.T) {
	g := newBareGame(t, Options{})
	wheel := put(t, g, KindWheel, Host, C(0, -2))
	koi := put(t, g, KindKoi, Guest, C(0, 0))
	assert.Contains(t, g.MoveList(wheel), koi.Pos)

	put(t, g, KindGinseng, Guest, C(2, 0))
	assert.NotContains(t, g.MoveList(wheel), koi.Pos)
	assert.Contains(t, g.MoveList(wheel), C(0, -1))
}
