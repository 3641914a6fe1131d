// path: internal/game/tiles/registry.go
package tiles

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"strings"
	"sync"
	"unicode"

	"ginseng_paisho/internal/game"
)

var (
	// ErrEntryClash indicates a code or kind already has a descriptor.
	ErrEntryClash = errors.New("tiles: entry already registered")
	// ErrNilFactory indicates a descriptor without a constructor.
	ErrNilFactory = errors.New("tiles: nil tile factory")
	// ErrInvalidCode indicates an empty code or one containing whitespace.
	ErrInvalidCode = errors.New("tiles: invalid tile code")
	// ErrInvalidKind indicates a kind outside the known set.
	ErrInvalidKind = errors.New("tiles: invalid tile kind")
)

// Registry maps tile codes to descriptors. It satisfies game.TileSource and is
// safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	byCode map[string]game.Descriptor
	byKind map[game.Kind]string
	order  []string
}

func NewRegistry() *Registry {
	return &Registry{
		byCode: make(map[string]game.Descriptor),
		byKind: make(map[game.Kind]string),
	}
}

// Register adds d under d.Code. Each code and each kind may appear once.
func (r *Registry) Register(d game.Descriptor) error {
	if d.Code == "" || strings.ContainsFunc(d.Code, unicode.IsSpace) {
		return fmt.Errorf("%w: %q", ErrInvalidCode, d.Code)
	}
	if !d.Kind.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidKind, d.Kind)
	}
	if d.New == nil {
		return fmt.Errorf("%w: %s", ErrNilFactory, d.Code)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byCode[d.Code]; exists {
		return fmt.Errorf("%w: code %s", ErrEntryClash, d.Code)
	}
	if prev, exists := r.byKind[d.Kind]; exists {
		return fmt.Errorf("%w: %s already registered as %s", ErrEntryClash, d.Kind, prev)
	}
	r.byCode[d.Code] = d
	r.byKind[d.Kind] = d.Code
	r.order = append(r.order, d.Code)
	return nil
}

// Lookup returns the descriptor registered under code.
func (r *Registry) Lookup(code string) (game.Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.byCode[code]
	return d, ok
}

func (r *Registry) Code(k game.Kind) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	code, ok := r.byKind[k]
	return code, ok
}

// Descriptors yields a copy of the registered entries in registration order.
func (r *Registry) Descriptors() iter.Seq[game.Descriptor] {
	r.mu.RLock()
	out := make([]game.Descriptor, 0, len(r.order))
	for _, code := range r.order {
		out = append(out, r.byCode[code])
	}
	r.mu.RUnlock()
	return slices.Values(out)
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

var builtins = [...]game.Descriptor{
	{Code: "wl", Kind: game.KindWhiteLotus, New: game.NewWhiteLotus},
	{Code: "drg", Kind: game.KindDragon, New: game.NewDragon},
	{Code: "bm", Kind: game.KindBadgermole, New: game.NewBadgermole},
	{Code: "sb", Kind: game.KindSkyBison, New: game.NewSkyBison},
	{Code: "koi", Kind: game.KindKoi, New: game.NewKoi},
	{Code: "wh", Kind: game.KindWheel, New: game.NewWheel},
	{Code: "gs", Kind: game.KindGinseng, New: game.NewGinseng},
	{Code: "oc", Kind: game.KindOrchid, New: game.NewOrchid},
	{Code: "lt", Kind: game.KindLionTurtle, New: game.NewLionTurtle},
}

// Default returns a fresh registry holding the nine Ginseng tiles.
func Default() (*Registry, error) {
	r := NewRegistry()
	for _, d := range builtins {
		if err := r.Register(d); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func MustDefault() *Registry {
	r, err := Default()
	if err != nil {
		panic(err)
	}
	return r
}
