package assets

import (
	"math"
	"sync"

	"github.com/densikit/densikit/pkg/observability"
	"github.com/densikit/densikit/pkg/scale"
)

// Rendered describes how a selection should be drawn: the invariant logical
// size and the physical width/height at the requested factor.
type Rendered struct {
	// Logical is the unscaled size; it does not change across factors.
	Logical scale.Size

	// W and H are Logical scaled by the requested factor, rounded half away
	// from zero. They are derived from the factor, not from the variant
	// that happened to be chosen.
	W, H int

	// Factor is the factor the selection was made for.
	Factor float64
}

// Selector answers variant selections for one logical asset. It subscribes
// to a scale.State at construction and keeps a one-entry selection cache
// that every scale change invalidates. A Selector is owned by a UI element
// and must be closed during that element's teardown.
type Selector[H any] struct {
	id       string
	logical  scale.Size
	registry Registry[H]
	state    *scale.State
	token    scale.Token

	mu           sync.Mutex
	cached       Variant[H]
	cachedOK     bool
	cachedFactor float64
	closed       bool
}

// NewSelector creates a Selector for the asset id with the given logical
// size and registry, bound to state for cache invalidation.
func NewSelector[H any](id string, logical scale.Size, registry Registry[H], state *scale.State) *Selector[H] {
	s := &Selector[H]{
		id:       id,
		logical:  logical,
		registry: registry,
		state:    state,
	}
	s.token = state.Subscribe(scale.ListenerFunc(func(old, new float64) {
		s.invalidate()
	}))
	return s
}

// Close unsubscribes from the scale state. It is idempotent; a closed
// Selector still answers selections, it just stops tracking changes.
func (s *Selector[H]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.state.Unsubscribe(s.token)
}

// ID returns the logical asset id.
func (s *Selector[H]) ID() string { return s.id }

// Logical returns the unscaled size.
func (s *Selector[H]) Logical() scale.Size { return s.logical }

// Registry returns the variant registry.
func (s *Selector[H]) Registry() Registry[H] { return s.registry }

// Select picks the best variant for the state's current factor.
// ok is false when the registry is empty; Rendered is valid either way so
// the caller can size a placeholder.
func (s *Selector[H]) Select() (v Variant[H], r Rendered, ok bool) {
	return s.SelectFor(s.state.Get())
}

// SelectFor picks the best variant for an explicit factor.
func (s *Selector[H]) SelectFor(factor float64) (v Variant[H], r Rendered, ok bool) {
	r = Rendered{
		Logical: s.logical,
		W:       scale.Scale(s.logical.W, factor),
		H:       scale.Scale(s.logical.H, factor),
		Factor:  factor,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// cachedFactor is 0 only when the cache is empty; factors are clamped
	// positive before they get here.
	if s.cachedFactor != 0 && math.Abs(s.cachedFactor-factor) <= factorEpsilon {
		observability.Cache().OnHit(s.id)
		return s.cached, r, s.cachedOK
	}

	observability.Cache().OnMiss(s.id)
	v, ok = s.registry.pick(factor)
	s.cached, s.cachedOK, s.cachedFactor = v, ok, factor
	return v, r, ok
}

// invalidate clears the selection cache after a scale change.
func (s *Selector[H]) invalidate() {
	s.mu.Lock()
	s.cached, s.cachedOK, s.cachedFactor = Variant[H]{}, false, 0
	s.mu.Unlock()
	observability.Cache().OnInvalidate(s.id)
}
