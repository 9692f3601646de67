// Package scale tracks the canonical display scale factor for a process.
//
// A State is the single source of truth for the active factor. External
// monitors feed it raw detected values via Update or Refresh; the State
// clamps them into bounds, drops no-op changes below an epsilon threshold,
// and notifies subscribers synchronously with the (old, new) pair.
//
// A State is constructed explicitly and handed to every consumer; there is
// no package-level singleton. Lifetime and visibility stay visible in the
// dependency graph instead of hiding behind global access.
//
// # Usage
//
//	state := scale.New()
//	token := state.Subscribe(scale.ListenerFunc(func(old, new float64) {
//	    relayout(new)
//	}))
//	defer state.Unsubscribe(token)
//
//	state.Update(1.5)
package scale

import (
	"io"
	"math"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/densikit/densikit/pkg/observability"
)

const (
	// BaseDPI is the baseline dot density at factor 1.0 (Windows 100%).
	BaseDPI = 96

	// DefaultMin is the smallest supported scale factor (75%).
	DefaultMin = 0.75

	// DefaultMax is the largest supported scale factor (300%).
	DefaultMax = 3.0

	// Epsilon is the minimum factor difference treated as a real change.
	// Updates within Epsilon of the current value are dropped without
	// notification.
	Epsilon = 0.001
)

// DetectFunc is a display-context provider: it returns a best-effort
// detected scale factor. A failed detection returns an error and is
// treated as "no new information" by Refresh.
type DetectFunc func() (float64, error)

// Listener receives scale change notifications.
type Listener interface {
	// ScaleChanged is called synchronously after a factor change commits,
	// on whichever goroutine called Update. Implementations must be cheap
	// and must not call back into State.Update (see State.Update).
	ScaleChanged(old, new float64)
}

// ListenerFunc adapts a plain function to the Listener interface.
type ListenerFunc func(old, new float64)

// ScaleChanged calls f(old, new).
func (f ListenerFunc) ScaleChanged(old, new float64) { f(old, new) }

// Token identifies a subscription. The zero Token is never issued and
// unsubscribing it is a no-op.
type Token uuid.UUID

// Options configures a State. The zero value of each field selects the
// documented default.
type Options struct {
	// Min and Max bound the stored factor. Zero values select DefaultMin
	// and DefaultMax. Min must be positive and less than Max.
	Min, Max float64

	// Initial is the starting factor before any detection. Zero selects 1.0.
	Initial float64

	// Detect, when set, is invoked once during construction. On success its
	// result replaces Initial; on failure Initial stands.
	Detect DetectFunc

	// Logger receives diagnostics. Nil disables logging.
	Logger *log.Logger
}

// State owns the canonical scale factor. It is safe for concurrent use:
// Get is a lock-free read and Update serializes concurrent writers so the
// committed value and its notifications form a single atomic unit.
type State struct {
	min, max float64
	logger   *log.Logger

	// bits holds math.Float64bits of the current factor, so Get never
	// blocks even while an Update is dispatching notifications.
	bits atomic.Uint64

	// updateMu serializes Update calls across commit and dispatch.
	updateMu sync.Mutex

	// subMu guards subs. Dispatch iterates over a snapshot, so listeners
	// may subscribe or unsubscribe other listeners during notification.
	subMu sync.Mutex
	subs  []subscription
}

type subscription struct {
	token    Token
	listener Listener
}

// New creates a State with default bounds and an initial factor of 1.0.
func New() *State {
	return NewWithOptions(Options{})
}

// NewWithOptions creates a State from opts. Invalid bounds (Min <= 0 or
// Min >= Max) indicate a programming defect and panic.
func NewWithOptions(opts Options) *State {
	min, max := opts.Min, opts.Max
	if min == 0 {
		min = DefaultMin
	}
	if max == 0 {
		max = DefaultMax
	}
	if min <= 0 || min >= max {
		panic("scale: invalid bounds")
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	initial := opts.Initial
	if initial == 0 {
		initial = 1.0
	}
	if opts.Detect != nil {
		if detected, err := opts.Detect(); err == nil {
			initial = detected
		} else {
			observability.Detect().OnDetectError(err)
			logger.Debug("initial scale detection failed", "err", err)
		}
	}

	s := &State{min: min, max: max, logger: logger}
	s.bits.Store(math.Float64bits(s.clamp(initial)))
	logger.Debug("scale state initialized", "factor", s.Get())
	return s
}

// Get returns the current clamped scale factor. It never blocks.
func (s *State) Get() float64 {
	return math.Float64frombits(s.bits.Load())
}

// Bounds returns the configured (min, max) factor bounds.
func (s *State) Bounds() (min, max float64) {
	return s.min, s.max
}

// DPI returns the current factor expressed as a dot density relative to
// the 96 DPI baseline.
func (s *State) DPI() int {
	return Scale(BaseDPI, s.Get())
}

// Update clamps requested into bounds and, if the result differs from the
// current factor by more than Epsilon, commits it and notifies every live
// subscriber synchronously with the (old, new) pair. Within Epsilon the
// call is a no-op. Clamping is never an error.
//
// Update may be called concurrently; writers are serialized. Calling
// Update from inside a listener callback is forbidden and deadlocks.
func (s *State) Update(requested float64) {
	if math.IsNaN(requested) {
		return
	}

	s.updateMu.Lock()
	defer s.updateMu.Unlock()

	clamped := s.clamp(requested)
	if clamped != requested {
		observability.Scale().OnClamp(requested, clamped)
		s.logger.Debug("scale factor clamped", "requested", requested, "clamped", clamped)
	}

	old := s.Get()
	if math.Abs(clamped-old) <= Epsilon {
		return
	}

	s.bits.Store(math.Float64bits(clamped))
	s.logger.Info("scale factor changed", "old", old, "new", clamped)
	observability.Scale().OnScaleChanged(old, clamped)

	for _, sub := range s.snapshot() {
		s.dispatch(sub.listener, old, clamped)
	}
}

// Refresh invokes detect once and feeds the result to Update. A failed
// detection leaves the factor as-is; the failure is observable only via
// logging and the detect hooks.
func (s *State) Refresh(detect DetectFunc) {
	if detect == nil {
		return
	}
	factor, err := detect()
	if err != nil {
		observability.Detect().OnDetectError(err)
		s.logger.Debug("scale detection failed", "err", err)
		return
	}
	observability.Detect().OnDetect(factor)
	s.Update(factor)
}

// Subscribe registers l for change notifications and returns its Token.
// Subscribing the same listener twice returns the existing token rather
// than producing duplicate notifications. The State holds no ownership of
// the listener; the subscriber is responsible for calling Unsubscribe
// during its own teardown.
func (s *State) Subscribe(l Listener) Token {
	if l == nil {
		return Token{}
	}

	s.subMu.Lock()
	defer s.subMu.Unlock()

	// Dedupe only listeners with comparable dynamic types; comparing
	// func-backed listeners would panic.
	if reflect.TypeOf(l).Comparable() {
		for _, sub := range s.subs {
			if reflect.TypeOf(sub.listener).Comparable() && sub.listener == l {
				return sub.token
			}
		}
	}

	token := Token(uuid.New())
	s.subs = append(s.subs, subscription{token: token, listener: l})
	s.logger.Debug("scale listener added", "subscribers", len(s.subs))
	return token
}

// Unsubscribe removes the subscription identified by token. Unknown or
// already-removed tokens are a no-op.
func (s *State) Unsubscribe(token Token) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	for i, sub := range s.subs {
		if sub.token == token {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			s.logger.Debug("scale listener removed", "subscribers", len(s.subs))
			return
		}
	}
}

// SubscriberCount returns the number of live subscriptions.
func (s *State) SubscriberCount() int {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	return len(s.subs)
}

// snapshot copies the subscription list so dispatch never holds subMu.
func (s *State) snapshot() []subscription {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	return append([]subscription(nil), s.subs...)
}

// dispatch invokes one listener, isolating panics so the remaining
// listeners are still notified and the updater never observes the failure.
func (s *State) dispatch(l Listener, old, new float64) {
	defer func() {
		if r := recover(); r != nil {
			observability.Scale().OnListenerPanic(r)
			s.logger.Error("scale listener panicked", "recovered", r)
		}
	}()
	l.ScaleChanged(old, new)
}

func (s *State) clamp(f float64) float64 {
	return math.Max(s.min, math.Min(s.max, f))
}
