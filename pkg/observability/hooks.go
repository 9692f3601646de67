// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about scale changes, variant-cache operations, and display
// detection attempts.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetScaleHooks(&myScaleHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Scale().OnScaleChanged(oldFactor, newFactor)
package observability

import "sync"

// =============================================================================
// Scale Hooks
// =============================================================================

// ScaleHooks receives events from the scale state.
type ScaleHooks interface {
	// OnScaleChanged records a committed factor change. Called after the new
	// value is visible and before subscribers have all been notified.
	OnScaleChanged(old, new float64)

	// OnClamp records a requested factor that was clamped into bounds.
	OnClamp(requested, clamped float64)

	// OnListenerPanic records a subscriber callback that panicked during
	// notification. Delivery to the remaining subscribers continues.
	OnListenerPanic(recovered any)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from variant selection caches.
type CacheHooks interface {
	// OnHit records a selection-cache hit.
	OnHit(assetID string)

	// OnMiss records a selection-cache miss.
	OnMiss(assetID string)

	// OnInvalidate records a cache invalidation caused by a scale change.
	OnInvalidate(assetID string)
}

// =============================================================================
// Detect Hooks
// =============================================================================

// DetectHooks receives events from display detection attempts.
type DetectHooks interface {
	// OnDetect records a successful detection.
	OnDetect(factor float64)

	// OnDetectError records a failed detection. The failure is not surfaced
	// to refresh callers; hooks are the only place it is observable.
	OnDetectError(err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopScaleHooks is a no-op implementation of ScaleHooks.
type NoopScaleHooks struct{}

func (NoopScaleHooks) OnScaleChanged(float64, float64) {}
func (NoopScaleHooks) OnClamp(float64, float64)        {}
func (NoopScaleHooks) OnListenerPanic(any)             {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnHit(string)        {}
func (NoopCacheHooks) OnMiss(string)       {}
func (NoopCacheHooks) OnInvalidate(string) {}

// NoopDetectHooks is a no-op implementation of DetectHooks.
type NoopDetectHooks struct{}

func (NoopDetectHooks) OnDetect(float64)    {}
func (NoopDetectHooks) OnDetectError(error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	scaleHooks  ScaleHooks  = NoopScaleHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	detectHooks DetectHooks = NoopDetectHooks{}
	hooksMu     sync.RWMutex
)

// SetScaleHooks registers custom scale hooks.
// This should be called once at application startup before any scale updates.
func SetScaleHooks(h ScaleHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		scaleHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any selections.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetDetectHooks registers custom detection hooks.
// This should be called once at application startup before any detection.
func SetDetectHooks(h DetectHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		detectHooks = h
	}
}

// Scale returns the registered scale hooks.
func Scale() ScaleHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return scaleHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Detect returns the registered detection hooks.
func Detect() DetectHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return detectHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	scaleHooks = NoopScaleHooks{}
	cacheHooks = NoopCacheHooks{}
	detectHooks = NoopDetectHooks{}
}
