// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers register hooks at startup to
// receive events about parsing, grammar compilation and the grammar cache.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, not by libraries, so the units package never
// imports an observability backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetParseHooks(&myParseHooks{})
//	    observability.SetGrammarHooks(&myGrammarHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Parse().OnParseStart(ctx, text)
//	// ... match and decode ...
//	observability.Parse().OnParseComplete(ctx, text, components, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Parse Hooks
// =============================================================================

// ParseHooks receives events from the quantity parser.
type ParseHooks interface {
	OnParseStart(ctx context.Context, text string)
	OnParseComplete(ctx context.Context, text string, components int, duration time.Duration, err error)
}

// =============================================================================
// Grammar Hooks
// =============================================================================

// GrammarHooks receives events from grammar compilation. scope is "global",
// "union" or the name of the kind the grammar is restricted to.
type GrammarHooks interface {
	OnGrammarCompiled(ctx context.Context, scope string, units int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from the per-kind grammar cache.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, kind string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, kind string)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopParseHooks is a no-op implementation of ParseHooks.
type NoopParseHooks struct{}

func (NoopParseHooks) OnParseStart(context.Context, string)                                {}
func (NoopParseHooks) OnParseComplete(context.Context, string, int, time.Duration, error) {}

// NoopGrammarHooks is a no-op implementation of GrammarHooks.
type NoopGrammarHooks struct{}

func (NoopGrammarHooks) OnGrammarCompiled(context.Context, string, int, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)  {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	parseHooks   ParseHooks   = NoopParseHooks{}
	grammarHooks GrammarHooks = NoopGrammarHooks{}
	cacheHooks   CacheHooks   = NoopCacheHooks{}
	hooksMu      sync.RWMutex
)

// SetParseHooks registers custom parse hooks.
// This should be called once at application startup before any parsing.
func SetParseHooks(h ParseHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		parseHooks = h
	}
}

// SetGrammarHooks registers custom grammar hooks.
// This should be called once at application startup before any registry is
// initialized.
func SetGrammarHooks(h GrammarHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		grammarHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Parse returns the registered parse hooks.
func Parse() ParseHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return parseHooks
}

// Grammar returns the registered grammar hooks.
func Grammar() GrammarHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return grammarHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	parseHooks = NoopParseHooks{}
	grammarHooks = NoopGrammarHooks{}
	cacheHooks = NoopCacheHooks{}
}
