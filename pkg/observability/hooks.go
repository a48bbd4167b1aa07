// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. The physics core stays
// free of it: hosts (the headless runner, the interactive terminal session,
// the render command) emit events after each frame or export.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetSimulationHooks(&mySimulationHooks{})
//	    observability.SetRenderHooks(&myRenderHooks{})
//	    // ... run application
//	}
//
// Hosts call hooks to emit events:
//
//	observability.Simulation().OnRunStart(ctx, runID, particles, constraints)
//	// ... step frames ...
//	observability.Simulation().OnStep(ctx, runID, frame, torn, severed, live)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Simulation Hooks
// =============================================================================

// SimulationHooks receives events from simulation hosts.
type SimulationHooks interface {
	// OnRunStart is called once a cloth has been built for a run.
	OnRunStart(ctx context.Context, runID string, particles, constraints int)

	// OnStep is called after every frame.
	OnStep(ctx context.Context, runID string, frame, torn, severed, live int)

	// OnRunComplete is called when a run stops, with the number of frames stepped.
	OnRunComplete(ctx context.Context, runID string, frames int, duration time.Duration, err error)
}

// =============================================================================
// Render Hooks
// =============================================================================

// RenderHooks receives events from snapshot export.
type RenderHooks interface {
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopSimulationHooks is a no-op implementation of SimulationHooks.
type NoopSimulationHooks struct{}

func (NoopSimulationHooks) OnRunStart(context.Context, string, int, int)                     {}
func (NoopSimulationHooks) OnStep(context.Context, string, int, int, int, int)               {}
func (NoopSimulationHooks) OnRunComplete(context.Context, string, int, time.Duration, error) {}

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopRenderHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	simulationHooks SimulationHooks = NoopSimulationHooks{}
	renderHooks     RenderHooks     = NoopRenderHooks{}
	hooksMu         sync.RWMutex
)

// SetSimulationHooks registers custom simulation hooks.
// This should be called once at application startup before any run.
func SetSimulationHooks(h SimulationHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		simulationHooks = h
	}
}

// SetRenderHooks registers custom render hooks.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// Simulation returns the registered simulation hooks.
func Simulation() SimulationHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return simulationHooks
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	simulationHooks = NoopSimulationHooks{}
	renderHooks = NoopRenderHooks{}
}
