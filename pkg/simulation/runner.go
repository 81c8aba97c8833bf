package simulation

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/dshills/blockcanvas/pkg/graph"
)

// Runner wraps an Engine with the editor's run discipline: at most one run
// in flight, and the payload built fresh from the graph at request time so
// a run always reflects the state it was started from.
type Runner struct {
	engine   Engine
	inFlight atomic.Bool
}

// NewRunner creates a runner over the given engine
func NewRunner(engine Engine) *Runner {
	return &Runner{engine: engine}
}

// Running reports whether a run is currently in flight
func (r *Runner) Running() bool {
	return r.inFlight.Load()
}

// Run strips the graph to its wire payload and executes it. A second run
// requested while one is outstanding is rejected with ErrRunInFlight; the
// caller decides whether to surface or ignore that. Results are returned
// only on full success, so the caller's state is never partially updated.
func (r *Runner) Run(ctx context.Context, g *graph.Graph, totalTime, timeStep float64, meta []PortMeta) (map[string]TimeSeries, error) {
	if totalTime <= 0 {
		return nil, fmt.Errorf("total time must be positive, got %g", totalTime)
	}
	if timeStep <= 0 || timeStep > totalTime {
		return nil, fmt.Errorf("time step must be in (0, total time], got %g", timeStep)
	}
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("graph failed validation before run: %w", err)
	}

	if !r.inFlight.CompareAndSwap(false, true) {
		return nil, ErrRunInFlight
	}
	defer r.inFlight.Store(false)

	payload := graph.ExportWire(g)
	results, err := r.engine.Execute(ctx, payload, totalTime, timeStep, meta)
	if err != nil {
		return nil, fmt.Errorf("simulation run failed: %w", err)
	}
	return results, nil
}
