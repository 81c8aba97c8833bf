// Package simulation is the boundary to the external engine that executes
// a diagram and returns time-series data. The core never simulates; it
// builds a stripped payload, fires one request, and applies the response.
package simulation

import (
	"context"
	"errors"

	"github.com/dshills/blockcanvas/pkg/graph"
)

// ErrRunInFlight is returned when a run is requested while another run has
// not yet completed
var ErrRunInFlight = errors.New("a simulation run is already in flight")

// TimeSeries is one port's sampled values over the simulated time span.
// Times and Values always have equal length.
type TimeSeries struct {
	Times  []float64 `json:"times"`
	Values []float64 `json:"values"`
}

// PortMeta selects a port whose values the engine should record and how to
// label the resulting series
type PortMeta struct {
	BlockID graph.BlockID `json:"block_id"`
	PortID  graph.PortID  `json:"port_id"`
	Label   string        `json:"label"`
}

// Engine is the external simulation collaborator. Execute blocks until the
// run finishes or the context is cancelled; results are keyed by the labels
// from the visualization metadata.
type Engine interface {
	Execute(ctx context.Context, payload graph.WireGraph, totalTime, timeStep float64, meta []PortMeta) (map[string]TimeSeries, error)
}
