package simulation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/blockcanvas/pkg/graph"
)

// fakeEngine lets tests control when a run completes and inspect the payload
// it received.
type fakeEngine struct {
	mu       sync.Mutex
	payloads []graph.WireGraph
	block    chan struct{}
	results  map[string]TimeSeries
	err      error
}

func (f *fakeEngine) Execute(ctx context.Context, payload graph.WireGraph, totalTime, timeStep float64, meta []PortMeta) (map[string]TimeSeries, error) {
	f.mu.Lock()
	f.payloads = append(f.payloads, payload)
	f.mu.Unlock()
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.results, f.err
}

func runnableGraph(t *testing.T) *graph.Graph {
	t.Helper()
	src := graph.Block{
		ID:          graph.NewBlockID(),
		Name:        "step",
		Size:        graph.DefaultBlockSize,
		OutputPorts: []graph.Port{{ID: graph.NewPortID(), Name: "out", Type: graph.TypeNumber}},
		Callback:    "t >= 1 ? 1 : 0",
	}
	dst := graph.Block{
		ID:         graph.NewBlockID(),
		Name:       "scope",
		Size:       graph.DefaultBlockSize,
		InputPorts: []graph.Port{{ID: graph.NewPortID(), Name: "in", Type: graph.TypeNumber}},
	}
	return &graph.Graph{
		Blocks: []graph.Block{src, dst},
		Edges: []graph.Edge{{
			ID:     graph.NewEdgeID(),
			Type:   graph.TypeNumber,
			Output: graph.Endpoint{BlockID: src.ID, PortID: src.OutputPorts[0].ID},
			Input:  graph.Endpoint{BlockID: dst.ID, PortID: dst.InputPorts[0].ID},
		}},
	}
}

func TestRunnerDeliversResults(t *testing.T) {
	want := map[string]TimeSeries{
		"scope.in": {Times: []float64{0, 1, 2}, Values: []float64{0, 1, 1}},
	}
	engine := &fakeEngine{results: want}
	runner := NewRunner(engine)
	g := runnableGraph(t)

	got, err := runner.Run(context.Background(), g, 2.0, 1.0, []PortMeta{
		{BlockID: g.Blocks[1].ID, PortID: g.Blocks[1].InputPorts[0].ID, Label: "scope.in"},
	})
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.False(t, runner.Running())

	// The engine saw the stripped wire payload, not the layout document.
	require.Len(t, engine.payloads, 1)
	assert.Len(t, engine.payloads[0].Blocks, 2)
	assert.Len(t, engine.payloads[0].Edges, 1)
}

func TestRunnerRejectsSecondRunInFlight(t *testing.T) {
	engine := &fakeEngine{block: make(chan struct{})}
	runner := NewRunner(engine)
	g := runnableGraph(t)

	firstDone := make(chan error, 1)
	go func() {
		_, err := runner.Run(context.Background(), g, 1.0, 0.1, nil)
		firstDone <- err
	}()

	// Wait until the first run is inside the engine.
	for !runner.Running() {
		time.Sleep(time.Millisecond)
	}

	_, err := runner.Run(context.Background(), g, 1.0, 0.1, nil)
	assert.ErrorIs(t, err, ErrRunInFlight)

	close(engine.block)
	require.NoError(t, <-firstDone)
	assert.False(t, runner.Running())

	// With the first run finished a new run is accepted again.
	_, err = runner.Run(context.Background(), g, 1.0, 0.1, nil)
	assert.NoError(t, err)
}

func TestRunnerValidatesTimes(t *testing.T) {
	runner := NewRunner(&fakeEngine{})
	g := runnableGraph(t)

	tests := []struct {
		name  string
		total float64
		step  float64
	}{
		{"zero total", 0, 0.1},
		{"negative total", -1, 0.1},
		{"zero step", 1, 0},
		{"step exceeds total", 1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runner.Run(context.Background(), g, tt.total, tt.step, nil)
			assert.Error(t, err)
		})
	}
}

func TestRunnerRejectsInvalidGraph(t *testing.T) {
	engine := &fakeEngine{}
	runner := NewRunner(engine)
	g := runnableGraph(t)
	g.Edges[0].Input.BlockID = "gone"

	_, err := runner.Run(context.Background(), g, 1.0, 0.1, nil)
	require.Error(t, err)
	assert.Empty(t, engine.payloads, "an invalid graph must never reach the engine")
}

func TestRunnerWrapsEngineFailure(t *testing.T) {
	cause := errors.New("solver diverged")
	runner := NewRunner(&fakeEngine{err: cause})
	g := runnableGraph(t)

	_, err := runner.Run(context.Background(), g, 1.0, 0.1, nil)
	assert.ErrorIs(t, err, cause)
	assert.False(t, runner.Running(), "a failed run must release the in-flight guard")
}

func TestRunnerHonorsContext(t *testing.T) {
	engine := &fakeEngine{block: make(chan struct{})}
	runner := NewRunner(engine)
	g := runnableGraph(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := runner.Run(ctx, g, 1.0, 0.1, nil)
		done <- err
	}()
	for !runner.Running() {
		time.Sleep(time.Millisecond)
	}
	cancel()

	err := <-done
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, runner.Running())
}
