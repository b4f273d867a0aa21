// Package simulation produces a mocked, timed execution trace of a workflow
// graph. It performs no real side effects: each reachable node yields exactly
// one completed step, in breadth-first order from the Start node.
package simulation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/benbjohnson/clock"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/stafflow/stafflow/pkg/models"
	"github.com/stafflow/stafflow/pkg/otelhelper"
)

const (
	// DefaultStepDelay is the artificial per-node processing latency. It only
	// exists to make the reported duration perceptible; it has no semantic
	// effect on ordering.
	DefaultStepDelay = 100 * time.Millisecond
	// DefaultDispatchDelay is the artificial latency before traversal starts,
	// mirroring the network round trip of a remote simulation service.
	DefaultDispatchDelay = 500 * time.Millisecond
)

// Engine runs simulations. It is stateless across runs and operates only on
// the snapshot passed to Run, so concurrent edits to the live graph cannot
// corrupt an in-flight trace.
type Engine struct {
	clock         clock.Clock
	stepDelay     time.Duration
	dispatchDelay time.Duration
	tracer        trace.Tracer
	logger        *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock substitutes the wall clock, for tests.
func WithClock(c clock.Clock) Option {
	return func(e *Engine) {
		e.clock = c
	}
}

// WithStepDelay overrides the per-node latency. Zero disables it.
func WithStepDelay(d time.Duration) Option {
	return func(e *Engine) {
		e.stepDelay = d
	}
}

// WithDispatchDelay overrides the pre-traversal latency. Zero disables it.
func WithDispatchDelay(d time.Duration) Option {
	return func(e *Engine) {
		e.dispatchDelay = d
	}
}

// WithLogger overrides the engine logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// NewEngine creates a simulation engine with production defaults.
func NewEngine(opts ...Option) *Engine {
	engine := &Engine{
		clock:         clock.New(),
		stepDelay:     DefaultStepDelay,
		dispatchDelay: DefaultDispatchDelay,
		tracer:        otel.Tracer("github.com/stafflow/stafflow/pkg/simulation"),
		logger:        slog.With("module", "simulation"),
	}

	for _, opt := range opts {
		opt(engine)
	}

	return engine
}

// Run simulates one execution of the workflow and returns its trace.
//
// The traversal is breadth-first from the unique Start node: a visited set
// deduplicates reconverging paths so every node produces at most one step,
// edges to already-visited targets are dropped (no cycle can loop), and
// dangling edge targets are skipped silently. Nodes unreachable from Start
// never appear in the trace.
//
// A graph without a Start node is the only failure path: it yields a single
// synthetic failed step and success=false. Cancelling ctx stops the traversal
// and reports the partial trace with success=false.
func (e *Engine) Run(ctx context.Context, workflow models.Workflow) models.SimulationResult {
	ctx, span := otelhelper.StartSpan(ctx, e.tracer, "simulation.run",
		attribute.Int(otelhelper.NodeCountKey, len(workflow.Nodes)),
		attribute.Int(otelhelper.EdgeCountKey, len(workflow.Edges)),
	)
	defer span.End()

	start := findStartNode(workflow)
	if start == nil {
		e.logger.Warn("Simulation rejected: no start node")
		otelhelper.SetError(span, errNoStartNode)

		return models.SimulationResult{
			Success: false,
			Steps: []models.ExecutionStep{{
				NodeID:    "validation",
				NodeTitle: "Validation Error",
				NodeType:  models.NodeTypeStart,
				Status:    models.StepStatusFailed,
				Timestamp: e.clock.Now(),
				Message:   "No start node found in workflow",
			}},
			TotalDuration: "0ms",
		}
	}

	if err := e.sleep(ctx, e.dispatchDelay); err != nil {
		return e.cancelled(span, nil, e.clock.Now())
	}

	begin := e.clock.Now()

	// Pre-index nodes and outgoing edges so traversal is O(V+E).
	nodesByID := make(map[string]*models.Node, len(workflow.Nodes))
	for _, node := range workflow.Nodes {
		nodesByID[node.ID] = node
	}

	adjacency := make(map[string][]string, len(workflow.Edges))
	for _, edge := range workflow.Edges {
		adjacency[edge.Source] = append(adjacency[edge.Source], edge.Target)
	}

	steps := []models.ExecutionStep{}
	visited := make(map[string]bool, len(workflow.Nodes))
	queue := []string{start.ID}

	for len(queue) > 0 {
		currentID := queue[0]
		queue = queue[1:]

		if visited[currentID] {
			continue
		}

		visited[currentID] = true

		node, ok := nodesByID[currentID]
		if !ok {
			continue
		}

		if err := e.sleep(ctx, e.stepDelay); err != nil {
			return e.cancelled(span, steps, begin)
		}

		steps = append(steps, models.ExecutionStep{
			NodeID:    node.ID,
			NodeTitle: node.Data.NodeTitle(),
			NodeType:  node.Type,
			Status:    models.StepStatusCompleted,
			Timestamp: e.clock.Now(),
			Message:   StepMessage(node.Data),
		})

		for _, target := range adjacency[currentID] {
			if !visited[target] {
				queue = append(queue, target)
			}
		}
	}

	elapsed := e.clock.Now().Sub(begin)

	span.SetAttributes(
		attribute.Int(otelhelper.StepCountKey, len(steps)),
		attribute.Bool(otelhelper.SimulationOKKey, true),
	)
	e.logger.Info("Simulation completed", "steps", len(steps), "duration", elapsed)

	return models.SimulationResult{
		Success:       true,
		Steps:         steps,
		TotalDuration: formatDuration(elapsed),
	}
}

var errNoStartNode = errors.New("no start node found in workflow")

func (e *Engine) cancelled(span trace.Span, steps []models.ExecutionStep, begin time.Time) models.SimulationResult {
	otelhelper.SetError(span, context.Canceled)
	e.logger.Warn("Simulation cancelled", "steps", len(steps))

	if steps == nil {
		steps = []models.ExecutionStep{}
	}

	return models.SimulationResult{
		Success:       false,
		Steps:         steps,
		TotalDuration: formatDuration(e.clock.Now().Sub(begin)),
	}
}

// sleep waits for d on the engine clock, returning early when ctx is done.
// The wait is the traversal's only suspension point.
func (e *Engine) sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := e.clock.Timer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func findStartNode(workflow models.Workflow) *models.Node {
	for _, node := range workflow.Nodes {
		if node.Type == models.NodeTypeStart {
			return node
		}
	}

	return nil
}

func formatDuration(elapsed time.Duration) string {
	if elapsed < 0 {
		elapsed = 0
	}

	return fmt.Sprintf("%dms", elapsed.Milliseconds())
}
