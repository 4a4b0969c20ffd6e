// Package operations runs the dashboard pipeline as a sequence of steps.
//
// Core Components:
//
// Step: one unit of work. Steps declare the IDs of the steps they depend on
// and read and write their data through OperationState.
//
// Registry: holds the registered steps and orders them topologically with
// Kahn's algorithm, breaking ties by registration order. Missing
// dependencies and cycles are errors.
//
// Manager: executes the ordered steps one at a time. Each step runs in its
// own span and records a duration metric. The first failing step fails the
// run, every later step is marked skipped and the caller receives an
// *OperationError wrapping the cause. The context is checked before each
// step.
//
// The dashboard steps are load, derive, the four chart steps, compose and an
// optional export; NewPipelineRegistry wires them together.
//
// Example usage:
//
//	registry, err := operations.NewPipelineRegistry(deps)
//	manager, err := operations.NewManager(registry, tracer, logger)
//	state := operations.NewOperationState(runID, time.Now())
//	err = manager.Execute(ctx, state)
package operations
