package operations

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Manager orchestrates operation execution
type Manager struct {
	registry *Registry
	tracer   *OperationTracer
	logger   *slog.Logger
}

// NewManager creates a new operation manager. A nil tracer records nothing.
func NewManager(registry *Registry, tracer *OperationTracer, logger *slog.Logger) (*Manager, error) {
	if registry == nil {
		registry = NewRegistry()
	}
	if logger == nil {
		logger = slog.Default()
	}
	if tracer == nil {
		var err error
		if tracer, err = NewOperationTracer(nil, nil); err != nil {
			return nil, err
		}
	}

	return &Manager{
		registry: registry,
		tracer:   tracer,
		logger:   logger,
	}, nil
}

// GetRegistry returns the registry for accessing registered steps
func (m *Manager) GetRegistry() *Registry {
	return m.registry
}

// Execute runs every registered step in dependency order against state. The
// first failing step fails the operation; every step after it is skipped.
// The returned error is an *OperationError wrapping the cause.
func (m *Manager) Execute(ctx context.Context, state *OperationState) error {
	steps, err := m.registry.GetDependencyOrder()
	if err != nil {
		opErr := NewFatalError("failed to get dependency order", err)
		m.logOperationError(ctx, state.ID, opErr)
		state.Fail(opErr)
		return opErr
	}

	for _, step := range steps {
		state.SetStage(step.ID(), NewStepState(step.ID(), step.Name()))
	}

	ctx, span := m.tracer.TraceOperationExecution(ctx, state.ID, len(steps))
	defer span.End()

	m.logOperationStart(ctx, state.ID, steps)
	state.Start()

	err = m.executeSequential(ctx, state, steps)
	if err != nil {
		state.Fail(err)
		m.logOperationError(ctx, state.ID, err)
	} else {
		state.Complete()
	}

	m.tracer.RecordOperationCompletion(ctx, span, state, err)
	m.logOperationComplete(ctx, state)
	return err
}

// executeSequential executes steps one by one
func (m *Manager) executeSequential(ctx context.Context, state *OperationState, steps []Step) error {
	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			m.logger.WarnContext(ctx, "operation_cancelled",
				slog.String("operation_id", state.ID),
				slog.String("step", step.ID()))
			m.skipRemaining(ctx, state, steps[i:], "operation cancelled")
			return NewCancellationError(step.ID(), err)
		}

		m.logStageStart(ctx, state.ID, step.ID(), i+1, len(steps))
		if err := m.executeStage(ctx, state, step); err != nil {
			m.logStageError(ctx, state.ID, step.ID(), err)
			m.skipRemaining(ctx, state, steps[i+1:], fmt.Sprintf("Step %s failed", step.ID()))
			return NewExecutionError(step.ID(), err)
		}
	}
	return nil
}

// executeStage executes a single Step inside its own span
func (m *Manager) executeStage(ctx context.Context, state *OperationState, step Step) error {
	stepState := state.GetStage(step.ID())
	if stepState == nil {
		return NewFatalError("Step state not found", nil)
	}

	stepCtx, span := m.tracer.TraceStageExecution(ctx, state.ID, step.ID())
	defer span.End()

	stepState.Start()
	startTime := time.Now()
	err := step.Execute(stepCtx, state)
	duration := time.Since(startTime)

	m.tracer.RecordStageCompletion(stepCtx, span, step.ID(), duration, err)

	if err != nil {
		stepState.Fail(err)
		return err
	}

	stepState.Complete()
	m.logStageComplete(ctx, state.ID, step.ID(), duration)
	return nil
}

// skipRemaining marks every pending step in steps as skipped
func (m *Manager) skipRemaining(ctx context.Context, state *OperationState, steps []Step, reason string) {
	for _, step := range steps {
		stepState := state.GetStage(step.ID())
		if stepState != nil && stepState.GetStatus() == StepStatusPending {
			stepState.Skip(reason)
			m.logStageSkipped(ctx, state.ID, step.ID(), reason)
		}
	}
}
