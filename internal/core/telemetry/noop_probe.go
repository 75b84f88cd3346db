package telemetry

import (
	"context"
	"time"

	"goalsapp/internal/core/port"
)

// NoOpProbe drops every sample. Useful for tests or when metrics are disabled.
type NoOpProbe struct{}

func NewNoOpProbe() port.OperationRecorder {
	return &NoOpProbe{}
}

func (p *NoOpProbe) RecordOperation(ctx context.Context, entity string, operation string, duration time.Duration, err error) {
}

// Operation measures one service call.
type Operation struct {
	recorder  port.OperationRecorder
	ctx       context.Context
	startTime time.Time
	entity    string
	operation string
}

func StartOperation(recorder port.OperationRecorder, ctx context.Context, entity, operation string) *Operation {
	return &Operation{
		recorder:  recorder,
		ctx:       ctx,
		startTime: time.Now(),
		entity:    entity,
		operation: operation,
	}
}

// End is meant to be deferred with a pointer to the named error result.
func (op *Operation) End(err *error) {
	if op.recorder == nil {
		return
	}

	var recorded error
	if err != nil {
		recorded = *err
	}

	op.recorder.RecordOperation(op.ctx, op.entity, op.operation, time.Since(op.startTime), recorded)
}
