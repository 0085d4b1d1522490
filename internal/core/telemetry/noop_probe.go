package telemetry

import (
	"context"
	"time"

	"userapp/internal/core/port"
)

// NoOpProbe discards everything. Tests and telemetry-less runs use it.
type NoOpProbe struct{}

func NewNoOpProbe() port.Telemetry {
	return &NoOpProbe{}
}

type NoOpSpan struct{}

func (s *NoOpSpan) End()                                       {}
func (s *NoOpSpan) SetAttributes(attrs map[string]interface{}) {}
func (s *NoOpSpan) SetStatus(code string, message string)      {}
func (s *NoOpSpan) RecordError(err error)                      {}

func (p *NoOpProbe) StartRepositorySpan(ctx context.Context, operation string, entity string, attrs map[string]interface{}) (context.Context, port.Span) {
	return ctx, &NoOpSpan{}
}

func (p *NoOpProbe) StartServiceSpan(ctx context.Context, service string, operation string, attrs map[string]interface{}) (context.Context, port.Span) {
	return ctx, &NoOpSpan{}
}

func (p *NoOpProbe) RecordRepositoryOperation(ctx context.Context, operation string, entity string, duration time.Duration, err error) {
}

func (p *NoOpProbe) RecordServiceOperation(ctx context.Context, service string, operation string, duration time.Duration, err error) {
}

func (p *NoOpProbe) RecordBusinessEvent(ctx context.Context, event string, entity string, entityID string, metadata map[string]interface{}) {
}

// Operation measures the duration of a repository call and reports it to the
// probe when End is called.
type Operation struct {
	probe     port.Telemetry
	ctx       context.Context
	startTime time.Time
	operation string
	entity    string
}

func StartOperation(ctx context.Context, probe port.Telemetry, operation, entity string) *Operation {
	return &Operation{
		probe:     probe,
		ctx:       ctx,
		startTime: time.Now(),
		operation: operation,
		entity:    entity,
	}
}

func (op *Operation) End(err error) {
	if op.probe != nil {
		op.probe.RecordRepositoryOperation(op.ctx, op.operation, op.entity, time.Since(op.startTime), err)
	}
}
