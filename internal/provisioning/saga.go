// Copyright 2026 The OpenTrusty Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package provisioning

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/opentrusty/licensehub/internal/observability/logger"
)

// Step is one unit of a provisioning workflow. Compensate, when set, undoes a
// completed Action if a later step fails.
type Step struct {
	Name       string
	Action     func(ctx context.Context) error
	Compensate func(ctx context.Context) error
}

// Observer receives workflow progress
type Observer interface {
	StepCompleted(ctx context.Context, operation, step string, err error)
	OperationCompleted(ctx context.Context, operation string, d time.Duration, err error)
}

type nopObserver struct{}

func (nopObserver) StepCompleted(context.Context, string, string, error) {}

func (nopObserver) OperationCompleted(context.Context, string, time.Duration, error) {}

// Saga runs steps in order and compensates completed steps in reverse when one fails
type Saga struct {
	operation string
	observer  Observer
	tracer    trace.Tracer
}

// NewSaga creates a runner for one named operation
func NewSaga(operation string, observer Observer, tracer trace.Tracer) *Saga {
	return &Saga{operation: operation, observer: observer, tracer: tracer}
}

// Run executes steps. On failure the returned error is a *StepError carrying
// the original cause; compensation failures are logged only.
func (s *Saga) Run(ctx context.Context, steps ...Step) error {
	runID := newRunID()
	log := slog.With(logger.Operation(s.operation), logger.RunID(runID))
	start := time.Now()

	ctx, span := s.tracer.Start(ctx, "provisioning."+s.operation, trace.WithAttributes(
		attribute.String("provisioning.run_id", runID),
	))
	defer span.End()

	completed := make([]Step, 0, len(steps))
	for _, step := range steps {
		err := s.runStep(ctx, step)
		s.observer.StepCompleted(ctx, s.operation, step.Name, err)
		if err != nil {
			log.ErrorContext(ctx, "provisioning step failed", logger.Step(step.Name), logger.Error(err))
			s.compensate(ctx, log, completed)

			span.RecordError(err)
			span.SetStatus(codes.Error, step.Name)
			s.observer.OperationCompleted(ctx, s.operation, time.Since(start), err)
			return &StepError{Operation: s.operation, Step: step.Name, Err: err}
		}
		log.DebugContext(ctx, "provisioning step completed", logger.Step(step.Name))
		completed = append(completed, step)
	}

	s.observer.OperationCompleted(ctx, s.operation, time.Since(start), nil)
	return nil
}

func (s *Saga) runStep(ctx context.Context, step Step) error {
	ctx, span := s.tracer.Start(ctx, step.Name)
	defer span.End()

	if err := step.Action(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "step failed")
		return err
	}
	return nil
}

// compensate undoes completed steps newest first. It runs detached from the
// request so a cancelled caller does not leave partial state behind.
func (s *Saga) compensate(ctx context.Context, log *slog.Logger, completed []Step) {
	ctx = context.WithoutCancel(ctx)
	for i := len(completed) - 1; i >= 0; i-- {
		step := completed[i]
		if step.Compensate == nil {
			continue
		}
		if err := step.Compensate(ctx); err != nil {
			log.ErrorContext(ctx, "compensation failed, manual reconciliation required", logger.Step(step.Name), logger.Error(err))
			continue
		}
		log.InfoContext(ctx, "step compensated", logger.Step(step.Name))
	}
}

func newRunID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
