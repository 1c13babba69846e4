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

package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Instrument names
const (
	MetricVerifications        = "licensehub.verifications"
	MetricProvisioningSteps    = "licensehub.provisioning.steps"
	MetricProvisioningDuration = "licensehub.provisioning.duration"
)

// Result attribute values
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Recorder records the licensehub domain metrics. It satisfies the observer
// interfaces declared by the license and provisioning packages.
type Recorder struct {
	verifications metric.Int64Counter
	steps         metric.Int64Counter
	duration      metric.Float64Histogram
}

// NewRecorder creates the domain instruments on the given meter
func NewRecorder(m *Meter) (*Recorder, error) {
	verifications, err := m.CreateCounter(MetricVerifications, "License verification attempts by outcome")
	if err != nil {
		return nil, err
	}
	steps, err := m.CreateCounter(MetricProvisioningSteps, "Provisioning workflow steps by result")
	if err != nil {
		return nil, err
	}
	duration, err := m.CreateHistogram(MetricProvisioningDuration, "Provisioning workflow duration", "s")
	if err != nil {
		return nil, err
	}
	return &Recorder{
		verifications: verifications,
		steps:         steps,
		duration:      duration,
	}, nil
}

// VerificationCompleted counts one verification attempt
func (r *Recorder) VerificationCompleted(ctx context.Context, outcome string) {
	r.verifications.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

// StepCompleted counts one executed provisioning step
func (r *Recorder) StepCompleted(ctx context.Context, operation, step string, err error) {
	r.steps.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("step", step),
		attribute.String("result", result(err)),
	))
}

// OperationCompleted records the duration of a whole provisioning operation
func (r *Recorder) OperationCompleted(ctx context.Context, operation string, d time.Duration, err error) {
	r.duration.Record(ctx, d.Seconds(), metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("result", result(err)),
	))
}

func result(err error) string {
	if err != nil {
		return ResultFailure
	}
	return ResultSuccess
}
