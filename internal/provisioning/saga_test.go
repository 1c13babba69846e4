package provisioning

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

type stepRecord struct {
	operation string
	step      string
	err       error
}

type recordingObserver struct {
	steps      []stepRecord
	operations []stepRecord
}

func (o *recordingObserver) StepCompleted(_ context.Context, operation, step string, err error) {
	o.steps = append(o.steps, stepRecord{operation, step, err})
}

func (o *recordingObserver) OperationCompleted(_ context.Context, operation string, _ time.Duration, err error) {
	o.operations = append(o.operations, stepRecord{operation: operation, err: err})
}

func newTestSaga(obs Observer) *Saga {
	return NewSaga("test", obs, noop.NewTracerProvider().Tracer("test"))
}

// TestPurpose: Validates that completed steps are compensated newest first when a later step fails.
// Scope: Unit Test
// Expected: Compensations run in reverse; steps without a compensation are skipped; later steps never run.
// Test Case ID: SAG-01
func TestSaga_CompensatesInReverse(t *testing.T) {
	var calls []string
	record := func(name string) func(context.Context) error {
		return func(context.Context) error {
			calls = append(calls, name)
			return nil
		}
	}
	cause := errors.New("insert failed")

	err := newTestSaga(nopObserver{}).Run(context.Background(),
		Step{Name: "a", Action: record("a"), Compensate: record("undo a")},
		Step{Name: "b", Action: record("b")},
		Step{Name: "c", Action: record("c"), Compensate: record("undo c")},
		Step{Name: "d", Action: func(context.Context) error { return cause }, Compensate: record("undo d")},
		Step{Name: "e", Action: record("e")},
	)

	require.Error(t, err)
	assert.Equal(t, []string{"a", "b", "c", "undo c", "undo a"}, calls)

	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, "d", stepErr.Step)
	assert.Equal(t, "test", stepErr.Operation)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "insert failed", err.Error())
}

// TestPurpose: Validates that a failing compensation neither stops the remaining ones nor masks the original error.
// Scope: Unit Test
// Expected: All compensations attempted; the returned error is the failing step's cause.
// Test Case ID: SAG-02
func TestSaga_CompensationFailureDoesNotMask(t *testing.T) {
	var undone []string
	cause := errors.New("license insert failed")

	err := newTestSaga(nopObserver{}).Run(context.Background(),
		Step{
			Name:       "first",
			Action:     func(context.Context) error { return nil },
			Compensate: func(context.Context) error { undone = append(undone, "first"); return nil },
		},
		Step{
			Name:       "second",
			Action:     func(context.Context) error { return nil },
			Compensate: func(context.Context) error { return errors.New("rollback failed") },
		},
		Step{Name: "third", Action: func(context.Context) error { return cause }},
	)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, []string{"first"}, undone)
}

// TestPurpose: Validates that compensations run even when the caller's context is already cancelled.
// Scope: Unit Test
// Expected: The compensation observes a live context.
// Test Case ID: SAG-03
func TestSaga_CompensationDetachedFromCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var compensationErr error

	err := newTestSaga(nopObserver{}).Run(ctx,
		Step{
			Name:   "create",
			Action: func(context.Context) error { return nil },
			Compensate: func(ctx context.Context) error {
				compensationErr = ctx.Err()
				return nil
			},
		},
		Step{Name: "fail", Action: func(context.Context) error {
			cancel()
			return context.Canceled
		}},
	)

	assert.ErrorIs(t, err, context.Canceled)
	assert.NoError(t, compensationErr)
}

// TestPurpose: Validates observer notifications for every executed step and the whole operation.
// Scope: Unit Test
// Expected: One record per executed step and one per operation, with the failure attached.
// Test Case ID: SAG-04
func TestSaga_ReportsToObserver(t *testing.T) {
	obs := &recordingObserver{}
	cause := errors.New("boom")

	_ = newTestSaga(obs).Run(context.Background(),
		Step{Name: "ok", Action: func(context.Context) error { return nil }},
		Step{Name: "bad", Action: func(context.Context) error { return cause }},
		Step{Name: "never", Action: func(context.Context) error { return nil }},
	)

	require.Len(t, obs.steps, 2)
	assert.Equal(t, stepRecord{"test", "ok", nil}, obs.steps[0])
	assert.Equal(t, stepRecord{"test", "bad", cause}, obs.steps[1])
	require.Len(t, obs.operations, 1)
	assert.ErrorIs(t, obs.operations[0].err, cause)
}

func TestSaga_Success(t *testing.T) {
	obs := &recordingObserver{}
	err := newTestSaga(obs).Run(context.Background(),
		Step{Name: "only", Action: func(context.Context) error { return nil }},
	)
	require.NoError(t, err)
	require.Len(t, obs.operations, 1)
	assert.NoError(t, obs.operations[0].err)
}
