package audit

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Append(ctx context.Context, e *Entry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *mockRepo) Search(ctx context.Context, query string, limit int) ([]*Entry, error) {
	args := m.Called(ctx, query, limit)
	return args.Get(0).([]*Entry), args.Error(1)
}

// TestPurpose: Validates actor resolution for the admin log.
// Scope: Unit Test
// Expected: Email first, then provider user id, then the unknown-admin marker.
// Test Case ID: AUD-01
func TestResolveActor(t *testing.T) {
	tests := []struct {
		email, userID, want string
	}{
		{"ops@example.com", "user_1", "ops@example.com"},
		{"", "user_1", "user_1"},
		{"  ", "", ActorUnknown},
		{"", "", ActorUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ResolveActor(tt.email, tt.userID))
	}
}

// TestPurpose: Validates that entries without an actor are attributed to the system.
// Scope: Unit Test
// Expected: performed_by defaults to System and a timestamp is set.
// Test Case ID: AUD-02
func TestStoreRecorder_DefaultsActor(t *testing.T) {
	repo := new(mockRepo)
	repo.On("Append", mock.Anything, mock.MatchedBy(func(e *Entry) bool {
		return e.PerformedBy == ActorSystem && !e.CreatedAt.IsZero() && *e.OrganizationID == 5
	})).Return(nil)

	NewStoreRecorder(repo).Record(context.Background(), Entry{
		Action:         ActionSuspendOrganization,
		Details:        "Suspended organization Acme Corp",
		OrganizationID: OrgID(5),
	})

	repo.AssertExpectations(t)
}

// TestPurpose: Validates that audit write failures never reach the caller.
// Scope: Unit Test
// Expected: Record returns normally when the store fails.
// Test Case ID: AUD-03
func TestStoreRecorder_SwallowsErrors(t *testing.T) {
	repo := new(mockRepo)
	repo.On("Append", mock.Anything, mock.Anything).Return(errors.New("admin store unavailable"))

	assert.NotPanics(t, func() {
		NewStoreRecorder(repo).Record(context.Background(), Entry{Action: ActionDeleteOrganization, PerformedBy: "ops@example.com"})
	})
	repo.AssertNumberOfCalls(t, "Append", 1)
}

// TestPurpose: Validates that a cancelled request context still produces an audit write.
// Scope: Unit Test
// Expected: The repository receives a context that is not cancelled.
// Test Case ID: AUD-04
func TestStoreRecorder_DetachesCancellation(t *testing.T) {
	repo := new(mockRepo)
	repo.On("Append", mock.MatchedBy(func(ctx context.Context) bool {
		return ctx.Err() == nil
	}), mock.Anything).Return(nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	NewStoreRecorder(repo).Record(ctx, Entry{Action: ActionUpdatePlan})

	repo.AssertExpectations(t)
}
