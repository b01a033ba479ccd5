package adoption

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/furrybuddy/service-adoption/internal/domain"
)

func TestNewRequestStartsPending(t *testing.T) {
	adopterID := uuid.New()
	adID := uuid.New()

	req := NewRequest(adopterID, adID, "I would love to adopt her")

	assert.Equal(t, StatusPending, req.Status)
	assert.Equal(t, adopterID, req.AdopterID)
	assert.Equal(t, adID, req.AdvertisementID)
	assert.False(t, req.Status.IsTerminal())
}

func TestRequestTransitions(t *testing.T) {
	tests := []struct {
		name       string
		transition func(*Request) error
		want       Status
	}{
		{"accept", (*Request).Accept, StatusAccepted},
		{"reject", (*Request).Reject, StatusRejected},
		{"cancel", (*Request).Cancel, StatusCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := NewRequest(uuid.New(), uuid.New(), "")
			require.NoError(t, tt.transition(req))
			assert.Equal(t, tt.want, req.Status)
			assert.True(t, req.Status.IsTerminal())
		})
	}
}

func TestRequestTransitionFromTerminalFails(t *testing.T) {
	req := NewRequest(uuid.New(), uuid.New(), "")
	require.NoError(t, req.Accept())

	err := req.Cancel()
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidTransition))
	assert.Equal(t, StatusAccepted, req.Status, "status must not change on a rejected transition")

	err = req.Accept()
	require.Error(t, err, "accept is not idempotent; accepted is terminal")
	assert.True(t, errors.Is(err, domain.ErrInvalidTransition))
}

func TestStatusStateMachine(t *testing.T) {
	assert.True(t, StatusPending.CanTransitionTo(StatusAccepted))
	assert.True(t, StatusPending.CanTransitionTo(StatusRejected))
	assert.True(t, StatusPending.CanTransitionTo(StatusCancelled))
	assert.False(t, StatusPending.CanTransitionTo(StatusPending))

	for _, terminal := range []Status{StatusAccepted, StatusRejected, StatusCancelled} {
		assert.True(t, terminal.IsTerminal())
		assert.False(t, terminal.CanTransitionTo(StatusPending))
	}
}

func TestParseStatus(t *testing.T) {
	status, err := ParseStatus("PENDING")
	require.NoError(t, err)
	assert.Equal(t, StatusPending, status)

	_, err = ParseStatus("OPEN")
	assert.Error(t, err)
}
