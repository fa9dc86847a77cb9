package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ignatzorin/specialist-hub/internal/pkg/apperror"
)

func TestEngagementStatus_Apply_AllowedTransitions(t *testing.T) {
	cases := []struct {
		name  string
		from  EngagementStatus
		event EngagementEvent
		want  EngagementStatus
	}{
		{"accept pending", EngagementStatusPending, EventAccept, EngagementStatusActive},
		{"decline pending", EngagementStatusPending, EventDecline, EngagementStatusCancelled},
		{"request finish from active", EngagementStatusActive, EventRequestFinish, EngagementStatusFinishRequested},
		{"confirm finish", EngagementStatusFinishRequested, EventConfirmFinish, EngagementStatusCompleted},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			next, err := tc.from.Apply(tc.event)
			assert.NoError(t, err)
			assert.Equal(t, tc.want, next)
		})
	}
}

func TestEngagementStatus_Apply_RejectsUnknownPairs(t *testing.T) {
	cases := []struct {
		name  string
		from  EngagementStatus
		event EngagementEvent
	}{
		{"accept active", EngagementStatusActive, EventAccept},
		{"decline active", EngagementStatusActive, EventDecline},
		{"confirm pending", EngagementStatusPending, EventConfirmFinish},
		{"request finish pending", EngagementStatusPending, EventRequestFinish},
		{"accept completed", EngagementStatusCompleted, EventAccept},
		{"request finish cancelled", EngagementStatusCancelled, EventRequestFinish},
		{"confirm completed", EngagementStatusCompleted, EventConfirmFinish},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.from.Apply(tc.event)
			assert.Error(t, err)
			assert.True(t, apperror.IsInvalidState(err))
		})
	}
}

func TestEngagementStatus_IsOpen(t *testing.T) {
	assert.True(t, EngagementStatusPending.IsOpen())
	assert.True(t, EngagementStatusActive.IsOpen())
	assert.True(t, EngagementStatusFinishRequested.IsOpen())
	assert.False(t, EngagementStatusCompleted.IsOpen())
	assert.False(t, EngagementStatusCancelled.IsOpen())
}

func TestEngagementStatus_Terminal(t *testing.T) {
	assert.True(t, EngagementStatusCompleted.IsTerminal())
	assert.True(t, EngagementStatusCancelled.IsTerminal())
	assert.False(t, EngagementStatusActive.IsTerminal())

	// Из терминальных состояний переходов нет.
	for _, event := range []EngagementEvent{EventAccept, EventDecline, EventRequestFinish, EventConfirmFinish} {
		assert.False(t, EngagementStatusCompleted.CanApply(event))
		assert.False(t, EngagementStatusCancelled.CanApply(event))
	}
}

func TestNewEngagementStatus(t *testing.T) {
	status, err := NewEngagementStatus("active")
	assert.NoError(t, err)
	assert.Equal(t, EngagementStatusActive, status)

	_, err = NewEngagementStatus("deleted")
	assert.Error(t, err)
}
