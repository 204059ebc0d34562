// internal/models/application_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from    ApplicationStatus
		to      ApplicationStatus
		allowed bool
	}{
		{ApplicationStatusDraft, ApplicationStatusSubmitted, true},
		{ApplicationStatusDraft, ApplicationStatusApproved, false},
		{ApplicationStatusDraft, ApplicationStatusUnderReview, false},
		{ApplicationStatusSubmitted, ApplicationStatusUnderReview, true},
		{ApplicationStatusSubmitted, ApplicationStatusApproved, true},
		{ApplicationStatusSubmitted, ApplicationStatusReturned, true},
		{ApplicationStatusSubmitted, ApplicationStatusDraft, false},
		{ApplicationStatusUnderReview, ApplicationStatusApproved, true},
		{ApplicationStatusUnderReview, ApplicationStatusReturned, true},
		{ApplicationStatusUnderReview, ApplicationStatusSubmitted, false},
		{ApplicationStatusApproved, ApplicationStatusReturned, false},
		{ApplicationStatusApproved, ApplicationStatusSubmitted, false},
		{ApplicationStatusReturned, ApplicationStatusSubmitted, false},
		{ApplicationStatusReturned, ApplicationStatusApproved, false},
	}

	for _, tc := range cases {
		got := tc.from.CanTransitionTo(tc.to)
		assert.Equal(t, tc.allowed, got, "%s -> %s", tc.from, tc.to)
	}
}

func TestTerminalStatuses(t *testing.T) {
	assert.True(t, ApplicationStatusApproved.IsTerminal())
	assert.True(t, ApplicationStatusReturned.IsTerminal())
	assert.False(t, ApplicationStatusDraft.IsTerminal())
	assert.False(t, ApplicationStatusSubmitted.IsTerminal())
	assert.False(t, ApplicationStatusUnderReview.IsTerminal())
}
