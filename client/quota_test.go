package client

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/Zoharvan12/simply-mind-3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuotaLimitDerivation(t *testing.T) {
	cases := []struct {
		name    string
		role    types.Role
		monthly int
		limited bool
	}{
		{"free under limit", types.RoleFree, 49, false},
		{"free at limit", types.RoleFree, 50, true},
		{"free over limit", types.RoleFree, 73, true},
		{"free zero", types.RoleFree, 0, false},
		{"premium over count", types.RolePremium, 500, false},
		{"admin over count", types.RoleAdmin, 500, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tracker := newTracker(tc.role, tc.monthly)
			assert.Equal(t, tc.monthly, tracker.MonthlyMessages())
			assert.Equal(t, tc.limited, tracker.IsLimitReached())
		})
	}
}

func TestQuotaFetchFailureFailsOpen(t *testing.T) {
	tracker := NewQuotaTracker(context.Background(), fakeProfileFetcher{
		err: errors.New("profile unavailable"),
	}, types.RoleFree)

	assert.Equal(t, 0, tracker.MonthlyMessages())
	assert.False(t, tracker.IsLimitReached())
}

func TestQuotaApplyPushOverwritesCount(t *testing.T) {
	tracker := newTracker(types.RoleFree, 10)

	tracker.ApplyPush(json.RawMessage(`{"id":"user-1","monthly_messages":50,"total_messages":120}`))

	require.Equal(t, 50, tracker.MonthlyMessages())
	assert.True(t, tracker.IsLimitReached())
}

func TestQuotaApplyPushDropsMalformedPayloads(t *testing.T) {
	tracker := newTracker(types.RoleFree, 10)

	tracker.ApplyPush(json.RawMessage(`{"id":"user-1"}`))
	assert.Equal(t, 10, tracker.MonthlyMessages(), "row without monthly_messages must be dropped")

	tracker.ApplyPush(json.RawMessage(`{"monthly_messages":"lots"}`))
	assert.Equal(t, 10, tracker.MonthlyMessages(), "non-numeric monthly_messages must be dropped")

	tracker.ApplyPush(json.RawMessage(`not json`))
	assert.Equal(t, 10, tracker.MonthlyMessages())
}
