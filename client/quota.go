package client

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/Zoharvan12/simply-mind-3/config"
	"github.com/Zoharvan12/simply-mind-3/types"
)

// QuotaTracker maintains the per-user monthly message count and derives
// the limit-reached flag. It never writes anything; the count is owned by
// the server and arrives via the initial fetch and realtime pushes.
type QuotaTracker struct {
	mu      sync.Mutex
	role    types.Role
	monthly int
}

// NewQuotaTracker fetches the current count from the user's profile. A
// failed fetch leaves the count at 0: sends stay allowed until a push or
// the server-side check corrects the picture.
func NewQuotaTracker(ctx context.Context, fetcher ProfileFetcher, role types.Role) *QuotaTracker {
	t := &QuotaTracker{role: role}

	profile, err := fetcher.FetchProfile(ctx)
	if err != nil {
		config.Logger.Warn("Failed to fetch profile, message count defaults to 0:", err)
		return t
	}
	t.monthly = profile.MonthlyMessages
	return t
}

func (t *QuotaTracker) MonthlyMessages() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.monthly
}

// IsLimitReached reports whether sends must be blocked. Only the free
// tier is ever limited.
func (t *QuotaTracker) IsLimitReached() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.role == types.RoleFree && t.monthly >= config.FreeMonthlyMessageLimit
}

// ApplyPush overwrites the local count from a pushed profile row. Rows
// without a numeric monthly_messages field are dropped.
func (t *QuotaTracker) ApplyPush(row json.RawMessage) {
	var payload struct {
		MonthlyMessages *int `json:"monthly_messages"`
	}
	if err := json.Unmarshal(row, &payload); err != nil || payload.MonthlyMessages == nil {
		config.Logger.Warn("Dropping malformed profile push payload")
		return
	}

	t.mu.Lock()
	t.monthly = *payload.MonthlyMessages
	t.mu.Unlock()
}
