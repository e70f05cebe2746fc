package supabase

import (
	"encoding/json"
	"fmt"

	"github.com/Zoharvan12/simply-mind-3/types"
	"github.com/supabase-community/supabase-go"
)

func GetProfile(client *supabase.Client, userID string) (types.Profile, error) {
	resp, _, err := client.From("profiles").
		Select("id, first_name, last_name, monthly_messages, total_messages, updated_at", "", false).
		Eq("id", userID).
		Single().
		Execute()
	if err != nil {
		return types.Profile{}, fmt.Errorf("failed to fetch profile: %w", err)
	}

	var profile types.Profile
	if err := json.Unmarshal(resp, &profile); err != nil {
		return types.Profile{}, fmt.Errorf("failed to unmarshal profile: %w", err)
	}

	return profile, nil
}

// GetUserRole resolves the caller's subscription tier via the
// check_user_role database function.
func GetUserRole(client *supabase.Client, userID string) (types.Role, error) {
	raw := client.Rpc("check_user_role", "", map[string]interface{}{
		"user_id": userID,
	})

	var role string
	if err := json.Unmarshal([]byte(raw), &role); err != nil {
		return "", fmt.Errorf("failed to decode role %q: %w", raw, err)
	}
	if !types.ValidRole(role) {
		return "", fmt.Errorf("invalid role received: %q", role)
	}

	return types.Role(role), nil
}

// IncrementMonthlyMessages bumps the usage counters atomically through the
// increment_monthly_messages database function. The function is void, so
// any response body other than "" or "null" is a failure report.
func IncrementMonthlyMessages(client *supabase.Client, userID string) error {
	resp := client.Rpc("increment_monthly_messages", "", map[string]interface{}{
		"uid": userID,
	})
	if resp != "" && resp != "null" {
		return fmt.Errorf("failed to increment monthly messages: %s", resp)
	}
	return nil
}
