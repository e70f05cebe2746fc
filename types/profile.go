package types

import "time"

type Role string

const (
	RoleFree    Role = "free"
	RolePremium Role = "premium"
	RoleAdmin   Role = "admin"
)

func ValidRole(role string) bool {
	switch Role(role) {
	case RoleFree, RolePremium, RoleAdmin:
		return true
	}
	return false
}

// Profile mirrors the profiles table. MonthlyMessages is maintained
// server-side and reset by an external monthly job.
type Profile struct {
	ID              string     `json:"id"`
	FirstName       *string    `json:"first_name,omitempty"`
	LastName        *string    `json:"last_name,omitempty"`
	MonthlyMessages int        `json:"monthly_messages"`
	TotalMessages   int        `json:"total_messages"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
}
