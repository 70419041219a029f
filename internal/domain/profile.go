package domain

import "time"

// UserProfile is the small amount of identity the coach addresses the
// user with.
type UserProfile struct {
	UserID         string
	Name           string
	ActiveProjects []string
	Timezone       string
	UpdatedAt      time.Time
}
