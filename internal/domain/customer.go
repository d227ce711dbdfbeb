package domain

import (
	"time"
)

// Customer is the profile a wishlist belongs to. Customers are soft-deleted:
// a non-nil DeletedAt hides the row from every lookup.
type Customer struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	UserID    string     `json:"-"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-"`
}
