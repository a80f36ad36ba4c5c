package services

import "github.com/google/uuid"

// ConfirmationGenerator produces opaque, globally unique order confirmation
// numbers. Uniqueness is the only contract; there is no ordering.
type ConfirmationGenerator func() string

// NewConfirmationNumber is the default generator: a random v4 UUID, which
// carries 122 random bits so collisions are cryptographically negligible.
// The unique index on orders.confirmation_number is the final guarantee.
func NewConfirmationNumber() string {
	return uuid.NewString()
}
