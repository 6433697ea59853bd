// README: User aggregate for account management.
package auth

import (
	"time"

	"wayfarer/internal/types"
)

type User struct {
	ID           types.ID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
