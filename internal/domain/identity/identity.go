package identity

import "github.com/google/uuid"

// Identity is the verified caller as supplied by the auth subsystem.
// A nil *Identity means the request is anonymous.
type Identity struct {
	UserID        uuid.UUID
	EmailVerified bool
	Admin         bool
}
