package models

import "github.com/google/uuid"

// NewID mints a unique identifier for users, chatrooms and messages.
func NewID() string {
	return uuid.New().String()
}
