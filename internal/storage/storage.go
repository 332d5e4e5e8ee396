// Package storage persists opaque JSON snapshots under fixed keys.
//
// The layout is deliberately simple: each key maps to one JSON blob that is
// rehydrated wholesale at startup and rewritten wholesale on every mutation.
// There is no incremental or delta persistence.
package storage

// Fixed snapshot keys. The names are part of the on-disk contract.
const (
	KeyAuth = "auth-storage"
	KeyChat = "chat-storage"
	KeyOTP  = "temp-otp"
)

// Repository is the durable key-value collaborator the stores write through.
type Repository interface {
	// Load unmarshals the blob stored under key into v. It returns false
	// with a nil error when the key has never been written.
	Load(key string, v any) (bool, error)

	// Save marshals v and replaces the blob stored under key.
	Save(key string, v any) error

	// Delete removes the blob stored under key, if any.
	Delete(key string) error
}
