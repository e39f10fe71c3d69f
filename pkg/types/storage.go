package types

import "errors"

// Storage is the durable key-value persistence port. Values are opaque
// bytes; callers own the encoding. Implementations must make each Set a
// single write from the caller's perspective.
type Storage interface {
	// Get returns the value stored under key.
	// Returns ErrKeyNotFound if the key is absent.
	Get(key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(key string, value []byte) error

	// Delete removes key. Deleting an absent key succeeds.
	Delete(key string) error

	// Keys returns every key that starts with prefix, sorted. An empty
	// prefix returns all keys.
	Keys(prefix string) ([]string, error)
}

// Backend is a Storage with an explicit lifecycle. Callers attach to a
// backend, use it as Storage, and detach when done.
type Backend interface {
	Storage

	// Attach connects the backend using config. Creates the DataDir if it
	// does not exist. Returns ErrAlreadyAttached if already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent.
	// After Detach, Storage operations return ErrStorageDetached.
	Detach() error
}

// Storage errors.
var (
	ErrKeyNotFound     = errors.New("key not found")
	ErrInvalidKey      = errors.New("invalid key")
	ErrStorageDetached = errors.New("storage is detached")
	ErrAlreadyAttached = errors.New("storage is already attached")
)

// Well-known storage keys.
const (
	KeyStages       = "stages"
	KeyLanguage     = "language"
	KeySoundEnabled = "sound-enabled"
	KeyVolume       = "volume"
	KeyAdmin        = "admin"

	// Per-stage progress keys are the prefix followed by the stage id.
	PrefixCompleted    = "completed-"
	PrefixPersonalBest = "pb-"
)
