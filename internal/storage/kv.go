// Package storage persists the application snapshot in a durable key-value
// slot. Backends only move opaque bytes; decoding and repair live in Adapter.
package storage

import (
	"errors"

	"github.com/julianstephens/summit/internal/models"
)

var (
	// ErrNotFound is returned by Get when the key has never been written.
	ErrNotFound = errors.New("key not found")
	// ErrNotInitialized is returned by Load before Init has created the backend.
	ErrNotInitialized = errors.New("storage not initialized, run 'summit init' first")
	// ErrNotLoaded is returned by Get/Set before Init or Load succeeded.
	ErrNotLoaded = errors.New("storage not loaded")
)

// KV is a durable key-value slot store.
type KV interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	Get(key string) ([]byte, error)
	Set(key string, value []byte) error

	// Utils
	GetConfigPath() string
}

// Subscriber is the part of the domain store AutoSave needs.
type Subscriber interface {
	Subscribe(func(models.Snapshot)) (unsubscribe func())
}
