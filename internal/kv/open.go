package kv

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/puzzlequest/pkg/types"
)

// Open creates the backend named by config.Backend and attaches it. The
// caller must Detach the returned backend.
func Open(config types.Config, logger *zap.Logger) (types.Backend, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var backend types.Backend
	switch config.Backend {
	case types.BackendMemory:
		backend = NewMemory()
	default:
		backend = NewBackend(WithLogger(logger))
	}

	if err := backend.Attach(config); err != nil {
		return nil, fmt.Errorf("attach %s backend: %w", config.Backend, err)
	}
	return backend, nil
}
