package cli

import (
	"errors"
	"io/fs"

	"github.com/mesh-intelligence/puzzlequest/pkg/types"
)

// cliError carries the exit code for an error and an optional hint line.
type cliError struct {
	code int
	err  error
	hint string
}

func (e *cliError) Error() string { return e.err.Error() }

func (e *cliError) Unwrap() error { return e.err }

func userError(err error) error { return &cliError{code: exitUserError, err: err} }

func sysError(err error) error { return &cliError{code: exitSysError, err: err} }

// userErrors are the sentinels caused by bad input or state the user can
// fix; anything else is a system error.
var userErrors = []error{
	types.ErrInvalidMode,
	types.ErrInvalidName,
	types.ErrInvalidImage,
	types.ErrInvalidID,
	types.ErrStageNotFound,
	types.ErrDuplicateID,
	types.ErrCatalogCorrupt,
	types.ErrAdminRequired,
	types.ErrInvalidVolume,
	types.ErrUnsupportedLanguage,
	types.ErrBackendEmpty,
	types.ErrBackendUnknown,
	types.ErrReloadDelayInvalid,
	fs.ErrNotExist,
}

// classify wraps err with its exit code and a hint when one applies.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var ce *cliError
	if errors.As(err, &ce) {
		return err
	}
	for _, target := range userErrors {
		if errors.Is(err, target) {
			out := &cliError{code: exitUserError, err: err}
			switch target {
			case types.ErrAdminRequired:
				out.hint = "enable admin mode with: puzzlequest settings set admin on"
			case types.ErrCatalogCorrupt:
				out.hint = "restore the default stages with: puzzlequest stages reset"
			}
			return out
		}
	}
	return sysError(err)
}
