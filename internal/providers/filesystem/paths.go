package filesystem

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/GriffinCanCode/drive-mcp/internal/shared/paths"
	"github.com/GriffinCanCode/drive-mcp/internal/types"
)

// fsError turns a filesystem failure into a typed tool error prefixed with
// the operation's action, e.g. "Cannot read file: open ...: permission denied"
func fsError(tool, action string, err error) error {
	kind := types.KindFilesystem
	if errors.Is(err, fs.ErrNotExist) {
		kind = types.KindNotFound
	}
	return types.NewToolError(kind, tool, fmt.Sprintf("%s: %s", action, err.Error()), err)
}

// wrapError gives every failure leaving Execute a typed form.
// Errors that are already typed pass through untouched.
func wrapError(tool string, err error) error {
	if te, ok := types.AsToolError(err); ok {
		return te
	}
	kind := types.KindInternal
	if errors.Is(err, paths.ErrAccessDenied) {
		kind = types.KindAccessDenied
	}
	return types.NewToolError(kind, tool, fmt.Sprintf("Error in %s: %s", tool, err.Error()), err)
}
