package filesystem

import (
	"context"

	"github.com/spf13/afero"

	"github.com/GriffinCanCode/drive-mcp/internal/types"
)

const (
	mountAccessError = "Cannot access Proton Drive directory"
	mountSuggestion  = "Please ensure Proton Drive is installed and running"
)

// CheckMount reports whether the root exists and can be inspected.
// It never fails: problems are described in the payload.
func (p *Provider) CheckMount(ctx context.Context) (*types.Result, error) {
	return jsonResult(p.MountStatus(ctx))
}

// MountStatus inspects the root without touching anything below it
func (p *Provider) MountStatus(ctx context.Context) MountStatus {
	root := p.root.Path()
	status := MountStatus{
		Path:     root,
		Platform: p.goos,
	}

	exists, err := afero.Exists(p.fs, root)
	if err != nil || !exists {
		status.Suggestion = mountSuggestion
		return status
	}
	status.Mounted = true

	if ctx.Err() != nil {
		status.Error = mountAccessError
		return status
	}

	info, err := p.fs.Stat(root)
	if err != nil {
		status.Error = mountAccessError
		return status
	}

	isDir := info.IsDir()
	status.Accessible = true
	status.IsDirectory = &isDir
	return status
}
