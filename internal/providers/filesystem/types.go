package filesystem

import (
	"runtime"

	"github.com/spf13/afero"

	"github.com/GriffinCanCode/drive-mcp/internal/shared/paths"
)

// Entry types reported to callers
const (
	TypeFile   = "file"
	TypeFolder = "folder"
)

// Provider serves the drive tools against a single confined root.
// It holds no mutable state and is safe for concurrent use.
type Provider struct {
	root paths.Root
	fs   afero.Fs
	goos string
}

// Option configures a Provider
type Option func(*Provider)

// WithFs swaps the filesystem, e.g. for an in-memory one in tests
func WithFs(fs afero.Fs) Option {
	return func(p *Provider) {
		p.fs = fs
	}
}

// WithPlatform overrides the platform name reported by check_mount
func WithPlatform(goos string) Option {
	return func(p *Provider) {
		p.goos = goos
	}
}

// New creates a provider confined to root
func New(root paths.Root, opts ...Option) *Provider {
	p := &Provider{
		root: root,
		fs:   afero.NewOsFs(),
		goos: runtime.GOOS,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Root returns the confinement root
func (p *Provider) Root() paths.Root {
	return p.root
}

// MountStatus is the check_mount payload
type MountStatus struct {
	Mounted     bool   `json:"mounted"`
	Path        string `json:"path"`
	Platform    string `json:"platform"`
	Accessible  bool   `json:"accessible"`
	IsDirectory *bool  `json:"isDirectory,omitempty"`
	Error       string `json:"error,omitempty"`
	Suggestion  string `json:"suggestion,omitempty"`
}

// Entry is one row of a directory listing
type Entry struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	Type     string `json:"type"`
	Size     int64  `json:"size"`
	Modified string `json:"modified"`
}

// FileInfo is the get_file_info payload
type FileInfo struct {
	Path          string `json:"path"`
	Name          string `json:"name"`
	Type          string `json:"type"`
	Size          int64  `json:"size"`
	SizeFormatted string `json:"sizeFormatted"`
	MimeType      string `json:"mimeType,omitempty"`
	Created       string `json:"created"`
	Modified      string `json:"modified"`
	Accessed      string `json:"accessed"`
}

func entryType(isDir bool) string {
	if isDir {
		return TypeFolder
	}
	return TypeFile
}
