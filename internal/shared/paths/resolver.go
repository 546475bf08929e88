package paths

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/afero"
)

// Source records how the root was chosen
type Source string

const (
	SourceOverride   Source = "override"
	SourceDiscovered Source = "discovered"
	SourceDefault    Source = "default"
)

// CloudStoragePrefix is the folder prefix the macOS File Provider uses for Proton Drive
const CloudStoragePrefix = "ProtonDrive-"

// Resolution is the outcome of root discovery
type Resolution struct {
	Path   string `json:"path"`
	Source Source `json:"source"`
}

// Resolver locates the drive root. Fields are exported so tests can
// simulate any platform from any host.
type Resolver struct {
	// Override wins over discovery when non-empty
	Override string
	// GOOS selects the discovery strategy
	GOOS string
	// Home is the user's home directory
	Home string
	// Fs is probed read-only during discovery
	Fs afero.Fs
}

// NewResolver creates a resolver for the running platform
func NewResolver(override string) *Resolver {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return &Resolver{
		Override: override,
		GOOS:     runtime.GOOS,
		Home:     home,
		Fs:       afero.NewOsFs(),
	}
}

// Resolve picks the root. It never fails: when nothing is found the
// platform default is returned.
func (r *Resolver) Resolve() Resolution {
	if override := strings.TrimSpace(r.Override); override != "" {
		return Resolution{Path: override, Source: SourceOverride}
	}

	if r.GOOS == "darwin" {
		if found, ok := r.discoverCloudStorage(); ok {
			return Resolution{Path: found, Source: SourceDiscovered}
		}
		return Resolution{Path: filepath.Join(r.Home, "Proton Drive"), Source: SourceDefault}
	}

	candidates := r.Candidates()
	for _, candidate := range candidates {
		if exists, _ := afero.Exists(r.Fs, candidate); exists {
			return Resolution{Path: candidate, Source: SourceDiscovered}
		}
	}
	return Resolution{Path: candidates[0], Source: SourceDefault}
}

// Candidates returns the conventional install locations probed on
// windows and unix-like platforms, most preferred first
func (r *Resolver) Candidates() []string {
	if r.GOOS == "windows" {
		return []string{
			filepath.Join(r.Home, "Proton Drive"),
			filepath.Join(r.Home, "ProtonDrive"),
			`C:\Proton Drive`,
			filepath.Join(r.Home, "Documents", "Proton Drive"),
		}
	}
	return []string{
		filepath.Join(r.Home, "ProtonDrive"),
		filepath.Join(r.Home, "Proton Drive"),
		filepath.Join(r.Home, "Documents", "ProtonDrive"),
		"/media/proton",
	}
}

// discoverCloudStorage scans ~/Library/CloudStorage for a ProtonDrive-* folder
func (r *Resolver) discoverCloudStorage() (string, bool) {
	cloudStorage := filepath.Join(r.Home, "Library", "CloudStorage")
	entries, err := afero.ReadDir(r.Fs, cloudStorage)
	if err != nil {
		return "", false
	}
	for _, entry := range entries {
		if entry.IsDir() && strings.HasPrefix(entry.Name(), CloudStoragePrefix) {
			return filepath.Join(cloudStorage, entry.Name()), true
		}
	}
	return "", false
}
