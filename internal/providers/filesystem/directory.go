package filesystem

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/GriffinCanCode/drive-mcp/internal/types"
)

// ListFiles lists the visible entries of a folder, folders first
func (p *Provider) ListFiles(ctx context.Context, args ListFilesArgs) (*types.Result, error) {
	dir, err := p.root.Confine(args.Path)
	if err != nil {
		return nil, err
	}
	if args.Pattern != "" && !doublestar.ValidatePattern(args.Pattern) {
		return nil, invalidArgument(ToolListFiles, fmt.Sprintf("invalid pattern: %s", args.Pattern))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	infos, err := afero.ReadDir(p.fs, dir)
	if err != nil {
		return nil, fsError(ToolListFiles, "Cannot list directory", err)
	}

	entries := make([]Entry, 0, len(infos))
	for _, info := range infos {
		name := info.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if args.Pattern != "" {
			if ok, _ := doublestar.Match(args.Pattern, name); !ok {
				continue
			}
		}

		full := filepath.Join(dir, name)
		stat, err := p.fs.Stat(full)
		if err != nil {
			return nil, fsError(ToolListFiles, "Cannot list directory", err)
		}

		entries = append(entries, Entry{
			Name:     name,
			Path:     p.root.Rel(full),
			Type:     entryType(info.IsDir()),
			Size:     stat.Size(),
			Modified: formatTime(stat.ModTime()),
		})
	}

	sortEntries(entries)
	return jsonResult(entries)
}

// CreateFolder creates a folder and any missing parents. Existing folders are fine.
func (p *Provider) CreateFolder(ctx context.Context, args PathArgs) (*types.Result, error) {
	path, err := p.root.Confine(args.Path)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := p.fs.MkdirAll(path, 0o755); err != nil {
		return nil, fsError(ToolCreateFolder, "Cannot create folder", err)
	}

	return textResult("Successfully created folder: " + p.root.Rel(path))
}

// sortEntries puts folders first, then orders by name the way a file browser would
func sortEntries(entries []Entry) {
	// Collators keep scratch buffers, so each listing gets its own.
	c := collate.New(language.Und)
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Type != b.Type {
			return a.Type == TypeFolder
		}
		return c.CompareString(a.Name, b.Name) < 0
	})
}
