package filesystem

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/afero"

	"github.com/GriffinCanCode/drive-mcp/internal/types"
)

// ReadFile returns a file's full content as text
func (p *Provider) ReadFile(ctx context.Context, args PathArgs) (*types.Result, error) {
	path, err := p.root.Confine(args.Path)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := p.fs.Stat(path)
	if err != nil {
		return nil, fsError(ToolReadFile, "Cannot read file", err)
	}
	if info.IsDir() {
		return nil, types.NewToolError(types.KindFilesystem, ToolReadFile, "Cannot read file: Cannot read a directory", nil)
	}

	data, err := afero.ReadFile(p.fs, path)
	if err != nil {
		return nil, fsError(ToolReadFile, "Cannot read file", err)
	}
	if !isText(data) {
		msg := fmt.Sprintf("Cannot read file: %s content is not valid text", mimetype.Detect(data).String())
		return nil, types.NewToolError(types.KindFilesystem, ToolReadFile, msg, nil)
	}

	return textResult(string(data))
}

// WriteFile creates or overwrites a file, creating missing parent folders
func (p *Provider) WriteFile(ctx context.Context, args WriteFileArgs) (*types.Result, error) {
	path, err := p.root.Confine(args.Path)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := p.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fsError(ToolWriteFile, "Cannot write file", err)
	}
	if err := afero.WriteFile(p.fs, path, []byte(args.Content), 0o644); err != nil {
		return nil, fsError(ToolWriteFile, "Cannot write file", err)
	}

	return textResult("Successfully wrote file: " + p.root.Rel(path))
}

// DeleteFile removes a file, or a folder together with its contents
func (p *Provider) DeleteFile(ctx context.Context, args PathArgs) (*types.Result, error) {
	path, err := p.root.Confine(args.Path)
	if err != nil {
		return nil, err
	}
	if path == p.root.Path() {
		return nil, types.NewToolError(types.KindAccessDenied, ToolDeleteFile, "Cannot delete: refusing to delete the Proton Drive root", nil)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := p.fs.Stat(path)
	if err != nil {
		return nil, fsError(ToolDeleteFile, "Cannot delete", err)
	}

	if info.IsDir() {
		err = p.fs.RemoveAll(path)
	} else {
		err = p.fs.Remove(path)
	}
	if err != nil {
		return nil, fsError(ToolDeleteFile, "Cannot delete", err)
	}

	return textResult("Successfully deleted: " + p.root.Rel(path))
}

// isText accepts valid UTF-8 without NUL bytes
func isText(data []byte) bool {
	return utf8.Valid(data) && bytes.IndexByte(data, 0) < 0
}
