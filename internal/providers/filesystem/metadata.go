package filesystem

import (
	"context"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/djherbis/times"
	"github.com/gabriel-vasile/mimetype"

	"github.com/GriffinCanCode/drive-mcp/internal/types"
)

// GetFileInfo reports size, type and timestamps of a file or folder
func (p *Provider) GetFileInfo(ctx context.Context, args PathArgs) (*types.Result, error) {
	path, err := p.root.Confine(args.Path)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stat, err := p.fs.Stat(path)
	if err != nil {
		return nil, fsError(ToolGetFileInfo, "Cannot get file info", err)
	}

	created, accessed := fileTimes(stat)
	info := FileInfo{
		Path:          p.root.Rel(path),
		Name:          filepath.Base(path),
		Type:          entryType(stat.IsDir()),
		Size:          stat.Size(),
		SizeFormatted: FormatBytes(stat.Size()),
		Created:       formatTime(created),
		Modified:      formatTime(stat.ModTime()),
		Accessed:      formatTime(accessed),
	}
	if !stat.IsDir() {
		info.MimeType = p.detectMime(path)
	}

	return jsonResult(info)
}

// fileTimes returns the creation and access times, falling back to the
// change time and then the modification time where the platform has no birth time
func fileTimes(info fs.FileInfo) (created, accessed time.Time) {
	if info.Sys() == nil {
		return info.ModTime(), info.ModTime()
	}

	ts := times.Get(info)
	switch {
	case ts.HasBirthTime():
		created = ts.BirthTime()
	case ts.HasChangeTime():
		created = ts.ChangeTime()
	default:
		created = info.ModTime()
	}
	return created, ts.AccessTime()
}

// detectMime sniffs the file header; unreadable files report no type
func (p *Provider) detectMime(path string) string {
	f, err := p.fs.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	mt, err := mimetype.DetectReader(f)
	if err != nil {
		return ""
	}
	return mt.String()
}
