package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/drive-mcp/internal/shared/paths"
	"github.com/GriffinCanCode/drive-mcp/internal/types"
)

func TestWriteThenRead(t *testing.T) {
	p, _ := newTestProvider(t)

	result, err := call(t, p, ToolWriteFile, map[string]interface{}{
		"path":    "Projects/2024/notes.md",
		"content": "# Notes\nhéllo",
	})
	require.NoError(t, err)
	assert.Equal(t, "Successfully wrote file: Projects/2024/notes.md", result.Text)

	result, err = call(t, p, ToolReadFile, map[string]interface{}{"path": "Projects/2024/notes.md"})
	require.NoError(t, err)
	assert.Equal(t, "# Notes\nhéllo", result.Text)
}

func TestWriteOverwritesAndAcceptsEmptyContent(t *testing.T) {
	p, fs := newTestProvider(t)
	require.NoError(t, afero.WriteFile(fs, "/drive/a.txt", []byte("old content"), 0o644))

	_, err := call(t, p, ToolWriteFile, map[string]interface{}{"path": "a.txt", "content": ""})
	require.NoError(t, err)

	data, err := afero.ReadFile(fs, "/drive/a.txt")
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestWriteWithoutContentWritesNothing(t *testing.T) {
	p, fs := newTestProvider(t)

	_, err := call(t, p, ToolWriteFile, map[string]interface{}{"path": "new/x.txt"})
	te := requireToolError(t, err, types.KindInvalidArgument)
	assert.Equal(t, "content parameter required", te.Error())

	_, err = call(t, p, ToolWriteFile, map[string]interface{}{"path": "new/x.txt", "content": 42.0})
	te = requireToolError(t, err, types.KindInvalidArgument)
	assert.Equal(t, "content parameter must be a string", te.Error())

	exists, _ := afero.Exists(fs, "/drive/new")
	assert.False(t, exists)
}

func TestReadDirectoryFails(t *testing.T) {
	p, fs := newTestProvider(t)
	require.NoError(t, fs.MkdirAll("/drive/Sub", 0o755))

	_, err := call(t, p, ToolReadFile, map[string]interface{}{"path": "Sub"})
	te := requireToolError(t, err, types.KindFilesystem)
	assert.Equal(t, "Cannot read file: Cannot read a directory", te.Error())
}

func TestReadMissingFile(t *testing.T) {
	p, _ := newTestProvider(t)

	_, err := call(t, p, ToolReadFile, map[string]interface{}{"path": "ghost.txt"})
	te := requireToolError(t, err, types.KindNotFound)
	assert.Contains(t, te.Error(), "Cannot read file: ")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadBinaryRejected(t *testing.T) {
	p, fs := newTestProvider(t)
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01")
	require.NoError(t, afero.WriteFile(fs, "/drive/pic.png", png, 0o644))

	_, err := call(t, p, ToolReadFile, map[string]interface{}{"path": "pic.png"})
	te := requireToolError(t, err, types.KindFilesystem)
	assert.Equal(t, "Cannot read file: image/png content is not valid text", te.Error())
}

func TestDeleteFile(t *testing.T) {
	p, fs := newTestProvider(t)
	require.NoError(t, afero.WriteFile(fs, "/drive/a.txt", []byte("a"), 0o644))

	result, err := call(t, p, ToolDeleteFile, map[string]interface{}{"path": "a.txt"})
	require.NoError(t, err)
	assert.Equal(t, "Successfully deleted: a.txt", result.Text)

	exists, _ := afero.Exists(fs, "/drive/a.txt")
	assert.False(t, exists)
}

func TestDeleteFolderRecursively(t *testing.T) {
	p, fs := newTestProvider(t)
	require.NoError(t, afero.WriteFile(fs, "/drive/Old/deep/x.txt", []byte("x"), 0o644))

	result, err := call(t, p, ToolDeleteFile, map[string]interface{}{"path": "Old"})
	require.NoError(t, err)
	assert.Equal(t, "Successfully deleted: Old", result.Text)

	exists, _ := afero.Exists(fs, "/drive/Old/deep/x.txt")
	assert.False(t, exists)
}

func TestDeleteMissingFails(t *testing.T) {
	p, _ := newTestProvider(t)

	_, err := call(t, p, ToolDeleteFile, map[string]interface{}{"path": "missing.txt"})
	te := requireToolError(t, err, types.KindNotFound)
	assert.Contains(t, te.Error(), "Cannot delete: ")
	assert.Equal(t, types.CodeInternalError, te.Code())
}

func TestDeleteRootRefused(t *testing.T) {
	p, fs := newTestProvider(t)
	require.NoError(t, afero.WriteFile(fs, "/drive/keep.txt", []byte("k"), 0o644))

	for _, raw := range []string{"/", ".", "a/.."} {
		_, err := call(t, p, ToolDeleteFile, map[string]interface{}{"path": raw})
		requireToolError(t, err, types.KindAccessDenied)
	}

	exists, _ := afero.Exists(fs, "/drive/keep.txt")
	assert.True(t, exists)
}

func TestWriteOnDisk(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Proton Drive")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	root, err := paths.NewRoot(dir)
	require.NoError(t, err)
	p := New(root)

	_, err = call(t, p, ToolWriteFile, map[string]interface{}{"path": `Docs\a.txt`, "content": "disk"})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "Docs", "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "disk", string(data))

	info, err := os.Stat(filepath.Join(dir, "Docs", "a.txt"))
	require.NoError(t, err)
	assert.False(t, info.IsDir())
}
