package filesystem

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/drive-mcp/internal/shared/paths"
	"github.com/GriffinCanCode/drive-mcp/internal/types"
)

const testRoot = "/drive"

func newTestProvider(t *testing.T) (*Provider, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(testRoot, 0o755))

	root, err := paths.NewRoot(testRoot)
	require.NoError(t, err)
	return New(root, WithFs(fs), WithPlatform("linux")), fs
}

func call(t *testing.T, p *Provider, tool string, params map[string]interface{}) (*types.Result, error) {
	t.Helper()
	return p.Execute(context.Background(), tool, params, &types.Context{RequestID: "req_test"})
}

func requireToolError(t *testing.T, err error, kind types.ErrorKind) *types.ToolError {
	t.Helper()
	require.Error(t, err)
	te, ok := types.AsToolError(err)
	require.True(t, ok, "expected *types.ToolError, got %T", err)
	assert.Equal(t, kind, te.Kind)
	return te
}

func TestDefinition(t *testing.T) {
	p, _ := newTestProvider(t)
	def := p.Definition()

	assert.Equal(t, "drive", def.ID)
	assert.Equal(t, types.CategoryFilesystem, def.Category)

	names := make([]string, 0, len(def.Tools))
	for _, tool := range def.Tools {
		names = append(names, tool.Name)
		assert.NotEmpty(t, tool.Description)
	}
	assert.Equal(t, []string{
		ToolCheckMount, ToolListFiles, ToolReadFile, ToolWriteFile,
		ToolDeleteFile, ToolCreateFolder, ToolGetFileInfo,
	}, names)

	write := def.Tools[3].InputSchema()
	assert.Equal(t, "object", write.Type)
	assert.ElementsMatch(t, []string{"path", "content"}, write.Required)
	assert.Contains(t, write.Properties, "content")
}

func TestExecuteUnknownTool(t *testing.T) {
	p, _ := newTestProvider(t)

	_, err := call(t, p, "format_disk", nil)
	te := requireToolError(t, err, types.KindMethodNotFound)
	assert.Equal(t, types.CodeMethodNotFound, te.Code())
	assert.Equal(t, "Unknown tool: format_disk", te.Error())
}

func TestExecuteRejectsTraversal(t *testing.T) {
	p, fs := newTestProvider(t)
	require.NoError(t, afero.WriteFile(fs, "/secret.txt", []byte("top secret"), 0o644))

	tools := []string{ToolListFiles, ToolReadFile, ToolWriteFile, ToolDeleteFile, ToolCreateFolder, ToolGetFileInfo}
	for _, tool := range tools {
		t.Run(tool, func(t *testing.T) {
			_, err := call(t, p, tool, map[string]interface{}{
				"path":    "../secret.txt",
				"content": "overwritten",
			})
			te := requireToolError(t, err, types.KindAccessDenied)
			assert.Equal(t, types.CodeInternalError, te.Code())
			assert.Equal(t, "Error in "+tool+": Invalid path: Access denied outside Proton Drive", te.Error())
			assert.ErrorIs(t, err, paths.ErrAccessDenied)
		})
	}

	data, err := afero.ReadFile(fs, "/secret.txt")
	require.NoError(t, err)
	assert.Equal(t, "top secret", string(data))

	exists, err := afero.Exists(fs, "/drive/secret.txt")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestExecuteRequiresPath(t *testing.T) {
	p, _ := newTestProvider(t)

	for _, tool := range []string{ToolReadFile, ToolWriteFile, ToolDeleteFile, ToolCreateFolder, ToolGetFileInfo} {
		t.Run(tool, func(t *testing.T) {
			_, err := call(t, p, tool, map[string]interface{}{"content": "x"})
			te := requireToolError(t, err, types.KindInvalidArgument)
			assert.Equal(t, "path parameter required", te.Error())
			assert.Equal(t, types.CodeInternalError, te.Code())
		})
	}
}

func TestExecuteCancelledContext(t *testing.T) {
	p, fs := newTestProvider(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Execute(ctx, ToolWriteFile, map[string]interface{}{"path": "a.txt", "content": "x"}, nil)
	requireToolError(t, err, types.KindInternal)
	assert.ErrorIs(t, err, context.Canceled)

	exists, _ := afero.Exists(fs, "/drive/a.txt")
	assert.False(t, exists)
}

func TestCheckMount(t *testing.T) {
	t.Run("mounted", func(t *testing.T) {
		p, _ := newTestProvider(t)
		result, err := call(t, p, ToolCheckMount, nil)
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"mounted": true,
			"path": "/drive",
			"platform": "linux",
			"accessible": true,
			"isDirectory": true
		}`, result.Text)
	})

	t.Run("missing", func(t *testing.T) {
		root, err := paths.NewRoot("/nowhere")
		require.NoError(t, err)
		p := New(root, WithFs(afero.NewMemMapFs()), WithPlatform("darwin"))

		result, err := call(t, p, ToolCheckMount, nil)
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"mounted": false,
			"path": "/nowhere",
			"platform": "darwin",
			"accessible": false,
			"suggestion": "Please ensure Proton Drive is installed and running"
		}`, result.Text)
	})

	t.Run("root is a file", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/drive", []byte("x"), 0o644))
		root, err := paths.NewRoot(testRoot)
		require.NoError(t, err)
		p := New(root, WithFs(fs), WithPlatform("linux"))

		status := p.MountStatus(context.Background())
		assert.True(t, status.Mounted)
		assert.True(t, status.Accessible)
		require.NotNil(t, status.IsDirectory)
		assert.False(t, *status.IsDirectory)
	})
}
