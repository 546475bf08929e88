package types

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToolErrorCode(t *testing.T) {
	assert.Equal(t, CodeMethodNotFound, MethodNotFound("x").Code())
	for _, kind := range []ErrorKind{KindAccessDenied, KindNotFound, KindFilesystem, KindInvalidArgument, KindInternal} {
		assert.Equal(t, CodeInternalError, NewToolError(kind, "t", "m", nil).Code(), kind)
	}
}

func TestToolErrorUnwrap(t *testing.T) {
	err := fmt.Errorf("outer: %w", NewToolError(KindNotFound, "read_file", "Cannot read file: gone", fs.ErrNotExist))

	assert.ErrorIs(t, err, fs.ErrNotExist)
	te, ok := AsToolError(err)
	require.True(t, ok)
	assert.Equal(t, "read_file", te.Tool)
	assert.Equal(t, "Cannot read file: gone", te.Error())

	_, ok = AsToolError(errors.New("plain"))
	assert.False(t, ok)
}

func TestInputSchema(t *testing.T) {
	tool := Tool{
		Name:        "write_file",
		Description: "Write",
		Parameters: []Parameter{
			{Name: "path", Type: "string", Description: "Path", Required: true},
			{Name: "mode", Type: "string"},
		},
	}

	d := tool.Descriptor()
	assert.Equal(t, "write_file", d.Name)
	assert.Equal(t, "object", d.InputSchema.Type)
	assert.Equal(t, []string{"path"}, d.InputSchema.Required)
	assert.Equal(t, Property{Type: "string", Description: "Path"}, d.InputSchema.Properties["path"])
	assert.Len(t, d.InputSchema.Properties, 2)
}
