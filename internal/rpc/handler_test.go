package rpc

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/drive-mcp/internal/providers/filesystem"
	"github.com/GriffinCanCode/drive-mcp/internal/service"
	"github.com/GriffinCanCode/drive-mcp/internal/shared/paths"
)

func newTestHandler(t *testing.T) (*Handler, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/drive", 0o755))
	root, err := paths.NewRoot("/drive")
	require.NoError(t, err)

	registry := service.NewRegistry()
	require.NoError(t, registry.Register(filesystem.New(root, filesystem.WithFs(fs))))
	return NewHandler(registry, WithVersion("9.9.9")), fs
}

// roundTrip sends one raw frame and decodes the encoded response generically
func roundTrip(t *testing.T, h *Handler, frame string) map[string]interface{} {
	t.Helper()
	resp := h.HandleMessage(context.Background(), "test", []byte(frame))
	require.NotNil(t, resp, "expected a response to %s", frame)

	data, err := Encode(resp)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "2.0", out["jsonrpc"])
	return out
}

func errorOf(t *testing.T, out map[string]interface{}) map[string]interface{} {
	t.Helper()
	require.Contains(t, out, "error")
	assert.NotContains(t, out, "result")
	return out["error"].(map[string]interface{})
}

func TestInitialize(t *testing.T) {
	h, _ := newTestHandler(t)

	out := roundTrip(t, h, `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-03-26","capabilities":{},"clientInfo":{"name":"c","version":"1"}}}`)
	assert.Equal(t, 1.0, out["id"])
	result := out["result"].(map[string]interface{})
	assert.Equal(t, "2025-03-26", result["protocolVersion"])
	assert.Equal(t, map[string]interface{}{"tools": map[string]interface{}{}}, result["capabilities"])
	assert.Equal(t, map[string]interface{}{"name": "proton-drive-mcp", "version": "9.9.9"}, result["serverInfo"])

	out = roundTrip(t, h, `{"jsonrpc":"2.0","id":"init","method":"initialize"}`)
	assert.Equal(t, "init", out["id"])
	assert.Equal(t, DefaultProtocolVersion, out["result"].(map[string]interface{})["protocolVersion"])
}

func TestNotificationsGetNoResponse(t *testing.T) {
	h, _ := newTestHandler(t)

	assert.Nil(t, h.HandleMessage(context.Background(), "test", []byte(`{"jsonrpc":"2.0","method":"notifications/initialized"}`)))
	assert.Nil(t, h.HandleMessage(context.Background(), "test", []byte(`{"jsonrpc":"2.0","method":"notifications/cancelled","params":{"requestId":3}}`)))
	assert.Nil(t, h.HandleMessage(context.Background(), "test", []byte(`{"jsonrpc":"2.0","method":"ping"}`)))
	assert.Nil(t, h.HandleMessage(context.Background(), "test", []byte("   ")))
}

func TestNotificationMethodWithIDIsAnswered(t *testing.T) {
	h, _ := newTestHandler(t)

	out := roundTrip(t, h, `{"jsonrpc":"2.0","id":4,"method":"notifications/initialized"}`)
	assert.Equal(t, 4.0, out["id"])
	assert.Equal(t, map[string]interface{}{}, out["result"])
	assert.Nil(t, out["error"])
}

func TestPing(t *testing.T) {
	h, _ := newTestHandler(t)

	out := roundTrip(t, h, `{"jsonrpc":"2.0","id":7,"method":"ping"}`)
	assert.Equal(t, map[string]interface{}{}, out["result"])
}

func TestToolsList(t *testing.T) {
	h, _ := newTestHandler(t)

	out := roundTrip(t, h, `{"jsonrpc":"2.0","id":2,"method":"tools/list"}`)
	tools := out["result"].(map[string]interface{})["tools"].([]interface{})
	require.Len(t, tools, 7)

	first := tools[0].(map[string]interface{})
	assert.Equal(t, "check_mount", first["name"])
	assert.Equal(t, map[string]interface{}{"type": "object", "properties": map[string]interface{}{}}, first["inputSchema"])

	write := tools[3].(map[string]interface{})
	assert.Equal(t, "write_file", write["name"])
	schema := write["inputSchema"].(map[string]interface{})
	assert.Equal(t, []interface{}{"path", "content"}, schema["required"])
}

func TestToolsCallRoundTrip(t *testing.T) {
	h, fs := newTestHandler(t)

	out := roundTrip(t, h, `{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"write_file","arguments":{"path":"Notes/todo.md","content":"- milk"}}}`)
	assert.Equal(t, map[string]interface{}{
		"content": []interface{}{
			map[string]interface{}{"type": "text", "text": "Successfully wrote file: Notes/todo.md"},
		},
	}, out["result"])

	data, err := afero.ReadFile(fs, "/drive/Notes/todo.md")
	require.NoError(t, err)
	assert.Equal(t, "- milk", string(data))

	out = roundTrip(t, h, `{"jsonrpc":"2.0","id":4,"method":"tools/call","params":{"name":"read_file","arguments":{"path":"Notes/todo.md"}}}`)
	content := out["result"].(map[string]interface{})["content"].([]interface{})
	assert.Equal(t, "- milk", content[0].(map[string]interface{})["text"])
}

func TestToolsCallErrors(t *testing.T) {
	h, _ := newTestHandler(t)

	tests := []struct {
		name    string
		frame   string
		code    float64
		message string
		kind    string
	}{
		{
			name:    "unknown tool",
			frame:   `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"format_disk"}}`,
			code:    -32601,
			message: "Unknown tool: format_disk",
			kind:    "method_not_found",
		},
		{
			name:    "traversal",
			frame:   `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"read_file","arguments":{"path":"../../etc/passwd"}}}`,
			code:    -32603,
			message: "Error in read_file: Invalid path: Access denied outside Proton Drive",
			kind:    "access_denied",
		},
		{
			name:    "missing content",
			frame:   `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"write_file","arguments":{"path":"a.txt"}}}`,
			code:    -32603,
			message: "content parameter required",
			kind:    "invalid_argument",
		},
		{
			name:    "missing file",
			frame:   `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"delete_file","arguments":{"path":"ghost"}}}`,
			code:    -32603,
			kind:    "not_found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := errorOf(t, roundTrip(t, h, tt.frame))
			assert.Equal(t, tt.code, e["code"])
			if tt.message != "" {
				assert.Equal(t, tt.message, e["message"])
			}
			assert.Equal(t, map[string]interface{}{"kind": tt.kind}, e["data"])
		})
	}
}

func TestProtocolErrors(t *testing.T) {
	h, _ := newTestHandler(t)

	tests := []struct {
		name  string
		frame string
		code  float64
		id    interface{}
	}{
		{name: "malformed json", frame: `{"jsonrpc":"2.0","id":1,`, code: -32700},
		{name: "batch", frame: `[{"jsonrpc":"2.0","id":1,"method":"ping"}]`, code: -32600},
		{name: "not an object", frame: `42`, code: -32600},
		{name: "wrong version", frame: `{"jsonrpc":"1.0","id":5,"method":"ping"}`, code: -32600, id: 5.0},
		{name: "missing method", frame: `{"jsonrpc":"2.0","id":6}`, code: -32600, id: 6.0},
		{name: "unknown method", frame: `{"jsonrpc":"2.0","id":8,"method":"resources/list"}`, code: -32601, id: 8.0},
		{name: "call without name", frame: `{"jsonrpc":"2.0","id":9,"method":"tools/call","params":{}}`, code: -32602, id: 9.0},
		{name: "call with bad arguments", frame: `{"jsonrpc":"2.0","id":10,"method":"tools/call","params":{"name":"read_file","arguments":"x"}}`, code: -32602, id: 10.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := roundTrip(t, h, tt.frame)
			assert.Equal(t, tt.code, errorOf(t, out)["code"])
			assert.Equal(t, tt.id, out["id"])
		})
	}
}
