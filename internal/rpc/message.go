package rpc

import (
	"encoding/json"

	"github.com/bytedance/sonic"

	"github.com/GriffinCanCode/drive-mcp/internal/types"
)

// Version is the only JSON-RPC version accepted
const Version = "2.0"

var nullID = json.RawMessage("null")

// Request is a JSON-RPC request or notification
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// IsNotification reports whether the sender expects no response
func (r *Request) IsNotification() bool {
	return len(r.ID) == 0
}

// Response is a JSON-RPC response. Exactly one of Result and Error is set.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  interface{}     `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

// Error is the JSON-RPC error object
type Error struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorData carries the tool error classification
type ErrorData struct {
	Kind types.ErrorKind `json:"kind"`
}

// InitializeParams is the subset of initialize params the server reads
type InitializeParams struct {
	ProtocolVersion string `json:"protocolVersion"`
}

// InitializeResult answers initialize
type InitializeResult struct {
	ProtocolVersion string       `json:"protocolVersion"`
	Capabilities    Capabilities `json:"capabilities"`
	ServerInfo      ServerInfo   `json:"serverInfo"`
}

// Capabilities advertises tool support only
type Capabilities struct {
	Tools struct{} `json:"tools"`
}

// ServerInfo names this server
type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// CallParams are the tools/call params
type CallParams struct {
	Name      string                 `json:"name"`
	Arguments map[string]interface{} `json:"arguments"`
}

// CallResult answers tools/call
type CallResult struct {
	Content []Content `json:"content"`
}

// Content is a single text block of a tool result
type Content struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// ListResult answers tools/list
type ListResult struct {
	Tools []types.Descriptor `json:"tools"`
}

func newResult(id json.RawMessage, result interface{}) *Response {
	return &Response{JSONRPC: Version, ID: normalizeID(id), Result: result}
}

func newError(id json.RawMessage, code int, message string, data interface{}) *Response {
	return &Response{
		JSONRPC: Version,
		ID:      normalizeID(id),
		Error:   &Error{Code: code, Message: message, Data: data},
	}
}

func normalizeID(id json.RawMessage) json.RawMessage {
	if len(id) == 0 {
		return nullID
	}
	return id
}

// Encode serializes a response as a single line of JSON
func Encode(resp *Response) ([]byte, error) {
	return sonic.Marshal(resp)
}
