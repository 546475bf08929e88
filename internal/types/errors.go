package types

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a tool failure
type ErrorKind string

const (
	KindAccessDenied    ErrorKind = "access_denied"
	KindNotFound        ErrorKind = "not_found"
	KindFilesystem      ErrorKind = "filesystem"
	KindInvalidArgument ErrorKind = "invalid_argument"
	KindMethodNotFound  ErrorKind = "method_not_found"
	KindInternal        ErrorKind = "internal"
)

// JSON-RPC 2.0 error codes
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// ToolError is the typed failure returned by every tool handler
type ToolError struct {
	Kind    ErrorKind
	Tool    string
	Message string
	Err     error
}

// NewToolError creates a typed tool error
func NewToolError(kind ErrorKind, tool, message string, err error) *ToolError {
	return &ToolError{Kind: kind, Tool: tool, Message: message, Err: err}
}

// MethodNotFound reports an unknown tool name
func MethodNotFound(tool string) *ToolError {
	return NewToolError(KindMethodNotFound, tool, fmt.Sprintf("Unknown tool: %s", tool), nil)
}

func (e *ToolError) Error() string {
	return e.Message
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

// Code returns the protocol error code. Only unknown tools map to
// MethodNotFound; every other failure is reported as InternalError.
func (e *ToolError) Code() int {
	if e.Kind == KindMethodNotFound {
		return CodeMethodNotFound
	}
	return CodeInternalError
}

// AsToolError extracts a ToolError from an error chain
func AsToolError(err error) (*ToolError, bool) {
	var te *ToolError
	if errors.As(err, &te) {
		return te, true
	}
	return nil, false
}
