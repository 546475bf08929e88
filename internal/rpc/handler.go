package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/drive-mcp/internal/infrastructure/logging"
	"github.com/GriffinCanCode/drive-mcp/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/drive-mcp/internal/shared/id"
	"github.com/GriffinCanCode/drive-mcp/internal/types"
)

// Supported methods
const (
	MethodInitialize  = "initialize"
	MethodInitialized = "notifications/initialized"
	MethodPing        = "ping"
	MethodToolsList   = "tools/list"
	MethodToolsCall   = "tools/call"
)

const (
	// DefaultProtocolVersion is answered when the client does not name one
	DefaultProtocolVersion = "2024-11-05"
	ServerName             = "proton-drive-mcp"
	notificationPrefix     = "notifications/"
)

// Executor runs tools by name
type Executor interface {
	Tools() []types.Descriptor
	Execute(ctx context.Context, toolName string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error)
}

// Handler answers MCP requests independently of the transport carrying them
type Handler struct {
	executor Executor
	version  string
	logger   *logging.Logger
	metrics  *monitoring.Metrics
}

// Option configures a Handler
type Option func(*Handler)

// WithLogger sets the handler logger
func WithLogger(logger *logging.Logger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

// WithMetrics counts inbound messages
func WithMetrics(metrics *monitoring.Metrics) Option {
	return func(h *Handler) {
		h.metrics = metrics
	}
}

// WithVersion sets the version reported in serverInfo
func WithVersion(version string) Option {
	return func(h *Handler) {
		h.version = version
	}
}

// NewHandler creates a handler over executor
func NewHandler(executor Executor, opts ...Option) *Handler {
	h := &Handler{
		executor: executor,
		version:  "1.0.0",
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// HandleMessage decodes a raw frame and returns the response to send back,
// or nil when nothing should be sent (notifications and blank frames).
func (h *Handler) HandleMessage(ctx context.Context, transport string, data []byte) *Response {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	if !sonic.Valid(data) {
		h.metrics.RecordRPCMessage(transport, "invalid")
		return newError(nil, types.CodeParseError, "Parse error", nil)
	}
	if data[0] == '[' {
		h.metrics.RecordRPCMessage(transport, "invalid")
		return newError(nil, types.CodeInvalidRequest, "Invalid Request: batch requests are not supported", nil)
	}

	var req Request
	if err := sonic.Unmarshal(data, &req); err != nil {
		h.metrics.RecordRPCMessage(transport, "invalid")
		return newError(nil, types.CodeInvalidRequest, "Invalid Request", nil)
	}
	return h.Handle(ctx, transport, &req)
}

// Handle dispatches a decoded request
func (h *Handler) Handle(ctx context.Context, transport string, req *Request) *Response {
	if req.JSONRPC != Version || req.Method == "" {
		h.metrics.RecordRPCMessage(transport, "invalid")
		return newError(req.ID, types.CodeInvalidRequest, "Invalid Request", nil)
	}
	h.metrics.RecordRPCMessage(transport, metricMethod(req.Method))

	log := h.logger.With(zap.String("method", req.Method), zap.String("transport", transport))
	log.Debug("rpc message received", zap.ByteString("id", req.ID))

	var resp *Response
	switch req.Method {
	case MethodInitialize:
		resp = h.initialize(req)
	case MethodPing:
		resp = newResult(req.ID, struct{}{})
	case MethodToolsList:
		resp = newResult(req.ID, ListResult{Tools: h.tools()})
	case MethodToolsCall:
		resp = h.callTool(ctx, transport, req)
	default:
		// A notification method sent with an id is still a request
		if strings.HasPrefix(req.Method, notificationPrefix) {
			resp = newResult(req.ID, struct{}{})
			break
		}
		resp = newError(req.ID, types.CodeMethodNotFound, fmt.Sprintf("Method not found: %s", req.Method), nil)
	}

	if req.IsNotification() {
		return nil
	}
	return resp
}

func (h *Handler) initialize(req *Request) *Response {
	var params InitializeParams
	if len(req.Params) > 0 {
		if err := sonic.Unmarshal(req.Params, &params); err != nil {
			return newError(req.ID, types.CodeInvalidParams, "Invalid params: "+err.Error(), nil)
		}
	}

	version := params.ProtocolVersion
	if version == "" {
		version = DefaultProtocolVersion
	}

	return newResult(req.ID, InitializeResult{
		ProtocolVersion: version,
		ServerInfo:      ServerInfo{Name: ServerName, Version: h.version},
	})
}

func (h *Handler) tools() []types.Descriptor {
	tools := h.executor.Tools()
	if tools == nil {
		return []types.Descriptor{}
	}
	return tools
}

func (h *Handler) callTool(ctx context.Context, transport string, req *Request) *Response {
	params, err := decodeCallParams(req.Params)
	if err != nil {
		return newError(req.ID, types.CodeInvalidParams, err.Error(), nil)
	}

	appCtx := &types.Context{
		RequestID: id.NewRequestID().String(),
		Transport: transport,
	}
	result, err := h.executor.Execute(ctx, params.Name, params.Arguments, appCtx)
	if err != nil {
		return toolError(req.ID, params.Name, err)
	}

	return newResult(req.ID, CallResult{
		Content: []Content{{Type: "text", Text: result.Text}},
	})
}

func decodeCallParams(raw json.RawMessage) (CallParams, error) {
	var params CallParams
	if len(raw) == 0 {
		return params, fmt.Errorf("Invalid params: tool name required")
	}
	if err := sonic.Unmarshal(raw, &params); err != nil {
		return params, fmt.Errorf("Invalid params: %w", err)
	}
	if params.Name == "" {
		return params, fmt.Errorf("Invalid params: tool name required")
	}
	if params.Arguments == nil {
		params.Arguments = map[string]interface{}{}
	}
	return params, nil
}

// toolError maps a tool failure onto the JSON-RPC error object
func toolError(id json.RawMessage, tool string, err error) *Response {
	te, ok := types.AsToolError(err)
	if !ok {
		te = types.NewToolError(types.KindInternal, tool, fmt.Sprintf("Error in %s: %s", tool, err.Error()), err)
	}
	return newError(id, te.Code(), te.Message, ErrorData{Kind: te.Kind})
}

// metricMethod keeps client-chosen method names out of metric labels
func metricMethod(method string) string {
	switch method {
	case MethodInitialize, MethodInitialized, MethodPing, MethodToolsList, MethodToolsCall:
		return method
	}
	if strings.HasPrefix(method, notificationPrefix) {
		return "notification"
	}
	return "unknown"
}
