package http

import (
	"errors"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/drive-mcp/internal/api/middleware"
	"github.com/GriffinCanCode/drive-mcp/internal/providers/filesystem"
	"github.com/GriffinCanCode/drive-mcp/internal/rpc"
	"github.com/GriffinCanCode/drive-mcp/internal/service"
	"github.com/GriffinCanCode/drive-mcp/internal/types"
)

// TransportHTTP labels calls received over HTTP
const TransportHTTP = "http"

// Handlers contains all HTTP handlers
type Handlers struct {
	registry *service.Registry
	rpc      *rpc.Handler
	drive    *filesystem.Provider
	version  string
}

// NewHandlers creates a new handler set
func NewHandlers(registry *service.Registry, rpcHandler *rpc.Handler, drive *filesystem.Provider, version string) *Handlers {
	return &Handlers{
		registry: registry,
		rpc:      rpcHandler,
		drive:    drive,
		version:  version,
	}
}

// Health reports the drive root and whether it is mounted
func (h *Handlers) Health(c *gin.Context) {
	mount := h.drive.MountStatus(c.Request.Context())

	status := "healthy"
	if !mount.Accessible {
		status = "degraded"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":           status,
		"service":          rpc.ServerName,
		"version":          h.version,
		"root":             h.drive.Root().Path(),
		"mount":            mount,
		"service_registry": h.registry.Stats(),
	})
}

// ListTools lists every tool with its input schema
func (h *Handlers) ListTools(c *gin.Context) {
	tools := h.registry.Tools()
	if tools == nil {
		tools = []types.Descriptor{}
	}
	c.JSON(http.StatusOK, gin.H{"tools": tools})
}

// CallTool runs one tool with the JSON request body as its arguments
func (h *Handlers) CallTool(c *gin.Context) {
	name := c.Param("name")

	body, err := readBody(c)
	if err != nil {
		te := types.NewToolError(types.KindInvalidArgument, name, "cannot read request body", err)
		c.JSON(bodyErrorStatus(err), gin.H{
			"error": gin.H{"code": te.Code(), "kind": te.Kind, "message": te.Message},
		})
		return
	}

	params := map[string]interface{}{}
	if len(body) > 0 {
		if err := sonic.Unmarshal(body, &params); err != nil {
			respondError(c, types.NewToolError(types.KindInvalidArgument, name, "request body must be a JSON object", err))
			return
		}
	}

	appCtx := &types.Context{
		RequestID: middleware.GetRequestID(c),
		Transport: TransportHTTP,
	}
	result, err := h.registry.Execute(c.Request.Context(), name, params, appCtx)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"text": result.Text})
}

// RPC serves one JSON-RPC message per POST. Notifications get 202 with no body.
func (h *Handlers) RPC(c *gin.Context) {
	body, err := readBody(c)
	if err != nil {
		c.JSON(bodyErrorStatus(err), gin.H{"error": "cannot read request body"})
		return
	}

	resp := h.rpc.HandleMessage(c.Request.Context(), TransportHTTP, body)
	if resp == nil {
		c.Status(http.StatusAccepted)
		return
	}

	data, err := rpc.Encode(resp)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot encode response"})
		return
	}
	c.Data(http.StatusOK, "application/json", data)
}

// readBody reads the request body, bounded like the stdio and WebSocket frames
func readBody(c *gin.Context) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, rpc.MaxMessageSize)
	return c.GetRawData()
}

func bodyErrorStatus(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

func respondError(c *gin.Context, err error) {
	te, ok := types.AsToolError(err)
	if !ok {
		te = types.NewToolError(types.KindInternal, c.Param("name"), err.Error(), err)
	}

	c.JSON(StatusFor(te.Kind), gin.H{
		"error": gin.H{
			"code":    te.Code(),
			"kind":    te.Kind,
			"message": te.Message,
		},
	})
}

// StatusFor maps a tool error kind onto an HTTP status
func StatusFor(kind types.ErrorKind) int {
	switch kind {
	case types.KindMethodNotFound, types.KindNotFound:
		return http.StatusNotFound
	case types.KindInvalidArgument:
		return http.StatusBadRequest
	case types.KindAccessDenied:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
