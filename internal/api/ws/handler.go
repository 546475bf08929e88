package ws

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/drive-mcp/internal/infrastructure/logging"
	"github.com/GriffinCanCode/drive-mcp/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/drive-mcp/internal/rpc"
	"github.com/GriffinCanCode/drive-mcp/internal/shared/id"
)

// TransportWS labels calls received over WebSocket
const TransportWS = "ws"

const (
	writeWait      = 10 * time.Second
	maxMessageSize = rpc.MaxMessageSize
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true // CORS middleware governs browser access
	},
}

// Handler serves JSON-RPC over WebSocket, one text frame per message
type Handler struct {
	rpc     *rpc.Handler
	logger  *logging.Logger
	metrics *monitoring.Metrics
}

// NewHandler creates a new WebSocket handler
func NewHandler(rpcHandler *rpc.Handler, logger *logging.Logger, metrics *monitoring.Metrics) *Handler {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handler{
		rpc:     rpcHandler,
		logger:  logger,
		metrics: metrics,
	}
}

// HandleConnection upgrades the request and processes frames in order until
// the client disconnects or the request context ends.
func (h *Handler) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxMessageSize)

	connID := id.NewConnectionID()
	log := h.logger.With(zap.String("connection_id", connID.String()))
	h.metrics.IncWSConnections()
	defer h.metrics.DecWSConnections()
	log.Info("websocket connected", zap.String("remote", c.ClientIP()))

	ctx := c.Request.Context()
	var writeMu sync.Mutex

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn("websocket read error", zap.Error(err))
			}
			break
		}
		if msgType != websocket.TextMessage {
			continue
		}

		resp := h.rpc.HandleMessage(ctx, TransportWS, data)
		if resp == nil {
			continue
		}

		out, err := rpc.Encode(resp)
		if err != nil {
			log.Error("failed to encode response", zap.Error(err))
			continue
		}

		writeMu.Lock()
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		err = conn.WriteMessage(websocket.TextMessage, out)
		writeMu.Unlock()
		if err != nil {
			log.Warn("websocket write error", zap.Error(err))
			break
		}
	}

	log.Info("websocket disconnected")
}
