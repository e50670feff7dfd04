package ws

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/mathd/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/mathd/internal/shared/id"
	"github.com/GriffinCanCode/mathd/internal/shared/types"
	"github.com/GriffinCanCode/mathd/internal/shared/utils"
)

const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true // Origin policy is enforced by the CORS middleware
	},
}

// Executor runs a single tool call
type Executor interface {
	Execute(ctx context.Context, name string, raw interface{}) *types.Result
}

// Observer receives connection telemetry
type Observer interface {
	IncWSConnections()
	DecWSConnections()
	RecordWSMessage(direction string)
}

// Handler manages WebSocket connections
type Handler struct {
	executor Executor
	observer Observer
	logger   *zap.Logger
}

// NewHandler creates a new WebSocket handler. observer may be nil.
func NewHandler(executor Executor, observer Observer, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		executor: executor,
		observer: observer,
		logger:   logger,
	}
}

// connection serializes writes to one socket
type connection struct {
	id   string
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *connection) send(reply types.StreamReply) error {
	reply.Timestamp = time.Now().Unix()
	data, err := sonic.Marshal(reply)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// HandleConnection handles WebSocket upgrade and messages. Calls on one
// connection are answered in the order they arrive.
func (h *Handler) HandleConnection(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer ws.Close()

	ws.SetReadLimit(utils.MaxFrameSize)
	conn := &connection{id: id.NewConnID().String(), conn: ws}
	log := h.logger.With(zap.String("conn_id", conn.id))

	if h.observer != nil {
		h.observer.IncWSConnections()
		defer h.observer.DecWSConnections()
	}
	log.Debug("websocket connected", zap.String("remote", c.ClientIP()))

	// Get request context for propagation
	reqCtx := c.Request.Context()

	h.write(conn, types.StreamReply{
		ID:      conn.id,
		Type:    types.FrameSystem,
		Message: "connected to mathd",
	})

	// Listen for messages
	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Info("websocket read error", zap.Error(err))
			}
			break
		}
		h.received()

		var msg types.StreamMessage
		if err := sonic.Unmarshal(data, &msg); err != nil {
			h.write(conn, types.StreamReply{Type: types.FrameError, Message: "malformed frame: " + err.Error()})
			continue
		}
		if msg.ID == "" {
			msg.ID = uuid.NewString()
		}

		switch strings.ToLower(msg.Type) {
		case "", types.FrameCall:
			h.handleCall(reqCtx, conn, msg)
		case types.FramePing:
			h.write(conn, types.StreamReply{ID: msg.ID, Type: types.FramePong})
		default:
			h.write(conn, types.StreamReply{ID: msg.ID, Type: types.FrameError, Message: "unknown message type: " + msg.Type})
		}
	}

	log.Debug("websocket disconnected")
}

func (h *Handler) handleCall(reqCtx context.Context, conn *connection, msg types.StreamMessage) {
	if err := utils.ValidateToolID(msg.Tool, "tool", true); err != nil {
		h.write(conn, types.StreamReply{ID: msg.ID, Type: types.FrameError, Message: err.Error()})
		return
	}

	ctx := tracing.WithRequestID(reqCtx, msg.ID)
	result := h.executor.Execute(ctx, msg.Tool, msg.Arguments)
	h.write(conn, types.StreamReply{ID: msg.ID, Type: types.FrameResult, Result: result})
}

func (h *Handler) write(conn *connection, reply types.StreamReply) {
	if err := conn.send(reply); err != nil {
		h.logger.Debug("websocket write failed", zap.String("conn_id", conn.id), zap.Error(err))
		return
	}
	if h.observer != nil {
		h.observer.RecordWSMessage("out")
	}
}

func (h *Handler) received() {
	if h.observer != nil {
		h.observer.RecordWSMessage("in")
	}
}
