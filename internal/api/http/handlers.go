package http

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/mathd/internal/domain/service"
	"github.com/GriffinCanCode/mathd/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/mathd/internal/shared/types"
	"github.com/GriffinCanCode/mathd/internal/shared/utils"
)

// Discovery limits
const (
	defaultDiscoverLimit = 5
	maxDiscoverLimit     = 50
)

var errBodyTooLarge = errors.New("request body too large")

// Handlers contains all HTTP handlers
type Handlers struct {
	registry  *service.Registry
	metrics   *monitoring.Metrics
	validator *utils.JSONSizeValidator
}

// NewHandlers creates a new handler set. metrics may be nil.
func NewHandlers(registry *service.Registry, metrics *monitoring.Metrics) *Handlers {
	return &Handlers{
		registry:  registry,
		metrics:   metrics,
		validator: utils.DefaultJSONValidator(),
	}
}

// Register mounts every route on r
func (h *Handlers) Register(r gin.IRoutes) {
	r.GET("/", h.Root)
	r.GET("/health", h.Health)

	r.GET("/tools", h.ListTools)
	r.GET("/tools/discover", h.DiscoverTools)
	r.POST("/tools/discover", h.DiscoverToolsBody)
	r.POST("/tools/execute", h.ExecuteTool)
	r.GET("/tools/:name", h.GetTool)
	r.POST("/tools/:name", h.CallTool)
}

// Root handles the banner
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": types.ServerName,
		"version": types.Version,
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	body := gin.H{
		"status":           "healthy",
		"service_registry": h.registry.Stats(),
	}
	if h.metrics != nil {
		body["metrics"] = h.metrics.Snapshot()
	}
	c.JSON(http.StatusOK, body)
}

// ListTools lists the advertised tools, optionally filtered by group
func (h *Handlers) ListTools(c *gin.Context) {
	group := c.Query("group")

	tools := h.registry.Tools()
	if group != "" {
		filtered := make([]types.Tool, 0, len(tools))
		for _, tool := range tools {
			if tool.Group == group {
				filtered = append(filtered, tool)
			}
		}
		tools = filtered
	}

	c.JSON(http.StatusOK, gin.H{
		"tools": tools,
		"count": len(tools),
	})
}

// GetTool describes one tool
func (h *Handlers) GetTool(c *gin.Context) {
	name := c.Param("name")
	if err := utils.ValidateToolID(name, "tool", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tool, ok := h.registry.Tool(name)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown tool: " + name})
		return
	}
	c.JSON(http.StatusOK, tool)
}

// DiscoverTools ranks tools against a free-text intent given as ?q= and ?limit=
func (h *Handlers) DiscoverTools(c *gin.Context) {
	req := types.DiscoverRequest{Query: c.Query("q")}
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and " + strconv.Itoa(maxDiscoverLimit)})
			return
		}
		req.Limit = n
	}
	h.discover(c, req)
}

// DiscoverToolsBody ranks tools against {"query": ..., "limit": ...}
func (h *Handlers) DiscoverToolsBody(c *gin.Context) {
	var req types.DiscoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.discover(c, req)
}

func (h *Handlers) discover(c *gin.Context, req types.DiscoverRequest) {
	if err := utils.ValidateQuery(req.Query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	limit := req.Limit
	if limit == 0 {
		limit = defaultDiscoverLimit
	}
	if limit < 1 || limit > maxDiscoverLimit {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and " + strconv.Itoa(maxDiscoverLimit)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"query": req.Query,
		"tools": h.registry.Discover(req.Query, limit),
	})
}

// CallTool executes the tool named in the path with the body as its raw
// arguments. A failed computation is still a 200: the call completed and
// the result carries the error report.
func (h *Handlers) CallTool(c *gin.Context) {
	name := c.Param("name")
	if err := utils.ValidateToolID(name, "tool", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	raw, ok := h.decodeBody(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, h.registry.Execute(c.Request.Context(), name, raw))
}

// ExecuteTool executes a tool named in the body: {"tool": ..., "arguments": ...}
func (h *Handlers) ExecuteTool(c *gin.Context) {
	raw, ok := h.decodeBody(c)
	if !ok {
		return
	}

	body, isObject := raw.(map[string]interface{})
	if !isObject {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body must be an object with tool and arguments"})
		return
	}

	var req types.ExecuteRequest
	req.Tool, _ = body["tool"].(string)
	req.Arguments = body["arguments"]

	if err := utils.ValidateToolID(req.Tool, "tool", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.registry.Execute(c.Request.Context(), req.Tool, req.Arguments))
}

// decodeBody reads and parses a size-limited JSON body, answering 400 or
// 413 itself when it cannot
func (h *Handlers) decodeBody(c *gin.Context) (interface{}, bool) {
	data, err := io.ReadAll(io.LimitReader(c.Request.Body, utils.MaxJSONSize+1))
	if err == nil && len(data) > utils.MaxJSONSize {
		err = errBodyTooLarge
	}
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, errBodyTooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return nil, false
	}

	raw, err := h.validator.Decode(data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	return raw, true
}
