package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"agent-gateway/internal/middleware"
	"agent-gateway/internal/routing"
	"agent-gateway/pkg/response"
)

// ProcessRequest godoc
// @Summary     Route a user request to an agent
// @Description Runs the routing pipeline and streams progress events as NDJSON.
// @Tags        Router
// @Accept      multipart/form-data
// @Produce     json
// @Param       session_id formData string true  "Session identifier"
// @Param       query      formData string true  "User query text"
// @Param       route      formData string false "Previously resolved agent URL (sticky route)"
// @Param       files      formData file   false "Optional files to forward"
// @Success     200 {string} string "NDJSON stream of routing events"
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     401 {object} response.Resp "Unauthorized"
// @Failure     413 {object} response.Resp "File too large"
// @Router      /router [POST]
func (h *handler) ProcessRequest(c *gin.Context) {
	ctx := c.Request.Context()

	req, files, err := h.processRouteReq(c)
	if err != nil {
		h.metrics.requestsFailed.Add(1)

		var tooLarge *fileTooLargeError
		var invalid *routing.ValidationError
		switch {
		case errors.As(err, &tooLarge):
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": tooLarge.Error()})
		case errors.As(err, &invalid):
			response.Error(c, invalid, nil)
		default:
			h.l.Errorf(ctx, "%s: %v", LogPrefixProcess, err)
			response.InternalError(c, err)
		}
		return
	}

	token := middleware.Token(c)
	h.l.Infof(ctx, "%s: session=%s files=%d sticky=%v", LogPrefixProcess, req.SessionID, len(files), req.Route != "")
	h.metrics.requestsProcessed.Add(1)

	events := h.proc.Process(ctx, req, files, token)

	c.Header("Content-Type", "application/json")
	c.Header("X-Accel-Buffering", "no")
	c.Stream(func(w io.Writer) bool {
		ev, ok := <-events
		if !ok {
			return false
		}
		line, err := json.Marshal(ev)
		if err != nil {
			h.l.Errorf(ctx, "%s: failed to encode event: %v", LogPrefixProcess, err)
			return false
		}
		w.Write(append(line, '\n'))
		h.metrics.eventsStreamed.Add(1)
		return true
	})
}

// Health godoc
// @Summary     Router health
// @Description Reports router component statuses.
// @Tags        Router
// @Produce     json
// @Success     200 {object} orchestrator.HealthStatus
// @Router      /router/health [GET]
func (h *handler) Health(c *gin.Context) {
	status := h.proc.HealthCheck(c.Request.Context())
	code := http.StatusOK
	if status.Router != "healthy" {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, status)
}

// Metrics godoc
// @Summary     Router metrics
// @Description Returns simple request counters.
// @Tags        Router
// @Produce     json
// @Success     200 {object} metricsResp
// @Router      /metrics [GET]
func (h *handler) Metrics(c *gin.Context) {
	c.JSON(http.StatusOK, h.metrics.snapshot())
}
