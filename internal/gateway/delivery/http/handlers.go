package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"agent-gateway/pkg/response"
)

// Health godoc
// @Summary     Registry liveness
// @Description Reports that the registry process is up.
// @Tags        Registry
// @Produce     json
// @Success     200 {object} map[string]string
// @Router      /health [GET]
func (h *handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// Status godoc
// @Summary     Registry status
// @Description Reports the gateway reachability and the last sync snapshot.
// @Tags        Registry
// @Produce     json
// @Success     200 {object} statusResp
// @Router      /status [GET]
func (h *handler) Status(c *gin.Context) {
	resp := statusResp{
		Status:        "running",
		ServicesCount: len(h.registrar.Services()),
		KongStatus:    "unreachable",
	}
	if h.registrar.Healthy(c.Request.Context()) {
		resp.KongStatus = "healthy"
	}
	if ts, ok := h.registrar.LastSync(); ok {
		resp.LastSync = ts.UTC().Format(time.RFC3339)
	}
	c.JSON(http.StatusOK, resp)
}

// Services godoc
// @Summary     Registered services
// @Description Lists the services the last sync cycle registered.
// @Tags        Registry
// @Produce     json
// @Success     200 {object} servicesResp
// @Router      /services [GET]
func (h *handler) Services(c *gin.Context) {
	services := h.registrar.Services()
	c.JSON(http.StatusOK, servicesResp{
		Services: services,
		Count:    len(services),
	})
}

// Sync godoc
// @Summary     Trigger a sync
// @Description Runs one discovery and registration pass immediately.
// @Tags        Registry
// @Produce     json
// @Success     200 {object} syncResp
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /sync [POST]
func (h *handler) Sync(c *gin.Context) {
	ctx := c.Request.Context()

	n, err := h.registrar.SyncOnce(ctx)
	if err != nil {
		h.l.Errorf(ctx, "%s: %v", LogPrefixSync, err)
		response.InternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, syncResp{Registered: n})
}
