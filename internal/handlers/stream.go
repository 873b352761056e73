package handlers

import (
	"io"
	"time"

	"github.com/gin-gonic/gin"
)

// @Summary      Status stream
// @Description  Server-sent events with the system status once per second
// @Tags         monitoring
// @Produce      text/event-stream
// @Success      200  {string}  string
// @Router       /stream [get]
func (h *Handler) streamStatus(c *gin.Context) {
	ticker := time.NewTicker(defaultInterval)
	defer ticker.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case <-ticker.C:
			st, err := h.services.Monitoring.Status(c.Request.Context())
			if err != nil {
				if h.log != nil {
					h.log.Errorw("stream_status_failed", "err", err)
				}
				return false
			}
			c.SSEvent("status", st)
			return true
		}
	})
}
