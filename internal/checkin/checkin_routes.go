package checkin

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the webhook at the root, not under /api/v1: the
// path is what production Twilio consoles already point at.
func RegisterRoutes(r *gin.Engine, h *Handler) {
	r.POST("/webhook-twilio", h.Webhook)
}
