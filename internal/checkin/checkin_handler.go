package checkin

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("checkin.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("checkin.handler")
	}
	return &Handler{service: service, logger: l}
}

// Webhook handles Twilio deliveries. It answers 200 unconditionally: a
// non-2xx would make Twilio retry, and duplicate deliveries are worse than
// a dropped courtesy reply.
func (h *Handler) Webhook(c *gin.Context) {
	var form TwilioWebhookForm
	if err := c.ShouldBind(&form); err != nil {
		h.logger.Warn("unparseable webhook payload", zap.Error(err))
		c.Status(http.StatusOK)
		return
	}

	event := InboundEvent{
		From:      form.From,
		Kind:      EventKind(strings.ToLower(strings.TrimSpace(form.MessageType))),
		Body:      form.Body,
		Latitude:  form.Latitude,
		Longitude: form.Longitude,
		Accuracy:  form.Accuracy,
	}

	res := h.service.ProcessInboundEvent(c.Request.Context(), event)

	h.logger.Debug("webhook processed",
		zap.String("kind", string(event.Kind)),
		zap.Bool("record_written", res.RecordWritten),
	)

	c.Status(http.StatusOK)
}
