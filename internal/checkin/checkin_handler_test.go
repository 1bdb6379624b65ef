package checkin

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	lastEvent InboundEvent
	result    ProcessResult
	calls     int
}

func (f *fakeService) ProcessInboundEvent(ctx context.Context, event InboundEvent) ProcessResult {
	f.calls++
	f.lastEvent = event
	return f.result
}

func postWebhook(t *testing.T, h *Handler, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	_, r := gin.CreateTestContext(w)
	RegisterRoutes(r, h)

	req := httptest.NewRequest(http.MethodPost, "/webhook-twilio", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)
	return w
}

func TestWebhook_TextDelivery(t *testing.T) {
	svc := &fakeService{result: ProcessResult{ReplyText: "ok", RecordWritten: true}}
	h := NewHandler(svc)

	w := postWebhook(t, h, url.Values{
		"From":        {"whatsapp:+5215512345678"},
		"MessageType": {"TEXT"},
		"Body":        {"entrada"},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, svc.calls)
	assert.Equal(t, "whatsapp:+5215512345678", svc.lastEvent.From)
	assert.Equal(t, EventKindText, svc.lastEvent.Kind)
	assert.Equal(t, "entrada", svc.lastEvent.Body)
}

func TestWebhook_LocationDelivery(t *testing.T) {
	svc := &fakeService{}
	h := NewHandler(svc)

	w := postWebhook(t, h, url.Values{
		"From":        {"whatsapp:+5215512345678"},
		"MessageType": {"location"},
		"Latitude":    {"19.4326"},
		"Longitude":   {"-99.1332"},
		"Accuracy":    {"8"},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, EventKindLocation, svc.lastEvent.Kind)
	assert.Equal(t, "19.4326", svc.lastEvent.Latitude)
	assert.Equal(t, "-99.1332", svc.lastEvent.Longitude)
	assert.Equal(t, "8", svc.lastEvent.Accuracy)
}

func TestWebhook_AlwaysAcknowledges(t *testing.T) {
	// Even when the processor records nothing, Twilio must not retry.
	svc := &fakeService{result: ProcessResult{}}
	h := NewHandler(svc)

	w := postWebhook(t, h, url.Values{
		"From":        {"whatsapp:+5215512345678"},
		"MessageType": {"sticker"},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, svc.calls)
}
