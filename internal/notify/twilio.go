package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const defaultTwilioBaseURL = "https://api.twilio.com"

// TwilioChannel delivers messages through the Twilio Messages API over the
// WhatsApp transport (the "whatsapp:" address prefix).
type TwilioChannel struct {
	httpClient *http.Client
	baseURL    string
	accountSID string
	authToken  string
	fromNumber string // e.g. "whatsapp:+14155238886"
	logger     *zap.Logger
}

type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	FromNumber string
	BaseURL    string // tests override this; empty means api.twilio.com
}

func NewTwilioChannel(cfg TwilioConfig, logger ...*zap.Logger) *TwilioChannel {
	l := zap.L().Named("notify.twilio")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notify.twilio")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultTwilioBaseURL
	}

	from := cfg.FromNumber
	if !strings.HasPrefix(from, "whatsapp:") {
		from = "whatsapp:" + from
	}

	return &TwilioChannel{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		accountSID: cfg.AccountSID,
		authToken:  cfg.AuthToken,
		fromNumber: from,
		logger:     l,
	}
}

func (t *TwilioChannel) Send(ctx context.Context, toPhone, body string) error {
	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", t.baseURL, t.accountSID)

	form := url.Values{}
	form.Set("To", "whatsapp:"+toPhone)
	form.Set("From", t.fromNumber)
	form.Set("Body", body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(t.accountSID, t.authToken)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		// Truncated body is enough for diagnostics and keeps logs bounded.
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		t.logger.Warn("twilio send rejected",
			zap.Int("status", resp.StatusCode),
			zap.String("to", toPhone),
			zap.ByteString("response", raw),
		)
		return fmt.Errorf("twilio send failed with status %d", resp.StatusCode)
	}

	return nil
}
