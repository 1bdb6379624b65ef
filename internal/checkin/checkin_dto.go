package checkin

// EventKind mirrors Twilio's MessageType field.
type EventKind string

const (
	EventKindText     EventKind = "text"
	EventKindLocation EventKind = "location"
)

// InboundEvent is one webhook delivery, transport details already stripped.
// Location fields stay raw strings here; parsing (and rejecting) them is the
// processor's job so a malformed report gets the right user-facing reply.
type InboundEvent struct {
	From      string
	Kind      EventKind
	Body      string
	Latitude  string
	Longitude string
	Accuracy  string
}

// ProcessResult is what the webhook handler gets back. There is no error:
// internal failures are logged and collapse into a generic reply so the
// provider always receives an acknowledgment.
type ProcessResult struct {
	ReplyText     string
	RecordWritten bool
}

// TwilioWebhookForm is the urlencoded body Twilio posts.
type TwilioWebhookForm struct {
	From        string `form:"From"`
	MessageType string `form:"MessageType"`
	Body        string `form:"Body"`
	Latitude    string `form:"Latitude"`
	Longitude   string `form:"Longitude"`
	Accuracy    string `form:"Accuracy"`
}
