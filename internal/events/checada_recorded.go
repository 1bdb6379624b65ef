package events

import "time"

const ChecadaRecordedTopic = "attendance.checada.recorded.v1"

// ChecadaRecordedEvent is published for every attendance record accepted by
// the webhook, for downstream consumers (payroll, reporting) to pick up.
type ChecadaRecordedEvent struct {
	EventType       string    `json:"event_type"`
	RequestID       string    `json:"request_id,omitempty"`
	ChecadaID       string    `json:"checada_id"`
	CompanyID       string    `json:"company_id"`
	Phone           string    `json:"phone"`
	Tipo            string    `json:"tipo"`
	TimestampMillis int64     `json:"timestamp_millis"`
	OccurredAt      time.Time `json:"occurred_at"`
}
