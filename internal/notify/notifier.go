package notify

import "context"

//go:generate mockgen -source=notifier.go -destination=mock/notifier_mock.go -package=mock

// Channel sends a WhatsApp text to an employee. Implementations own their
// own timeouts; callers treat sends as best-effort and only log failures.
// A missed confirmation must never affect the checada that was written.
type Channel interface {
	Send(ctx context.Context, toPhone, body string) error
}
