// Package notify delivers price-drop alerts to an external channel.
package notify

import "context"

// Notifier sends one human-readable alert. Delivery is at-most-once:
// a failed send is reported to the caller but never retried.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// New returns a webhook notifier when a URL is configured, otherwise a
// no-op notifier so that alerting stays optional.
func New(webhookURL string) Notifier {
	if webhookURL == "" {
		return NoopNotifier{}
	}
	return NewWebhookNotifier(webhookURL)
}
