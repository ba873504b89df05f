package notify

import "context"

// NoopNotifier is used when no webhook is configured. It succeeds without
// attempting any delivery.
type NoopNotifier struct{}

func (NoopNotifier) Notify(ctx context.Context, text string) error {
	return nil
}
