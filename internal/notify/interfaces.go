// Package notify implements the out-of-band notification channel used to
// deliver one-time login codes, password-reset links, and confirmation
// messages to users.
package notify

import "context"

// Notifier delivers a message to the external channel identified by
// chatID. Delivery is at-most-once from this system's perspective: there
// is no confirmation loop and no retry.
type Notifier interface {
	Send(ctx context.Context, chatID string, text string) error
}
