package notify

import (
	"context"
	"errors"
)

// ErrChannelDisabled is returned by [NopNotifier] on every send attempt.
// Accounts with a bound channel cannot complete the second factor while
// the channel is disabled; there is no silent fallback to passwordless
// login.
var ErrChannelDisabled = errors.New("notification channel is disabled")

// NopNotifier is the stand-in used when no Telegram bot token is
// configured.
type NopNotifier struct{}

func NewNopNotifier() *NopNotifier {
	return &NopNotifier{}
}

func (n *NopNotifier) Send(ctx context.Context, chatID string, text string) error {
	return ErrChannelDisabled
}
