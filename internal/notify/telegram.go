package notify

import (
	"context"
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/horrygame/ficarchive/internal/config"
	"github.com/horrygame/ficarchive/internal/logger"
)

// TelegramNotifier delivers messages through the Telegram Bot API and
// answers incoming /start commands with the sender's chat id, which is
// the value users supply when binding the channel to their account.
type TelegramNotifier struct {
	api    *tgbotapi.BotAPI
	logger *logger.Logger
}

// NewTelegramNotifier authorizes the bot with the configured token.
// Returns (nil, nil) when the channel is disabled so that callers can
// substitute the no-op notifier.
func NewTelegramNotifier(cfg config.Telegram, log *logger.Logger) (*TelegramNotifier, error) {
	if !cfg.Enabled || cfg.BotToken == "" {
		log.Info().Msg("telegram channel is disabled")
		return nil, nil
	}

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("error creating telegram bot api: %w", err)
	}

	log.Info().Str("bot", api.Self.UserName).Msg("telegram bot authorized")

	return &TelegramNotifier{
		api:    api,
		logger: log,
	}, nil
}

// Send implements [Notifier]. chatID must be the decimal Telegram chat
// identifier. No timeout is enforced beyond the transport default.
func (n *TelegramNotifier) Send(ctx context.Context, chatID string, text string) error {
	id, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid telegram chat id %q: %w", chatID, err)
	}

	if _, err := n.api.Send(tgbotapi.NewMessage(id, text)); err != nil {
		return fmt.Errorf("error sending telegram message: %w", err)
	}

	return nil
}

// RunUpdates long-polls the bot update feed until ctx is cancelled.
// The only command handled is /start, answered with the chat id the user
// needs to bind the channel to an archive account.
func (n *TelegramNotifier) RunUpdates(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := n.api.GetUpdatesChan(u)

	n.logger.Info().Msg("telegram bot started, waiting for updates")

	for {
		select {
		case <-ctx.Done():
			n.logger.Info().Msg("telegram bot shutting down")
			n.api.StopReceivingUpdates()
			return
		case update := <-updates:
			if update.Message == nil {
				continue
			}
			n.handleMessage(update.Message)
		}
	}
}

func (n *TelegramNotifier) handleMessage(msg *tgbotapi.Message) {
	if !msg.IsCommand() || msg.Command() != "start" {
		return
	}

	reply := fmt.Sprintf("Your chat id is %d. Enter it on the archive login page to enable two-factor login.", msg.Chat.ID)
	if _, err := n.api.Send(tgbotapi.NewMessage(msg.Chat.ID, reply)); err != nil {
		n.logger.Err(err).Int64("chat_id", msg.Chat.ID).Msg("error answering /start command")
	}
}
