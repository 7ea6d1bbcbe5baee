package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"bar-website/config"
	"bar-website/models"
)

var barLocation = time.FixedZone("UTC+3", 3*60*60)

// sender is the part of *tgbotapi.BotAPI the notifier uses.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// ContactNotifier forwards new contact-form messages to the staff chat.
type ContactNotifier struct {
	api    sender
	chatID int64
	log    *zap.Logger
}

// NoopNotifier is used when no Telegram bot is configured.
type NoopNotifier struct{}

func (NoopNotifier) NotifyContact(context.Context, models.ContactMessage) error { return nil }

// NewContactNotifier connects to Telegram. Without a token or chat id it
// returns nil and the caller falls back to NoopNotifier.
func NewContactNotifier(cfg config.TelegramConfig, log *zap.Logger) (*ContactNotifier, error) {
	if cfg.Token == "" || cfg.AdminChatID == 0 {
		return nil, nil
	}
	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("telegram: %w", err)
	}
	log.Info("telegram notifier ready", zap.String("bot", api.Self.UserName))
	return &ContactNotifier{api: api, chatID: cfg.AdminChatID, log: log}, nil
}

// ContactText renders the staff notification.
func ContactText(m models.ContactMessage) string {
	var b strings.Builder
	b.WriteString("📩 Yeni iletişim mesajı\n\n")
	fmt.Fprintf(&b, "Ad: %s\n", m.Name)
	fmt.Fprintf(&b, "E-posta: %s\n", m.Email)
	fmt.Fprintf(&b, "Tarih: %s\n\n", m.Timestamp.In(barLocation).Format("02.01.2006 15:04"))
	b.WriteString(m.Message)
	return b.String()
}

func (n *ContactNotifier) NotifyContact(ctx context.Context, m models.ContactMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(n.chatID, ContactText(m))
	msg.DisableWebPagePreview = true
	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	n.log.Debug("contact message forwarded", zap.String("id", m.ID))
	return nil
}
