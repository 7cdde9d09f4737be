package bot

import (
	"context"
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Telegram is the chat transport. It also delivers service notifications.
type Telegram struct {
	api     *tgbotapi.BotAPI
	timeout int
}

// NewTelegram connects to the Bot API with token.
func NewTelegram(token string, debug bool, timeout int) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("connect telegram: %w", err)
	}
	api.Debug = debug
	log.Printf("🤖 Authorized on account %s", api.Self.UserName)
	return &Telegram{api: api, timeout: timeout}, nil
}

// Notify sends text to the private chat of userID.
func (t *Telegram) Notify(_ context.Context, userID int64, text string) error {
	_, err := t.api.Send(tgbotapi.NewMessage(userID, text))
	return err
}

// Run feeds updates to d until ctx is cancelled.
func (t *Telegram) Run(ctx context.Context, d *Dispatcher) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = t.timeout
	updates := t.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			t.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			t.handle(ctx, d, update)
		}
	}
}

func (t *Telegram) handle(ctx context.Context, d *Dispatcher, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		q := update.CallbackQuery
		if _, err := t.api.Request(tgbotapi.NewCallback(q.ID, "")); err != nil {
			log.Printf("Warning: failed to answer callback: %v", err)
		}
		if q.Message == nil || q.From == nil {
			return
		}
		t.send(q.Message.Chat.ID, d.HandleCallback(ctx, q.Message.Chat.ID, q.From.ID, q.Data))
	case update.Message != nil && update.Message.From != nil:
		m := update.Message
		t.send(m.Chat.ID, d.HandleText(ctx, m.Chat.ID, m.From.ID, m.Text))
	}
}

func (t *Telegram) send(chatID int64, replies []Reply) {
	for _, r := range replies {
		msg := tgbotapi.NewMessage(chatID, r.Text)
		msg.ParseMode = r.ParseMode
		msg.DisableWebPagePreview = true
		if len(r.Buttons) > 0 {
			var rows [][]tgbotapi.InlineKeyboardButton
			for _, b := range r.Buttons {
				rows = append(rows, tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(b.Label, b.Data)))
			}
			msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
		}
		if _, err := t.api.Send(msg); err != nil {
			log.Printf("Warning: failed to send message to %d: %v", chatID, err)
		}
	}
}
