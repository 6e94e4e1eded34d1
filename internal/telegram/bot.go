package telegram

import (
	"context"
	"strings"

	"github.com/Rrens/birthday-builder/internal/conversation"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
)

// botAPI is the subset of the Telegram client used by Bot.
// Defined here for testability.
type botAPI interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Handler processes one conversation event
type Handler interface {
	Handle(ctx context.Context, ev conversation.Event) []conversation.Reply
}

// Bot polls Telegram and feeds operator messages through the conversation one at a time
type Bot struct {
	api         botAPI
	handler     Handler
	pollTimeout int

	// progress holds the message id of the last progress reply per chat
	progress map[int64]int
}

// NewBot creates a new bot
func NewBot(api botAPI, handler Handler, pollTimeout int) *Bot {
	return &Bot{
		api:         api,
		handler:     handler,
		pollTimeout: pollTimeout,
		progress:    make(map[int64]int),
	}
}

// Run consumes updates until ctx is cancelled or the update channel closes
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.pollTimeout
	u.AllowedUpdates = []string{"message"}

	updates := b.api.GetUpdatesChan(u)
	log.Info().Msg("Telegram polling started")

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			log.Info().Msg("Telegram polling stopped")
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.HandleUpdate(ctx, update)
		}
	}
}

// HandleUpdate translates one update and delivers the resulting replies
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.Chat == nil {
		return
	}

	ev, ok := ToEvent(msg)
	if !ok {
		log.Debug().Int("update_id", update.UpdateID).Msg("Ignoring unsupported message")
		return
	}

	for _, reply := range b.handler.Handle(ctx, ev) {
		b.deliver(msg.Chat.ID, reply)
	}
}

// ToEvent classifies a Telegram message as text, photo, audio, command or other.
// Only messages without a sender are dropped.
func ToEvent(msg *tgbotapi.Message) (conversation.Event, bool) {
	if msg.From == nil {
		return conversation.Event{}, false
	}
	ev := conversation.Event{SenderID: msg.From.ID}

	switch {
	case msg.IsCommand():
		ev.Kind = conversation.EventCommand
		ev.Text = strings.ToLower(msg.Command())
	case len(msg.Photo) > 0:
		ev.Kind = conversation.EventPhoto
		ev.FileID = msg.Photo[len(msg.Photo)-1].FileID
	case msg.Audio != nil:
		ev.Kind = conversation.EventAudio
		ev.FileID = msg.Audio.FileID
	case msg.Voice != nil:
		ev.Kind = conversation.EventAudio
		ev.FileID = msg.Voice.FileID
	case msg.Document != nil:
		// uncompressed pictures arrive as documents
		if strings.HasPrefix(msg.Document.MimeType, "image/") {
			ev.Kind = conversation.EventPhoto
		} else {
			ev.Kind = conversation.EventAudio
		}
		ev.FileID = msg.Document.FileID
	case msg.Text != "":
		ev.Kind = conversation.EventText
		ev.Text = msg.Text
	default:
		// still delivered so the current step can re-prompt
		ev.Kind = conversation.EventOther
	}
	return ev, true
}

func (b *Bot) deliver(chatID int64, reply conversation.Reply) {
	if reply.Progress {
		if messageID, ok := b.progress[chatID]; ok {
			edit := tgbotapi.NewEditMessageText(chatID, messageID, reply.Text)
			_, err := b.api.Send(edit)
			if err == nil {
				return
			}
			log.Warn().Err(err).Int64("chat_id", chatID).Msg("Failed to edit progress message, sending new one")
		}
	} else {
		delete(b.progress, chatID)
	}

	out := tgbotapi.NewMessage(chatID, reply.Text)
	switch {
	case len(reply.Choices) > 0:
		out.ReplyMarkup = keyboard(reply.Choices)
	case reply.RemoveKeyboard:
		out.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	}

	sent, err := b.api.Send(out)
	if err != nil {
		log.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send reply")
		return
	}
	if reply.Progress {
		b.progress[chatID] = sent.MessageID
	}
}

func keyboard(choices [][]string) tgbotapi.ReplyKeyboardMarkup {
	rows := make([][]tgbotapi.KeyboardButton, 0, len(choices))
	for _, row := range choices {
		buttons := make([]tgbotapi.KeyboardButton, 0, len(row))
		for _, label := range row {
			buttons = append(buttons, tgbotapi.NewKeyboardButton(label))
		}
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(buttons...))
	}
	markup := tgbotapi.NewReplyKeyboard(rows...)
	markup.OneTimeKeyboard = true
	markup.ResizeKeyboard = true
	return markup
}
