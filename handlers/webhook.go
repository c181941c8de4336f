// Package handlers — HTTP-слой бота: приём вебхука Telegram и
// трансляция ответа движка диалога обратно в Bot API.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"barkod_bot/dialog"
	"barkod_bot/telegram"
)

// Webhook принимает апдейты Telegram и гоняет их через движок диалога
type Webhook struct {
	bot     *telegram.Client
	dialogs *dialog.Manager
	log     *logrus.Logger
}

func NewWebhook(bot *telegram.Client, dialogs *dialog.Manager, log *logrus.Logger) *Webhook {
	return &Webhook{bot: bot, dialogs: dialogs, log: log}
}

// ServeHTTP — точка входа вебхука. Telegram всегда получает 200:
// ошибку обработки мы логируем сами, а ретраи апдейтов не нужны.
func (h *Webhook) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var update telegram.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		h.log.WithError(err).Warn("⚠️ Не разобрался запрос от Telegram")
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	h.process(r.Context(), update)
	w.WriteHeader(http.StatusOK)
}

func (h *Webhook) process(ctx context.Context, update telegram.Update) {
	switch {
	case update.CallbackQuery != nil:
		cb := update.CallbackQuery
		h.log.WithFields(logrus.Fields{"user_id": cb.From.ID, "data": cb.Data}).
			Info("📩 Нажата inline-кнопка")

		reply := h.dialogs.Handle(ctx, cb.From.ID, dialog.Event{Callback: cb.Data})

		// Кнопку подтверждаем до отправки сообщений, иначе у
		// пользователя висят "часики"
		notice := reply.Notice
		if notice == nil {
			notice = &dialog.Notice{}
		}
		if err := h.bot.AnswerCallback(ctx, cb.ID, notice.Text, notice.Alert); err != nil {
			h.log.WithError(err).Warn("⚠️ Не удалось ответить на callback")
		}

		var chatID, messageID int64
		if cb.Message != nil {
			chatID = cb.Message.Chat.ID
			messageID = cb.Message.MessageID
		}
		h.render(ctx, chatID, messageID, reply)

	case update.Message != nil && update.Message.From != nil:
		msg := update.Message
		ev := dialog.Event{Text: msg.Text}

		if msg.Document != nil {
			data, err := h.bot.DownloadFile(ctx, msg.Document.FileID)
			if err != nil {
				h.log.WithError(err).WithField("file_id", msg.Document.FileID).
					Error("❌ Не удалось скачать присланный файл")
				if err := h.bot.SendMessage(ctx, msg.Chat.ID,
					"Faylni yuklab bo'lmadi. Qayta yuboring.", nil); err != nil {
					h.log.WithError(err).Warn("⚠️ Не удалось отправить сообщение")
				}
				return
			}
			ev.Document = &dialog.Document{Name: msg.Document.FileName, Data: data}
		}

		h.log.WithFields(logrus.Fields{"user_id": msg.From.ID, "text": msg.Text}).
			Info("📩 Сообщение от пользователя")

		reply := h.dialogs.Handle(ctx, msg.From.ID, ev)
		h.render(ctx, msg.Chat.ID, 0, reply)
	}
}

// render отправляет сообщения ответа по порядку
func (h *Webhook) render(ctx context.Context, chatID, messageID int64, reply dialog.Reply) {
	if chatID == 0 {
		return
	}

	for _, msg := range reply.Messages {
		var err error
		switch {
		case msg.File != nil:
			err = h.bot.SendDocument(ctx, chatID, msg.File.Name, msg.File.Data)

		case msg.Edit && messageID != 0:
			err = h.bot.EditMessageText(ctx, chatID, messageID, msg.Text, inlineMarkup(msg.Inline))

		default:
			err = h.bot.SendMessage(ctx, chatID, msg.Text, markupFor(msg))
		}
		if err != nil {
			h.log.WithError(err).WithField("chat_id", chatID).
				Error("❌ Не удалось отправить ответ")
		}
	}
}

func markupFor(msg dialog.Message) any {
	if len(msg.Inline) > 0 {
		return inlineMarkup(msg.Inline)
	}
	if len(msg.Keyboard) > 0 {
		return telegram.ReplyKeyboardMarkup{Keyboard: msg.Keyboard, ResizeKeyboard: true}
	}
	return nil
}

func inlineMarkup(rows [][]dialog.Button) *telegram.InlineKeyboardMarkup {
	if len(rows) == 0 {
		return nil
	}
	markup := &telegram.InlineKeyboardMarkup{}
	for _, row := range rows {
		buttons := make([]telegram.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			buttons = append(buttons, telegram.InlineKeyboardButton{
				Text:         b.Label,
				CallbackData: b.Data,
			})
		}
		markup.InlineKeyboard = append(markup.InlineKeyboard, buttons)
	}
	return markup
}
