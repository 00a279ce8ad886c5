package middleware

import (
	"strings"

	"gopkg.in/telebot.v3"
)

// EditOrSend редактирует сообщение с кнопкой, а если редактировать нечего — отправляет новое.
// Ответ Telegram "message is not modified" считается успехом.
func EditOrSend(c telebot.Context, text string, markup *telebot.ReplyMarkup) error {
	var opts []interface{}
	if markup != nil {
		opts = append(opts, markup)
	}
	if c.Callback() != nil {
		err := c.Edit(text, opts...)
		if err == nil || strings.Contains(err.Error(), "not modified") {
			return nil
		}
	}
	return c.Send(text, opts...)
}
