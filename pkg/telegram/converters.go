package telegram

import (
	"github.com/go-telegram/bot/models"

	"duit/pkg/catalog"
)

// toInlineKeyboard converts the engine's transport-neutral keyboard
// into Telegram inline-keyboard markup.
func toInlineKeyboard(k *catalog.Keyboard) *models.InlineKeyboardMarkup {
	rows := make([][]models.InlineKeyboardButton, 0, len(k.Rows))
	for _, row := range k.Rows {
		buttons := make([]models.InlineKeyboardButton, 0, len(row))
		for _, btn := range row {
			buttons = append(buttons, models.InlineKeyboardButton{
				Text:         btn.Label,
				CallbackData: btn.Data,
			})
		}
		rows = append(rows, buttons)
	}
	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}
