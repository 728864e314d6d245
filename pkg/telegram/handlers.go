package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"duit/pkg/conversation"
)

// handleUpdate routes incoming messages: photos feed the scan flow,
// everything else goes through the text path.
func (b *Bot) handleUpdate(ctx context.Context, botAPI *bot.Bot, update *models.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}

	switch {
	case len(msg.Photo) > 0:
		b.handlePhoto(ctx, botAPI, msg)
	case msg.Text != "":
		b.handleText(ctx, botAPI, msg)
	}
}

func (b *Bot) handleText(ctx context.Context, botAPI *bot.Bot, msg *models.Message) {
	messagesProcessed.WithLabelValues("text").Inc()
	if cmd, ok := commandOf(msg.Text); ok {
		commandsProcessed.WithLabelValues(cmd).Inc()
	}

	reply := b.engine.HandleText(ctx, msg.Chat.ID, displayName(msg.From), msg.Text)
	b.send(ctx, botAPI, msg.Chat.ID, reply)
}

func (b *Bot) handlePhoto(ctx context.Context, botAPI *bot.Bot, msg *models.Message) {
	messagesProcessed.WithLabelValues("photo").Inc()

	// Telegram orders photo sizes ascending; take the largest.
	fileID := msg.Photo[len(msg.Photo)-1].FileID
	image, err := b.downloadTgFile(ctx, botAPI, fileID)
	if err != nil {
		errorsTotal.WithLabelValues("download_file").Inc()
		b.logger.Error(ctx, "failed to download photo", "err", err, "file_id", fileID)
		b.send(ctx, botAPI, msg.Chat.ID, conversation.Reply{
			Text: "❌ Gagal mengunduh foto. Silakan coba lagi.",
		})
		return
	}

	reply := b.engine.HandlePhoto(ctx, msg.Chat.ID, image)
	b.send(ctx, botAPI, msg.Chat.ID, reply)
}

// handleCallback answers the callback query and feeds its data token
// into the engine exactly like typed text. The reply replaces the
// keyboard message in place so the chat does not fill up with stale
// button prompts.
func (b *Bot) handleCallback(ctx context.Context, botAPI *bot.Bot, update *models.Update) {
	callback := update.CallbackQuery
	if callback == nil {
		return
	}
	callbacksProcessed.WithLabelValues(callback.Data).Inc()

	msg := callback.Message.Message
	if msg == nil {
		b.logger.Error(ctx, "callback message is nil")
		return
	}
	chatID := msg.Chat.ID

	_, _ = botAPI.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callback.ID,
	})

	reply := b.engine.HandleText(ctx, chatID, displayName(&callback.From), callback.Data)
	b.editOrSend(ctx, botAPI, chatID, msg.ID, reply)
}

// editOrSend rewrites the keyboard message with the new reply and falls
// back to a fresh message when the edit is rejected, e.g. when the text
// is unchanged or the message is too old.
func (b *Bot) editOrSend(ctx context.Context, botAPI *bot.Bot, chatID int64, messageID int, reply conversation.Reply) {
	if reply.Text == "" {
		return
	}

	params := &bot.EditMessageTextParams{
		ChatID:    chatID,
		MessageID: messageID,
		Text:      reply.Text,
		ParseMode: models.ParseModeHTML,
	}
	if reply.Keyboard != nil {
		params.ReplyMarkup = toInlineKeyboard(reply.Keyboard)
	}

	if _, err := botAPI.EditMessageText(ctx, params); err != nil {
		b.logger.Print(ctx, "edit message failed, sending new one", "err", err, "chat_id", chatID)
		b.send(ctx, botAPI, chatID, reply)
	}
}

func (b *Bot) send(ctx context.Context, botAPI *bot.Bot, chatID int64, reply conversation.Reply) {
	if reply.Text == "" {
		return
	}

	params := &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      reply.Text,
		ParseMode: models.ParseModeHTML,
	}
	if reply.Keyboard != nil {
		params.ReplyMarkup = toInlineKeyboard(reply.Keyboard)
	}

	if _, err := botAPI.SendMessage(ctx, params); err != nil {
		errorsTotal.WithLabelValues("send_message").Inc()
		b.logger.Error(ctx, "failed to send message", "err", err, "chat_id", chatID)
	}
}

func (b *Bot) downloadTgFile(ctx context.Context, botAPI *bot.Bot, fileID string) ([]byte, error) {
	file, err := botAPI.GetFile(ctx, &bot.GetFileParams{
		FileID: fileID,
	})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	fileURL := fmt.Sprintf("https://api.telegram.org/file/bot%s/%s", botAPI.Token(), file.FilePath)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file: status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// commandOf extracts the bare command name from a message like
// "/summary@duit_bot arg".
func commandOf(text string) (string, bool) {
	if !strings.HasPrefix(text, "/") {
		return "", false
	}
	cmd := strings.Fields(text)[0]
	if at := strings.Index(cmd, "@"); at > 0 {
		cmd = cmd[:at]
	}
	return strings.TrimPrefix(cmd, "/"), true
}

func displayName(u *models.User) string {
	if u.FirstName != "" {
		return u.FirstName
	}
	return u.Username
}
