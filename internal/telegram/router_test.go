package telegram

import (
	"context"
	"errors"
	"io"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []tgbotapi.MessageConfig
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, msg)
	}
	return tgbotapi.Message{}, nil
}

type recordingHandler struct {
	calls int
	args  []string
	err   error
}

func (h *recordingHandler) Handle(ctx context.Context, bot Sender, message *tgbotapi.Message, args []string) error {
	h.calls++
	h.args = args
	return h.err
}

func command(chatID int64, text string) *tgbotapi.Message {
	length := len(text)
	for i, r := range text {
		if r == ' ' {
			length = i
			break
		}
	}
	return &tgbotapi.Message{
		MessageID: 1,
		Chat:      &tgbotapi.Chat{ID: chatID},
		From:      &tgbotapi.User{ID: 7, UserName: "owner"},
		Text:      text,
		Entities:  []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: length}},
	}
}

func newTestRouter(allowed int64) *Router {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewRouter(logger, allowed)
}

func TestRouterDispatchesArguments(t *testing.T) {
	r := newTestRouter(0)
	h := &recordingHandler{}
	r.RegisterCommand("tenant", h)
	bot := &fakeSender{}

	r.HandleMessage(context.Background(), bot, command(1, "/tenant asha  sharma"))

	assert.Equal(t, []string{"asha", "sharma"}, h.args)
	assert.Empty(t, bot.sent)
}

func TestRouterUnknownCommand(t *testing.T) {
	r := newTestRouter(0)
	bot := &fakeSender{}

	r.HandleMessage(context.Background(), bot, command(1, "/nope"))

	require.Len(t, bot.sent, 1)
	assert.Contains(t, bot.sent[0].Text, "Unknown command")
	assert.Equal(t, int64(1), bot.sent[0].ChatID)
}

func TestRouterReportsHandlerError(t *testing.T) {
	r := newTestRouter(0)
	r.RegisterCommand("stats", &recordingHandler{err: errors.New("boom")})
	bot := &fakeSender{}

	r.HandleMessage(context.Background(), bot, command(1, "/stats"))

	require.Len(t, bot.sent, 1)
	assert.Contains(t, bot.sent[0].Text, "An error occurred")
}

func TestRouterIgnoresPlainTextAndOtherChats(t *testing.T) {
	r := newTestRouter(42)
	h := &recordingHandler{}
	r.RegisterCommand("stats", h)
	bot := &fakeSender{}

	r.HandleMessage(context.Background(), bot, &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 42}, Text: "hello"})
	r.HandleMessage(context.Background(), bot, command(99, "/stats"))
	assert.Zero(t, h.calls)
	assert.Empty(t, bot.sent)

	r.HandleMessage(context.Background(), bot, command(42, "/stats"))
	assert.Equal(t, 1, h.calls)
}
