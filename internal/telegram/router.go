package telegram

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// Sender delivers outgoing messages. *tgbotapi.BotAPI satisfies it.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// CallbackAnswerer acknowledges callback queries
type CallbackAnswerer interface {
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Router handles message routing and command parsing
type Router struct {
	logger      *logrus.Logger
	allowedChat int64
	handlers    map[string]CommandHandler
}

// CommandHandler defines the interface for command handlers
type CommandHandler interface {
	Handle(ctx context.Context, bot Sender, message *tgbotapi.Message, args []string) error
}

// NewRouter creates a new message router. A zero allowedChat accepts every chat.
func NewRouter(logger *logrus.Logger, allowedChat int64) *Router {
	return &Router{
		logger:      logger,
		allowedChat: allowedChat,
		handlers:    make(map[string]CommandHandler),
	}
}

// RegisterCommand registers a command handler
func (r *Router) RegisterCommand(command string, handler CommandHandler) {
	r.handlers[command] = handler
	r.logger.Debugf("Registered command: %s", command)
}

// HandleMessage dispatches a command message to its handler
func (r *Router) HandleMessage(ctx context.Context, bot Sender, message *tgbotapi.Message) {
	fields := logrus.Fields{
		"chat_id":    message.Chat.ID,
		"message_id": message.MessageID,
	}
	if message.From != nil {
		fields["user_id"] = message.From.ID
		fields["username"] = message.From.UserName
	}
	log := r.logger.WithFields(fields)

	// Only process text commands
	if message.Text == "" || !message.IsCommand() {
		return
	}
	if r.allowedChat != 0 && message.Chat.ID != r.allowedChat {
		log.Warn("Ignoring command from unauthorised chat")
		return
	}

	command := message.Command()
	args := strings.Fields(message.CommandArguments())
	log = log.WithField("command", command)
	log.Info("Received command")

	handler, exists := r.handlers[command]
	if !exists {
		log.Warn("Unknown command")
		reply(log, bot, message.Chat.ID, "❓ Unknown command. Use /help to see available commands.")
		return
	}

	if err := handler.Handle(ctx, bot, message, args); err != nil {
		log.WithError(err).Error("Command handler failed")
		reply(log, bot, message.Chat.ID, "❌ An error occurred while processing your command. Please try again.")
	}
}

// HandleCallbackQuery acknowledges callback queries; no inline keyboards are sent
func (r *Router) HandleCallbackQuery(bot CallbackAnswerer, callbackQuery *tgbotapi.CallbackQuery) {
	r.logger.WithFields(logrus.Fields{
		"callback_id": callbackQuery.ID,
		"data":        callbackQuery.Data,
	}).Debug("Received callback query")

	if _, err := bot.Request(tgbotapi.NewCallback(callbackQuery.ID, "")); err != nil {
		r.logger.WithError(err).Warn("Failed to answer callback query")
	}
}

func reply(log *logrus.Entry, bot Sender, chatID int64, text string) {
	if _, err := bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		log.WithError(err).Error("Failed to send reply")
	}
}
