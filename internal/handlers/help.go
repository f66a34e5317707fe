package handlers

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/rentbook/internal/telegram"
)

const helpText = `📚 *Rentbook Help*

*Overview:*
• /stats - Properties, occupancy and monthly revenue

*Rooms:*
• /vacant - Available rooms grouped by property

*Rent:*
• /overdue - Unpaid payments past their due date

*Tenants:*
• /tenant <query> - Search by name, email or phone

_Changes are made through the web dashboard or the HTTP API._`

// HelpHandler handles the /help command
type HelpHandler struct {
	logger *logrus.Logger
}

func NewHelpHandler(logger *logrus.Logger) *HelpHandler {
	return &HelpHandler{logger: logger}
}

func (h *HelpHandler) Handle(ctx context.Context, bot telegram.Sender, message *tgbotapi.Message, args []string) error {
	if err := sendMarkdown(bot, message.Chat.ID, helpText); err != nil {
		return fmt.Errorf("failed to send help message: %w", err)
	}

	h.logger.WithField("chat_id", message.Chat.ID).Info("Sent help message")
	return nil
}
