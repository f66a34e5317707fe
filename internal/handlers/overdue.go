package handlers

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/rentbook/internal/dashboard"
	"github.com/Kerhoff/rentbook/internal/service"
	"github.com/Kerhoff/rentbook/internal/telegram"
)

// OverdueHandler handles the /overdue command
type OverdueHandler struct {
	svc    *service.Service
	logger *logrus.Logger
}

func NewOverdueHandler(svc *service.Service, logger *logrus.Logger) *OverdueHandler {
	return &OverdueHandler{svc: svc, logger: logger}
}

// Handle lists every overdue payment, announced before or not
func (h *OverdueHandler) Handle(ctx context.Context, bot telegram.Sender, message *tgbotapi.Message, args []string) error {
	snap, err := h.svc.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("failed to load payments: %w", err)
	}
	now := h.svc.Now()
	overdue := dashboard.OverduePayments(snap.Payments, now)
	if len(overdue) == 0 {
		return sendMarkdown(bot, message.Chat.ID, "✅ No overdue rent")
	}

	h.logger.WithFields(logrus.Fields{"chat_id": message.Chat.ID, "count": len(overdue)}).Info("Listing overdue payments")
	return sendMarkdown(bot, message.Chat.ID, service.FormatOverdueDigest(overdue, snap.Tenants, now))
}
