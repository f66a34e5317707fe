package handlers

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/rentbook/internal/dashboard"
	"github.com/Kerhoff/rentbook/internal/models"
	"github.com/Kerhoff/rentbook/internal/service"
	"github.com/Kerhoff/rentbook/internal/telegram"
)

// StatsHandler handles the /stats command
type StatsHandler struct {
	svc    *service.Service
	logger *logrus.Logger
}

func NewStatsHandler(svc *service.Service, logger *logrus.Logger) *StatsHandler {
	return &StatsHandler{svc: svc, logger: logger}
}

func (h *StatsHandler) Handle(ctx context.Context, bot telegram.Sender, message *tgbotapi.Message, args []string) error {
	stats, err := h.svc.DashboardStats(ctx)
	if err != nil {
		return fmt.Errorf("failed to calculate stats: %w", err)
	}
	return sendMarkdown(bot, message.Chat.ID, FormatStats(stats))
}

// FormatStats renders the dashboard figures
func FormatStats(s models.DashboardStats) string {
	var sb strings.Builder
	sb.WriteString("📊 *Dashboard*\n\n")
	fmt.Fprintf(&sb, "🏢 Properties: %d\n", s.TotalProperties)
	fmt.Fprintf(&sb, "🚪 Rooms: %d (%d occupied, %d available, %d in maintenance)\n",
		s.TotalRooms, s.OccupiedRooms, s.AvailableRooms, s.MaintenanceRooms)
	fmt.Fprintf(&sb, "👥 Tenants: %d active of %d\n", s.ActiveTenants, s.TotalTenants)
	fmt.Fprintf(&sb, "💰 Monthly revenue: %s\n", dashboard.FormatINR(s.TotalMonthlyRevenue))
	fmt.Fprintf(&sb, "⏳ Pending payments: %d\n", s.PendingPayments)
	fmt.Fprintf(&sb, "⚠️ Overdue payments: %d", s.OverduePayments)
	return sb.String()
}
