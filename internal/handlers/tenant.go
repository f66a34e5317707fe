package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/rentbook/internal/dashboard"
	"github.com/Kerhoff/rentbook/internal/models"
	"github.com/Kerhoff/rentbook/internal/service"
	"github.com/Kerhoff/rentbook/internal/telegram"
)

const maxTenantResults = 5

// TenantHandler handles the /tenant command
type TenantHandler struct {
	svc    *service.Service
	logger *logrus.Logger
}

func NewTenantHandler(svc *service.Service, logger *logrus.Logger) *TenantHandler {
	return &TenantHandler{svc: svc, logger: logger}
}

func (h *TenantHandler) Handle(ctx context.Context, bot telegram.Sender, message *tgbotapi.Message, args []string) error {
	if len(args) == 0 {
		return sendMarkdown(bot, message.Chat.ID, "Usage: /tenant <name, email or phone>")
	}
	query := strings.Join(args, " ")

	snap, err := h.svc.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("failed to load tenants: %w", err)
	}
	fields, err := dashboard.SelectFields(dashboard.TenantFields, dashboard.DefaultTenantFields)
	if err != nil {
		return err
	}
	matches := dashboard.Search(snap.Tenants, query, fields...)
	return sendMarkdown(bot, message.Chat.ID, FormatTenantMatches(query, matches, snap, h.svc.Now()))
}

// FormatTenantMatches renders up to maxTenantResults tenants with their room
// and outstanding rent.
func FormatTenantMatches(query string, matches []*models.Tenant, snap *models.Snapshot, now time.Time) string {
	if len(matches) == 0 {
		return fmt.Sprintf("🔍 No tenants match \"%s\"", md(query))
	}

	properties := make(map[string]*models.Property, len(snap.Properties))
	for _, p := range snap.Properties {
		properties[p.ID] = p
	}
	rooms := make(map[string]*models.Room, len(snap.Rooms))
	for _, r := range snap.Rooms {
		rooms[r.ID] = r
	}

	var sb strings.Builder
	for i, t := range matches {
		if i == maxTenantResults {
			fmt.Fprintf(&sb, "_…and %d more_\n", len(matches)-maxTenantResults)
			break
		}
		state := "active"
		if !t.IsActive {
			state = "moved out"
		}
		fmt.Fprintf(&sb, "👤 *%s* (%s)\n", md(t.FullName()), state)
		fmt.Fprintf(&sb, "📞 %s · ✉️ %s\n", md(t.Phone), md(t.Email))

		place := "Unknown property"
		if p, ok := properties[t.PropertyID]; ok {
			place = md(p.Name)
		}
		if r, ok := rooms[t.RoomID]; ok {
			place += ", room " + md(r.Number)
		}
		fmt.Fprintf(&sb, "🏠 %s\n", place)

		payments := dashboard.PaymentsByTenant(snap.Payments, t.ID)
		outstanding := decimal.Zero
		var next *models.RentPayment
		for _, p := range dashboard.OutstandingPayments(payments) {
			outstanding = outstanding.Add(p.Amount)
			if !p.DueDate.Before(now) && (next == nil || p.DueDate.Before(next.DueDate)) {
				next = p
			}
		}
		overdue := len(dashboard.OverduePayments(payments, now))
		fmt.Fprintf(&sb, "💰 Outstanding: %s", dashboard.FormatINR(outstanding))
		if overdue > 0 {
			fmt.Fprintf(&sb, " (%d overdue)", overdue)
		}
		if next != nil {
			fmt.Fprintf(&sb, "\n📅 Next due %s (in %s)", dashboard.FormatDate(next.DueDate),
				pluralDays(dashboard.DaysUntilDue(next.DueDate, now)))
		}
		sb.WriteString("\n\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
