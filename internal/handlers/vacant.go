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

// VacantHandler handles the /vacant command
type VacantHandler struct {
	svc    *service.Service
	logger *logrus.Logger
}

func NewVacantHandler(svc *service.Service, logger *logrus.Logger) *VacantHandler {
	return &VacantHandler{svc: svc, logger: logger}
}

func (h *VacantHandler) Handle(ctx context.Context, bot telegram.Sender, message *tgbotapi.Message, args []string) error {
	snap, err := h.svc.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("failed to load rooms: %w", err)
	}
	return sendMarkdown(bot, message.Chat.ID, FormatVacantRooms(snap.Rooms, snap.Properties))
}

// FormatVacantRooms lists available rooms grouped by property in property order.
// Rooms whose property no longer exists are listed last.
func FormatVacantRooms(rooms []*models.Room, properties []*models.Property) string {
	vacant := dashboard.FilterRooms(rooms, "", models.RoomStatusAvailable)
	if len(vacant) == 0 {
		return "✅ No vacant rooms"
	}

	known := make(map[string]bool, len(properties))
	var sb strings.Builder
	fmt.Fprintf(&sb, "🚪 *Vacant rooms* (%d)\n", len(vacant))
	for _, p := range properties {
		known[p.ID] = true
		writeRoomGroup(&sb, md(p.Name), dashboard.RoomsByProperty(vacant, p.ID))
	}
	var orphans []*models.Room
	for _, r := range vacant {
		if !known[r.PropertyID] {
			orphans = append(orphans, r)
		}
	}
	writeRoomGroup(&sb, "Unknown property", orphans)
	return strings.TrimRight(sb.String(), "\n")
}

func writeRoomGroup(sb *strings.Builder, title string, rooms []*models.Room) {
	if len(rooms) == 0 {
		return
	}
	fmt.Fprintf(sb, "\n*%s*\n", title)
	for _, r := range rooms {
		fmt.Fprintf(sb, "• %s (%s) %s/month\n", md(r.Number), r.Type, dashboard.FormatINR(r.RentAmount))
	}
}
