package handlers

import (
	"context"
	"io"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kerhoff/rentbook/internal/models"
	"github.com/Kerhoff/rentbook/internal/repository/memory"
	"github.com/Kerhoff/rentbook/internal/service"
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

var now = time.Date(2024, 4, 10, 9, 0, 0, 0, time.UTC)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func chatMessage() *tgbotapi.Message {
	return &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 5}, From: &tgbotapi.User{ID: 1}}
}

func TestFormatStats(t *testing.T) {
	text := FormatStats(models.DashboardStats{
		TotalProperties:     2,
		TotalRooms:          5,
		OccupiedRooms:       3,
		AvailableRooms:      1,
		MaintenanceRooms:    1,
		TotalTenants:        4,
		ActiveTenants:       3,
		TotalMonthlyRevenue: decimal.NewFromInt(125000),
		PendingPayments:     2,
		OverduePayments:     1,
	})

	assert.Contains(t, text, "🏢 Properties: 2")
	assert.Contains(t, text, "🚪 Rooms: 5 (3 occupied, 1 available, 1 in maintenance)")
	assert.Contains(t, text, "👥 Tenants: 3 active of 4")
	assert.Contains(t, text, "💰 Monthly revenue: ₹1,25,000.00")
	assert.Contains(t, text, "⚠️ Overdue payments: 1")
}

func TestFormatVacantRooms(t *testing.T) {
	properties := []*models.Property{{ID: "p1", Name: "Lake_view"}, {ID: "p2", Name: "Hill Top"}}
	rooms := []*models.Room{
		{ID: "r1", PropertyID: "p2", Number: "201", Type: models.RoomTypeStudio, Status: models.RoomStatusAvailable, RentAmount: decimal.NewFromInt(12000)},
		{ID: "r2", PropertyID: "p1", Number: "101", Type: models.RoomTypeSingle, Status: models.RoomStatusOccupied, RentAmount: decimal.NewFromInt(8500)},
		{ID: "r3", PropertyID: "p1", Number: "102", Type: models.RoomTypeSingle, Status: models.RoomStatusAvailable, RentAmount: decimal.NewFromInt(8500)},
		{ID: "r4", PropertyID: "gone", Number: "9", Type: models.RoomTypeDouble, Status: models.RoomStatusAvailable, RentAmount: decimal.NewFromInt(5000)},
	}

	want := "🚪 *Vacant rooms* (3)\n" +
		"\n*Lake\\_view*\n• 102 (single) ₹8,500.00/month\n" +
		"\n*Hill Top*\n• 201 (studio) ₹12,000.00/month\n" +
		"\n*Unknown property*\n• 9 (double) ₹5,000.00/month"
	assert.Equal(t, want, FormatVacantRooms(rooms, properties))

	assert.Equal(t, "✅ No vacant rooms", FormatVacantRooms(rooms[1:2], properties))
}

func TestFormatTenantMatches(t *testing.T) {
	paid := now.AddDate(0, 0, -20)
	snap := &models.Snapshot{
		Properties: []*models.Property{{ID: "p1", Name: "Lakeview"}},
		Rooms:      []*models.Room{{ID: "r1", PropertyID: "p1", Number: "101"}},
		Payments: []*models.RentPayment{
			{ID: "a", TenantID: "t1", Amount: decimal.NewFromInt(8500), DueDate: now.AddDate(0, 0, -5), Status: models.PaymentStatusPending},
			{ID: "b", TenantID: "t1", Amount: decimal.NewFromInt(8500), DueDate: now.AddDate(0, 0, 5), Status: models.PaymentStatusPending},
			{ID: "c", TenantID: "t1", Amount: decimal.NewFromInt(8500), DueDate: paid, PaidDate: &paid, Status: models.PaymentStatusPaid},
		},
	}
	tenant := &models.Tenant{ID: "t1", FirstName: "Asha", LastName: "Sharma", Email: "asha@example.com",
		Phone: "9876543210", RoomID: "r1", PropertyID: "p1", IsActive: true}

	text := FormatTenantMatches("asha", []*models.Tenant{tenant}, snap, now)
	assert.Equal(t, "👤 *Asha Sharma* (active)\n"+
		"📞 9876543210 · ✉️ asha@example.com\n"+
		"🏠 Lakeview, room 101\n"+
		"💰 Outstanding: ₹17,000.00 (1 overdue)\n"+
		"📅 Next due Apr 15, 2024 (in 5 days)", text)

	assert.Equal(t, "🔍 No tenants match \"bo\\*b\"", FormatTenantMatches("bo*b", nil, snap, now))
}

func TestFormatTenantMatchesTruncates(t *testing.T) {
	var tenants []*models.Tenant
	for i := 0; i < maxTenantResults+2; i++ {
		tenants = append(tenants, &models.Tenant{ID: "t", FirstName: "Same"})
	}
	text := FormatTenantMatches("same", tenants, &models.Snapshot{}, now)
	assert.Contains(t, text, "_…and 2 more_")
}

func newService(t *testing.T) *service.Service {
	t.Helper()
	return service.New(memory.NewStore(), testLogger(), service.WithClock(func() time.Time { return now }))
}

func TestOverdueHandler(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	bot := &fakeSender{}
	h := NewOverdueHandler(svc, testLogger())

	require.NoError(t, h.Handle(ctx, bot, chatMessage(), nil))
	require.Len(t, bot.sent, 1)
	assert.Equal(t, "✅ No overdue rent", bot.sent[0].Text)

	tenant, err := svc.AddTenant(ctx, &models.Tenant{FirstName: "Asha", LastName: "Sharma", RoomID: "r1", IsActive: true, MoveInDate: now})
	require.NoError(t, err)
	_, err = svc.AddPayment(ctx, &models.RentPayment{TenantID: tenant.ID, Amount: decimal.NewFromInt(8500), DueDate: now.AddDate(0, 0, -3)})
	require.NoError(t, err)

	require.NoError(t, h.Handle(ctx, bot, chatMessage(), nil))
	require.Len(t, bot.sent, 2)
	assert.Equal(t, tgbotapi.ModeMarkdown, bot.sent[1].ParseMode)
	assert.Contains(t, bot.sent[1].Text, "• Asha Sharma: ₹8,500.00 due Apr 7, 2024 (3 days late)")
}

func TestOverdueHandlerEscapesNames(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	bot := &fakeSender{}
	h := NewOverdueHandler(svc, testLogger())

	tenant, err := svc.AddTenant(ctx, &models.Tenant{FirstName: "Mary_Ann", LastName: "D*Souza", RoomID: "r1", IsActive: true, MoveInDate: now})
	require.NoError(t, err)
	_, err = svc.AddPayment(ctx, &models.RentPayment{TenantID: tenant.ID, Amount: decimal.NewFromInt(5000), DueDate: now.AddDate(0, 0, -2)})
	require.NoError(t, err)

	require.NoError(t, h.Handle(ctx, bot, chatMessage(), nil))
	require.Len(t, bot.sent, 1)
	assert.Contains(t, bot.sent[0].Text, `• Mary\_Ann D\*Souza: ₹5,000.00`)
}

func TestTenantHandler(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	bot := &fakeSender{}
	h := NewTenantHandler(svc, testLogger())

	require.NoError(t, h.Handle(ctx, bot, chatMessage(), nil))
	assert.Contains(t, bot.sent[0].Text, "Usage: /tenant")

	_, err := svc.AddTenant(ctx, &models.Tenant{FirstName: "Asha", LastName: "Sharma", Phone: "9876543210", IsActive: true, MoveInDate: now})
	require.NoError(t, err)
	_, err = svc.AddTenant(ctx, &models.Tenant{FirstName: "Ravi", LastName: "Kumar", Phone: "9123456780", IsActive: true, MoveInDate: now})
	require.NoError(t, err)

	require.NoError(t, h.Handle(ctx, bot, chatMessage(), []string{"98765"}))
	require.Len(t, bot.sent, 2)
	assert.Contains(t, bot.sent[1].Text, "*Asha Sharma*")
	assert.NotContains(t, bot.sent[1].Text, "Ravi")
}

func TestStartAndHelp(t *testing.T) {
	ctx := context.Background()
	bot := &fakeSender{}

	require.NoError(t, NewStartHandler(testLogger()).Handle(ctx, bot, chatMessage(), nil))
	require.NoError(t, NewHelpHandler(testLogger()).Handle(ctx, bot, chatMessage(), nil))

	require.Len(t, bot.sent, 2)
	for _, msg := range bot.sent {
		assert.Equal(t, int64(5), msg.ChatID)
		assert.Contains(t, msg.Text, "/tenant")
	}
}
