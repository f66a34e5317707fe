package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Kerhoff/rentbook/internal/dashboard"
	"github.com/Kerhoff/rentbook/internal/models"
)

// ReminderCallback delivers one reminder digest. Payments in a digest that
// failed to deliver are offered again on the next tick.
type ReminderCallback func(text string) error

// StartReminderScheduler checks for overdue payments every interval and
// invokes the callback with one digest listing the payments not announced
// before. It blocks until the context is cancelled, so it should be launched
// in a separate goroutine. A second concurrent call returns immediately.
func (s *Service) StartReminderScheduler(ctx context.Context, interval time.Duration, callback ReminderCallback) {
	if !s.schedulerRunning.CAS(false, true) {
		s.logger.Warn("Reminder scheduler already running")
		return
	}
	defer s.schedulerRunning.Store(false)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.Infof("Reminder scheduler started (interval=%s)", interval)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Reminder scheduler stopped")
			return
		case <-ticker.C:
			s.processReminders(ctx, callback)
		}
	}
}

// processReminders announces overdue payments that have not been announced yet.
// A payment that stops being overdue is forgotten, so it is announced again
// if it becomes overdue later.
func (s *Service) processReminders(ctx context.Context, callback ReminderCallback) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		s.logger.Errorf("Failed to load payments for reminders: %v", err)
		return
	}

	now := s.now()
	overdue := dashboard.OverduePayments(snap.Payments, now)
	if s.metrics != nil {
		s.metrics.SetOverdue(len(overdue))
	}

	s.announceMu.Lock()
	current := make(map[string]struct{}, len(overdue))
	var fresh []*models.RentPayment
	for _, p := range overdue {
		current[p.ID] = struct{}{}
		if _, seen := s.announced[p.ID]; !seen {
			fresh = append(fresh, p)
		}
	}
	for id := range s.announced {
		if _, ok := current[id]; !ok {
			delete(s.announced, id)
		}
	}
	s.announceMu.Unlock()

	if len(fresh) == 0 {
		return
	}
	s.logger.WithField("count", len(fresh)).Info("Sending overdue rent reminder")
	if err := callback(FormatOverdueDigest(fresh, snap.Tenants, now)); err != nil {
		s.logger.WithError(err).WithField("count", len(fresh)).Error("Failed to deliver rent reminder")
		return
	}

	s.announceMu.Lock()
	for _, p := range fresh {
		s.announced[p.ID] = struct{}{}
	}
	s.announceMu.Unlock()
}

// FormatOverdueDigest renders overdue payments as a Markdown message.
// Tenant names are escaped.
func FormatOverdueDigest(payments []*models.RentPayment, tenants []*models.Tenant, now time.Time) string {
	names := make(map[string]string, len(tenants))
	for _, t := range tenants {
		names[t.ID] = t.FullName()
	}

	var sb strings.Builder
	sb.WriteString("⏰ *Overdue rent*\n")
	for _, p := range payments {
		name, ok := names[p.TenantID]
		if !ok {
			name = "Unknown tenant"
		}
		late := int(now.Sub(p.DueDate).Hours() / 24)
		fmt.Fprintf(&sb, "• %s: %s due %s (%s late)\n",
			escape(name), dashboard.FormatINR(p.Amount), escape(dashboard.FormatDate(p.DueDate)), pluralDays(late))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func escape(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdown, s)
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
