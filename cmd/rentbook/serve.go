package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Kerhoff/rentbook/internal/api"
	"github.com/Kerhoff/rentbook/internal/config"
	"github.com/Kerhoff/rentbook/internal/events"
	"github.com/Kerhoff/rentbook/internal/handlers"
	"github.com/Kerhoff/rentbook/internal/metrics"
	"github.com/Kerhoff/rentbook/internal/service"
	"github.com/Kerhoff/rentbook/internal/telegram"
)

const defaultWebhookPath = "/telegram/webhook"

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, Telegram bot and reminder scheduler",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, l, err := setup()
			if err != nil {
				return err
			}
			return serve(cfg, l)
		},
	}
}

func serve(cfg *config.Config, l *logrus.Logger) error {
	l.Info("Starting rentbook...")

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		l.Info("Received shutdown signal...")
		cancel()
	}()

	store, err := openStore(ctx, cfg, l)
	if err != nil {
		return err
	}
	defer store.Close()

	var publisher events.Publisher = events.Noop{}
	if cfg.NATSURL != "" {
		p, err := events.NewNATSPublisher(cfg.NATSURL, l)
		if err != nil {
			return err
		}
		publisher = p
	}
	defer publisher.Close()

	m := metrics.New()
	svc := service.New(store, l, service.WithPublisher(publisher), service.WithMetrics(m))

	switch {
	case cfg.SeedFile == "":
	case cfg.UsesDatabase():
		l.Warn("SEED_FILE ignored with DATABASE_URL set, use the seed command instead")
	default:
		if err := applySeed(ctx, svc, cfg.SeedFile, l); err != nil {
			return err
		}
	}

	apiOpts := []api.Option{api.WithMetrics(m), api.WithJWTSecret(cfg.AuthJWTSecret)}

	if cfg.TelegramEnabled() {
		bot, err := startBot(ctx, cfg, svc, l)
		if err != nil {
			return err
		}
		if cfg.WebhookURL != "" {
			path := defaultWebhookPath
			if u, err := url.Parse(cfg.WebhookURL); err == nil && u.Path != "" {
				path = u.Path
			}
			apiOpts = append(apiOpts, api.WithWebhook(path, bot.WebhookHandler(ctx)))
		}
	} else {
		l.Warn("TELEGRAM_TOKEN not set, bot and reminders disabled")
	}

	// Metrics endpoint on its own port
	var metricsServer *http.Server
	if cfg.PrometheusPort != "" {
		metricsServer = &http.Server{Addr: ":" + cfg.PrometheusPort, Handler: m.Handler(), ReadHeaderTimeout: 5 * time.Second}
		go listen(metricsServer, "metrics", l)
	}

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.NewServer(svc, l, apiOpts...).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go listen(httpServer, "HTTP", l)

	l.Info("rentbook started successfully")

	<-ctx.Done()

	l.Info("Shutting down HTTP server...")
	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	shutdown(shutdownCtx, l, namedServer{"HTTP", httpServer}, namedServer{"Metrics", metricsServer})

	l.Info("rentbook stopped")
	return nil
}

// startBot registers the commands, starts polling unless a webhook is
// configured, and launches the reminder scheduler when a chat is set.
func startBot(ctx context.Context, cfg *config.Config, svc *service.Service, l *logrus.Logger) (*telegram.Bot, error) {
	bot, err := telegram.NewBot(cfg.TelegramToken, cfg.TelegramChatID, l)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}

	bot.RegisterCommand("start", handlers.NewStartHandler(l))
	bot.RegisterCommand("help", handlers.NewHelpHandler(l))
	bot.RegisterCommand("stats", handlers.NewStatsHandler(svc, l))
	bot.RegisterCommand("vacant", handlers.NewVacantHandler(svc, l))
	bot.RegisterCommand("overdue", handlers.NewOverdueHandler(svc, l))
	bot.RegisterCommand("tenant", handlers.NewTenantHandler(svc, l))

	if cfg.WebhookURL != "" {
		if err := bot.SetWebhook(cfg.WebhookURL); err != nil {
			return nil, err
		}
	} else {
		go func() {
			if err := bot.Start(ctx); err != nil {
				l.Errorf("Bot error: %v", err)
			}
		}()
	}

	if cfg.TelegramChatID != 0 {
		go svc.StartReminderScheduler(ctx, cfg.ReminderInterval, func(text string) error {
			return bot.SendMessage(cfg.TelegramChatID, text)
		})
	} else {
		l.Warn("TELEGRAM_CHAT_ID not set, rent reminders disabled")
	}
	return bot, nil
}

type namedServer struct {
	name string
	srv  *http.Server
}

// shutdown stops each configured server in order and logs failures
func shutdown(ctx context.Context, l *logrus.Logger, servers ...namedServer) {
	for _, s := range servers {
		if s.srv == nil {
			continue
		}
		if err := s.srv.Shutdown(ctx); err != nil {
			l.Errorf("%s server shutdown: %v", s.name, err)
		}
	}
}

func listen(srv *http.Server, name string, l *logrus.Logger) {
	l.Infof("%s server listening on %s", name, srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		l.Errorf("%s server error: %v", name, err)
	}
}
