package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chat-relay/internal/config"
	"chat-relay/internal/llm"
	"chat-relay/internal/repository"
	"chat-relay/internal/service"
	"chat-relay/internal/telegram"
	"chat-relay/internal/web"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	rosterRepo := repository.NewRosterRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	rosterSvc := service.NewRosterService(rosterRepo, auditRepo)

	completer := llm.NewClient(cfg.GroqAPIKey, config.RequestTimeout)

	controller, err := telegram.New(cfg.TelegramToken, cfg.PublicBaseURL, config.RequestTimeout)
	if err != nil {
		log.Fatalf("telegram: %v", err)
	}

	relaySvc := service.NewRelayService(completer, controller, cfg.RelayModel, config.RelayTimeout)

	scheduler := service.NewSchedulerService(time.Local)
	if cfg.WebhookCheckInterval > 0 {
		if _, err := scheduler.ScheduleInterval(cfg.WebhookCheckInterval, func() {
			state, err := controller.Status()
			if err != nil {
				log.Printf("webhook status: %v", err)
				return
			}
			log.Printf("[info] webhook subscription is %s", state)
		}); err != nil {
			log.Fatalf("schedule webhook check: %v", err)
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	log.Printf("[info] listening on %s", cfg.ListenAddr)
	if err := web.Start(ctx, web.Config{
		Addr:       cfg.ListenAddr,
		Roster:     rosterSvc,
		Completer:  completer,
		Controller: controller,
		Dispatcher: relaySvc,
	}); err != nil {
		log.Fatalf("server stopped with error: %v", err)
	}
	log.Println("Shutdown complete.")
}
