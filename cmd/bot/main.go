package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"gym-diary/internal/config"
	"gym-diary/internal/diary"
	"gym-diary/internal/export"
	"gym-diary/internal/scheduler"
	"gym-diary/internal/session"
	"gym-diary/internal/storage"
	"gym-diary/internal/telegram"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()

	repo, err := storage.NewSQLiteRepository(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to init storage: %v", err)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			log.Printf("failed to close storage: %v", err)
		}
	}()

	svc := diary.New(session.NewMemoryStore(), repo)

	var uploader export.Uploader
	if cfg.DropboxToken != "" {
		uploader = export.NewDropboxUploader(cfg.DropboxToken, cfg.UploadTimeout)
	} else {
		log.Printf("DROPBOX_TOKEN not set, report upload disabled")
	}

	bot, err := telegram.New(
		cfg.TelegramBotToken,
		svc,
		repo,
		uploader,
		cfg.AdminUserID,
		cfg.MessageParseMode,
		cfg.PDFFontPath,
		cfg.UploadTimeout,
	)
	if err != nil {
		log.Fatalf("failed to create bot: %v", err)
	}

	if cfg.WeeklyDigestCron != "" {
		sched := scheduler.New(cfg.WeeklyDigestCron)
		sched.SetDigestFunction(bot.SendWeeklyDigest)
		if err := sched.Start(); err != nil {
			log.Fatalf("failed to start scheduler: %v", err)
		}
		defer sched.Stop()
	}

	log.Println("🤖 Бот запущен")
	bot.Start(context.Background())
}
