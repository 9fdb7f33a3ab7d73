package telegram

import (
	"context"
	"fmt"
	"log"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"gym-diary/internal/diary"
	"gym-diary/internal/export"
	"gym-diary/internal/report"
	"gym-diary/internal/storage"
)

type Bot struct {
	api           *tgbotapi.BotAPI
	s             sender
	diary         *diary.Service
	repo          storage.Repository
	uploader      export.Uploader
	adminUserID   int64
	parseMode     string
	fontPath      string
	uploadTimeout time.Duration
}

func New(
	botToken string,
	svc *diary.Service,
	repo storage.Repository,
	uploader export.Uploader,
	adminUserID int64,
	parseMode string,
	fontPath string,
	uploadTimeout time.Duration,
) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, err
	}
	return &Bot{
		api:           api,
		s:             botAPISender{api: api},
		diary:         svc,
		repo:          repo,
		uploader:      uploader,
		adminUserID:   adminUserID,
		parseMode:     parseMode,
		fontPath:      fontPath,
		uploadTimeout: uploadTimeout,
	}, nil
}

func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	// Updates are handled sequentially, so two mutations of the same
	// user's session never race; distinct users stay independent
	// through the keyed stores.
	for update := range updates {
		if update.Message != nil {
			b.handleIncomingMessage(ctx, update.Message)
		}
	}
}

// SendWeeklyDigest pushes each known user their 7-day report. Per-user
// failures are logged and never abort the loop.
func (b *Bot) SendWeeklyDigest(ctx context.Context) error {
	users, err := b.repo.Users(ctx)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}
	for _, u := range users {
		recs, err := b.diary.WindowReport(ctx, u.UserID, 7)
		if err != nil {
			log.Printf("⚠️ digest report for %d failed: %v", u.UserID, err)
			continue
		}
		if len(recs) == 0 {
			continue
		}
		b.sendMessage(u.UserID, report.Format("за неделю", recs))
	}
	return nil
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = b.parseMode
	if _, err := b.s.Send(msg); err != nil {
		log.Printf("failed to send message: %v", err)
	}
}

// sendWithMarkup attaches a reply keyboard (or its removal) to the message.
func (b *Bot) sendWithMarkup(chatID int64, text string, markup interface{}) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = b.parseMode
	msg.ReplyMarkup = markup
	if _, err := b.s.Send(msg); err != nil {
		log.Printf("failed to send message: %v", err)
	}
}
