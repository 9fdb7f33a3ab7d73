package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN,required"`
	DropboxToken     string `env:"DROPBOX_TOKEN"`
	AdminUserID      int64  `env:"ADMIN_USER"`

	// Storage
	DBPath string `env:"DB_PATH" envDefault:"data/gym_diary.db"`

	// Report rendering
	PDFFontPath string `env:"PDF_FONT_PATH" envDefault:"fonts/DejaVuSans.ttf"`

	// Formatting
	MessageParseMode string `env:"MESSAGE_PARSE_MODE" envDefault:"HTML"`

	// Upload
	UploadTimeout time.Duration `env:"UPLOAD_TIMEOUT" envDefault:"30s"`

	// Weekly digest cron spec (UTC); empty disables the scheduler
	WeeklyDigestCron string `env:"WEEKLY_DIGEST_CRON"`
}

func New() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	return cfg
}
