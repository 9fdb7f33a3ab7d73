package telegram

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"gym-diary/internal/diary"
	"gym-diary/internal/report"
)

const (
	btnStartTraining  = "🏋️‍♂️ Записать тренировку"
	btnFinishTraining = "✅ Закончить тренировку"
	btnFinishConfirm  = "✅ Закончить тренировку?"
	btnViewTraining   = "👀 Просмотреть тренировку"
	btnReportMenu     = "📊 Просмотреть отчет"
	btnWeeklyReport   = "📅 Отчет за неделю"
	btnMonthlyReport  = "🗓️ Отчет за месяц"
	btnPDFReport      = "📄 Отчет в PDF"
	btnBack           = "⬅️ Назад"
	btnContinue       = "➕ Продолжить тренировку"
)

var mainKeyboard = tgbotapi.NewReplyKeyboard(
	tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnStartTraining)),
	tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnFinishTraining)),
	tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnViewTraining)),
	tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnReportMenu)),
)

var reportKeyboard = tgbotapi.NewReplyKeyboard(
	tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnWeeklyReport)),
	tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnMonthlyReport)),
	tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnPDFReport)),
	tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnBack)),
)

func confirmKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnFinishConfirm),
			tgbotapi.NewKeyboardButton(btnContinue),
		),
	)
	kb.OneTimeKeyboard = true
	return kb
}

func (b *Bot) handleIncomingMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil || msg.Text == "" {
		return
	}
	log.Printf("Incoming message from %d (@%s): %q", msg.From.ID, msg.From.UserName, msg.Text)

	switch msg.Text {
	case btnStartTraining:
		b.handleStartTraining(msg)
	case btnFinishTraining, btnFinishConfirm:
		b.handleFinishTraining(ctx, msg)
	case btnViewTraining:
		b.handleViewTraining(msg)
	case btnReportMenu:
		b.sendWithMarkup(msg.Chat.ID, "Выбери период отчета:", reportKeyboard)
	case btnWeeklyReport:
		b.handleReport(ctx, msg, 7, "за неделю")
	case btnMonthlyReport:
		b.handleReport(ctx, msg, 30, "за месяц")
	case btnPDFReport:
		b.handleExportPDF(ctx, msg)
	case btnBack:
		b.sendWithMarkup(msg.Chat.ID, "Главное меню:", mainKeyboard)
	case btnContinue:
		b.handleContinueTraining(msg)
	default:
		if msg.IsCommand() {
			b.handleCommand(ctx, msg)
			return
		}
		b.handleExerciseEntry(msg)
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		b.sendWithMarkup(msg.Chat.ID, "Привет! Я Gym Diary Bot 💪\nЧто делаем?", mainKeyboard)
		b.notifyAdminNewUser(msg.From)
	case "users":
		b.handleListUsers(ctx, msg)
	}
}

// notifyAdminNewUser пингует администратора о новом пользователе;
// ошибка отправки только логируется
func (b *Bot) notifyAdminNewUser(u *tgbotapi.User) {
	if b.adminUserID == 0 {
		return
	}
	text := fmt.Sprintf("👤 Новый пользователь: @%s\nID: %d", displayName(u), u.ID)
	if _, err := b.s.Send(tgbotapi.NewMessage(b.adminUserID, text)); err != nil {
		log.Printf("failed to notify admin: %v", err)
	}
}

func (b *Bot) handleListUsers(ctx context.Context, msg *tgbotapi.Message) {
	if b.adminUserID == 0 || msg.From.ID != b.adminUserID {
		return
	}
	users, err := b.repo.Users(ctx)
	if err != nil {
		log.Printf("failed to list users: %v", err)
		b.sendMessage(msg.Chat.ID, "Не получилось загрузить список пользователей.")
		return
	}
	if len(users) == 0 {
		b.sendMessage(msg.Chat.ID, "Пользователи ещё не зарегистрированы.")
		return
	}
	var sb strings.Builder
	sb.WriteString("📋 Список пользователей:\n")
	for _, u := range users {
		if u.Username != "" && u.Username != "<no username>" {
			sb.WriteString("• @" + u.Username + "\n")
		} else {
			sb.WriteString(fmt.Sprintf("• ID: %d\n", u.UserID))
		}
	}
	b.sendMessage(msg.Chat.ID, sb.String())
}

func (b *Bot) handleStartTraining(msg *tgbotapi.Message) {
	sess, err := b.diary.Start(msg.From.ID)
	if errors.Is(err, diary.ErrSessionActive) {
		b.sendMessage(msg.Chat.ID,
			fmt.Sprintf("Тренировка уже идёт (записей: %d). Сначала заверши её ✅", sess.Len()))
		return
	}
	b.sendMessage(msg.Chat.ID, "Тренировка начата. Введи упражнение в формате:\n\nЖим лёжа 1x60кг\nЖим гантелей 1x25кг")
}

func (b *Bot) handleExerciseEntry(msg *tgbotapi.Message) {
	if err := b.diary.LogEntry(msg.From.ID, msg.Text); errors.Is(err, diary.ErrNoActiveSession) {
		b.sendMessage(msg.Chat.ID, "Если хочешь записать тренировку, нажми «🏋️‍♂️ Записать тренировку»")
		return
	}
	b.sendWithMarkup(msg.Chat.ID, "Добавить в дневник?", confirmKeyboard())
}

func (b *Bot) handleContinueTraining(msg *tgbotapi.Message) {
	if err := b.diary.Confirm(msg.From.ID); errors.Is(err, diary.ErrNoActiveSession) {
		b.sendMessage(msg.Chat.ID, "Ты ещё не начинал тренировку!")
		return
	}
	b.sendWithMarkup(msg.Chat.ID, "Продолжай вводить упражнения ⬇️", tgbotapi.NewRemoveKeyboard(true))
}

func (b *Bot) handleViewTraining(msg *tgbotapi.Message) {
	sess, ok := b.diary.Active(msg.From.ID)
	if !ok {
		b.sendMessage(msg.Chat.ID, "Сейчас нет активной тренировки. Нажми «🏋️‍♂️ Записать тренировку»")
		return
	}
	text := fmt.Sprintf("Текущая тренировка с %s:\n%s",
		sess.StartedAt.Format("15:04"), report.Entries(sess.Entries()))
	b.sendMessage(msg.Chat.ID, text)
}

func (b *Bot) handleFinishTraining(ctx context.Context, msg *tgbotapi.Message) {
	rec, err := b.diary.Finish(ctx, msg.From.ID, displayName(msg.From))
	if errors.Is(err, diary.ErrNoActiveSession) {
		b.sendMessage(msg.Chat.ID, "Ты ещё не начинал тренировку!")
		return
	}
	if err != nil {
		log.Printf("failed to finish training for %d: %v", msg.From.ID, err)
		b.sendMessage(msg.Chat.ID, "Не получилось сохранить тренировку, попробуй ещё раз.")
		return
	}
	b.sendWithMarkup(msg.Chat.ID, report.Summary(rec), mainKeyboard)
}

func (b *Bot) handleReport(ctx context.Context, msg *tgbotapi.Message, days int, title string) {
	recs, err := b.diary.WindowReport(ctx, msg.From.ID, days)
	if err != nil {
		log.Printf("failed to build report for %d: %v", msg.From.ID, err)
		b.sendMessage(msg.Chat.ID, "Не получилось построить отчет, попробуй ещё раз.")
		return
	}
	if len(recs) == 0 {
		b.sendMessage(msg.Chat.ID, fmt.Sprintf("Нет тренировок %s.", title))
		return
	}
	b.sendMessage(msg.Chat.ID, report.Format(title, recs))
}

func (b *Bot) handleExportPDF(ctx context.Context, msg *tgbotapi.Message) {
	userID := msg.From.ID
	recs, err := b.diary.WindowReport(ctx, userID, 30)
	if err != nil {
		log.Printf("failed to build export for %d: %v", userID, err)
		b.sendMessage(msg.Chat.ID, "Не получилось построить отчет, попробуй ещё раз.")
		return
	}
	if len(recs) == 0 {
		b.sendMessage(msg.Chat.ID, "Нет данных для экспорта за последний месяц.")
		return
	}

	fileName := fmt.Sprintf("training_report_%d_month.pdf", userID)
	localPath := filepath.Join(os.TempDir(), fileName)
	if err := report.RenderPDF(localPath, b.fontPath, pdfDisplayName(msg.From), recs); err != nil {
		log.Printf("failed to render pdf for %d: %v", userID, err)
		b.sendMessage(msg.Chat.ID, "Не получилось собрать PDF, попробуй ещё раз.")
		return
	}
	defer func() {
		if err := os.Remove(localPath); err != nil {
			log.Printf("failed to remove temp report %s: %v", localPath, err)
		}
	}()

	doc := tgbotapi.NewDocument(msg.Chat.ID, tgbotapi.FilePath(localPath))
	doc.Caption = "📄 Вот твой отчет за последний месяц"
	if _, err := b.s.Send(doc); err != nil {
		log.Printf("failed to send report document: %v", err)
		b.sendMessage(msg.Chat.ID, "Не получилось отправить PDF, попробуй ещё раз.")
		return
	}

	if b.uploader == nil {
		return
	}
	uctx, cancel := context.WithTimeout(ctx, b.uploadTimeout)
	defer cancel()
	link, err := b.uploader.Upload(uctx, localPath, "/reports/"+fileName)
	if err != nil {
		log.Printf("⚠️ Dropbox upload failed: %v", err)
		return
	}
	b.sendMessage(msg.Chat.ID, "☁️ Отчет также загружен в Dropbox:\n"+link)
}

func displayName(u *tgbotapi.User) string {
	if u.UserName != "" {
		return u.UserName
	}
	return "<no username>"
}

func pdfDisplayName(u *tgbotapi.User) string {
	if u.UserName != "" {
		return "@" + u.UserName
	}
	return fmt.Sprintf("ID %d", u.ID)
}
