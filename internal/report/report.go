package report

import (
	"fmt"
	"html"
	"strings"

	"gym-diary/internal/storage"
)

const emptyPlaceholder = "— без записей"

// Format builds the HTML report body for a window of trainings, one
// numbered section per record.
func Format(title string, records []storage.TrainingRecord) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📊 Отчет %s:\n\n", title))
	for i, r := range records {
		b.WriteString(fmt.Sprintf("<b>%d) %s – %s</b>\n",
			i+1, r.StartTime.Format("02.01 15:04"), r.EndTime.Format("15:04")))
		b.WriteString(Entries(r.Exercises))
		b.WriteString("\n\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// Entries renders one bullet line per exercise, or the "no entries"
// placeholder. Text is escaped for HTML parse mode; storage keeps the
// raw form.
func Entries(exercises []string) string {
	if len(exercises) == 0 {
		return emptyPlaceholder
	}
	lines := make([]string, 0, len(exercises))
	for _, ex := range exercises {
		lines = append(lines, "• "+html.EscapeString(ex))
	}
	return strings.Join(lines, "\n")
}

// Summary is the confirmation shown right after a training is finished.
func Summary(r storage.TrainingRecord) string {
	return fmt.Sprintf("Тренировка завершена ✅\n🕒 %s — %s\n%s",
		r.StartTime.Format("02.01 15:04"), r.EndTime.Format("15:04"), Entries(r.Exercises))
}
