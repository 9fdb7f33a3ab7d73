package report

import (
	"fmt"
	"os"

	"github.com/go-pdf/fpdf"

	"gym-diary/internal/storage"
)

// RenderPDF writes the report window as a paginated A4 document.
// fontPath may point to a UTF-8 TTF; without one the built-in core
// font is used and non-latin entries will not render.
func RenderPDF(path, fontPath, displayName string, records []storage.TrainingRecord) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	family := "Helvetica"
	if fontPath != "" {
		if _, err := os.Stat(fontPath); err == nil {
			pdf.AddUTF8Font("DejaVu", "", fontPath)
			family = "DejaVu"
		}
	}
	pdf.SetFont(family, "", 12)

	title := fmt.Sprintf("Отчет о тренировках пользователя %s за последний месяц", displayName)
	pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")

	for i, r := range records {
		pdf.Ln(5)
		header := fmt.Sprintf("%d) %s — %s",
			i+1, r.StartTime.Format("02.01 15:04"), r.EndTime.Format("15:04"))
		pdf.CellFormat(0, 10, header, "", 1, "L", false, 0, "")
		if len(r.Exercises) == 0 {
			pdf.CellFormat(0, 10, "   "+emptyPlaceholder, "", 1, "L", false, 0, "")
			continue
		}
		for _, ex := range r.Exercises {
			pdf.CellFormat(0, 10, "   • "+ex, "", 1, "L", false, 0, "")
		}
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
