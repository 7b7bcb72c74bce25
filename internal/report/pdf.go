package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/sandeepkv93/pomobubby/internal/model"
)

// Summary is the data printed by an export.
type Summary struct {
	GeneratedAt time.Time
	Sessions    int
	Profile     string
	MusicURL    string
	Tasks       []model.Task
}

// WritePDF renders s as a single A4 report: session count, then one section per board column.
func WritePDF(w io.Writer, s Summary) error {
	if w == nil {
		return errors.New("report: nil writer")
	}
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(s.GeneratedAt)
	pdf.SetTitle("PomoBubby report", true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, fmt.Sprintf("PomoBubby report: %s", s.GeneratedAt.Format("2006-01-02 15:04")))
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Completed focus sessions: %d", s.Sessions))
	pdf.Ln(7)
	if s.Profile != "" {
		pdf.Cell(0, 8, tr("Timer profile: "+s.Profile))
		pdf.Ln(7)
	}
	if s.MusicURL != "" {
		pdf.Cell(0, 8, tr("Music: "+s.MusicURL))
		pdf.Ln(7)
	}
	pdf.Ln(4)

	board := model.NewBoardFromTasks(s.Tasks)
	for _, status := range model.Columns {
		tasks := board.Column(status)
		pdf.SetFont("Arial", "B", 14)
		pdf.Cell(0, 10, fmt.Sprintf("%s (%d)", status.Label(), len(tasks)))
		pdf.Ln(8)

		pdf.SetFont("Arial", "", 12)
		if len(tasks) == 0 {
			pdf.Cell(0, 8, "  - No tasks.")
			pdf.Ln(8)
		}
		for _, t := range tasks {
			mark := "[ ]"
			if t.Status == model.StatusDone {
				mark = "[x]"
			}
			pdf.Cell(0, 8, tr(fmt.Sprintf("  %s %s", mark, t.Title)))
			pdf.Ln(6)
			if t.Description != "" {
				pdf.SetFont("Arial", "I", 10)
				pdf.SetX(pdf.GetX() + 10)
				pdf.MultiCell(0, 5, tr(t.Description), "", "", false)
				pdf.SetFont("Arial", "", 12)
			}
		}
		pdf.Ln(4)
	}

	return pdf.Output(w)
}

// WritePDFFile writes the report to path, replacing any existing file.
func WritePDFFile(path string, s Summary) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	if err := WritePDF(f, s); err != nil {
		_ = f.Close()
		return fmt.Errorf("render report: %w", err)
	}
	return f.Close()
}
