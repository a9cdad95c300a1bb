package report

import (
	"fmt"
	"io"
)

var weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// TemplateRenderer prints a blank weekly grid per category, to be filled in
// by hand. Only objective names and descriptions are read from the document.
type TemplateRenderer struct{}

func (TemplateRenderer) ContentType() string { return "application/pdf" }
func (TemplateRenderer) Extension() string   { return "pdf" }

func (TemplateRenderer) Render(w io.Writer, doc *Document) error {
	pdf, tr := newPDF(doc)
	pdf.SetAutoPageBreak(false, 15)
	_, pageH := pdf.GetPageSize()

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 22)
	setText(pdf, colorPrimary)
	pdf.Ln(60)
	pdf.CellFormat(0, 14, "Objective Tracking Template", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	setText(pdf, colorMuted)
	pdf.CellFormat(0, 8, "To be filled in by hand", "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 8, tr(doc.Owner), "", 1, "C", false, 0, "")

	pdf.AddPage()
	heading(pdf, tr, "How to use this template", colorPrimary)
	pdf.SetFont("Helvetica", "", 11)
	setText(pdf, colorText)
	for i, step := range []string{
		"Print one copy per week and keep it somewhere visible.",
		"Each evening, tick the box of every objective you worked on that day.",
		"For counters and numeric objectives, write the value in the box.",
		"At the end of the week, copy the results into the application.",
	} {
		pdf.MultiCell(0, 7, fmt.Sprintf("%d. %s", i+1, step), "", "L", false)
	}

	const nameW, cellW, headerH, rowH = 54.0, 18.0, 9.0, 14.0
	for _, section := range doc.Sections {
		col := categoryColor(section.Category)
		pdf.AddPage()
		heading(pdf, tr, section.Title, col)

		for _, row := range section.Rows {
			if pdf.GetY()+headerH+rowH+20 > pageH-15 {
				pdf.AddPage()
				heading(pdf, tr, section.Title, col)
			}

			pdf.SetFont("Helvetica", "B", 12)
			setText(pdf, colorText)
			pdf.CellFormat(0, 7, tr(row.Name), "", 1, "L", false, 0, "")
			if row.Description != "" {
				pdf.SetFont("Helvetica", "", 9)
				setText(pdf, colorMuted)
				pdf.CellFormat(0, 5, tr(row.Description), "", 1, "L", false, 0, "")
			}

			setDraw(pdf, col)
			setFill(pdf, colorHeader)
			setText(pdf, colorText)
			pdf.SetFont("Helvetica", "B", 8)
			pdf.CellFormat(nameW, headerH, "Objective", "1", 0, "L", true, 0, "")
			for _, day := range weekdays {
				pdf.CellFormat(cellW, headerH, day, "1", 0, "C", true, 0, "")
			}
			pdf.Ln(-1)

			pdf.SetFont("Helvetica", "", 8)
			setFill(pdf, colorStripe)
			pdf.CellFormat(nameW, rowH, tr(row.Name), "1", 0, "L", true, 0, "")
			for range weekdays {
				pdf.CellFormat(cellW, rowH, "", "1", 0, "C", false, 0, "")
			}
			pdf.Ln(-1)
			pdf.Ln(6)
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render template: %w", err)
	}
	return nil
}
