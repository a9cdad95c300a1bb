package report

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/objectifs/objectifs/internal/model"
)

type rgb struct{ r, g, b int }

var (
	colorPrimary = rgb{63, 81, 181}
	colorText    = rgb{33, 33, 33}
	colorMuted   = rgb{117, 117, 117}
	colorHeader  = rgb{224, 224, 224}
	colorStripe  = rgb{245, 245, 245}

	categoryColors = map[model.Category]rgb{
		model.CategorySpiritual:    {76, 175, 80},
		model.CategoryProfessional: {33, 150, 243},
		model.CategoryPersonal:     {255, 152, 0},
		model.CategoryFinance:      {156, 39, 176},
	}
)

func categoryColor(c model.Category) rgb {
	if col, ok := categoryColors[c]; ok {
		return col
	}
	return colorPrimary
}

// newPDF returns an A4 portrait document using the core Helvetica font.
// Core fonts are cp1252, so every string goes through tr.
func newPDF(doc *Document) (*fpdf.Fpdf, func(string) string) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetCreationDate(doc.GeneratedOn.Time())
	pdf.SetCatalogSort(true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr(doc.Title), false)
	pdf.SetAuthor(tr(doc.Owner), false)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(colorMuted.r, colorMuted.g, colorMuted.b)
		pdf.CellFormat(0, 6, fmt.Sprintf("%d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	return pdf, tr
}

func setFill(pdf *fpdf.Fpdf, c rgb) { pdf.SetFillColor(c.r, c.g, c.b) }
func setText(pdf *fpdf.Fpdf, c rgb) { pdf.SetTextColor(c.r, c.g, c.b) }
func setDraw(pdf *fpdf.Fpdf, c rgb) { pdf.SetDrawColor(c.r, c.g, c.b) }

func heading(pdf *fpdf.Fpdf, tr func(string) string, text string, c rgb) {
	pdf.SetFont("Helvetica", "B", 16)
	setText(pdf, c)
	pdf.CellFormat(0, 10, tr(text), "B", 1, "L", false, 0, "")
	pdf.Ln(3)
}

// PDFRenderer draws the full report: summary, one section per category and
// the recommendations.
type PDFRenderer struct{}

func (PDFRenderer) ContentType() string { return "application/pdf" }
func (PDFRenderer) Extension() string   { return "pdf" }

func (PDFRenderer) Render(w io.Writer, doc *Document) error {
	pdf, tr := newPDF(doc)

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 22)
	setText(pdf, colorPrimary)
	pdf.CellFormat(0, 14, tr(doc.Title), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	setText(pdf, colorMuted)
	pdf.CellFormat(0, 7, tr(fmt.Sprintf("Generated on %s for %s", doc.GeneratedOn, doc.Owner)), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 7, tr(fmt.Sprintf("Period: %s (%s to %s)", doc.Period, doc.Window.Start, doc.Window.End)), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	heading(pdf, tr, "Summary", colorPrimary)
	summaryLine(pdf, tr, "Objectives", doc.Number(doc.Summary.TotalObjectives))
	summaryLine(pdf, tr, "Tracked days", doc.Number(doc.Summary.Rate.Tracked))
	summaryLine(pdf, tr, "Completion rate", doc.Percent(doc.Summary.Rate.Percent()))
	summaryLine(pdf, tr, "Top performers", performerList(doc, doc.Summary.Top))
	summaryLine(pdf, tr, "Needs attention", performerList(doc, doc.Summary.Bottom))
	pdf.Ln(4)

	for _, section := range doc.Sections {
		pdf.AddPage()
		col := categoryColor(section.Category)
		heading(pdf, tr, section.Title, col)
		pdf.SetFont("Helvetica", "", 10)
		setText(pdf, colorMuted)
		pdf.CellFormat(0, 6, tr(fmt.Sprintf("Category completion rate: %s", doc.Percent(section.Rate.Percent()))), "", 1, "L", false, 0, "")
		pdf.Ln(2)

		for _, row := range section.Rows {
			objectiveBlock(pdf, tr, doc, row, col)
		}
	}

	pdf.AddPage()
	heading(pdf, tr, "Recommendations", colorPrimary)
	pdf.SetFont("Helvetica", "", 11)
	setText(pdf, colorText)
	for i, rec := range doc.Recommendations {
		pdf.MultiCell(0, 6, tr(fmt.Sprintf("%d. %s", i+1, rec)), "", "L", false)
		pdf.Ln(2)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render pdf: %w", err)
	}
	return nil
}

func summaryLine(pdf *fpdf.Fpdf, tr func(string) string, label, value string) {
	pdf.SetFont("Helvetica", "B", 11)
	setText(pdf, colorText)
	pdf.CellFormat(50, 7, tr(label), "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 7, tr(value), "", "L", false)
}

func performerList(doc *Document, ps []Performer) string {
	if len(ps) == 0 {
		return "None"
	}
	out := ""
	for i, p := range ps {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%s (%s)", p.Name, doc.Percent(p.Percent))
	}
	return out
}

func objectiveBlock(pdf *fpdf.Fpdf, tr func(string) string, doc *Document, row Row, col rgb) {
	pdf.SetFont("Helvetica", "B", 13)
	setText(pdf, colorText)
	pdf.CellFormat(0, 8, tr(row.Name), "", 1, "L", false, 0, "")

	if row.Description != "" {
		pdf.SetFont("Helvetica", "", 9)
		setText(pdf, colorMuted)
		pdf.MultiCell(0, 5, tr(row.Description), "", "L", false)
	}

	pdf.SetFont("Helvetica", "", 9)
	setText(pdf, colorText)
	meta := fmt.Sprintf("Type: %s   Frequency: %s   Started: %s   Rate: %s",
		row.TrackingLabel, row.Frequency, row.StartDate, doc.Percent(row.Rate.Percent()))
	if row.Target != "" {
		meta += "   Target: " + row.Target
	}
	pdf.CellFormat(0, 6, tr(meta), "", 1, "L", false, 0, "")
	pdf.Ln(1)

	if len(row.Entries) == 0 {
		pdf.SetFont("Helvetica", "I", 9)
		setText(pdf, colorMuted)
		pdf.CellFormat(0, 6, tr("No progress recorded for this period"), "", 1, "L", false, 0, "")
		pdf.Ln(4)
		return
	}

	const dateW, valueW, commentW = 35.0, 40.0, 105.0
	setDraw(pdf, col)
	setFill(pdf, colorHeader)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(dateW, 7, "Date", "1", 0, "L", true, 0, "")
	pdf.CellFormat(valueW, 7, "Value", "1", 0, "L", true, 0, "")
	pdf.CellFormat(commentW, 7, "Comment", "1", 1, "L", true, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for i, e := range row.Entries {
		if i%2 == 0 {
			setFill(pdf, colorStripe)
		} else {
			setFill(pdf, rgb{255, 255, 255})
		}
		pdf.CellFormat(dateW, 6, e.Date.String(), "1", 0, "L", true, 0, "")
		pdf.CellFormat(valueW, 6, tr(e.Value), "1", 0, "L", true, 0, "")
		pdf.CellFormat(commentW, 6, tr(e.Comment), "1", 1, "L", true, 0, "")
	}
	pdf.Ln(5)
}
