// Package report shapes objectives and their ledgers into a printable
// document and renders it as PDF or spreadsheet.
package report

import (
	"fmt"
	"io"

	"golang.org/x/text/message"

	"github.com/objectifs/objectifs/internal/model"
	"github.com/objectifs/objectifs/internal/progress"
)

type Period string

const (
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

// ParsePeriod defaults to weekly when s is empty.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case "":
		return PeriodWeekly, nil
	case PeriodWeekly, PeriodMonthly:
		return Period(s), nil
	}
	return "", fmt.Errorf("invalid period %q: expected weekly or monthly", s)
}

// Days is the number of calendar days the period covers, today included.
func (p Period) Days() int {
	if p == PeriodMonthly {
		return 30
	}
	return 7
}

const (
	LabelCompleted    = "completed"
	LabelNotCompleted = "not completed"
)

// Document is everything a renderer needs. It carries no drawing state.
type Document struct {
	Title           string
	Owner           string
	GeneratedOn     model.Date
	Period          Period
	Window          progress.Window
	Summary         Summary
	Sections        []Section
	Recommendations []string

	printer *message.Printer
}

type Summary struct {
	TotalObjectives int
	Rate            progress.Rate
	Top             []Performer
	Bottom          []Performer
}

type Performer struct {
	Name    string
	Percent float64
	Tracked int
}

// Section groups the objectives of one category.
type Section struct {
	Category model.Category
	Title    string
	Rate     progress.Rate
	Rows     []Row
}

type Row struct {
	Name          string
	Description   string
	Tracking      model.TrackingType
	TrackingLabel string
	Frequency     string
	Target        string
	Status        model.ObjectiveStatus
	StartDate     model.Date
	Rate          progress.Rate
	Entries       []Entry // newest first
}

type Entry struct {
	Date    model.Date
	Value   string
	Done    bool
	Comment string
}

// Entry looks up the entry recorded for d.
func (r Row) Entry(d model.Date) (Entry, bool) {
	for _, e := range r.Entries {
		if e.Date == d {
			return e, true
		}
	}
	return Entry{}, false
}

// Percent formats a rate for the document's language.
func (d *Document) Percent(v float64) string {
	if d.printer == nil {
		return fmt.Sprintf("%.2f%%", v)
	}
	return d.printer.Sprintf("%.2f%%", v)
}

// Number formats a count for the document's language.
func (d *Document) Number(n int) string {
	if d.printer == nil {
		return fmt.Sprint(n)
	}
	return d.printer.Sprintf("%d", n)
}

// Renderer turns a Document into a file format.
type Renderer interface {
	ContentType() string
	Extension() string
	Render(w io.Writer, doc *Document) error
}
