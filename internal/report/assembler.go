package report

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/objectifs/objectifs/internal/model"
	"github.com/objectifs/objectifs/internal/progress"
)

const performerCount = 3

// Assembler builds report documents. It is safe for concurrent use.
type Assembler struct {
	tag language.Tag
}

func NewAssembler(tag language.Tag) *Assembler {
	return &Assembler{tag: tag}
}

// Assemble builds the report for the period ending on today. owner is
// printed in the header.
func (a *Assembler) Assemble(objs []*model.Objective, period Period, today model.Date, owner string) *Document {
	window := progress.LastDays(today, period.Days())
	ranked := progress.Rank(objs, window)
	top, bottom := progress.Performers(ranked, performerCount)

	doc := &Document{
		Title:       "Objective Tracking Report",
		Owner:       owner,
		GeneratedOn: today,
		Period:      period,
		Window:      window,
		Summary: Summary{
			TotalObjectives: len(objs),
			Rate:            progress.CategoryRate(objs, window),
			Top:             performers(top),
			Bottom:          performers(bottom),
		},
		printer: message.NewPrinter(a.tag),
	}

	byCategory := progress.GroupByCategory(objs)
	for _, c := range model.Categories {
		group := byCategory[c]
		if len(group) == 0 {
			continue
		}
		section := Section{
			Category: c,
			Title:    a.CategoryTitle(c),
			Rate:     progress.CategoryRate(group, window),
		}
		for _, o := range group {
			section.Rows = append(section.Rows, a.row(o, window))
		}
		doc.Sections = append(doc.Sections, section)
	}

	doc.Recommendations = Recommend(doc.Summary)
	return doc
}

// CategoryTitle is the section heading for c, e.g. "Spiritual Objectives".
func (a *Assembler) CategoryTitle(c model.Category) string {
	return a.titled(string(c) + " objectives")
}

// Casers keep state, so each call gets its own.
func (a *Assembler) titled(s string) string {
	return cases.Title(a.tag).String(s)
}

func (a *Assembler) row(o *model.Objective, window progress.Window) Row {
	r := Row{
		Name:          o.Name,
		Tracking:      o.TrackingType,
		TrackingLabel: TrackingLabel(o.TrackingType),
		Frequency:     a.titled(string(o.Frequency)),
		Status:        o.Status,
		StartDate:     o.StartDate,
		Rate:          progress.CompletionRate(o, window),
	}
	if o.Description != nil {
		r.Description = *o.Description
	}
	if o.Target != nil {
		r.Target = strconv.FormatFloat(*o.Target, 'f', -1, 64)
	}

	for _, d := range window.Days() {
		v, ok := o.Progress[d]
		if !ok {
			continue
		}
		r.Entries = append(r.Entries, Entry{
			Date:    d,
			Value:   FormatValue(o.TrackingType, v),
			Done:    progress.Completed(o.TrackingType, v),
			Comment: o.Comments[d],
		})
	}
	return r
}

func performers(ps []progress.Performance) []Performer {
	out := make([]Performer, 0, len(ps))
	for _, p := range ps {
		out = append(out, Performer{
			Name:    p.Objective.Name,
			Percent: p.Rate.Percent(),
			Tracked: p.Rate.Tracked,
		})
	}
	return out
}

// FormatValue renders a ledger value: a completion label for boolean
// tracking, the raw number otherwise.
func FormatValue(tracking model.TrackingType, v model.Value) string {
	if tracking == model.TrackingBoolean {
		if v.Done() {
			return LabelCompleted
		}
		return LabelNotCompleted
	}
	return strconv.FormatFloat(v.Float(), 'f', -1, 64)
}

func TrackingLabel(t model.TrackingType) string {
	switch t {
	case model.TrackingBoolean:
		return "Boolean (yes/no)"
	case model.TrackingCounter:
		return "Counter"
	default:
		return "Numeric value"
	}
}

// Recommend picks advice from the global rate, then adds one line naming the
// weakest objectives and one naming the strongest when there are any.
func Recommend(s Summary) []string {
	var recs []string

	switch rate := s.Rate.Percent(); {
	case rate < 30:
		recs = append(recs,
			"Your completion rate is low. Try simplifying your objectives or reducing their number to focus on the most important ones.",
			"Set up daily reminders to help you track your objectives regularly.",
		)
	case rate < 70:
		recs = append(recs,
			"Your progress is decent, but there is still room for improvement. Identify the obstacles that keep you from reaching some objectives.",
			"Try building a daily routine that fits your objectives into your schedule.",
		)
	default:
		recs = append(recs,
			"Excellent work! Your completion rate is very good. Consider slightly raising the difficulty of your objectives to keep progressing.",
			"Share your experience and methods with others to help them progress too.",
		)
	}

	if len(s.Bottom) > 0 {
		recs = append(recs, fmt.Sprintf(
			"Focus on improving these objectives: %s. Identify the obstacles and adjust your strategies.",
			names(s.Bottom),
		))
	}
	if len(s.Top) > 0 {
		recs = append(recs, fmt.Sprintf(
			"Keep up the momentum with these objectives: %s. Apply what works here to your other objectives.",
			names(s.Top),
		))
	}
	return recs
}

func names(ps []Performer) string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Name)
	}
	return strings.Join(out, ", ")
}
