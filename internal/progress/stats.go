package progress

import (
	"math"
	"sort"

	"github.com/objectifs/objectifs/internal/model"
)

// Rate counts tracked and completed days.
type Rate struct {
	Tracked   int `json:"tracked"`
	Completed int `json:"completed"`
}

func (r Rate) Add(o Rate) Rate {
	return Rate{Tracked: r.Tracked + o.Tracked, Completed: r.Completed + o.Completed}
}

// Percent is Completed/Tracked*100 rounded to two decimals, 0 when nothing was tracked.
func (r Rate) Percent() float64 {
	if r.Tracked == 0 {
		return 0
	}
	return math.Round(float64(r.Completed)/float64(r.Tracked)*10000) / 100
}

// Window is an inclusive date range. An empty bound is open.
type Window struct {
	Start model.Date
	End   model.Date
}

// AllTime matches every date.
var AllTime = Window{}

// LastDays returns the n-day window ending on today.
func LastDays(today model.Date, n int) Window {
	return Window{Start: today.AddDays(-(n - 1)), End: today}
}

func (w Window) Contains(d model.Date) bool {
	if w.Start != "" && d.Before(w.Start) {
		return false
	}
	if w.End != "" && d.After(w.End) {
		return false
	}
	return true
}

// Days lists the window's dates newest first. Open windows have no days.
func (w Window) Days() []model.Date {
	if w.Start == "" || w.End == "" {
		return nil
	}
	var days []model.Date
	for d := w.End; !d.Before(w.Start); d = d.AddDays(-1) {
		days = append(days, d)
	}
	return days
}

// Completed applies the per-tracking completion rule to a single entry.
func Completed(tracking model.TrackingType, v model.Value) bool {
	if tracking == model.TrackingBoolean {
		return v.IsBool() && v.Done()
	}
	return !v.IsBool() && v.Done()
}

// CompletionRate counts the ledger entries inside both w and the objective's
// active window.
func CompletionRate(o *model.Objective, w Window) Rate {
	var r Rate
	for d, v := range o.Progress {
		if !w.Contains(d) || !o.InWindow(d) {
			continue
		}
		r.Tracked++
		if Completed(o.TrackingType, v) {
			r.Completed++
		}
	}
	return r
}

// CategoryRate pools the tracked days of every objective in objs.
func CategoryRate(objs []*model.Objective, w Window) Rate {
	var r Rate
	for _, o := range objs {
		r = r.Add(CompletionRate(o, w))
	}
	return r
}

// ActiveToday reports whether o is active and today lies in its window.
func ActiveToday(o *model.Objective, today model.Date) bool {
	return o.IsActive() && o.InWindow(today)
}

// DoneToday applies the completion rule to today's entry only.
func DoneToday(o *model.Objective, today model.Date) bool {
	v, ok := o.Progress[today]
	return ok && Completed(o.TrackingType, v)
}

type Snapshot struct {
	TotalObjectives      int     `json:"totalObjectives"`
	ActiveObjectives     int     `json:"activeObjectives"`
	CompletedToday       int     `json:"completedToday"`
	TotalActiveToday     int     `json:"totalActiveToday"`
	GlobalCompletionRate float64 `json:"globalCompletionRate"`
}

type Statistics struct {
	Snapshot
	Categories map[model.Category]Snapshot `json:"categories"`
}

// Summarize computes the dashboard figures for a set of objectives.
func Summarize(objs []*model.Objective, today model.Date) Snapshot {
	s := Snapshot{TotalObjectives: len(objs)}
	for _, o := range objs {
		if o.IsActive() {
			s.ActiveObjectives++
		}
		if ActiveToday(o, today) {
			s.TotalActiveToday++
			if DoneToday(o, today) {
				s.CompletedToday++
			}
		}
	}
	s.GlobalCompletionRate = CategoryRate(objs, AllTime).Percent()
	return s
}

// Compute returns the global snapshot plus one per category. Every category
// is present, empty ones with zero figures.
func Compute(objs []*model.Objective, today model.Date) Statistics {
	byCategory := GroupByCategory(objs)
	stats := Statistics{
		Snapshot:   Summarize(objs, today),
		Categories: make(map[model.Category]Snapshot, len(model.Categories)),
	}
	for _, c := range model.Categories {
		stats.Categories[c] = Summarize(byCategory[c], today)
	}
	return stats
}

func GroupByCategory(objs []*model.Objective) map[model.Category][]*model.Objective {
	out := make(map[model.Category][]*model.Objective)
	for _, o := range objs {
		out[o.Category] = append(out[o.Category], o)
	}
	return out
}

// Performance is one objective's rate over a window.
type Performance struct {
	Objective *model.Objective
	Rate      Rate
}

// Rank sorts objectives by completion percentage, best first. Ties keep
// input order.
func Rank(objs []*model.Objective, w Window) []Performance {
	ranked := make([]Performance, 0, len(objs))
	for _, o := range objs {
		ranked = append(ranked, Performance{Objective: o, Rate: CompletionRate(o, w)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Rate.Percent() > ranked[j].Rate.Percent()
	})
	return ranked
}

// Performers returns up to n best and n worst objectives from a ranking.
// Objectives without a tracked day carry no evidence and are left out of
// both. Bottom is ordered worst first.
func Performers(ranked []Performance, n int) (top, bottom []Performance) {
	var evidenced []Performance
	for _, p := range ranked {
		if p.Rate.Tracked > 0 {
			evidenced = append(evidenced, p)
		}
	}

	top = evidenced[:min(n, len(evidenced))]
	for i := len(evidenced) - 1; i >= 0 && len(bottom) < n; i-- {
		bottom = append(bottom, evidenced[i])
	}
	return top, bottom
}
