package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/objectifs/objectifs/internal/model"
)

func TestCompletionRateExample(t *testing.T) {
	o := boolObjective("2024-01-01", model.Ledger{
		"2024-01-01": model.BoolValue(true),
		"2024-01-02": model.BoolValue(false),
		"2024-01-03": model.BoolValue(true),
	})

	r := CompletionRate(o, Window{Start: "2024-01-01", End: "2024-01-03"})

	assert.Equal(t, Rate{Tracked: 3, Completed: 2}, r)
	assert.Equal(t, 66.67, r.Percent())
}

func TestCompletionRateZeroTracked(t *testing.T) {
	o := boolObjective("2024-01-01", model.Ledger{})

	r := CompletionRate(o, Window{Start: "2024-01-01", End: "2024-01-31"})

	assert.Equal(t, 0, r.Tracked)
	assert.Equal(t, 0.0, r.Percent())
}

func TestCompletionRateIgnoresEntriesOutsideActiveWindow(t *testing.T) {
	o := boolObjective("2024-01-10", model.Ledger{
		"2024-01-09": model.BoolValue(true), // before start
		"2024-01-10": model.BoolValue(true),
		"2024-01-11": model.BoolValue(false),
		"2024-01-12": model.BoolValue(true), // day 3 is past the end
	})
	o.Duration = 2

	r := CompletionRate(o, AllTime)

	assert.Equal(t, Rate{Tracked: 2, Completed: 1}, r)
	assert.Equal(t, 50.0, r.Percent())
}

func TestCompletionRateCounterUsesPositiveValues(t *testing.T) {
	o := boolObjective("2024-01-01", model.Ledger{
		"2024-01-01": model.NumberValue(3),
		"2024-01-02": model.NumberValue(0),
		"2024-01-03": model.NumberValue(0.5),
		"2024-01-04": model.NumberValue(0),
	})
	o.TrackingType = model.TrackingCounter

	r := CompletionRate(o, Window{Start: "2024-01-01", End: "2024-01-04"})

	assert.Equal(t, Rate{Tracked: 4, Completed: 2}, r)
	assert.Equal(t, 50.0, r.Percent())
}

func TestCategoryRatePoolsDays(t *testing.T) {
	a := boolObjective("2024-01-01", model.Ledger{})
	for d := model.Date("2024-01-01"); d.Before("2024-01-11"); d = d.AddDays(1) {
		a.Progress[d] = model.BoolValue(true)
	}
	b := boolObjective("2024-01-01", model.Ledger{})

	r := CategoryRate([]*model.Objective{a, b}, AllTime)

	assert.Equal(t, Rate{Tracked: 10, Completed: 10}, r)
	assert.Equal(t, 100.0, r.Percent())
}

func TestSummarizeToday(t *testing.T) {
	o := boolObjective("2024-01-01", model.Ledger{})

	s := Summarize([]*model.Objective{o}, "2024-01-15")

	assert.Equal(t, 1, s.TotalActiveToday)
	assert.Equal(t, 0, s.CompletedToday)
	assert.Equal(t, 1, s.ActiveObjectives)

	o.Progress["2024-01-15"] = model.BoolValue(true)
	s = Summarize([]*model.Objective{o}, "2024-01-15")
	assert.Equal(t, 1, s.CompletedToday)
}

func TestSummarizeTodayExcludesPausedAndExpired(t *testing.T) {
	paused := boolObjective("2024-01-01", model.Ledger{"2024-01-15": model.BoolValue(true)})
	paused.Status = model.ObjectiveStatusPaused
	expired := boolObjective("2023-01-01", model.Ledger{"2024-01-15": model.BoolValue(true)})

	s := Summarize([]*model.Objective{paused, expired}, "2024-01-15")

	assert.Equal(t, 2, s.TotalObjectives)
	assert.Equal(t, 1, s.ActiveObjectives)
	assert.Equal(t, 0, s.TotalActiveToday)
	assert.Equal(t, 0, s.CompletedToday)
}

func TestComputeFillsEveryCategory(t *testing.T) {
	o := boolObjective("2024-01-01", model.Ledger{
		"2024-01-01": model.BoolValue(true),
		"2024-01-02": model.BoolValue(false),
	})

	stats := Compute([]*model.Objective{o}, "2024-01-02")

	require.Len(t, stats.Categories, len(model.Categories))
	assert.Equal(t, 50.0, stats.GlobalCompletionRate)
	assert.Equal(t, 1, stats.Categories[model.CategorySpiritual].TotalObjectives)
	assert.Equal(t, Snapshot{}, stats.Categories[model.CategoryFinance])
}

func TestPerformersExcludeUntracked(t *testing.T) {
	mk := func(id string, done, total int) *model.Objective {
		o := boolObjective("2024-01-01", model.Ledger{})
		o.ID = id
		d := model.Date("2024-01-01")
		for i := 0; i < total; i++ {
			o.Progress[d] = model.BoolValue(i < done)
			d = d.AddDays(1)
		}
		return o
	}
	objs := []*model.Objective{
		mk("empty", 0, 0),
		mk("half", 1, 2),
		mk("full", 3, 3),
		mk("none", 0, 4),
		mk("third", 1, 3),
	}

	top, bottom := Performers(Rank(objs, Window{Start: "2024-01-01", End: "2024-01-10"}), 3)

	ids := func(ps []Performance) []string {
		var out []string
		for _, p := range ps {
			out = append(out, p.Objective.ID)
		}
		return out
	}
	assert.Equal(t, []string{"full", "half", "third"}, ids(top))
	assert.Equal(t, []string{"none", "third", "half"}, ids(bottom))
	assert.NotContains(t, ids(top), "empty")
	assert.NotContains(t, ids(bottom), "empty")
}

func TestPerformersEmpty(t *testing.T) {
	top, bottom := Performers(nil, 3)
	assert.Empty(t, top)
	assert.Empty(t, bottom)
}

func TestLastDays(t *testing.T) {
	w := LastDays("2024-03-02", 7)

	assert.Equal(t, Window{Start: "2024-02-25", End: "2024-03-02"}, w)
	days := w.Days()
	require.Len(t, days, 7)
	assert.Equal(t, model.Date("2024-03-02"), days[0])
	assert.Equal(t, model.Date("2024-02-25"), days[6])
}
