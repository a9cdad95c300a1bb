// Package progress holds the ledger arithmetic behind objectives: gap-filling
// elapsed days and computing completion rates.
package progress

import (
	"github.com/objectifs/objectifs/internal/model"
)

// Reconcile records false for every day in [StartDate, today) that has no
// entry yet. Only active boolean objectives are filled; counters and numeric
// objectives have no meaningful default. Today is left for the user.
//
// The ledger is modified in place and the inserted dates are returned in
// ascending order. A second call with the same today inserts nothing.
func Reconcile(o *model.Objective, today model.Date) []model.Date {
	if o.TrackingType != model.TrackingBoolean || !o.IsActive() {
		return nil
	}
	if !o.StartDate.Valid() || !today.Valid() {
		return nil
	}
	if o.Progress == nil {
		o.Progress = model.Ledger{}
	}

	var filled []model.Date
	for d := o.StartDate; d.Before(today); d = d.AddDays(1) {
		if _, ok := o.Progress[d]; ok {
			continue
		}
		o.Progress[d] = model.BoolValue(false)
		filled = append(filled, d)
	}
	return filled
}

// Revert removes dates previously inserted by Reconcile.
func Revert(o *model.Objective, filled []model.Date) {
	for _, d := range filled {
		delete(o.Progress, d)
	}
}
