package model

import (
	"time"
)

type Category string

const (
	CategorySpiritual    Category = "spiritual"
	CategoryProfessional Category = "professional"
	CategoryPersonal     Category = "personal"
	CategoryFinance      Category = "finance"
)

// Categories lists every category in report order.
var Categories = []Category{
	CategorySpiritual,
	CategoryProfessional,
	CategoryPersonal,
	CategoryFinance,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

type TrackingType string

const (
	TrackingBoolean TrackingType = "boolean"
	TrackingCounter TrackingType = "counter"
	TrackingNumeric TrackingType = "numeric"
)

func (t TrackingType) Valid() bool {
	switch t {
	case TrackingBoolean, TrackingCounter, TrackingNumeric:
		return true
	}
	return false
}

type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	}
	return false
}

type ObjectiveStatus string

const (
	ObjectiveStatusActive    ObjectiveStatus = "active"
	ObjectiveStatusPaused    ObjectiveStatus = "paused"
	ObjectiveStatusCompleted ObjectiveStatus = "completed"
)

func (s ObjectiveStatus) Valid() bool {
	switch s {
	case ObjectiveStatusActive, ObjectiveStatusPaused, ObjectiveStatusCompleted:
		return true
	}
	return false
}

const DefaultDuration = 90

type Objective struct {
	ID           string          `db:"id" json:"id"`
	UserID       string          `db:"user_id" json:"userId"`
	Name         string          `db:"name" json:"name"`
	Description  *string         `db:"description" json:"description"`
	Category     Category        `db:"category" json:"category"`
	TrackingType TrackingType    `db:"tracking_type" json:"trackingType"`
	Frequency    Frequency       `db:"frequency" json:"frequency"`
	Target       *float64        `db:"target" json:"target"`
	Status       ObjectiveStatus `db:"status" json:"status"`
	StartDate    Date            `db:"start_date" json:"startDate"`
	Duration     int             `db:"duration" json:"duration"`
	CreatedAt    time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updatedAt"`

	// Loaded from objective_progress / objective_comments
	Progress Ledger        `db:"-" json:"progress"`
	Comments CommentLedger `db:"-" json:"comments"`
}

// EndDate is the first day after the active window.
func (o *Objective) EndDate() Date {
	return o.StartDate.AddDays(o.Duration)
}

// InWindow reports whether d falls inside [StartDate, StartDate+Duration).
func (o *Objective) InWindow(d Date) bool {
	return !d.Before(o.StartDate) && d.Before(o.EndDate())
}

func (o *Objective) IsActive() bool {
	return o.Status == ObjectiveStatusActive
}
