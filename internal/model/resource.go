package model

import "time"

// Resource is a link or reference attached to an objective.
type Resource struct {
	ID          string    `db:"id" json:"id"`
	ObjectiveID string    `db:"objective_id" json:"objectiveId"`
	Title       string    `db:"title" json:"title"`
	Type        string    `db:"type" json:"type"`
	URL         string    `db:"url" json:"url"`
	Description *string   `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}
