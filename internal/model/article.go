package model

import "time"

type Article struct {
	ID        string    `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Content   string    `db:"content" json:"content"`
	Category  string    `db:"category" json:"category"`
	Image     *string   `db:"image" json:"image"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`

	// Rendered from Content on read
	ContentHTML string         `db:"-" json:"contentHtml"`
	Meta        map[string]any `db:"-" json:"meta,omitempty"`
}
