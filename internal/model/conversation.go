package model

import "time"

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Conversation struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"userId"`
	ObjectiveID *string   `db:"objective_id" json:"objectiveId"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`

	Objective *ObjectiveRef `db:"-" json:"objective,omitempty"`
	Messages  []*Message    `db:"-" json:"messages"`
}

// ObjectiveRef is the slice of an objective embedded in conversation payloads.
type ObjectiveRef struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    Category `json:"category"`
	Description *string  `json:"description,omitempty"`
}

type Message struct {
	ID             string    `db:"id" json:"-"`
	ConversationID string    `db:"conversation_id" json:"-"`
	Position       int       `db:"position" json:"-"`
	Role           string    `db:"role" json:"role"`
	Content        string    `db:"content" json:"content"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
}

// NewsItem is a generated reading suggestion for an objective.
type NewsItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	Date        time.Time `json:"date"`
	Source      string    `json:"source"`
}
