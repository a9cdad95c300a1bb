package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/objectifs/objectifs/internal/db"
	"github.com/objectifs/objectifs/internal/model"
)

var (
	ErrConversationNotFound = errors.New("conversation not found")
)

type ConversationRepository interface {
	Create(c *model.Conversation) error
	ByID(id string) (*model.Conversation, error)
	Conversations(userID string) ([]*model.Conversation, error)
	AppendMessages(conversationID string, messages ...*model.Message) error
	Delete(id string) error
}

type conversationRepository struct {
	db *sqlx.DB
}

func NewConversationRepository(db *sqlx.DB) ConversationRepository {
	return &conversationRepository{db: db}
}

func (r *conversationRepository) Create(c *model.Conversation) error {
	query := `INSERT INTO conversations (id, user_id, objective_id, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.Exec(query, c.ID, c.UserID, c.ObjectiveID, c.CreatedAt, c.UpdatedAt)
	return err
}

// ByID loads the conversation with its messages in order.
func (r *conversationRepository) ByID(id string) (*model.Conversation, error) {
	c := &model.Conversation{}
	err := r.db.Get(c, `SELECT * FROM conversations WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, ErrConversationNotFound
	}
	if err != nil {
		return nil, err
	}

	c.Messages = []*model.Message{}
	err = r.db.Select(&c.Messages, `SELECT * FROM conversation_messages WHERE conversation_id = $1 ORDER BY position`, id)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Conversations lists a user's conversations, most recently active first.
// Messages are not loaded.
func (r *conversationRepository) Conversations(userID string) ([]*model.Conversation, error) {
	var conversations []*model.Conversation
	query := `SELECT * FROM conversations WHERE user_id = $1 ORDER BY updated_at DESC`

	err := r.db.Select(&conversations, query, userID)
	if err != nil {
		return nil, err
	}
	return conversations, nil
}

// AppendMessages adds messages after the current last one and bumps updated_at.
func (r *conversationRepository) AppendMessages(conversationID string, messages ...*model.Message) error {
	return db.WithTx(r.db, func(tx *sqlx.Tx) error {
		var next int
		err := tx.Get(&next, `SELECT COALESCE(MAX(position), 0) + 1 FROM conversation_messages WHERE conversation_id = $1`, conversationID)
		if err != nil {
			return err
		}

		now := time.Now()
		query := `INSERT INTO conversation_messages (id, conversation_id, position, role, content, created_at)
		          VALUES ($1, $2, $3, $4, $5, $6)`
		for _, m := range messages {
			if m.ID == "" {
				m.ID = uuid.New().String()
			}
			if m.CreatedAt.IsZero() {
				m.CreatedAt = now
			}
			m.ConversationID = conversationID
			m.Position = next
			next++

			_, err := tx.Exec(query, m.ID, m.ConversationID, m.Position, m.Role, m.Content, m.CreatedAt)
			if err != nil {
				return err
			}
		}

		result, err := tx.Exec(`UPDATE conversations SET updated_at = $1 WHERE id = $2`, now, conversationID)
		if err != nil {
			return err
		}
		return expectRows(result, ErrConversationNotFound)
	})
}

func (r *conversationRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM conversations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectRows(result, ErrConversationNotFound)
}
