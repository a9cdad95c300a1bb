package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/objectifs/objectifs/internal/db/dbtest"
	"github.com/objectifs/objectifs/internal/model"
)

func newUser(t *testing.T, database *sqlx.DB) *model.User {
	t.Helper()
	user := &model.User{
		ID:           uuid.New().String(),
		Name:         "Test User",
		Email:        uuid.New().String() + "@example.com",
		PasswordHash: "hash",
		Role:         model.UserRoleUser,
		CreatedAt:    time.Now(),
	}
	require.NoError(t, NewUserRepository(database).Create(user))
	return user
}

func newObjective(userID string, tracking model.TrackingType) *model.Objective {
	now := time.Now()
	return &model.Objective{
		ID:           uuid.New().String(),
		UserID:       userID,
		Name:         "Read Quran",
		Category:     model.CategorySpiritual,
		TrackingType: tracking,
		Frequency:    model.FrequencyDaily,
		Status:       model.ObjectiveStatusActive,
		StartDate:    "2024-01-01",
		Duration:     model.DefaultDuration,
		Progress:     model.Ledger{},
		Comments:     model.CommentLedger{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func setup(t *testing.T) (*sqlx.DB, *model.User) {
	database := dbtest.New(t)
	return database, newUser(t, database)
}
