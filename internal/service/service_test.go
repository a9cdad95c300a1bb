package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/objectifs/objectifs/internal/db/dbtest"
	"github.com/objectifs/objectifs/internal/model"
	"github.com/objectifs/objectifs/internal/repository"
)

// Sunday 10 March 2024, mid-morning.
var testNow = time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)

const testToday = model.Date("2024-03-10")

func clock() time.Time { return testNow }

func newUser(t *testing.T, database *sqlx.DB, role string) *model.User {
	t.Helper()
	user := &model.User{
		ID:           uuid.New().String(),
		Name:         "Aminata Diallo",
		Email:        uuid.New().String() + "@example.com",
		PasswordHash: "hash",
		Role:         role,
		CreatedAt:    testNow,
	}
	require.NoError(t, repository.NewUserRepository(database).Create(user))
	return user
}

func newObjectiveService(t *testing.T) (*sqlx.DB, *ObjectiveService, *model.User) {
	t.Helper()
	database := dbtest.New(t)
	svc := NewObjectiveService(repository.NewObjectiveRepository(database), clock)
	return database, svc, newUser(t, database, model.UserRoleUser)
}

func booleanInput(name string, start model.Date) CreateObjectiveInput {
	return CreateObjectiveInput{
		Name:         name,
		Category:     model.CategorySpiritual,
		TrackingType: model.TrackingBoolean,
		Frequency:    model.FrequencyDaily,
		StartDate:    start,
	}
}

func ptr[T any](v T) *T { return &v }
