package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/objectifs/objectifs/internal/model"
)

func TestObjectiveRoundTrip(t *testing.T) {
	database, user := setup(t)
	repo := NewObjectiveRepository(database)

	desc := "after fajr"
	target := 5.0
	o := newObjective(user.ID, model.TrackingBoolean)
	o.Description = &desc
	o.Target = &target
	o.Progress["2024-01-01"] = model.BoolValue(true)
	o.Progress["2024-01-02"] = model.BoolValue(false)
	o.Comments["2024-01-02"] = "sick"
	require.NoError(t, repo.Create(o))

	got, err := repo.ByID(o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.Name, got.Name)
	assert.Equal(t, model.Date("2024-01-01"), got.StartDate)
	require.NotNil(t, got.Description)
	assert.Equal(t, desc, *got.Description)
	require.NotNil(t, got.Target)
	assert.Equal(t, 5.0, *got.Target)
	assert.Equal(t, o.Progress, got.Progress)
	assert.Equal(t, o.Comments, got.Comments)
}

func TestObjectiveCounterValuesKeepNumbers(t *testing.T) {
	database, user := setup(t)
	repo := NewObjectiveRepository(database)

	o := newObjective(user.ID, model.TrackingCounter)
	o.Progress["2024-01-01"] = model.NumberValue(1)
	o.Progress["2024-01-02"] = model.NumberValue(2.5)
	require.NoError(t, repo.Create(o))

	got, err := repo.ByID(o.ID)
	require.NoError(t, err)
	assert.False(t, got.Progress["2024-01-01"].IsBool())
	assert.Equal(t, 2.5, got.Progress["2024-01-02"].Float())
}

func TestObjectivesListsOnlyOwner(t *testing.T) {
	database, user := setup(t)
	other := newUser(t, database)
	repo := NewObjectiveRepository(database)

	require.NoError(t, repo.Create(newObjective(user.ID, model.TrackingBoolean)))
	require.NoError(t, repo.Create(newObjective(user.ID, model.TrackingNumeric)))
	require.NoError(t, repo.Create(newObjective(other.ID, model.TrackingBoolean)))

	objs, err := repo.Objectives(user.ID)
	require.NoError(t, err)
	assert.Len(t, objs, 2)
	for _, o := range objs {
		assert.Equal(t, user.ID, o.UserID)
		assert.NotNil(t, o.Progress)
	}

	active, err := repo.ActiveBoolean()
	require.NoError(t, err)
	assert.Len(t, active, 2)
}

func TestFillProgressKeepsExistingEntries(t *testing.T) {
	database, user := setup(t)
	repo := NewObjectiveRepository(database)

	o := newObjective(user.ID, model.TrackingBoolean)
	require.NoError(t, repo.Create(o))
	require.NoError(t, repo.SetProgress(o.ID, "2024-01-02", model.BoolValue(true)))

	n, err := repo.FillProgress(o.ID, []model.Date{"2024-01-01", "2024-01-02", "2024-01-03"}, model.BoolValue(false))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	got, err := repo.ByID(o.ID)
	require.NoError(t, err)
	assert.True(t, got.Progress["2024-01-02"].Done(), "user value survives the fill")
	assert.Len(t, got.Progress, 3)

	n, err = repo.FillProgress(o.ID, []model.Date{"2024-01-01"}, model.BoolValue(false))
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSetCommentOverwrites(t *testing.T) {
	database, user := setup(t)
	repo := NewObjectiveRepository(database)

	o := newObjective(user.ID, model.TrackingBoolean)
	require.NoError(t, repo.Create(o))
	require.NoError(t, repo.SetComment(o.ID, "2024-01-01", "first"))
	require.NoError(t, repo.SetComment(o.ID, "2024-01-01", "second"))

	got, err := repo.ByID(o.ID)
	require.NoError(t, err)
	assert.Equal(t, model.CommentLedger{"2024-01-01": "second"}, got.Comments)
}

func TestUpdateWithLedgersReplaces(t *testing.T) {
	database, user := setup(t)
	repo := NewObjectiveRepository(database)

	o := newObjective(user.ID, model.TrackingBoolean)
	o.Progress["2024-01-01"] = model.BoolValue(true)
	require.NoError(t, repo.Create(o))

	o.Name = "Renamed"
	o.Progress = model.Ledger{"2024-01-05": model.BoolValue(false)}
	o.UpdatedAt = time.Now()
	require.NoError(t, repo.UpdateWithLedgers(o))

	got, err := repo.ByID(o.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	assert.Equal(t, model.Ledger{"2024-01-05": model.BoolValue(false)}, got.Progress)
}

func TestDeleteObjectiveCascades(t *testing.T) {
	database, user := setup(t)
	repo := NewObjectiveRepository(database)
	resources := NewResourceRepository(database)
	conversations := NewConversationRepository(database)

	o := newObjective(user.ID, model.TrackingBoolean)
	o.Progress["2024-01-01"] = model.BoolValue(true)
	o.Comments["2024-01-01"] = "note"
	require.NoError(t, repo.Create(o))

	res := &model.Resource{ID: uuid.New().String(), ObjectiveID: o.ID, Title: "Tafsir", Type: "book", URL: "https://example.com", CreatedAt: time.Now(), UpdatedAt: time.Now()}
	require.NoError(t, resources.Create(res))
	conv := &model.Conversation{ID: uuid.New().String(), UserID: user.ID, ObjectiveID: &o.ID, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	require.NoError(t, conversations.Create(conv))

	require.NoError(t, repo.Delete(o.ID))

	_, err := repo.ByID(o.ID)
	assert.ErrorIs(t, err, ErrObjectiveNotFound)
	_, err = resources.ByID(res.ID)
	assert.ErrorIs(t, err, ErrResourceNotFound)
	_, err = conversations.ByID(conv.ID)
	assert.ErrorIs(t, err, ErrConversationNotFound)

	var rows int
	require.NoError(t, database.Get(&rows, `SELECT COUNT(*) FROM objective_progress WHERE objective_id = $1`, o.ID))
	assert.Zero(t, rows)
	require.NoError(t, database.Get(&rows, `SELECT COUNT(*) FROM objective_comments WHERE objective_id = $1`, o.ID))
	assert.Zero(t, rows)

	assert.ErrorIs(t, repo.Delete(o.ID), ErrObjectiveNotFound)
}
