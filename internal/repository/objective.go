package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/objectifs/objectifs/internal/db"
	"github.com/objectifs/objectifs/internal/model"
)

var (
	ErrObjectiveNotFound = errors.New("objective not found")
)

type ObjectiveRepository interface {
	Create(o *model.Objective) error
	ByID(id string) (*model.Objective, error)
	Objectives(userID string) ([]*model.Objective, error)
	ObjectivesByCategory(userID string, category model.Category) ([]*model.Objective, error)
	ActiveBoolean() ([]*model.Objective, error)
	Update(o *model.Objective) error
	UpdateWithLedgers(o *model.Objective) error
	SetProgress(objectiveID string, day model.Date, v model.Value) error
	SetComment(objectiveID string, day model.Date, comment string) error
	FillProgress(objectiveID string, days []model.Date, v model.Value) (int64, error)
	Delete(id string) error
}

type objectiveRepository struct {
	db *sqlx.DB
}

func NewObjectiveRepository(db *sqlx.DB) ObjectiveRepository {
	return &objectiveRepository{db: db}
}

type progressRow struct {
	ObjectiveID string     `db:"objective_id"`
	Day         model.Date `db:"day"`
	Value       float64    `db:"value"`
}

type commentRow struct {
	ObjectiveID string     `db:"objective_id"`
	Day         model.Date `db:"day"`
	Comment     string     `db:"comment"`
}

func (r *objectiveRepository) Create(o *model.Objective) error {
	return db.WithTx(r.db, func(tx *sqlx.Tx) error {
		query := `INSERT INTO objectives (id, user_id, name, description, category, tracking_type, frequency, target, status, start_date, duration, created_at, updated_at)
		          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

		_, err := tx.Exec(query,
			o.ID,
			o.UserID,
			o.Name,
			o.Description,
			o.Category,
			o.TrackingType,
			o.Frequency,
			o.Target,
			o.Status,
			o.StartDate,
			o.Duration,
			o.CreatedAt,
			o.UpdatedAt,
		)
		if err != nil {
			return err
		}

		return insertLedgers(tx, o)
	})
}

func (r *objectiveRepository) ByID(id string) (*model.Objective, error) {
	o := &model.Objective{}
	query := `SELECT * FROM objectives WHERE id = $1`

	err := r.db.Get(o, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrObjectiveNotFound
	}
	if err != nil {
		return nil, err
	}

	err = r.attachLedgers([]*model.Objective{o})
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *objectiveRepository) Objectives(userID string) ([]*model.Objective, error) {
	return r.selectWithLedgers(`SELECT * FROM objectives WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

func (r *objectiveRepository) ObjectivesByCategory(userID string, category model.Category) ([]*model.Objective, error) {
	return r.selectWithLedgers(`SELECT * FROM objectives WHERE user_id = $1 AND category = $2 ORDER BY created_at DESC`, userID, category)
}

// ActiveBoolean returns every objective the daily sweep may gap-fill.
func (r *objectiveRepository) ActiveBoolean() ([]*model.Objective, error) {
	return r.selectWithLedgers(`SELECT * FROM objectives WHERE status = $1 AND tracking_type = $2 ORDER BY id`,
		model.ObjectiveStatusActive, model.TrackingBoolean)
}

func (r *objectiveRepository) selectWithLedgers(query string, args ...any) ([]*model.Objective, error) {
	var objs []*model.Objective
	err := r.db.Select(&objs, query, args...)
	if err != nil {
		return nil, err
	}

	err = r.attachLedgers(objs)
	if err != nil {
		return nil, err
	}
	return objs, nil
}

// attachLedgers loads progress and comments for objs in two queries.
func (r *objectiveRepository) attachLedgers(objs []*model.Objective) error {
	if len(objs) == 0 {
		return nil
	}

	byID := make(map[string]*model.Objective, len(objs))
	ids := make([]string, 0, len(objs))
	for _, o := range objs {
		o.Progress = model.Ledger{}
		o.Comments = model.CommentLedger{}
		byID[o.ID] = o
		ids = append(ids, o.ID)
	}

	query, args, err := sqlx.In(`SELECT objective_id, day, value FROM objective_progress WHERE objective_id IN (?)`, ids)
	if err != nil {
		return err
	}
	var progress []progressRow
	err = r.db.Select(&progress, r.db.Rebind(query), args...)
	if err != nil {
		return err
	}
	for _, row := range progress {
		o := byID[row.ObjectiveID]
		o.Progress[row.Day] = model.StoredValue(o.TrackingType, row.Value)
	}

	query, args, err = sqlx.In(`SELECT objective_id, day, comment FROM objective_comments WHERE objective_id IN (?)`, ids)
	if err != nil {
		return err
	}
	var comments []commentRow
	err = r.db.Select(&comments, r.db.Rebind(query), args...)
	if err != nil {
		return err
	}
	for _, row := range comments {
		byID[row.ObjectiveID].Comments[row.Day] = row.Comment
	}

	return nil
}

func (r *objectiveRepository) Update(o *model.Objective) error {
	return db.WithTx(r.db, func(tx *sqlx.Tx) error {
		return updateColumns(tx, o)
	})
}

// UpdateWithLedgers updates the columns and replaces both ledgers.
func (r *objectiveRepository) UpdateWithLedgers(o *model.Objective) error {
	return db.WithTx(r.db, func(tx *sqlx.Tx) error {
		err := updateColumns(tx, o)
		if err != nil {
			return err
		}

		_, err = tx.Exec(`DELETE FROM objective_progress WHERE objective_id = $1`, o.ID)
		if err != nil {
			return err
		}
		_, err = tx.Exec(`DELETE FROM objective_comments WHERE objective_id = $1`, o.ID)
		if err != nil {
			return err
		}

		return insertLedgers(tx, o)
	})
}

func updateColumns(tx *sqlx.Tx, o *model.Objective) error {
	query := `UPDATE objectives
	          SET name = $1, description = $2, category = $3, tracking_type = $4, frequency = $5,
	              target = $6, status = $7, start_date = $8, duration = $9, updated_at = $10
	          WHERE id = $11`

	result, err := tx.Exec(query,
		o.Name,
		o.Description,
		o.Category,
		o.TrackingType,
		o.Frequency,
		o.Target,
		o.Status,
		o.StartDate,
		o.Duration,
		o.UpdatedAt,
		o.ID,
	)
	if err != nil {
		return err
	}
	return expectRows(result, ErrObjectiveNotFound)
}

func insertLedgers(tx *sqlx.Tx, o *model.Objective) error {
	for _, day := range o.Progress.Dates() {
		_, err := tx.Exec(`INSERT INTO objective_progress (objective_id, day, value) VALUES ($1, $2, $3)`,
			o.ID, day, o.Progress[day].Float())
		if err != nil {
			return err
		}
	}
	for day, comment := range o.Comments {
		_, err := tx.Exec(`INSERT INTO objective_comments (objective_id, day, comment) VALUES ($1, $2, $3)`,
			o.ID, day, comment)
		if err != nil {
			return err
		}
	}
	return nil
}

// SetProgress writes a single ledger entry, overwriting the day if present.
func (r *objectiveRepository) SetProgress(objectiveID string, day model.Date, v model.Value) error {
	return db.WithTx(r.db, func(tx *sqlx.Tx) error {
		query := `INSERT INTO objective_progress (objective_id, day, value) VALUES ($1, $2, $3)
		          ON CONFLICT (objective_id, day) DO UPDATE SET value = excluded.value`
		_, err := tx.Exec(query, objectiveID, day, v.Float())
		if err != nil {
			return err
		}
		return touch(tx, objectiveID)
	})
}

func (r *objectiveRepository) SetComment(objectiveID string, day model.Date, comment string) error {
	return db.WithTx(r.db, func(tx *sqlx.Tx) error {
		query := `INSERT INTO objective_comments (objective_id, day, comment) VALUES ($1, $2, $3)
		          ON CONFLICT (objective_id, day) DO UPDATE SET comment = excluded.comment`
		_, err := tx.Exec(query, objectiveID, day, comment)
		if err != nil {
			return err
		}
		return touch(tx, objectiveID)
	})
}

// FillProgress inserts v for each day that has no entry yet. Days written
// concurrently by someone else keep their value. Returns the rows inserted.
func (r *objectiveRepository) FillProgress(objectiveID string, days []model.Date, v model.Value) (int64, error) {
	var inserted int64
	err := db.WithTx(r.db, func(tx *sqlx.Tx) error {
		query := `INSERT INTO objective_progress (objective_id, day, value) VALUES ($1, $2, $3)
		          ON CONFLICT (objective_id, day) DO NOTHING`
		for _, day := range days {
			result, err := tx.Exec(query, objectiveID, day, v.Float())
			if err != nil {
				return err
			}
			n, err := result.RowsAffected()
			if err != nil {
				return err
			}
			inserted += n
		}
		if inserted == 0 {
			return nil
		}
		return touch(tx, objectiveID)
	})
	return inserted, err
}

func touch(tx *sqlx.Tx, objectiveID string) error {
	result, err := tx.Exec(`UPDATE objectives SET updated_at = $1 WHERE id = $2`, time.Now(), objectiveID)
	if err != nil {
		return err
	}
	return expectRows(result, ErrObjectiveNotFound)
}

// Delete removes the objective. Ledgers, resources and conversations go
// with it through ON DELETE CASCADE.
func (r *objectiveRepository) Delete(id string) error {
	query := `DELETE FROM objectives WHERE id = $1`
	result, err := r.db.Exec(query, id)
	if err != nil {
		return err
	}
	return expectRows(result, ErrObjectiveNotFound)
}
