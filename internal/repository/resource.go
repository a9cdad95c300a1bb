package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/objectifs/objectifs/internal/model"
)

var (
	ErrResourceNotFound = errors.New("resource not found")
)

type ResourceRepository interface {
	Create(res *model.Resource) error
	ByID(id string) (*model.Resource, error)
	Resources(objectiveID string) ([]*model.Resource, error)
	Update(res *model.Resource) error
	Delete(id string) error
}

type resourceRepository struct {
	db *sqlx.DB
}

func NewResourceRepository(db *sqlx.DB) ResourceRepository {
	return &resourceRepository{db: db}
}

func (r *resourceRepository) Create(res *model.Resource) error {
	query := `INSERT INTO resources (id, objective_id, title, type, url, description, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(query,
		res.ID,
		res.ObjectiveID,
		res.Title,
		res.Type,
		res.URL,
		res.Description,
		res.CreatedAt,
		res.UpdatedAt,
	)
	return err
}

func (r *resourceRepository) ByID(id string) (*model.Resource, error) {
	res := &model.Resource{}
	err := r.db.Get(res, `SELECT * FROM resources WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, ErrResourceNotFound
	}
	return res, err
}

func (r *resourceRepository) Resources(objectiveID string) ([]*model.Resource, error) {
	var resources []*model.Resource
	query := `SELECT * FROM resources WHERE objective_id = $1 ORDER BY created_at DESC`

	err := r.db.Select(&resources, query, objectiveID)
	if err != nil {
		return nil, err
	}
	return resources, nil
}

func (r *resourceRepository) Update(res *model.Resource) error {
	query := `UPDATE resources SET title = $1, type = $2, url = $3, description = $4, updated_at = $5 WHERE id = $6`

	result, err := r.db.Exec(query, res.Title, res.Type, res.URL, res.Description, res.UpdatedAt, res.ID)
	if err != nil {
		return err
	}
	return expectRows(result, ErrResourceNotFound)
}

func (r *resourceRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM resources WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectRows(result, ErrResourceNotFound)
}
