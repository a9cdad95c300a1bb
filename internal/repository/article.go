package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/objectifs/objectifs/internal/model"
)

var (
	ErrArticleNotFound = errors.New("article not found")
)

type ArticleRepository interface {
	Create(a *model.Article) error
	ByID(id string) (*model.Article, error)
	Articles(category string) ([]*model.Article, error)
	Update(a *model.Article) error
	Delete(id string) error
}

type articleRepository struct {
	db *sqlx.DB
}

func NewArticleRepository(db *sqlx.DB) ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) Create(a *model.Article) error {
	query := `INSERT INTO articles (id, title, content, category, image, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.Exec(query, a.ID, a.Title, a.Content, a.Category, a.Image, a.CreatedAt, a.UpdatedAt)
	return err
}

func (r *articleRepository) ByID(id string) (*model.Article, error) {
	a := &model.Article{}
	err := r.db.Get(a, `SELECT * FROM articles WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, ErrArticleNotFound
	}
	return a, err
}

// Articles lists newest first. An empty category lists everything.
func (r *articleRepository) Articles(category string) ([]*model.Article, error) {
	articles := []*model.Article{}
	var err error
	if category == "" {
		err = r.db.Select(&articles, `SELECT * FROM articles ORDER BY created_at DESC`)
	} else {
		err = r.db.Select(&articles, `SELECT * FROM articles WHERE category = $1 ORDER BY created_at DESC`, category)
	}
	if err != nil {
		return nil, err
	}
	return articles, nil
}

func (r *articleRepository) Update(a *model.Article) error {
	query := `UPDATE articles SET title = $1, content = $2, category = $3, image = $4, updated_at = $5 WHERE id = $6`
	result, err := r.db.Exec(query, a.Title, a.Content, a.Category, a.Image, a.UpdatedAt, a.ID)
	if err != nil {
		return err
	}
	return expectRows(result, ErrArticleNotFound)
}

func (r *articleRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectRows(result, ErrArticleNotFound)
}
