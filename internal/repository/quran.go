package repository

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/objectifs/objectifs/internal/db"
	"github.com/objectifs/objectifs/internal/model"
)

var (
	ErrVerseNotFound = errors.New("verse not found")
)

type QuranRepository interface {
	Verses(surah int) ([]*model.Verse, error)
	Verse(surah, verse int) (*model.Verse, error)
	Search(term string) ([]*model.Verse, error)
	UpsertVerses(verses []*model.Verse) error
}

type quranRepository struct {
	db *sqlx.DB
}

func NewQuranRepository(db *sqlx.DB) QuranRepository {
	return &quranRepository{db: db}
}

func (r *quranRepository) Verses(surah int) ([]*model.Verse, error) {
	verses := []*model.Verse{}
	err := r.db.Select(&verses, `SELECT * FROM quran_verses WHERE surah = $1 ORDER BY verse`, surah)
	if err != nil {
		return nil, err
	}
	return verses, nil
}

func (r *quranRepository) Verse(surah, verse int) (*model.Verse, error) {
	v := &model.Verse{}
	err := r.db.Get(v, `SELECT * FROM quran_verses WHERE surah = $1 AND verse = $2`, surah, verse)
	if err == sql.ErrNoRows {
		return nil, ErrVerseNotFound
	}
	return v, err
}

// Search matches term case-insensitively against the Arabic text and the
// translation.
func (r *quranRepository) Search(term string) ([]*model.Verse, error) {
	pattern := "%" + escapeLike(strings.ToLower(term)) + "%"
	query := `SELECT * FROM quran_verses
	          WHERE LOWER(arabic_text) LIKE $1 ESCAPE '\' OR LOWER(translation) LIKE $1 ESCAPE '\'
	          ORDER BY surah, verse`

	verses := []*model.Verse{}
	err := r.db.Select(&verses, query, pattern)
	if err != nil {
		return nil, err
	}
	return verses, nil
}

// UpsertVerses loads verses in a single transaction, replacing text for
// verses already present.
func (r *quranRepository) UpsertVerses(verses []*model.Verse) error {
	return db.WithTx(r.db, func(tx *sqlx.Tx) error {
		query := `INSERT INTO quran_verses (id, surah, verse, arabic_text, translation) VALUES ($1, $2, $3, $4, $5)
		          ON CONFLICT (surah, verse) DO UPDATE SET arabic_text = excluded.arabic_text, translation = excluded.translation`
		for _, v := range verses {
			if v.ID == "" {
				v.ID = uuid.New().String()
			}
			_, err := tx.Exec(query, v.ID, v.Surah, v.Verse, v.Arabic, v.Translation)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
