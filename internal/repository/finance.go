package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/objectifs/objectifs/internal/model"
)

var (
	ErrFinanceNotFound  = errors.New("finance entry not found")
	ErrSettingsNotFound = errors.New("settings not found")
)

type FinanceRepository interface {
	Create(f *model.Finance) error
	ByID(id string) (*model.Finance, error)
	Finances(userID string) ([]*model.Finance, error)
	Update(f *model.Finance) error
	Delete(id string) error
	SumByType(userID string, from, to model.Date) (map[model.FinanceType]decimal.Decimal, error)
	ExpensesByCategory(userID string, from, to model.Date) ([]model.CategoryAmount, error)
}

type financeRepository struct {
	db *sqlx.DB
}

func NewFinanceRepository(db *sqlx.DB) FinanceRepository {
	return &financeRepository{db: db}
}

func (r *financeRepository) Create(f *model.Finance) error {
	query := `INSERT INTO finances (id, user_id, name, type, amount, currency, date, category, description, recurring, frequency, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.db.Exec(query,
		f.ID,
		f.UserID,
		f.Name,
		f.Type,
		f.Amount,
		f.Currency,
		f.Date,
		f.Category,
		f.Description,
		f.Recurring,
		f.Frequency,
		f.CreatedAt,
		f.UpdatedAt,
	)
	return err
}

func (r *financeRepository) ByID(id string) (*model.Finance, error) {
	f := &model.Finance{}
	query := `SELECT * FROM finances WHERE id = $1`

	err := r.db.Get(f, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrFinanceNotFound
	}

	return f, err
}

func (r *financeRepository) Finances(userID string) ([]*model.Finance, error) {
	var finances []*model.Finance
	query := `SELECT * FROM finances WHERE user_id = $1 ORDER BY date DESC, created_at DESC`

	err := r.db.Select(&finances, query, userID)
	if err != nil {
		return nil, err
	}

	return finances, nil
}

func (r *financeRepository) Update(f *model.Finance) error {
	query := `UPDATE finances
	          SET name = $1, type = $2, amount = $3, currency = $4, date = $5, category = $6,
	              description = $7, recurring = $8, frequency = $9, updated_at = $10
	          WHERE id = $11`

	result, err := r.db.Exec(query,
		f.Name,
		f.Type,
		f.Amount,
		f.Currency,
		f.Date,
		f.Category,
		f.Description,
		f.Recurring,
		f.Frequency,
		f.UpdatedAt,
		f.ID,
	)
	if err != nil {
		return err
	}
	return expectRows(result, ErrFinanceNotFound)
}

func (r *financeRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM finances WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectRows(result, ErrFinanceNotFound)
}

type amountRow struct {
	Label  sql.NullString `db:"label"`
	Amount string         `db:"amount"`
}

// SumByType totals amounts per type for dates in [from, to]. Types without
// entries are absent from the map.
func (r *financeRepository) SumByType(userID string, from, to model.Date) (map[model.FinanceType]decimal.Decimal, error) {
	var rows []amountRow
	query := `SELECT type AS label, CAST(SUM(amount) AS TEXT) AS amount FROM finances
	          WHERE user_id = $1 AND date >= $2 AND date <= $3
	          GROUP BY type`

	err := r.db.Select(&rows, query, userID, from, to)
	if err != nil {
		return nil, err
	}

	totals := make(map[model.FinanceType]decimal.Decimal, len(rows))
	for _, row := range rows {
		amount, err := decimal.NewFromString(row.Amount)
		if err != nil {
			return nil, err
		}
		totals[model.FinanceType(row.Label.String)] = amount
	}
	return totals, nil
}

// ExpensesByCategory groups expense totals for dates in [from, to]. Entries
// without a category are pooled under model.UncategorizedLabel.
func (r *financeRepository) ExpensesByCategory(userID string, from, to model.Date) ([]model.CategoryAmount, error) {
	var rows []amountRow
	query := `SELECT COALESCE(NULLIF(category, ''), $1) AS label, CAST(SUM(amount) AS TEXT) AS amount FROM finances
	          WHERE user_id = $2 AND type = $3 AND date >= $4 AND date <= $5
	          GROUP BY 1
	          ORDER BY 1`

	err := r.db.Select(&rows, query, model.UncategorizedLabel, userID, model.FinanceExpense, from, to)
	if err != nil {
		return nil, err
	}

	out := make([]model.CategoryAmount, 0, len(rows))
	for _, row := range rows {
		amount, err := decimal.NewFromString(row.Amount)
		if err != nil {
			return nil, err
		}
		out = append(out, model.CategoryAmount{Category: row.Label.String, Amount: amount})
	}
	return out, nil
}

type SettingsRepository interface {
	ByUserID(userID string) (*model.Settings, error)
	Upsert(s *model.Settings) error
}

type settingsRepository struct {
	db *sqlx.DB
}

func NewSettingsRepository(db *sqlx.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) ByUserID(userID string) (*model.Settings, error) {
	s := &model.Settings{}
	err := r.db.Get(s, `SELECT * FROM settings WHERE user_id = $1`, userID)
	if err == sql.ErrNoRows {
		return nil, ErrSettingsNotFound
	}
	return s, err
}

func (r *settingsRepository) Upsert(s *model.Settings) error {
	query := `INSERT INTO settings (user_id, default_currency, theme, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5)
	          ON CONFLICT (user_id) DO UPDATE
	          SET default_currency = excluded.default_currency, theme = excluded.theme, updated_at = excluded.updated_at`

	_, err := r.db.Exec(query, s.UserID, s.DefaultCurrency, s.Theme, s.CreatedAt, s.UpdatedAt)
	return err
}
