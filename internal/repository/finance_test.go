package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/objectifs/objectifs/internal/model"
)

func newFinance(userID string, typ model.FinanceType, amount string, date model.Date, category *string) *model.Finance {
	now := time.Now()
	return &model.Finance{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      string(typ) + " entry",
		Type:      typ,
		Amount:    decimal.RequireFromString(amount),
		Currency:  "FCFA",
		Date:      date,
		Category:  category,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestFinanceAggregates(t *testing.T) {
	database, user := setup(t)
	repo := NewFinanceRepository(database)

	food := "food"
	empty := ""
	for _, f := range []*model.Finance{
		newFinance(user.ID, model.FinanceIncome, "1000", "2024-03-01", nil),
		newFinance(user.ID, model.FinanceIncome, "250.50", "2024-03-15", nil),
		newFinance(user.ID, model.FinanceExpense, "100", "2024-03-02", &food),
		newFinance(user.ID, model.FinanceExpense, "50", "2024-03-03", &food),
		newFinance(user.ID, model.FinanceExpense, "30", "2024-03-04", nil),
		newFinance(user.ID, model.FinanceExpense, "20", "2024-03-05", &empty),
		newFinance(user.ID, model.FinanceExpense, "999", "2024-02-28", &food),
	} {
		require.NoError(t, repo.Create(f))
	}

	totals, err := repo.SumByType(user.ID, "2024-03-01", "2024-03-31")
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("1250.5").Equal(totals[model.FinanceIncome]), totals[model.FinanceIncome].String())
	assert.True(t, decimal.NewFromInt(200).Equal(totals[model.FinanceExpense]))
	_, ok := totals[model.FinanceSaving]
	assert.False(t, ok)

	byCategory, err := repo.ExpensesByCategory(user.ID, "2024-03-01", "2024-03-31")
	require.NoError(t, err)
	require.Len(t, byCategory, 2)
	assert.Equal(t, model.UncategorizedLabel, byCategory[0].Category)
	assert.True(t, decimal.NewFromInt(50).Equal(byCategory[0].Amount))
	assert.Equal(t, "food", byCategory[1].Category)
	assert.True(t, decimal.NewFromInt(150).Equal(byCategory[1].Amount))
}

func TestFinanceUpdateAndDelete(t *testing.T) {
	database, user := setup(t)
	repo := NewFinanceRepository(database)

	f := newFinance(user.ID, model.FinanceSaving, "10", "2024-03-01", nil)
	require.NoError(t, repo.Create(f))

	f.Amount = decimal.RequireFromString("12.25")
	f.Recurring = true
	require.NoError(t, repo.Update(f))

	got, err := repo.ByID(f.ID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("12.25").Equal(got.Amount))
	assert.True(t, got.Recurring)

	require.NoError(t, repo.Delete(f.ID))
	_, err = repo.ByID(f.ID)
	assert.ErrorIs(t, err, ErrFinanceNotFound)
}

func TestSettingsUpsert(t *testing.T) {
	database, user := setup(t)
	repo := NewSettingsRepository(database)

	_, err := repo.ByUserID(user.ID)
	assert.ErrorIs(t, err, ErrSettingsNotFound)

	now := time.Now()
	require.NoError(t, repo.Upsert(&model.Settings{UserID: user.ID, DefaultCurrency: "FCFA", Theme: "light", CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, repo.Upsert(&model.Settings{UserID: user.ID, DefaultCurrency: "EUR", Theme: "dark", CreatedAt: now, UpdatedAt: now}))

	s, err := repo.ByUserID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "EUR", s.DefaultCurrency)
	assert.Equal(t, "dark", s.Theme)
}
