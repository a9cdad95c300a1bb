package service

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/objectifs/objectifs/internal/apperr"
	"github.com/objectifs/objectifs/internal/db/dbtest"
	"github.com/objectifs/objectifs/internal/model"
	"github.com/objectifs/objectifs/internal/repository"
)

func newFinanceService(t *testing.T) (*FinanceService, *model.User, *model.User) {
	t.Helper()
	database := dbtest.New(t)
	svc := NewFinanceService(
		repository.NewFinanceRepository(database),
		repository.NewSettingsRepository(database),
		"FCFA",
		clock,
	)
	return svc, newUser(t, database, model.UserRoleUser), newUser(t, database, model.UserRoleUser)
}

func amount(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestCreateFinanceDefaults(t *testing.T) {
	svc, user, _ := newFinanceService(t)

	f, err := svc.Create(user.ID, CreateFinanceInput{
		Name:   "Salary",
		Type:   model.FinanceIncome,
		Amount: amount("350000"),
	})
	require.NoError(t, err)
	assert.Equal(t, "FCFA", f.Currency)
	assert.Equal(t, testToday, f.Date)

	settings, err := svc.Settings(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "FCFA", settings.DefaultCurrency)
	assert.Equal(t, model.DefaultTheme, settings.Theme)
}

func TestCreateFinanceUsesSettingsCurrency(t *testing.T) {
	svc, user, _ := newFinanceService(t)

	_, err := svc.UpdateSettings(user.ID, UpdateSettingsInput{DefaultCurrency: model.Set("EUR")})
	require.NoError(t, err)

	f, err := svc.Create(user.ID, CreateFinanceInput{Name: "Rent", Type: model.FinanceExpense, Amount: amount("450")})
	require.NoError(t, err)
	assert.Equal(t, "EUR", f.Currency)
}

func TestCreateFinanceValidation(t *testing.T) {
	svc, user, _ := newFinanceService(t)

	tests := []CreateFinanceInput{
		{Name: "Salary", Type: model.FinanceIncome},
		{Name: "", Type: model.FinanceIncome, Amount: amount("1")},
		{Name: "Salary", Type: "gift", Amount: amount("1")},
		{Name: "Salary", Type: model.FinanceIncome, Amount: amount("-1")},
		{Name: "Salary", Type: model.FinanceIncome, Amount: amount("1"), Date: "2024-13-01"},
	}
	for _, in := range tests {
		_, err := svc.Create(user.ID, in)
		assert.ErrorIs(t, err, apperr.ErrValidation, "%+v", in)
	}
}

func TestUpdateFinanceMerges(t *testing.T) {
	svc, user, intruder := newFinanceService(t)

	f, err := svc.Create(user.ID, CreateFinanceInput{
		Name:        "Groceries",
		Type:        model.FinanceExpense,
		Amount:      amount("12000"),
		Category:    ptr("food"),
		Description: ptr("weekly market"),
	})
	require.NoError(t, err)

	var in UpdateFinanceInput
	require.NoError(t, json.Unmarshal([]byte(`{"name": "", "amount": "15000", "category": null}`), &in))

	updated, err := svc.Update(user.ID, f.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "Groceries", updated.Name)
	assert.True(t, decimal.RequireFromString("15000").Equal(updated.Amount))
	assert.Nil(t, updated.Category)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "weekly market", *updated.Description)

	_, err = svc.Update(intruder.ID, f.ID, in)
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
	err = svc.Delete(intruder.ID, f.ID)
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)

	require.NoError(t, svc.Delete(user.ID, f.ID))
	_, err = svc.ByID(user.ID, f.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestFinanceStats(t *testing.T) {
	svc, user, other := newFinanceService(t)

	entries := []CreateFinanceInput{
		{Name: "Salary", Type: model.FinanceIncome, Amount: amount("1000"), Date: "2024-03-01"},
		{Name: "Market", Type: model.FinanceExpense, Amount: amount("150"), Date: "2024-03-02", Category: ptr("food")},
		{Name: "Taxi", Type: model.FinanceExpense, Amount: amount("50"), Date: "2024-03-05"},
		{Name: "Tontine", Type: model.FinanceSaving, Amount: amount("100"), Date: "2024-03-06"},
		{Name: "Salary", Type: model.FinanceIncome, Amount: amount("900"), Date: "2024-01-31"},
		{Name: "Rent", Type: model.FinanceExpense, Amount: amount("300"), Date: "2023-10-01"},
		{Name: "Too old", Type: model.FinanceIncome, Amount: amount("5"), Date: "2023-09-30"},
	}
	for _, in := range entries {
		_, err := svc.Create(user.ID, in)
		require.NoError(t, err)
	}
	_, err := svc.Create(other.ID, CreateFinanceInput{Name: "Other", Type: model.FinanceIncome, Amount: amount("999"), Date: "2024-03-03"})
	require.NoError(t, err)

	stats, err := svc.Stats(user.ID)
	require.NoError(t, err)

	assert.Equal(t, "3/2024", stats.Month)
	assert.Equal(t, "1000", stats.Income.String())
	assert.Equal(t, "200", stats.Expense.String())
	assert.Equal(t, "100", stats.Saving.String())
	assert.True(t, stats.Investment.IsZero())

	require.Len(t, stats.ExpensesByCategory, 2)
	assert.Equal(t, model.UncategorizedLabel, stats.ExpensesByCategory[0].Category)
	assert.Equal(t, "food", stats.ExpensesByCategory[1].Category)

	require.Len(t, stats.Evolution, 6)
	labels := make([]string, 0, len(stats.Evolution))
	for _, m := range stats.Evolution {
		labels = append(labels, m.Label)
	}
	assert.Equal(t, []string{"10/2023", "11/2023", "12/2023", "1/2024", "2/2024", "3/2024"}, labels)
	assert.Equal(t, "300", stats.Evolution[0].Expense.String())
	assert.Equal(t, "900", stats.Evolution[3].Income.String())
	assert.Equal(t, "1000", stats.Evolution[5].Income.String())
}
