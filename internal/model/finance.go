package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type FinanceType string

const (
	FinanceIncome     FinanceType = "income"
	FinanceExpense    FinanceType = "expense"
	FinanceSaving     FinanceType = "saving"
	FinanceInvestment FinanceType = "investment"
)

var FinanceTypes = []FinanceType{FinanceIncome, FinanceExpense, FinanceSaving, FinanceInvestment}

func (t FinanceType) Valid() bool {
	for _, known := range FinanceTypes {
		if t == known {
			return true
		}
	}
	return false
}

const UncategorizedLabel = "Uncategorized"

type Finance struct {
	ID          string          `db:"id" json:"id"`
	UserID      string          `db:"user_id" json:"userId"`
	Name        string          `db:"name" json:"name"`
	Type        FinanceType     `db:"type" json:"type"`
	Amount      decimal.Decimal `db:"amount" json:"amount"`
	Currency    string          `db:"currency" json:"currency"`
	Date        Date            `db:"date" json:"date"`
	Category    *string         `db:"category" json:"category"`
	Description *string         `db:"description" json:"description"`
	Recurring   bool            `db:"recurring" json:"recurring"`
	Frequency   *string         `db:"frequency" json:"frequency"`
	CreatedAt   time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updatedAt"`
}

// CategoryLabel falls back to UncategorizedLabel for blank categories.
func (f *Finance) CategoryLabel() string {
	if f.Category == nil || *f.Category == "" {
		return UncategorizedLabel
	}
	return *f.Category
}

// FinanceStats covers one calendar month plus a six month trend.
type FinanceStats struct {
	Month              string           `json:"month"`
	Income             decimal.Decimal  `json:"income"`
	Expense            decimal.Decimal  `json:"expense"`
	Saving             decimal.Decimal  `json:"saving"`
	Investment         decimal.Decimal  `json:"investment"`
	ExpensesByCategory []CategoryAmount `json:"expensesByCategory"`
	Evolution          []MonthlyTotals  `json:"evolution"`
}

type CategoryAmount struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

type MonthlyTotals struct {
	Label   string          `json:"label"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}
