package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/objectifs/objectifs/internal/apperr"
	"github.com/objectifs/objectifs/internal/model"
	"github.com/objectifs/objectifs/internal/repository"
	"github.com/objectifs/objectifs/internal/validation"
)

const evolutionMonths = 6

type FinanceService struct {
	repo            repository.FinanceRepository
	settingsRepo    repository.SettingsRepository
	defaultCurrency string
	now             func() time.Time
}

func NewFinanceService(
	repo repository.FinanceRepository,
	settingsRepo repository.SettingsRepository,
	defaultCurrency string,
	now func() time.Time,
) *FinanceService {
	return &FinanceService{
		repo:            repo,
		settingsRepo:    settingsRepo,
		defaultCurrency: defaultCurrency,
		now:             clockOrNow(now),
	}
}

type CreateFinanceInput struct {
	Name        string            `json:"name"`
	Type        model.FinanceType `json:"type"`
	Amount      *decimal.Decimal  `json:"amount"`
	Currency    string            `json:"currency"`
	Date        model.Date        `json:"date"`
	Category    *string           `json:"category"`
	Description *string           `json:"description"`
	Recurring   bool              `json:"recurring"`
	Frequency   *string           `json:"frequency"`
}

type UpdateFinanceInput struct {
	Name        model.Patch[string]            `json:"name"`
	Type        model.Patch[model.FinanceType] `json:"type"`
	Amount      model.Patch[decimal.Decimal]   `json:"amount"`
	Currency    model.Patch[string]            `json:"currency"`
	Date        model.Patch[model.Date]        `json:"date"`
	Category    model.Patch[string]            `json:"category"`
	Description model.Patch[string]            `json:"description"`
	Recurring   model.Patch[bool]              `json:"recurring"`
	Frequency   model.Patch[string]            `json:"frequency"`
}

type UpdateSettingsInput struct {
	DefaultCurrency model.Patch[string] `json:"defaultCurrency"`
	Theme           model.Patch[string] `json:"theme"`
}

// Finances lists the user's entries, most recent date first.
func (s *FinanceService) Finances(userID string) ([]*model.Finance, error) {
	finances, err := s.repo.Finances(userID)
	if err != nil {
		return nil, apperr.Database(fmt.Errorf("failed to list finances: %w", err))
	}
	return finances, nil
}

func (s *FinanceService) ByID(userID, id string) (*model.Finance, error) {
	f, err := s.repo.ByID(id)
	if err != nil {
		return nil, storeErr(err, repository.ErrFinanceNotFound, "finance entry not found")
	}
	if f.UserID != userID {
		return nil, apperr.Unauthorized("not authorized to access this finance entry")
	}
	return f, nil
}

func (s *FinanceService) Create(userID string, in CreateFinanceInput) (*model.Finance, error) {
	if in.Amount == nil {
		return nil, apperr.Validation("amount is required")
	}

	currency := strings.TrimSpace(in.Currency)
	if currency == "" {
		settings, err := s.Settings(userID)
		if err != nil {
			return nil, err
		}
		currency = settings.DefaultCurrency
	}

	now := s.now()
	f := &model.Finance{
		ID:          uuid.New().String(),
		UserID:      userID,
		Name:        strings.TrimSpace(in.Name),
		Type:        in.Type,
		Amount:      *in.Amount,
		Currency:    currency,
		Date:        in.Date,
		Category:    in.Category,
		Description: in.Description,
		Recurring:   in.Recurring,
		Frequency:   in.Frequency,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if f.Date == "" {
		f.Date = model.DateOf(now)
	}

	err := validateFinance(f)
	if err != nil {
		return nil, err
	}

	err = s.repo.Create(f)
	if err != nil {
		return nil, apperr.Database(fmt.Errorf("failed to create finance entry: %w", err))
	}
	return f, nil
}

func (s *FinanceService) Update(userID, id string, in UpdateFinanceInput) (*model.Finance, error) {
	f, err := s.ByID(userID, id)
	if err != nil {
		return nil, err
	}

	f.Name = model.MergeOr(f.Name, in.Name)
	f.Type = model.MergeOr(f.Type, in.Type)
	f.Amount = model.MergeValue(f.Amount, in.Amount)
	f.Currency = model.MergeOr(f.Currency, in.Currency)
	f.Date = model.MergeOr(f.Date, in.Date)
	f.Category = model.MergeDefined(f.Category, in.Category)
	f.Description = model.MergeDefined(f.Description, in.Description)
	f.Recurring = model.MergeValue(f.Recurring, in.Recurring)
	f.Frequency = model.MergeDefined(f.Frequency, in.Frequency)

	err = validateFinance(f)
	if err != nil {
		return nil, err
	}

	f.UpdatedAt = s.now()
	err = s.repo.Update(f)
	if err != nil {
		return nil, storeErr(err, repository.ErrFinanceNotFound, "finance entry not found")
	}
	return f, nil
}

func (s *FinanceService) Delete(userID, id string) error {
	f, err := s.ByID(userID, id)
	if err != nil {
		return err
	}

	err = s.repo.Delete(f.ID)
	if err != nil {
		return storeErr(err, repository.ErrFinanceNotFound, "finance entry not found")
	}
	return nil
}

// Stats totals the current calendar month and the income and expense trend
// over the last six months, oldest first.
func (s *FinanceService) Stats(userID string) (*model.FinanceStats, error) {
	now := s.now()
	first, last := monthBounds(now.Year(), now.Month(), now.Location())

	totals, err := s.repo.SumByType(userID, first, last)
	if err != nil {
		return nil, apperr.Database(fmt.Errorf("failed to total finances: %w", err))
	}

	byCategory, err := s.repo.ExpensesByCategory(userID, first, last)
	if err != nil {
		return nil, apperr.Database(fmt.Errorf("failed to group expenses: %w", err))
	}

	stats := &model.FinanceStats{
		Month:              monthLabel(now.Year(), now.Month()),
		Income:             totals[model.FinanceIncome],
		Expense:            totals[model.FinanceExpense],
		Saving:             totals[model.FinanceSaving],
		Investment:         totals[model.FinanceInvestment],
		ExpensesByCategory: byCategory,
		Evolution:          make([]model.MonthlyTotals, 0, evolutionMonths),
	}

	for i := evolutionMonths - 1; i >= 0; i-- {
		// Day 1 so that normalising month-i never spills into the next month.
		month := time.Date(now.Year(), now.Month()-time.Month(i), 1, 0, 0, 0, 0, now.Location())
		from, to := monthBounds(month.Year(), month.Month(), now.Location())

		sums, err := s.repo.SumByType(userID, from, to)
		if err != nil {
			return nil, apperr.Database(fmt.Errorf("failed to total finances: %w", err))
		}
		stats.Evolution = append(stats.Evolution, model.MonthlyTotals{
			Label:   monthLabel(month.Year(), month.Month()),
			Income:  sums[model.FinanceIncome],
			Expense: sums[model.FinanceExpense],
		})
	}

	return stats, nil
}

// Settings returns the user's settings, creating the defaults on first use.
func (s *FinanceService) Settings(userID string) (*model.Settings, error) {
	settings, err := s.settingsRepo.ByUserID(userID)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, repository.ErrSettingsNotFound) {
		return nil, apperr.Database(fmt.Errorf("failed to load settings: %w", err))
	}

	now := s.now()
	settings = &model.Settings{
		UserID:          userID,
		DefaultCurrency: s.defaultCurrency,
		Theme:           model.DefaultTheme,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	err = s.settingsRepo.Upsert(settings)
	if err != nil {
		return nil, apperr.Database(fmt.Errorf("failed to create settings: %w", err))
	}
	return settings, nil
}

func (s *FinanceService) UpdateSettings(userID string, in UpdateSettingsInput) (*model.Settings, error) {
	settings, err := s.Settings(userID)
	if err != nil {
		return nil, err
	}

	settings.DefaultCurrency = model.MergeOr(settings.DefaultCurrency, in.DefaultCurrency)
	settings.Theme = model.MergeOr(settings.Theme, in.Theme)
	settings.UpdatedAt = s.now()

	err = s.settingsRepo.Upsert(settings)
	if err != nil {
		return nil, apperr.Database(fmt.Errorf("failed to save settings: %w", err))
	}
	return settings, nil
}

func validateFinance(f *model.Finance) error {
	err := validation.ValidateName("name", f.Name)
	if err != nil {
		return apperr.Validation(err.Error())
	}

	switch {
	case f.Type == "":
		return apperr.Validation("type is required")
	case !f.Type.Valid():
		return apperr.Validationf("invalid type %q", f.Type)
	case f.Amount.IsNegative():
		return apperr.Validation("amount must not be negative")
	case !f.Date.Valid():
		return apperr.Validationf("invalid date %q: expected YYYY-MM-DD", f.Date)
	}
	return nil
}

func monthBounds(year int, month time.Month, loc *time.Location) (model.Date, model.Date) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	return model.DateOf(first), model.DateOf(first.AddDate(0, 1, -1))
}

func monthLabel(year int, month time.Month) string {
	return fmt.Sprintf("%d/%d", int(month), year)
}
