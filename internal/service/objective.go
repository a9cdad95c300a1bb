package service

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/objectifs/objectifs/internal/apperr"
	"github.com/objectifs/objectifs/internal/model"
	"github.com/objectifs/objectifs/internal/progress"
	"github.com/objectifs/objectifs/internal/repository"
	"github.com/objectifs/objectifs/internal/validation"
)

type ObjectiveService struct {
	repo repository.ObjectiveRepository
	now  func() time.Time
}

func NewObjectiveService(repo repository.ObjectiveRepository, now func() time.Time) *ObjectiveService {
	return &ObjectiveService{
		repo: repo,
		now:  clockOrNow(now),
	}
}

func (s *ObjectiveService) today() model.Date {
	return model.DateOf(s.now())
}

type CreateObjectiveInput struct {
	Name         string                `json:"name"`
	Description  *string               `json:"description"`
	Category     model.Category        `json:"category"`
	TrackingType model.TrackingType    `json:"trackingType"`
	Frequency    model.Frequency       `json:"frequency"`
	Target       *float64              `json:"target"`
	Status       model.ObjectiveStatus `json:"status"`
	StartDate    model.Date            `json:"startDate"`
	Duration     int                   `json:"duration"`
	Comments     model.CommentLedger   `json:"comments"`
}

// UpdateObjectiveInput carries a partial update. Target is decoded loosely:
// null, "" and 0 clear it.
type UpdateObjectiveInput struct {
	Name         model.Patch[string]                `json:"name"`
	Description  model.Patch[string]                `json:"description"`
	Category     model.Patch[model.Category]        `json:"category"`
	TrackingType model.Patch[model.TrackingType]    `json:"trackingType"`
	Frequency    model.Patch[model.Frequency]       `json:"frequency"`
	Target       model.Patch[any]                   `json:"target"`
	Status       model.Patch[model.ObjectiveStatus] `json:"status"`
	StartDate    model.Patch[model.Date]            `json:"startDate"`
	Duration     model.Patch[int]                   `json:"duration"`
	Progress     model.Patch[model.Ledger]          `json:"progress"`
	Comments     model.Patch[model.CommentLedger]   `json:"comments"`
}

// ReconcileResult counts the work done by one reconciliation pass.
type ReconcileResult struct {
	Scanned int `json:"scanned"`
	Updated int `json:"updated"`
	Days    int `json:"days"`
	Failed  int `json:"failed"`
}

// List returns the user's objectives newest first, gap-filling elapsed days of
// active boolean objectives on the way.
func (s *ObjectiveService) List(userID string) ([]*model.Objective, error) {
	objs, err := s.repo.Objectives(userID)
	if err != nil {
		return nil, apperr.Database(fmt.Errorf("failed to list objectives: %w", err))
	}

	today := s.today()
	for _, o := range objs {
		s.reconcile(o, today)
	}
	return objs, nil
}

// ReconcileUser gap-fills every objective of one user.
func (s *ObjectiveService) ReconcileUser(userID string) (ReconcileResult, error) {
	objs, err := s.repo.Objectives(userID)
	if err != nil {
		return ReconcileResult{}, apperr.Database(fmt.Errorf("failed to list objectives: %w", err))
	}
	return s.reconcileAll(objs), nil
}

// Sweep gap-fills every active boolean objective in the store.
func (s *ObjectiveService) Sweep() (ReconcileResult, error) {
	objs, err := s.repo.ActiveBoolean()
	if err != nil {
		return ReconcileResult{}, fmt.Errorf("failed to load objectives for sweep: %w", err)
	}

	result := s.reconcileAll(objs)
	slog.Info("reconciliation sweep finished",
		"scanned", result.Scanned,
		"updated", result.Updated,
		"days", result.Days,
		"failed", result.Failed,
	)
	return result, nil
}

func (s *ObjectiveService) reconcileAll(objs []*model.Objective) ReconcileResult {
	today := s.today()
	result := ReconcileResult{Scanned: len(objs)}
	for _, o := range objs {
		n, err := s.reconcile(o, today)
		switch {
		case err != nil:
			result.Failed++
		case n > 0:
			result.Updated++
			result.Days += n
		}
	}
	return result
}

// reconcile fills o and stores the new rows. When storing fails the fill is
// undone in memory so callers see what the store holds.
func (s *ObjectiveService) reconcile(o *model.Objective, today model.Date) (int, error) {
	filled := progress.Reconcile(o, today)
	if len(filled) == 0 {
		return 0, nil
	}

	inserted, err := s.repo.FillProgress(o.ID, filled, model.BoolValue(false))
	if err != nil {
		progress.Revert(o, filled)
		slog.Error("failed to reconcile objective", "error", err, "objective_id", o.ID)
		return 0, err
	}
	return int(inserted), nil
}

// ByID returns one of the user's objectives.
func (s *ObjectiveService) ByID(userID, id string) (*model.Objective, error) {
	o, err := s.repo.ByID(id)
	if err != nil {
		return nil, storeErr(err, repository.ErrObjectiveNotFound, "objective not found")
	}
	if o.UserID != userID {
		return nil, apperr.Unauthorized("not authorized to access this objective")
	}
	return o, nil
}

func (s *ObjectiveService) Create(userID string, in CreateObjectiveInput) (*model.Objective, error) {
	err := validation.ValidateName("name", in.Name)
	if err != nil {
		return nil, apperr.Validation(err.Error())
	}

	today := s.today()
	now := s.now()
	o := &model.Objective{
		ID:           uuid.New().String(),
		UserID:       userID,
		Name:         strings.TrimSpace(in.Name),
		Description:  nonEmpty(in.Description),
		Category:     in.Category,
		TrackingType: in.TrackingType,
		Frequency:    in.Frequency,
		Target:       in.Target,
		Status:       in.Status,
		StartDate:    in.StartDate,
		Duration:     in.Duration,
		Progress:     model.Ledger{},
		Comments:     in.Comments,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if o.Target != nil && *o.Target == 0 {
		o.Target = nil
	}
	if o.Status == "" {
		o.Status = model.ObjectiveStatusActive
	}
	if o.StartDate == "" {
		o.StartDate = today
	}
	if o.Duration == 0 {
		o.Duration = model.DefaultDuration
	}
	if o.Comments == nil {
		o.Comments = model.CommentLedger{}
	}
	if o.TrackingType == model.TrackingBoolean {
		o.Progress[today] = model.BoolValue(false)
	}

	err = validateObjective(o)
	if err != nil {
		return nil, err
	}

	err = s.repo.Create(o)
	if err != nil {
		return nil, apperr.Database(fmt.Errorf("failed to create objective: %w", err))
	}

	slog.Info("objective created", "objective_id", o.ID, "user_id", userID)
	return o, nil
}

func (s *ObjectiveService) Update(userID, id string, in UpdateObjectiveInput) (*model.Objective, error) {
	o, err := s.ByID(userID, id)
	if err != nil {
		return nil, err
	}

	target, err := mergeTarget(o.Target, in.Target)
	if err != nil {
		return nil, err
	}

	previousTracking := o.TrackingType
	o.Name = model.MergeOr(o.Name, in.Name)
	o.Description = model.MergeDefined(o.Description, in.Description)
	o.Category = model.MergeOr(o.Category, in.Category)
	o.TrackingType = model.MergeOr(o.TrackingType, in.TrackingType)
	o.Frequency = model.MergeOr(o.Frequency, in.Frequency)
	o.Target = target
	o.Status = model.MergeOr(o.Status, in.Status)
	o.StartDate = model.MergeOr(o.StartDate, in.StartDate)
	o.Duration = model.MergeOr(o.Duration, in.Duration)

	replaceLedgers := false
	if in.Progress.Present && !in.Progress.Null {
		o.Progress = in.Progress.Value
		if o.Progress == nil {
			o.Progress = model.Ledger{}
		}
		replaceLedgers = true
	} else if o.TrackingType != previousTracking && o.TrackingType.Valid() {
		// Stored rows are plain numbers; reread them under the new type.
		converted := make(model.Ledger, len(o.Progress))
		for d, v := range o.Progress {
			converted[d] = model.StoredValue(o.TrackingType, v.Float())
		}
		o.Progress = converted
	}
	if in.Comments.Present && !in.Comments.Null {
		o.Comments = in.Comments.Value
		if o.Comments == nil {
			o.Comments = model.CommentLedger{}
		}
		replaceLedgers = true
	}

	err = validateObjective(o)
	if err != nil {
		return nil, err
	}

	o.UpdatedAt = s.now()
	if replaceLedgers {
		err = s.repo.UpdateWithLedgers(o)
	} else {
		err = s.repo.Update(o)
	}
	if err != nil {
		return nil, storeErr(err, repository.ErrObjectiveNotFound, "objective not found")
	}
	return o, nil
}

// SetProgress records one day's value.
func (s *ObjectiveService) SetProgress(userID, id string, date model.Date, value *model.Value) (*model.Objective, error) {
	if date == "" || value == nil {
		return nil, apperr.Validation("please provide a date and a value")
	}
	if !date.Valid() {
		return nil, apperr.Validationf("invalid date %q: expected YYYY-MM-DD", date)
	}

	o, err := s.ByID(userID, id)
	if err != nil {
		return nil, err
	}

	err = value.CheckFor(o.TrackingType)
	if err != nil {
		return nil, apperr.Validation(err.Error())
	}

	err = s.repo.SetProgress(o.ID, date, *value)
	if err != nil {
		return nil, storeErr(err, repository.ErrObjectiveNotFound, "objective not found")
	}

	o.Progress[date] = *value
	o.UpdatedAt = s.now()
	return o, nil
}

func (s *ObjectiveService) SetStatus(userID, id string, status model.ObjectiveStatus) (*model.Objective, error) {
	if status == "" {
		return nil, apperr.Validation("please provide a status")
	}
	if !status.Valid() {
		return nil, apperr.Validationf("invalid status %q", status)
	}

	o, err := s.ByID(userID, id)
	if err != nil {
		return nil, err
	}

	o.Status = status
	o.UpdatedAt = s.now()
	err = s.repo.Update(o)
	if err != nil {
		return nil, storeErr(err, repository.ErrObjectiveNotFound, "objective not found")
	}
	return o, nil
}

// SetComment writes the note for one day. comment may be empty but must be
// supplied.
func (s *ObjectiveService) SetComment(userID, id string, date model.Date, comment *string) (*model.Objective, error) {
	if date == "" || comment == nil {
		return nil, apperr.Validation("please provide a date and a comment")
	}
	if !date.Valid() {
		return nil, apperr.Validationf("invalid date %q: expected YYYY-MM-DD", date)
	}

	o, err := s.ByID(userID, id)
	if err != nil {
		return nil, err
	}

	err = s.repo.SetComment(o.ID, date, *comment)
	if err != nil {
		return nil, storeErr(err, repository.ErrObjectiveNotFound, "objective not found")
	}

	o.Comments[date] = *comment
	o.UpdatedAt = s.now()
	return o, nil
}

func (s *ObjectiveService) Statistics(userID string) (progress.Statistics, error) {
	objs, err := s.repo.Objectives(userID)
	if err != nil {
		return progress.Statistics{}, apperr.Database(fmt.Errorf("failed to list objectives: %w", err))
	}
	return progress.Compute(objs, s.today()), nil
}

func (s *ObjectiveService) Delete(userID, id string) error {
	o, err := s.ByID(userID, id)
	if err != nil {
		return err
	}

	err = s.repo.Delete(o.ID)
	if err != nil {
		return storeErr(err, repository.ErrObjectiveNotFound, "objective not found")
	}

	slog.Info("objective deleted", "objective_id", o.ID, "user_id", userID)
	return nil
}

// Reports loads the objectives a report covers: all of the user's, or one
// category when category is set.
func (s *ObjectiveService) Reports(userID string, category model.Category) ([]*model.Objective, error) {
	var objs []*model.Objective
	var err error
	if category == "" {
		objs, err = s.repo.Objectives(userID)
	} else {
		if !category.Valid() {
			return nil, apperr.Validationf("invalid category %q", category)
		}
		objs, err = s.repo.ObjectivesByCategory(userID, category)
	}
	if err != nil {
		return nil, apperr.Database(fmt.Errorf("failed to load objectives: %w", err))
	}
	return objs, nil
}

func validateObjective(o *model.Objective) error {
	switch {
	case strings.TrimSpace(o.Name) == "":
		return apperr.Validation("name is required")
	case o.Category == "":
		return apperr.Validation("category is required")
	case !o.Category.Valid():
		return apperr.Validationf("invalid category %q", o.Category)
	case o.TrackingType == "":
		return apperr.Validation("trackingType is required")
	case !o.TrackingType.Valid():
		return apperr.Validationf("invalid trackingType %q", o.TrackingType)
	case o.Frequency == "":
		return apperr.Validation("frequency is required")
	case !o.Frequency.Valid():
		return apperr.Validationf("invalid frequency %q", o.Frequency)
	case !o.Status.Valid():
		return apperr.Validationf("invalid status %q", o.Status)
	case !o.StartDate.Valid():
		return apperr.Validationf("invalid startDate %q: expected YYYY-MM-DD", o.StartDate)
	case o.Duration <= 0:
		return apperr.Validation("duration must be a positive number of days")
	case o.Target != nil && *o.Target < 0:
		return apperr.Validation("target must not be negative")
	}

	err := o.Progress.Validate(o.TrackingType)
	if err != nil {
		return apperr.Validation(err.Error())
	}
	err = o.Comments.Validate()
	if err != nil {
		return apperr.Validation(err.Error())
	}
	return nil
}

// mergeTarget keeps cur when absent, clears on null, "" or 0 and otherwise
// sets the number, accepting numeric strings.
func mergeTarget(cur *float64, p model.Patch[any]) (*float64, error) {
	if !p.Present {
		return cur, nil
	}
	if p.Null {
		return nil, nil
	}

	var v float64
	switch t := p.Value.(type) {
	case float64:
		v = t
	case string:
		if strings.TrimSpace(t) == "" {
			return nil, nil
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return nil, apperr.Validationf("invalid target %q", t)
		}
		v = f
	default:
		return nil, apperr.Validation("target must be a number")
	}

	if v == 0 {
		return nil, nil
	}
	return &v, nil
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
