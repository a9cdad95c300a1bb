package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/objectifs/objectifs/internal/apperr"
	"github.com/objectifs/objectifs/internal/model"
	"github.com/objectifs/objectifs/internal/repository"
	"github.com/objectifs/objectifs/internal/validation"
)

// ResourceService manages links attached to objectives. Access follows the
// parent objective's owner.
type ResourceService struct {
	repo       repository.ResourceRepository
	objectives *ObjectiveService
	now        func() time.Time
}

func NewResourceService(repo repository.ResourceRepository, objectives *ObjectiveService, now func() time.Time) *ResourceService {
	return &ResourceService{
		repo:       repo,
		objectives: objectives,
		now:        clockOrNow(now),
	}
}

type CreateResourceInput struct {
	Title       string  `json:"title"`
	Type        string  `json:"type"`
	URL         string  `json:"url"`
	Description *string `json:"description"`
}

type UpdateResourceInput struct {
	Title       model.Patch[string] `json:"title"`
	Type        model.Patch[string] `json:"type"`
	URL         model.Patch[string] `json:"url"`
	Description model.Patch[string] `json:"description"`
}

func (s *ResourceService) Resources(userID, objectiveID string) ([]*model.Resource, error) {
	_, err := s.objectives.ByID(userID, objectiveID)
	if err != nil {
		return nil, err
	}

	resources, err := s.repo.Resources(objectiveID)
	if err != nil {
		return nil, apperr.Database(fmt.Errorf("failed to list resources: %w", err))
	}
	return resources, nil
}

func (s *ResourceService) ByID(userID, id string) (*model.Resource, error) {
	res, err := s.repo.ByID(id)
	if err != nil {
		return nil, storeErr(err, repository.ErrResourceNotFound, "resource not found")
	}

	_, err = s.objectives.ByID(userID, res.ObjectiveID)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *ResourceService) Create(userID, objectiveID string, in CreateResourceInput) (*model.Resource, error) {
	_, err := s.objectives.ByID(userID, objectiveID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	res := &model.Resource{
		ID:          uuid.New().String(),
		ObjectiveID: objectiveID,
		Title:       strings.TrimSpace(in.Title),
		Type:        strings.TrimSpace(in.Type),
		URL:         strings.TrimSpace(in.URL),
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = validateResource(res)
	if err != nil {
		return nil, err
	}

	err = s.repo.Create(res)
	if err != nil {
		return nil, apperr.Database(fmt.Errorf("failed to create resource: %w", err))
	}
	return res, nil
}

func (s *ResourceService) Update(userID, id string, in UpdateResourceInput) (*model.Resource, error) {
	res, err := s.ByID(userID, id)
	if err != nil {
		return nil, err
	}

	res.Title = model.MergeOr(res.Title, in.Title)
	res.Type = model.MergeOr(res.Type, in.Type)
	res.URL = model.MergeOr(res.URL, in.URL)
	res.Description = model.MergeDefined(res.Description, in.Description)

	err = validateResource(res)
	if err != nil {
		return nil, err
	}

	res.UpdatedAt = s.now()
	err = s.repo.Update(res)
	if err != nil {
		return nil, storeErr(err, repository.ErrResourceNotFound, "resource not found")
	}
	return res, nil
}

func (s *ResourceService) Delete(userID, id string) error {
	res, err := s.ByID(userID, id)
	if err != nil {
		return err
	}

	err = s.repo.Delete(res.ID)
	if err != nil {
		return storeErr(err, repository.ErrResourceNotFound, "resource not found")
	}
	return nil
}

func validateResource(res *model.Resource) error {
	err := validation.ValidateName("title", res.Title)
	if err != nil {
		return apperr.Validation(err.Error())
	}
	if res.Type == "" {
		return apperr.Validation("type is required")
	}
	err = validation.ValidateURL(res.URL)
	if err != nil {
		return apperr.Validation(err.Error())
	}
	return nil
}
