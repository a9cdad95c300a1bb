package service

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/objectifs/objectifs/internal/apperr"
	"github.com/objectifs/objectifs/internal/markdown"
	"github.com/objectifs/objectifs/internal/model"
	"github.com/objectifs/objectifs/internal/repository"
	"github.com/objectifs/objectifs/internal/validation"
)

// ArticleService serves Islamic culture articles. Reading is public, writing
// is reserved to admins.
type ArticleService struct {
	repo   repository.ArticleRepository
	parser *markdown.Parser
	now    func() time.Time
}

func NewArticleService(repo repository.ArticleRepository, parser *markdown.Parser, now func() time.Time) *ArticleService {
	return &ArticleService{
		repo:   repo,
		parser: parser,
		now:    clockOrNow(now),
	}
}

type CreateArticleInput struct {
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	Category string  `json:"category"`
	Image    *string `json:"image"`
}

type UpdateArticleInput struct {
	Title    model.Patch[string] `json:"title"`
	Content  model.Patch[string] `json:"content"`
	Category model.Patch[string] `json:"category"`
	Image    model.Patch[string] `json:"image"`
}

// Articles lists articles newest first, optionally within one category.
func (s *ArticleService) Articles(category string) ([]*model.Article, error) {
	articles, err := s.repo.Articles(strings.TrimSpace(category))
	if err != nil {
		return nil, apperr.Database(fmt.Errorf("failed to list articles: %w", err))
	}
	for _, a := range articles {
		s.render(a)
	}
	return articles, nil
}

func (s *ArticleService) ByID(id string) (*model.Article, error) {
	a, err := s.repo.ByID(id)
	if err != nil {
		return nil, storeErr(err, repository.ErrArticleNotFound, "article not found")
	}
	s.render(a)
	return a, nil
}

func (s *ArticleService) Create(user *model.User, in CreateArticleInput) (*model.Article, error) {
	if !user.IsAdmin() {
		return nil, apperr.Forbidden("not authorized to create articles")
	}

	now := s.now()
	a := &model.Article{
		ID:        uuid.New().String(),
		Title:     strings.TrimSpace(in.Title),
		Content:   in.Content,
		Category:  strings.TrimSpace(in.Category),
		Image:     nonEmpty(in.Image),
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := validateArticle(a)
	if err != nil {
		return nil, err
	}

	err = s.repo.Create(a)
	if err != nil {
		return nil, apperr.Database(fmt.Errorf("failed to create article: %w", err))
	}

	slog.Info("article created", "article_id", a.ID, "user_id", user.ID)
	s.render(a)
	return a, nil
}

func (s *ArticleService) Update(user *model.User, id string, in UpdateArticleInput) (*model.Article, error) {
	if !user.IsAdmin() {
		return nil, apperr.Forbidden("not authorized to update articles")
	}

	a, err := s.repo.ByID(id)
	if err != nil {
		return nil, storeErr(err, repository.ErrArticleNotFound, "article not found")
	}

	a.Title = model.MergeOr(a.Title, in.Title)
	a.Content = model.MergeOr(a.Content, in.Content)
	a.Category = model.MergeOr(a.Category, in.Category)
	a.Image = model.MergeDefined(a.Image, in.Image)

	err = validateArticle(a)
	if err != nil {
		return nil, err
	}

	a.UpdatedAt = s.now()
	err = s.repo.Update(a)
	if err != nil {
		return nil, storeErr(err, repository.ErrArticleNotFound, "article not found")
	}

	s.render(a)
	return a, nil
}

func (s *ArticleService) Delete(user *model.User, id string) error {
	if !user.IsAdmin() {
		return apperr.Forbidden("not authorized to delete articles")
	}

	err := s.repo.Delete(id)
	if err != nil {
		return storeErr(err, repository.ErrArticleNotFound, "article not found")
	}
	return nil
}

// render fills ContentHTML and Meta. A document that fails to render is
// served with its raw content only.
func (s *ArticleService) render(a *model.Article) {
	html, meta, err := s.parser.Render(a.Content)
	if err != nil {
		slog.Warn("failed to render article", "error", err, "article_id", a.ID)
		return
	}
	a.ContentHTML = html
	a.Meta = meta
}

func validateArticle(a *model.Article) error {
	err := validation.ValidateName("title", a.Title)
	if err != nil {
		return apperr.Validation(err.Error())
	}
	if strings.TrimSpace(a.Content) == "" {
		return apperr.Validation("content is required")
	}
	if a.Category == "" {
		return apperr.Validation("category is required")
	}
	return nil
}
