package handler

import (
	"net/http"

	"github.com/objectifs/objectifs/internal/service"
)

type CultureHandler struct {
	articleService *service.ArticleService
}

func NewCultureHandler(articleService *service.ArticleService) *CultureHandler {
	return &CultureHandler{
		articleService: articleService,
	}
}

func (h *CultureHandler) List(w http.ResponseWriter, r *http.Request) error {
	articles, err := h.articleService.Articles(r.URL.Query().Get("category"))
	if err != nil {
		return err
	}
	return list(w, articles)
}

func (h *CultureHandler) Get(w http.ResponseWriter, r *http.Request) error {
	a, err := h.articleService.ByID(r.PathValue("id"))
	if err != nil {
		return err
	}
	return ok(w, a)
}

func (h *CultureHandler) Create(w http.ResponseWriter, r *http.Request) error {
	var in service.CreateArticleInput
	err := decode(r, &in)
	if err != nil {
		return err
	}

	a, err := h.articleService.Create(currentUser(r), in)
	if err != nil {
		return err
	}
	return created(w, a)
}

func (h *CultureHandler) Update(w http.ResponseWriter, r *http.Request) error {
	var in service.UpdateArticleInput
	err := decode(r, &in)
	if err != nil {
		return err
	}

	a, err := h.articleService.Update(currentUser(r), r.PathValue("id"), in)
	if err != nil {
		return err
	}
	return ok(w, a)
}

func (h *CultureHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	err := h.articleService.Delete(currentUser(r), r.PathValue("id"))
	if err != nil {
		return err
	}
	return deleted(w)
}
