package handler

import (
	"net/http"

	"github.com/objectifs/objectifs/internal/service"
)

type ResourceHandler struct {
	resourceService *service.ResourceService
}

func NewResourceHandler(resourceService *service.ResourceService) *ResourceHandler {
	return &ResourceHandler{
		resourceService: resourceService,
	}
}

func (h *ResourceHandler) List(w http.ResponseWriter, r *http.Request) error {
	resources, err := h.resourceService.Resources(currentUser(r).ID, r.PathValue("id"))
	if err != nil {
		return err
	}
	return list(w, resources)
}

// Create attaches a resource to the objective in the path.
func (h *ResourceHandler) Create(w http.ResponseWriter, r *http.Request) error {
	var in service.CreateResourceInput
	err := decode(r, &in)
	if err != nil {
		return err
	}

	res, err := h.resourceService.Create(currentUser(r).ID, r.PathValue("id"), in)
	if err != nil {
		return err
	}
	return created(w, res)
}

func (h *ResourceHandler) Get(w http.ResponseWriter, r *http.Request) error {
	res, err := h.resourceService.ByID(currentUser(r).ID, r.PathValue("id"))
	if err != nil {
		return err
	}
	return ok(w, res)
}

func (h *ResourceHandler) Update(w http.ResponseWriter, r *http.Request) error {
	var in service.UpdateResourceInput
	err := decode(r, &in)
	if err != nil {
		return err
	}

	res, err := h.resourceService.Update(currentUser(r).ID, r.PathValue("id"), in)
	if err != nil {
		return err
	}
	return ok(w, res)
}

func (h *ResourceHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	err := h.resourceService.Delete(currentUser(r).ID, r.PathValue("id"))
	if err != nil {
		return err
	}
	return deleted(w)
}
