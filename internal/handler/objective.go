package handler

import (
	"net/http"

	"github.com/objectifs/objectifs/internal/model"
	"github.com/objectifs/objectifs/internal/service"
)

type ObjectiveHandler struct {
	objectiveService *service.ObjectiveService
}

func NewObjectiveHandler(objectiveService *service.ObjectiveService) *ObjectiveHandler {
	return &ObjectiveHandler{
		objectiveService: objectiveService,
	}
}

func (h *ObjectiveHandler) List(w http.ResponseWriter, r *http.Request) error {
	objs, err := h.objectiveService.List(currentUser(r).ID)
	if err != nil {
		return err
	}
	return list(w, objs)
}

func (h *ObjectiveHandler) Create(w http.ResponseWriter, r *http.Request) error {
	var in service.CreateObjectiveInput
	err := decode(r, &in)
	if err != nil {
		return err
	}

	o, err := h.objectiveService.Create(currentUser(r).ID, in)
	if err != nil {
		return err
	}
	return created(w, o)
}

func (h *ObjectiveHandler) Get(w http.ResponseWriter, r *http.Request) error {
	o, err := h.objectiveService.ByID(currentUser(r).ID, r.PathValue("id"))
	if err != nil {
		return err
	}
	return ok(w, o)
}

func (h *ObjectiveHandler) Update(w http.ResponseWriter, r *http.Request) error {
	var in service.UpdateObjectiveInput
	err := decode(r, &in)
	if err != nil {
		return err
	}

	o, err := h.objectiveService.Update(currentUser(r).ID, r.PathValue("id"), in)
	if err != nil {
		return err
	}
	return ok(w, o)
}

func (h *ObjectiveHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	err := h.objectiveService.Delete(currentUser(r).ID, r.PathValue("id"))
	if err != nil {
		return err
	}
	return deleted(w)
}

func (h *ObjectiveHandler) Statistics(w http.ResponseWriter, r *http.Request) error {
	stats, err := h.objectiveService.Statistics(currentUser(r).ID)
	if err != nil {
		return err
	}
	return ok(w, stats)
}

// Reconcile gap-fills the caller's objectives on demand.
func (h *ObjectiveHandler) Reconcile(w http.ResponseWriter, r *http.Request) error {
	result, err := h.objectiveService.ReconcileUser(currentUser(r).ID)
	if err != nil {
		return err
	}
	return ok(w, result)
}

func (h *ObjectiveHandler) SetProgress(w http.ResponseWriter, r *http.Request) error {
	var in struct {
		Date  model.Date   `json:"date"`
		Value *model.Value `json:"value"`
	}
	err := decode(r, &in)
	if err != nil {
		return err
	}

	o, err := h.objectiveService.SetProgress(currentUser(r).ID, r.PathValue("id"), in.Date, in.Value)
	if err != nil {
		return err
	}
	return ok(w, o)
}

func (h *ObjectiveHandler) SetStatus(w http.ResponseWriter, r *http.Request) error {
	var in struct {
		Status model.ObjectiveStatus `json:"status"`
	}
	err := decode(r, &in)
	if err != nil {
		return err
	}

	o, err := h.objectiveService.SetStatus(currentUser(r).ID, r.PathValue("id"), in.Status)
	if err != nil {
		return err
	}
	return ok(w, o)
}

func (h *ObjectiveHandler) SetComment(w http.ResponseWriter, r *http.Request) error {
	var in struct {
		Date    model.Date `json:"date"`
		Comment *string    `json:"comment"`
	}
	err := decode(r, &in)
	if err != nil {
		return err
	}

	o, err := h.objectiveService.SetComment(currentUser(r).ID, r.PathValue("id"), in.Date, in.Comment)
	if err != nil {
		return err
	}
	return ok(w, o)
}
