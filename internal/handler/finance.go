package handler

import (
	"net/http"

	"github.com/objectifs/objectifs/internal/service"
)

type FinanceHandler struct {
	financeService *service.FinanceService
}

func NewFinanceHandler(financeService *service.FinanceService) *FinanceHandler {
	return &FinanceHandler{
		financeService: financeService,
	}
}

func (h *FinanceHandler) List(w http.ResponseWriter, r *http.Request) error {
	finances, err := h.financeService.Finances(currentUser(r).ID)
	if err != nil {
		return err
	}
	return list(w, finances)
}

func (h *FinanceHandler) Create(w http.ResponseWriter, r *http.Request) error {
	var in service.CreateFinanceInput
	err := decode(r, &in)
	if err != nil {
		return err
	}

	f, err := h.financeService.Create(currentUser(r).ID, in)
	if err != nil {
		return err
	}
	return created(w, f)
}

func (h *FinanceHandler) Get(w http.ResponseWriter, r *http.Request) error {
	f, err := h.financeService.ByID(currentUser(r).ID, r.PathValue("id"))
	if err != nil {
		return err
	}
	return ok(w, f)
}

func (h *FinanceHandler) Update(w http.ResponseWriter, r *http.Request) error {
	var in service.UpdateFinanceInput
	err := decode(r, &in)
	if err != nil {
		return err
	}

	f, err := h.financeService.Update(currentUser(r).ID, r.PathValue("id"), in)
	if err != nil {
		return err
	}
	return ok(w, f)
}

func (h *FinanceHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	err := h.financeService.Delete(currentUser(r).ID, r.PathValue("id"))
	if err != nil {
		return err
	}
	return deleted(w)
}

func (h *FinanceHandler) Stats(w http.ResponseWriter, r *http.Request) error {
	stats, err := h.financeService.Stats(currentUser(r).ID)
	if err != nil {
		return err
	}
	return ok(w, stats)
}

func (h *FinanceHandler) Settings(w http.ResponseWriter, r *http.Request) error {
	settings, err := h.financeService.Settings(currentUser(r).ID)
	if err != nil {
		return err
	}
	return ok(w, settings)
}

func (h *FinanceHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) error {
	var in service.UpdateSettingsInput
	err := decode(r, &in)
	if err != nil {
		return err
	}

	settings, err := h.financeService.UpdateSettings(currentUser(r).ID, in)
	if err != nil {
		return err
	}
	return ok(w, settings)
}
