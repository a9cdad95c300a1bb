package handler

import (
	"net/http"

	"github.com/objectifs/objectifs/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
	userService *service.UserService
}

func NewAuthHandler(authService *service.AuthService, userService *service.UserService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
	}
}

type credentials struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) error {
	var in credentials
	err := decode(r, &in)
	if err != nil {
		return err
	}

	user, token, err := h.authService.Register(in.Name, in.Email, in.Password)
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusCreated, Envelope{Success: true, Token: token, Data: user})
	return nil
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) error {
	var in credentials
	err := decode(r, &in)
	if err != nil {
		return err
	}

	user, token, err := h.authService.Login(in.Email, in.Password)
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, Envelope{Success: true, Token: token, Data: user})
	return nil
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) error {
	user, err := h.userService.Me(currentUser(r).ID)
	if err != nil {
		return err
	}
	return ok(w, user)
}
