package api

import (
	"net/http"

	"ecoreserva/internal/entities"
	httperrors "ecoreserva/internal/errors"
	"ecoreserva/internal/service"
)

type AuthHandler struct {
	Service *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{Service: svc}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req entities.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := entities.Validate(req); err != nil {
		httperrors.WriteJSON(w, httperrors.BadRequest("Nombre, correo y contraseña son obligatorios.").WithCode("auth/invalid-data"))
		return
	}
	if err := h.Service.Register(req); err != nil {
		httperrors.WriteJSON(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, messageResponse{Message: "Usuario registrado correctamente."})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req entities.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := h.Service.Login(req)
	if err != nil {
		httperrors.WriteJSON(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}
	user, err := h.Service.Me(claims.UserID)
	if err != nil {
		httperrors.WriteJSON(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
