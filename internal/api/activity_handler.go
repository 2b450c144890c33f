package api

import (
	"net/http"

	"ecoreserva/internal/entities"
	httperrors "ecoreserva/internal/errors"
	"ecoreserva/internal/service"
)

type ActivityHandler struct {
	Service *service.ActivityService
}

func NewActivityHandler(svc *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{Service: svc}
}

func (h *ActivityHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}
	var req entities.ActivityRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	id, err := h.Service.Create(req, claims)
	if err != nil {
		httperrors.WriteJSON(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":      id,
		"message": "Actividad creada correctamente.",
	})
}

func (h *ActivityHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req entities.ActivityRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.Service.Update(id, req, claims); err != nil {
		httperrors.WriteJSON(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Actividad actualizada correctamente."})
}

func (h *ActivityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.Service.Delete(id, claims); err != nil {
		httperrors.WriteJSON(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ActivityHandler) ListOwner(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}
	activities, err := h.Service.ListByOwner(claims.UserID)
	if err != nil {
		httperrors.WriteJSON(w, err)
		return
	}
	writeJSON(w, http.StatusOK, activities)
}

func (h *ActivityHandler) ListByLodging(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	activities, err := h.Service.ListByLodging(id)
	if err != nil {
		httperrors.WriteJSON(w, err)
		return
	}
	writeJSON(w, http.StatusOK, activities)
}
