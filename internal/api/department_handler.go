package api

import (
	"net/http"

	"ecoreserva/internal/entities"
	httperrors "ecoreserva/internal/errors"
	"ecoreserva/internal/service"
)

type DepartmentHandler struct {
	Service *service.DepartmentService
}

func NewDepartmentHandler(svc *service.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{Service: svc}
}

func (h *DepartmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}
	var req entities.CreateDepartmentRequest
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
		"message": "Departamento creado correctamente. Queda pendiente de aprobación.",
	})
}

func (h *DepartmentHandler) ListOwner(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}
	departments, err := h.Service.ListByOwner(claims.UserID)
	if err != nil {
		httperrors.WriteJSON(w, err)
		return
	}
	writeJSON(w, http.StatusOK, departments)
}

func (h *DepartmentHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	departments, err := h.Service.ListPending()
	if err != nil {
		httperrors.WriteJSON(w, err)
		return
	}
	writeJSON(w, http.StatusOK, departments)
}

// ListByHotel is public: approved departments of a lodging not covered
// today by an active reservation.
func (h *DepartmentHandler) ListByHotel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	departments, err := h.Service.ListAvailableByLodging(id)
	if err != nil {
		httperrors.WriteJSON(w, err)
		return
	}
	writeJSON(w, http.StatusOK, departments)
}

func (h *DepartmentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req entities.UpdateStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.Service.UpdateStatus(id, req.Status); err != nil {
		httperrors.WriteJSON(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Estado de departamento actualizado."})
}
