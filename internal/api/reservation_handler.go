package api

import (
	"net/http"

	"ecoreserva/internal/entities"
	httperrors "ecoreserva/internal/errors"
	"ecoreserva/internal/service"
)

type ReservationHandler struct {
	Service *service.ReservationService
}

func NewReservationHandler(svc *service.ReservationService) *ReservationHandler {
	return &ReservationHandler{Service: svc}
}

func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}
	var req entities.CreateReservationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := h.Service.Create(req, claims)
	if err != nil {
		httperrors.WriteJSON(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *ReservationHandler) UpdateDates(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req entities.UpdateReservationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.Service.UpdateDates(id, req, claims); err != nil {
		httperrors.WriteJSON(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Reserva actualizada."})
}

func (h *ReservationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req entities.UpdateStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.Service.UpdateStatus(id, req.Status, claims); err != nil {
		httperrors.WriteJSON(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Estado de reserva actualizado."})
}

// UpdatePaymentStatus is kept for frontend compatibility. Payment state
// lives in the pagos table and changes through the reservation workflow,
// so this endpoint acknowledges the call without touching anything.
func (h *ReservationHandler) UpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	if _, ok := pathID(w, r, "id"); !ok {
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{
		Message: "El estado de pago se gestiona a través de la tabla Pago. No hay cambios que aplicar.",
	})
}

func (h *ReservationHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}
	reservations, err := h.Service.ListMine(claims.UserID)
	if err != nil {
		httperrors.WriteJSON(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reservations)
}

func (h *ReservationHandler) ListOwner(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}
	reservations, err := h.Service.ListForOwner(claims.UserID)
	if err != nil {
		httperrors.WriteJSON(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reservations)
}

func (h *ReservationHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	reservations, err := h.Service.ListAll()
	if err != nil {
		httperrors.WriteJSON(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reservations)
}
