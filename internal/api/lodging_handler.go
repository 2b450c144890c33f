package api

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"ecoreserva/internal/entities"
	httperrors "ecoreserva/internal/errors"
	"ecoreserva/internal/service"
)

type LodgingHandler struct {
	Service *service.LodgingService
}

func NewLodgingHandler(svc *service.LodgingService) *LodgingHandler {
	return &LodgingHandler{Service: svc}
}

// List is the public catalog: only lodgings in estado Activo.
func (h *LodgingHandler) List(w http.ResponseWriter, r *http.Request) {
	lodgings, err := h.Service.ListActive()
	if err != nil {
		httperrors.WriteJSON(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lodgings)
}

func (h *LodgingHandler) ListOwner(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}
	lodgings, err := h.Service.ListByOwner(claims.UserID)
	if err != nil {
		httperrors.WriteJSON(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lodgings)
}

func (h *LodgingHandler) ListAdmin(w http.ResponseWriter, r *http.Request) {
	lodgings, err := h.Service.ListAdmin()
	if err != nil {
		httperrors.WriteJSON(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lodgings)
}

func (h *LodgingHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}
	var req entities.CreateLodgingRequest
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
		"message": "Hospedaje creado correctamente.",
	})
}

func (h *LodgingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
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
	writeJSON(w, http.StatusOK, messageResponse{Message: "Estado de hospedaje actualizado."})
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil || id <= 0 {
		httperrors.WriteJSON(w, httperrors.BadRequest("ID no válido."))
		return 0, false
	}
	return id, true
}
