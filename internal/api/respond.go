package api

import (
	"encoding/json"
	"net/http"

	"ecoreserva/internal/auth"
	httperrors "ecoreserva/internal/errors"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		httperrors.WriteJSON(w, httperrors.BadRequest("Cuerpo de la solicitud no válido."))
		return false
	}
	return true
}

// requireClaims extracts the token claims set by the auth middleware.
func requireClaims(w http.ResponseWriter, r *http.Request) (*auth.Claims, bool) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		httperrors.WriteJSON(w, httperrors.Unauthorized("No autorizado. Falta token."))
		return nil, false
	}
	return claims, true
}

type messageResponse struct {
	Message string `json:"message"`
}
