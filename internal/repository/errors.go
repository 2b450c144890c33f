package repository

import "errors"

// Sentinel errors surfaced by repositories; services and handlers map them
// to HTTP categories with errors.Is.
var (
	ErrNotFound             = errors.New("not found")
	ErrDatesUnavailable     = errors.New("dates unavailable")
	ErrEstadoDesconocido    = errors.New("unknown status name")
	ErrMetodoPagoDesconocido = errors.New("unknown payment method")
)
