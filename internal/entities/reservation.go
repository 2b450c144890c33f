package entities

import "time"

type CreateReservationRequest struct {
	PropertyID    int     `json:"propertyId" validate:"required"`
	DepartmentID  int     `json:"departmentId"`
	Total         float64 `json:"total"`
	StartDate     string  `json:"startDate" validate:"required"`
	EndDate       string  `json:"endDate" validate:"required"`
	Guests        int     `json:"guests"`
	PaymentMethod string  `json:"paymentMethod"`
	Notes         string  `json:"notes"`
}

type CreateReservationResponse struct {
	ID          int    `json:"id"`
	Codigo      string `json:"codigo"`
	CheckoutURL string `json:"checkoutUrl,omitempty"`
}

type UpdateReservationRequest struct {
	StartDate string `json:"startDate" validate:"required"`
	EndDate   string `json:"endDate" validate:"required"`
	Guests    int    `json:"guests"`
}

// ReservationSummary is the row shape reservation listings expose
// (Spanish column aliases, payment joined when present).
type ReservationSummary struct {
	ID           int       `json:"id_reserva"`
	HospedajeID  int       `json:"id_hospedaje"`
	FechaInicio  time.Time `json:"fecha_inicio"`
	FechaFin     time.Time `json:"fecha_fin"`
	Huespedes    int       `json:"huespedes"`
	MontoTotal   *float64  `json:"monto_total"`
	MetodoPago   *string   `json:"metodo_pago"`
	Estado       string    `json:"estado"`
	Status       string    `json:"status"`
	CorreoTurista string   `json:"correo_turista,omitempty"`
}
