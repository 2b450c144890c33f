package entities

type CreateLodgingRequest struct {
	Name              string  `json:"name" validate:"required"`
	Price             float64 `json:"price" validate:"required"`
	Description       string  `json:"description"`
	TipoHospedajeID   int     `json:"tipoHospedajeId"`
	UbicacionID       int     `json:"ubicacionId"`
	EstadoHospedajeID int     `json:"estadoHospedajeId"`
	OwnerEmail        string  `json:"ownerEmail"`
	Comunidad         string  `json:"comunidad"`
	Canton            string  `json:"canton"`
	Provincia         string  `json:"provincia"`
}

type LodgingResponse struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Type        string  `json:"type"`
	Status      string  `json:"status"`
	IsActive    bool    `json:"isActive"`
	OwnerEmail  string  `json:"ownerEmail,omitempty"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
