package entities

type ActivityRequest struct {
	PropertyID      int     `json:"propertyId" validate:"required"`
	Name            string  `json:"name" validate:"required"`
	Description     string  `json:"description"`
	Price           float64 `json:"price"`
	TypeName        string  `json:"typeName"`
	TipoActividadID int     `json:"tipoActividadId"`
	UbicacionID     int     `json:"ubicacionId"`
}

type ActivityResponse struct {
	ID          int     `json:"id"`
	PropertyID  int     `json:"propertyId"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Type        string  `json:"type"`
}
