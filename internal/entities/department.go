package entities

type CreateDepartmentRequest struct {
	HotelID     int     `json:"hotelId" validate:"required"`
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"required"`
	Capacity    int     `json:"capacity"`
}

type DepartmentResponse struct {
	ID          int     `json:"id"`
	HotelID     int     `json:"hotelId"`
	HotelName   string  `json:"hotelName,omitempty"`
	OwnerEmail  string  `json:"ownerEmail,omitempty"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Capacity    int     `json:"capacity,omitempty"`
	Status      string  `json:"status"`
}
