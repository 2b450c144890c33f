package entities

type RegisterRequest struct {
	Nombre   string `json:"nombre" validate:"required"`
	Apellido string `json:"apellido"`
	Correo   string `json:"correo" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Telefono string `json:"telefono"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Correo   string `json:"correo" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UserResponse struct {
	ID       int    `json:"id"`
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
