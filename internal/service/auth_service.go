package service

import (
	"database/sql"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"ecoreserva/internal/auth"
	"ecoreserva/internal/db"
	"ecoreserva/internal/entities"
	httperrors "ecoreserva/internal/errors"
	"ecoreserva/internal/repository"
)

const minPasswordLength = 6

type AuthService struct {
	users    repository.UserRepository
	secret   string
	tokenTTL time.Duration
}

func NewAuthService(users repository.UserRepository, secret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{users: users, secret: secret, tokenTTL: tokenTTL}
}

func (s *AuthService) Register(req entities.RegisterRequest) error {
	if req.Nombre == "" || req.Correo == "" || req.Password == "" {
		return httperrors.BadRequest("Nombre, correo y contraseña son obligatorios.").WithCode("auth/invalid-data")
	}
	if len(req.Password) < minPasswordLength {
		return httperrors.BadRequest("La contraseña debe tener al menos 6 caracteres.").WithCode("auth/weak-password")
	}

	normalizedEmail := strings.ToLower(req.Correo)

	existing, err := s.users.GetByEmail(normalizedEmail)
	if err != nil {
		return err
	}
	if existing != nil {
		return httperrors.Conflict("Este correo electrónico ya está en uso.").WithCode("auth/email-already-in-use")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	// Self-registration only hands out owner or client; admin accounts are
	// seeded out of band.
	role := RoleClient
	if req.Role == RoleOwner {
		role = RoleOwner
	}

	user := &db.Usuario{
		Nombre:     req.Nombre,
		Apellido:   req.Apellido,
		Correo:     normalizedEmail,
		Contrasena: string(hashed),
		NombreRol:  MapRoleToNombreRol(role),
	}
	if req.Telefono != "" {
		user.Telefono = sql.NullString{String: req.Telefono, Valid: true}
	}

	return s.users.Create(user)
}

func (s *AuthService) Login(req entities.LoginRequest) (*entities.LoginResponse, error) {
	if req.Correo == "" || req.Password == "" {
		return nil, httperrors.BadRequest("Debes ingresar correo y contraseña.").WithCode("auth/invalid-data")
	}
	if len(req.Password) < minPasswordLength {
		return nil, httperrors.BadRequest("La contraseña debe tener al menos 6 caracteres.").WithCode("auth/weak-password")
	}

	user, err := s.users.GetByEmail(strings.ToLower(req.Correo))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, httperrors.NotFound("No existe una cuenta con este email.").WithCode("auth/user-not-found")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Contrasena), []byte(req.Password)); err != nil {
		return nil, httperrors.Unauthorized("Contraseña incorrecta.").WithCode("auth/wrong-password")
	}

	role := MapNombreRolToRole(user.NombreRol)
	token, err := auth.NewToken(user.ID, user.Correo, role, s.secret, s.tokenTTL)
	if err != nil {
		return nil, err
	}

	return &entities.LoginResponse{
		Token: token,
		User: entities.UserResponse{
			ID:       user.ID,
			Nombre:   user.Nombre,
			Apellido: user.Apellido,
			Email:    user.Correo,
			Role:     role,
		},
	}, nil
}

// Me re-reads the user from the store so role changes are visible without
// waiting for token expiry.
func (s *AuthService) Me(userID int) (*entities.UserResponse, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, httperrors.NotFound("Usuario no encontrado.")
		}
		return nil, err
	}
	return &entities.UserResponse{
		ID:       user.ID,
		Nombre:   user.Nombre,
		Apellido: user.Apellido,
		Email:    user.Correo,
		Role:     MapNombreRolToRole(user.NombreRol),
	}, nil
}
