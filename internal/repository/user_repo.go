package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"ecoreserva/internal/db"
)

type UserRepository interface {
	// GetByEmail returns (nil, nil) when no user exists for the email.
	GetByEmail(correo string) (*db.Usuario, error)
	GetByID(id int) (*db.Usuario, error)
	// Create resolves the role name against the roles table and inserts the
	// user, filling u.ID.
	Create(u *db.Usuario) error
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(database *sql.DB) UserRepository {
	return &userRepository{db: database}
}

func (r *userRepository) GetByEmail(correo string) (*db.Usuario, error) {
	var u db.Usuario
	err := r.db.QueryRow(`
		SELECT u.id_usuario, u.nombre, u.apellido, u.correo, u.contrasena, u.telefono, u.id_rol, ro.nombre_rol
		FROM usuarios u
		JOIN roles ro ON u.id_rol = ro.id_rol
		WHERE u.correo = $1`, correo).
		Scan(&u.ID, &u.Nombre, &u.Apellido, &u.Correo, &u.Contrasena, &u.Telefono, &u.RolID, &u.NombreRol)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying user by email: %w", err)
	}
	return &u, nil
}

func (r *userRepository) GetByID(id int) (*db.Usuario, error) {
	var u db.Usuario
	err := r.db.QueryRow(`
		SELECT u.id_usuario, u.nombre, u.apellido, u.correo, u.contrasena, u.telefono, u.id_rol, ro.nombre_rol
		FROM usuarios u
		JOIN roles ro ON u.id_rol = ro.id_rol
		WHERE u.id_usuario = $1`, id).
		Scan(&u.ID, &u.Nombre, &u.Apellido, &u.Correo, &u.Contrasena, &u.Telefono, &u.RolID, &u.NombreRol)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error querying user by id: %w", err)
	}
	return &u, nil
}

func (r *userRepository) Create(u *db.Usuario) error {
	var rolID int
	err := r.db.QueryRow(`SELECT id_rol FROM roles WHERE nombre_rol = $1`, u.NombreRol).Scan(&rolID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("role %q not seeded: %w", u.NombreRol, ErrEstadoDesconocido)
		}
		return fmt.Errorf("error resolving role: %w", err)
	}
	u.RolID = rolID

	err = r.db.QueryRow(`
		INSERT INTO usuarios (nombre, apellido, correo, contrasena, telefono, id_rol)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id_usuario`,
		u.Nombre, u.Apellido, u.Correo, u.Contrasena, u.Telefono, u.RolID,
	).Scan(&u.ID)
	if err != nil {
		return fmt.Errorf("error inserting user: %w", err)
	}
	return nil
}
