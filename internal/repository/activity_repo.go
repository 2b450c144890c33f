package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"ecoreserva/internal/db"
)

type ActivityRepository interface {
	Create(a *db.Actividad) error
	Update(a *db.Actividad) error
	Delete(id int) error
	GetByID(id int) (*db.Actividad, error)
	ListByOwner(ownerID int) ([]db.Actividad, error)
	ListByHospedaje(hospedajeID int) ([]db.Actividad, error)
	LookupTipo(nombre string) (int, bool, error)
}

type activityRepository struct {
	db *sql.DB
}

func NewActivityRepository(database *sql.DB) ActivityRepository {
	return &activityRepository{db: database}
}

func (r *activityRepository) Create(a *db.Actividad) error {
	err := r.db.QueryRow(`
		INSERT INTO actividades (nombre, descripcion, precio, id_hospedaje, id_tipo_actividad, id_ubicacion)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id_actividad`,
		a.Nombre, a.Descripcion, a.Precio, a.HospedajeID, a.TipoID, a.UbicacionID,
	).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("error inserting activity: %w", err)
	}
	return nil
}

func (r *activityRepository) Update(a *db.Actividad) error {
	result, err := r.db.Exec(`
		UPDATE actividades
		SET nombre = $1, descripcion = $2, precio = $3, id_hospedaje = $4, id_tipo_actividad = $5
		WHERE id_actividad = $6`,
		a.Nombre, a.Descripcion, a.Precio, a.HospedajeID, a.TipoID, a.ID)
	if err != nil {
		return fmt.Errorf("error updating activity: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *activityRepository) Delete(id int) error {
	result, err := r.db.Exec(`DELETE FROM actividades WHERE id_actividad = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting activity: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *activityRepository) GetByID(id int) (*db.Actividad, error) {
	var a db.Actividad
	err := r.db.QueryRow(`
		SELECT id_actividad, nombre, descripcion, precio, id_hospedaje, id_tipo_actividad, id_ubicacion
		FROM actividades WHERE id_actividad = $1`, id).
		Scan(&a.ID, &a.Nombre, &a.Descripcion, &a.Precio, &a.HospedajeID, &a.TipoID, &a.UbicacionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error querying activity %d: %w", id, err)
	}
	return &a, nil
}

func (r *activityRepository) ListByOwner(ownerID int) ([]db.Actividad, error) {
	rows, err := r.db.Query(`
		SELECT a.id_actividad, a.id_hospedaje, a.nombre, a.descripcion, a.precio, ta.nombre_tipo
		FROM actividades a
		JOIN hospedajes h ON a.id_hospedaje = h.id_hospedaje
		JOIN tipos_actividad ta ON a.id_tipo_actividad = ta.id_tipo_actividad
		WHERE h.id_usuario_anfitrion = $1`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error querying owner activities: %w", err)
	}
	return scanActivities(rows)
}

func (r *activityRepository) ListByHospedaje(hospedajeID int) ([]db.Actividad, error) {
	rows, err := r.db.Query(`
		SELECT a.id_actividad, a.id_hospedaje, a.nombre, a.descripcion, a.precio, ta.nombre_tipo
		FROM actividades a
		JOIN tipos_actividad ta ON a.id_tipo_actividad = ta.id_tipo_actividad
		WHERE a.id_hospedaje = $1`, hospedajeID)
	if err != nil {
		return nil, fmt.Errorf("error querying lodging activities: %w", err)
	}
	return scanActivities(rows)
}

func scanActivities(rows *sql.Rows) ([]db.Actividad, error) {
	defer rows.Close()
	var activities []db.Actividad
	for rows.Next() {
		var a db.Actividad
		if err := rows.Scan(&a.ID, &a.HospedajeID, &a.Nombre, &a.Descripcion, &a.Precio, &a.NombreTipo); err != nil {
			return nil, fmt.Errorf("error scanning activity: %w", err)
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}

func (r *activityRepository) LookupTipo(nombre string) (int, bool, error) {
	var id int
	err := r.db.QueryRow(`SELECT id_tipo_actividad FROM tipos_actividad WHERE nombre_tipo = $1`, nombre).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("error resolving activity type: %w", err)
	}
	return id, true, nil
}
