package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"ecoreserva/internal/db"
)

type LodgingRepository interface {
	ListActive() ([]db.Hospedaje, error)
	ListByOwner(ownerID int) ([]db.Hospedaje, error)
	ListAllWithOwner() ([]db.Hospedaje, error)
	GetByID(id int) (*db.Hospedaje, error)
	Create(h *db.Hospedaje) error
	UpdateEstado(id, estadoID int) error

	LookupTipo(nombre string) (int, bool, error)
	LookupEstado(nombre string) (int, bool, error)
	FirstUbicacion() (int, bool, error)
	FirstRegion() (int, bool, error)
	CreateUbicacion(comunidad, canton, provincia string, regionID int) (int, error)
}

type lodgingRepository struct {
	db *sql.DB
}

func NewLodgingRepository(database *sql.DB) LodgingRepository {
	return &lodgingRepository{db: database}
}

const lodgingSelect = `
	SELECT h.id_hospedaje, h.nombre, h.descripcion, h.precio_base,
	       h.id_usuario_anfitrion, th.nombre_tipo, eh.nombre_estado
	FROM hospedajes h
	JOIN tipos_hospedaje th ON h.id_tipo_hospedaje = th.id_tipo_hospedaje
	JOIN estados_hospedaje eh ON h.id_estado_hospedaje = eh.id_estado_hospedaje`

func (r *lodgingRepository) ListActive() ([]db.Hospedaje, error) {
	return r.list(lodgingSelect + ` WHERE eh.nombre_estado = 'Activo'`)
}

func (r *lodgingRepository) ListByOwner(ownerID int) ([]db.Hospedaje, error) {
	return r.list(lodgingSelect+` WHERE h.id_usuario_anfitrion = $1`, ownerID)
}

func (r *lodgingRepository) list(query string, args ...interface{}) ([]db.Hospedaje, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying lodgings: %w", err)
	}
	defer rows.Close()

	var lodgings []db.Hospedaje
	for rows.Next() {
		var h db.Hospedaje
		if err := rows.Scan(&h.ID, &h.Nombre, &h.Descripcion, &h.PrecioBase,
			&h.AnfitrionID, &h.NombreTipo, &h.NombreEstado); err != nil {
			return nil, fmt.Errorf("error scanning lodging: %w", err)
		}
		lodgings = append(lodgings, h)
	}
	return lodgings, rows.Err()
}

func (r *lodgingRepository) ListAllWithOwner() ([]db.Hospedaje, error) {
	rows, err := r.db.Query(`
		SELECT h.id_hospedaje, h.nombre, h.descripcion, h.precio_base,
		       h.id_usuario_anfitrion, th.nombre_tipo, eh.nombre_estado, u.correo
		FROM hospedajes h
		JOIN tipos_hospedaje th ON h.id_tipo_hospedaje = th.id_tipo_hospedaje
		JOIN estados_hospedaje eh ON h.id_estado_hospedaje = eh.id_estado_hospedaje
		JOIN usuarios u ON h.id_usuario_anfitrion = u.id_usuario`)
	if err != nil {
		return nil, fmt.Errorf("error querying lodgings for admin: %w", err)
	}
	defer rows.Close()

	var lodgings []db.Hospedaje
	for rows.Next() {
		var h db.Hospedaje
		if err := rows.Scan(&h.ID, &h.Nombre, &h.Descripcion, &h.PrecioBase,
			&h.AnfitrionID, &h.NombreTipo, &h.NombreEstado, &h.CorreoAnfitrion); err != nil {
			return nil, fmt.Errorf("error scanning lodging: %w", err)
		}
		lodgings = append(lodgings, h)
	}
	return lodgings, rows.Err()
}

func (r *lodgingRepository) GetByID(id int) (*db.Hospedaje, error) {
	var h db.Hospedaje
	err := r.db.QueryRow(`
		SELECT id_hospedaje, nombre, id_usuario_anfitrion, id_ubicacion
		FROM hospedajes WHERE id_hospedaje = $1`, id).
		Scan(&h.ID, &h.Nombre, &h.AnfitrionID, &h.UbicacionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error querying lodging %d: %w", id, err)
	}
	return &h, nil
}

func (r *lodgingRepository) Create(h *db.Hospedaje) error {
	err := r.db.QueryRow(`
		INSERT INTO hospedajes (nombre, descripcion, precio_base, id_usuario_anfitrion,
		                        id_tipo_hospedaje, id_ubicacion, id_estado_hospedaje)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id_hospedaje`,
		h.Nombre, h.Descripcion, h.PrecioBase, h.AnfitrionID, h.TipoID, h.UbicacionID, h.EstadoID,
	).Scan(&h.ID)
	if err != nil {
		return fmt.Errorf("error inserting lodging: %w", err)
	}
	return nil
}

func (r *lodgingRepository) UpdateEstado(id, estadoID int) error {
	result, err := r.db.Exec(`UPDATE hospedajes SET id_estado_hospedaje = $1 WHERE id_hospedaje = $2`, estadoID, id)
	if err != nil {
		return fmt.Errorf("error updating lodging status: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *lodgingRepository) LookupTipo(nombre string) (int, bool, error) {
	return r.lookup(`SELECT id_tipo_hospedaje FROM tipos_hospedaje WHERE nombre_tipo = $1`, nombre)
}

func (r *lodgingRepository) LookupEstado(nombre string) (int, bool, error) {
	return r.lookup(`SELECT id_estado_hospedaje FROM estados_hospedaje WHERE nombre_estado = $1`, nombre)
}

func (r *lodgingRepository) FirstUbicacion() (int, bool, error) {
	return r.lookup(`SELECT id_ubicacion FROM ubicaciones ORDER BY id_ubicacion LIMIT 1`)
}

func (r *lodgingRepository) FirstRegion() (int, bool, error) {
	return r.lookup(`SELECT id_region FROM regiones ORDER BY id_region LIMIT 1`)
}

func (r *lodgingRepository) lookup(query string, args ...interface{}) (int, bool, error) {
	var id int
	err := r.db.QueryRow(query, args...).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("lookup failed: %w", err)
	}
	return id, true, nil
}

func (r *lodgingRepository) CreateUbicacion(comunidad, canton, provincia string, regionID int) (int, error) {
	var id int
	err := r.db.QueryRow(`
		INSERT INTO ubicaciones (comunidad, canton, provincia, id_region)
		VALUES ($1, $2, $3, $4)
		RETURNING id_ubicacion`,
		comunidad, canton, provincia, regionID,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error inserting location: %w", err)
	}
	return id, nil
}
