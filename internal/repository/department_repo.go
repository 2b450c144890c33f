package repository

import (
	"database/sql"
	"fmt"

	"ecoreserva/internal/db"
)

type DepartmentRepository interface {
	Create(d *db.Departamento) error
	ListByOwner(ownerID int) ([]db.Departamento, error)
	ListPending() ([]db.Departamento, error)
	// ListApprovedAvailable returns a lodging's approved sub-units that are
	// not covered today by a reservation in the active-status set.
	ListApprovedAvailable(hospedajeID int) ([]db.Departamento, error)
	UpdateEstado(id int, estado string) error
}

type departmentRepository struct {
	db *sql.DB
}

func NewDepartmentRepository(database *sql.DB) DepartmentRepository {
	return &departmentRepository{db: database}
}

func (r *departmentRepository) Create(d *db.Departamento) error {
	err := r.db.QueryRow(`
		INSERT INTO departamentos (id_hospedaje, nombre, descripcion, precio_noche, capacidad, estado)
		VALUES ($1, $2, $3, $4, $5, 'Pendiente')
		RETURNING id_departamento`,
		d.HospedajeID, d.Nombre, d.Descripcion, d.PrecioNoche, d.Capacidad,
	).Scan(&d.ID)
	if err != nil {
		return fmt.Errorf("error inserting department: %w", err)
	}
	d.Estado = "Pendiente"
	return nil
}

func (r *departmentRepository) ListByOwner(ownerID int) ([]db.Departamento, error) {
	rows, err := r.db.Query(`
		SELECT d.id_departamento, d.id_hospedaje, d.nombre, d.descripcion,
		       d.precio_noche, d.capacidad, d.estado, h.nombre
		FROM departamentos d
		JOIN hospedajes h ON d.id_hospedaje = h.id_hospedaje
		WHERE h.id_usuario_anfitrion = $1`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error querying owner departments: %w", err)
	}
	return scanDepartments(rows, false)
}

func (r *departmentRepository) ListPending() ([]db.Departamento, error) {
	rows, err := r.db.Query(`
		SELECT d.id_departamento, d.id_hospedaje, d.nombre, d.descripcion,
		       d.precio_noche, d.capacidad, d.estado, h.nombre, u.correo
		FROM departamentos d
		JOIN hospedajes h ON d.id_hospedaje = h.id_hospedaje
		JOIN usuarios u ON h.id_usuario_anfitrion = u.id_usuario
		WHERE d.estado = 'Pendiente'
		ORDER BY d.id_departamento DESC`)
	if err != nil {
		return nil, fmt.Errorf("error querying pending departments: %w", err)
	}
	return scanDepartments(rows, true)
}

func (r *departmentRepository) ListApprovedAvailable(hospedajeID int) ([]db.Departamento, error) {
	rows, err := r.db.Query(`
		SELECT d.id_departamento, d.id_hospedaje, d.nombre, d.descripcion,
		       d.precio_noche, d.capacidad, d.estado, h.nombre
		FROM departamentos d
		JOIN hospedajes h ON d.id_hospedaje = h.id_hospedaje
		WHERE d.id_hospedaje = $1
		  AND d.estado = 'Aprobado'
		  AND NOT EXISTS (
			SELECT 1
			FROM reservas r
			JOIN estados_reserva er ON r.id_estado_reserva = er.id_estado_reserva
			WHERE r.id_departamento = d.id_departamento
			  AND er.nombre_estado IN ('Pendiente', 'Confirmada')
			  AND CURRENT_DATE < r.fecha_salida
			  AND CURRENT_DATE >= r.fecha_ingreso
		  )
		ORDER BY d.id_departamento ASC`, hospedajeID)
	if err != nil {
		return nil, fmt.Errorf("error querying available departments: %w", err)
	}
	return scanDepartments(rows, false)
}

func scanDepartments(rows *sql.Rows, withOwner bool) ([]db.Departamento, error) {
	defer rows.Close()
	var departments []db.Departamento
	for rows.Next() {
		var d db.Departamento
		dest := []interface{}{&d.ID, &d.HospedajeID, &d.Nombre, &d.Descripcion,
			&d.PrecioNoche, &d.Capacidad, &d.Estado, &d.NombreHospedaje}
		if withOwner {
			dest = append(dest, &d.CorreoAnfitrion)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("error scanning department: %w", err)
		}
		departments = append(departments, d)
	}
	return departments, rows.Err()
}

func (r *departmentRepository) UpdateEstado(id int, estado string) error {
	result, err := r.db.Exec(`UPDATE departamentos SET estado = $1 WHERE id_departamento = $2`, estado, id)
	if err != nil {
		return fmt.Errorf("error updating department status: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
