package repository

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/lib/pq"
)

type JobRepository interface {
	// CheckedOutPastEnd returns ids of reservations in CheckOut whose end
	// date already passed.
	CheckedOutPastEnd() ([]int, error)
	// StalePendingIDs returns ids of Pendiente reservations created before
	// the given time whose start date already passed.
	StalePendingIDs(before time.Time) ([]int, error)
	UpdateEstados(ids []int, estadoNombre string) error
}

type jobRepository struct {
	db *sql.DB
}

func NewJobRepository(database *sql.DB) JobRepository {
	return &jobRepository{db: database}
}

func (r *jobRepository) CheckedOutPastEnd() ([]int, error) {
	return r.listIDs(`
		SELECT r.id_reserva
		FROM reservas r
		JOIN estados_reserva er ON r.id_estado_reserva = er.id_estado_reserva
		WHERE er.nombre_estado = 'CheckOut' AND r.fecha_salida < CURRENT_DATE`)
}

func (r *jobRepository) StalePendingIDs(before time.Time) ([]int, error) {
	return r.listIDs(`
		SELECT r.id_reserva
		FROM reservas r
		JOIN estados_reserva er ON r.id_estado_reserva = er.id_estado_reserva
		WHERE er.nombre_estado = 'Pendiente'
		  AND r.created_at < $1
		  AND r.fecha_ingreso < CURRENT_DATE`, before)
}

func (r *jobRepository) listIDs(query string, args ...interface{}) ([]int, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying reservation ids: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning reservation id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *jobRepository) UpdateEstados(ids []int, estadoNombre string) error {
	if len(ids) == 0 {
		return nil
	}
	result, err := r.db.Exec(`
		UPDATE reservas
		SET id_estado_reserva = (SELECT id_estado_reserva FROM estados_reserva WHERE nombre_estado = $1),
		    updated_at = NOW()
		WHERE id_reserva = ANY($2)`,
		estadoNombre, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("error updating reservation statuses: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Printf("Could not get rows affected: %v", err)
	} else {
		log.Printf("Updated status for %d reservations to '%s'", rowsAffected, estadoNombre)
	}
	return nil
}
