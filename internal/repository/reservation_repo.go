package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"ecoreserva/internal/db"
	"ecoreserva/internal/entities"
)

// Half-open interval rule: an existing reservation blocks [start, end) when
// existing.fecha_ingreso < end AND start < existing.fecha_salida. Touching
// boundaries do not overlap. Only Pendiente/Confirmada reservations count.
const overlapQuery = `
	SELECT COUNT(1)
	FROM reservas r
	JOIN estados_reserva er ON r.id_estado_reserva = er.id_estado_reserva
	WHERE r.id_hospedaje = $1
	  AND er.nombre_estado IN ('Pendiente', 'Confirmada')
	  AND r.fecha_ingreso < $3
	  AND $2 < r.fecha_salida
	  AND r.id_reserva <> $4`

type ReservationRepository interface {
	// CreateWithOverlapCheck creates the reservation and, when pago is not
	// nil, exactly one payment row, inside a single transaction that locks
	// the lodging row first. Returns ErrDatesUnavailable on overlap and
	// ErrMetodoPagoDesconocido when the payment method cannot be resolved.
	CreateWithOverlapCheck(res *db.Reserva, pago *db.Pago) error
	// UpdateDatesWithOverlapCheck re-runs the overlap rule (excluding the
	// reservation itself) before persisting new dates and guest count.
	UpdateDatesWithOverlapCheck(reservaID int, ingreso, salida time.Time, numPersonas int) error
	GetByID(id int) (*db.Reserva, error)
	UpdateEstado(id int, estadoNombre string) error
	GetPagoByReserva(reservaID int) (*db.Pago, error)
	ListByUser(userID int) ([]entities.ReservationSummary, error)
	ListByOwner(ownerID int) ([]entities.ReservationSummary, error)
	ListAll() ([]entities.ReservationSummary, error)
}

type reservationRepository struct {
	db *sql.DB
}

func NewReservationRepository(database *sql.DB) ReservationRepository {
	return &reservationRepository{db: database}
}

func (r *reservationRepository) CreateWithOverlapCheck(res *db.Reserva, pago *db.Pago) (err error) {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	// Serialize concurrent creations for the same lodging so two requests
	// cannot both pass the overlap check.
	var lockedID int
	err = tx.QueryRow(`SELECT id_hospedaje FROM hospedajes WHERE id_hospedaje = $1 FOR UPDATE`, res.HospedajeID).Scan(&lockedID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("error locking lodging %d: %w", res.HospedajeID, err)
	}

	var overlapping int
	err = tx.QueryRow(overlapQuery, res.HospedajeID, res.FechaIngreso, res.FechaSalida, 0).Scan(&overlapping)
	if err != nil {
		return fmt.Errorf("error checking overlap: %w", err)
	}
	if overlapping > 0 {
		return ErrDatesUnavailable
	}

	var estadoID int
	err = tx.QueryRow(`SELECT id_estado_reserva FROM estados_reserva WHERE nombre_estado = $1`, res.NombreEstado).Scan(&estadoID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("reservation status %q not seeded: %w", res.NombreEstado, ErrEstadoDesconocido)
		}
		return fmt.Errorf("error resolving reservation status: %w", err)
	}
	res.EstadoID = estadoID

	err = tx.QueryRow(`
		INSERT INTO reservas (codigo, fecha_ingreso, fecha_salida, num_personas,
		                      id_usuario_turista, id_hospedaje, id_departamento, id_estado_reserva)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id_reserva, created_at, updated_at`,
		res.Codigo, res.FechaIngreso, res.FechaSalida, res.NumPersonas,
		res.UsuarioID, res.HospedajeID, res.DepartamentoID, res.EstadoID,
	).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error inserting reservation: %w", err)
	}

	if pago != nil {
		var metodoID int
		err = tx.QueryRow(`SELECT id_metodo_pago FROM metodos_pago WHERE nombre_metodo = $1`, pago.NombreMetodo).Scan(&metodoID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("payment method %q: %w", pago.NombreMetodo, ErrMetodoPagoDesconocido)
			}
			return fmt.Errorf("error resolving payment method: %w", err)
		}
		pago.MetodoID = metodoID
		pago.ReservaID = res.ID

		err = tx.QueryRow(`
			INSERT INTO pagos (monto, id_reserva, id_metodo_pago, id_usuario_turista, stripe_session_id)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id_pago`,
			pago.Monto, pago.ReservaID, pago.MetodoID, pago.UsuarioID, pago.StripeSessionID,
		).Scan(&pago.ID)
		if err != nil {
			return fmt.Errorf("error inserting payment: %w", err)
		}
	}

	return tx.Commit()
}

func (r *reservationRepository) UpdateDatesWithOverlapCheck(reservaID int, ingreso, salida time.Time, numPersonas int) (err error) {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	var hospedajeID int
	err = tx.QueryRow(`
		SELECT h.id_hospedaje
		FROM reservas r
		JOIN hospedajes h ON r.id_hospedaje = h.id_hospedaje
		WHERE r.id_reserva = $1
		FOR UPDATE OF h`, reservaID).Scan(&hospedajeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("error locking lodging for reservation %d: %w", reservaID, err)
	}

	var overlapping int
	err = tx.QueryRow(overlapQuery, hospedajeID, ingreso, salida, reservaID).Scan(&overlapping)
	if err != nil {
		return fmt.Errorf("error checking overlap: %w", err)
	}
	if overlapping > 0 {
		return ErrDatesUnavailable
	}

	_, err = tx.Exec(`
		UPDATE reservas
		SET fecha_ingreso = $1, fecha_salida = $2, num_personas = $3, updated_at = NOW()
		WHERE id_reserva = $4`,
		ingreso, salida, numPersonas, reservaID)
	if err != nil {
		return fmt.Errorf("error updating reservation dates: %w", err)
	}

	return tx.Commit()
}

func (r *reservationRepository) GetByID(id int) (*db.Reserva, error) {
	var res db.Reserva
	err := r.db.QueryRow(`
		SELECT r.id_reserva, r.codigo, r.id_hospedaje, r.id_departamento, r.id_usuario_turista,
		       r.fecha_ingreso, r.fecha_salida, r.num_personas, r.id_estado_reserva,
		       er.nombre_estado, h.id_usuario_anfitrion, r.created_at, r.updated_at
		FROM reservas r
		JOIN estados_reserva er ON r.id_estado_reserva = er.id_estado_reserva
		JOIN hospedajes h ON r.id_hospedaje = h.id_hospedaje
		WHERE r.id_reserva = $1`, id).
		Scan(&res.ID, &res.Codigo, &res.HospedajeID, &res.DepartamentoID, &res.UsuarioID,
			&res.FechaIngreso, &res.FechaSalida, &res.NumPersonas, &res.EstadoID,
			&res.NombreEstado, &res.AnfitrionID, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error querying reservation %d: %w", id, err)
	}
	return &res, nil
}

func (r *reservationRepository) UpdateEstado(id int, estadoNombre string) error {
	var estadoID int
	err := r.db.QueryRow(`SELECT id_estado_reserva FROM estados_reserva WHERE nombre_estado = $1`, estadoNombre).Scan(&estadoID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("reservation status %q: %w", estadoNombre, ErrEstadoDesconocido)
		}
		return fmt.Errorf("error resolving reservation status: %w", err)
	}

	result, err := r.db.Exec(`
		UPDATE reservas SET id_estado_reserva = $1, updated_at = NOW() WHERE id_reserva = $2`,
		estadoID, id)
	if err != nil {
		return fmt.Errorf("error updating reservation status: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *reservationRepository) GetPagoByReserva(reservaID int) (*db.Pago, error) {
	var p db.Pago
	err := r.db.QueryRow(`
		SELECT p.id_pago, p.id_reserva, p.monto, p.id_metodo_pago, mp.nombre_metodo,
		       p.id_usuario_turista, p.stripe_session_id
		FROM pagos p
		JOIN metodos_pago mp ON p.id_metodo_pago = mp.id_metodo_pago
		WHERE p.id_reserva = $1`, reservaID).
		Scan(&p.ID, &p.ReservaID, &p.Monto, &p.MetodoID, &p.NombreMetodo, &p.UsuarioID, &p.StripeSessionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error querying payment for reservation %d: %w", reservaID, err)
	}
	return &p, nil
}

const summarySelect = `
	SELECT r.id_reserva, r.id_hospedaje, r.fecha_ingreso, r.fecha_salida,
	       r.num_personas, p.monto, mp.nombre_metodo, er.nombre_estado, u.correo
	FROM reservas r
	JOIN estados_reserva er ON r.id_estado_reserva = er.id_estado_reserva
	JOIN usuarios u ON r.id_usuario_turista = u.id_usuario
	LEFT JOIN pagos p ON p.id_reserva = r.id_reserva
	LEFT JOIN metodos_pago mp ON p.id_metodo_pago = mp.id_metodo_pago`

func (r *reservationRepository) ListByUser(userID int) ([]entities.ReservationSummary, error) {
	return r.listSummaries(summarySelect+`
		WHERE r.id_usuario_turista = $1
		ORDER BY r.fecha_ingreso DESC`, userID)
}

func (r *reservationRepository) ListByOwner(ownerID int) ([]entities.ReservationSummary, error) {
	return r.listSummaries(summarySelect+`
		JOIN hospedajes h ON r.id_hospedaje = h.id_hospedaje
		WHERE h.id_usuario_anfitrion = $1
		ORDER BY r.fecha_ingreso DESC`, ownerID)
}

func (r *reservationRepository) ListAll() ([]entities.ReservationSummary, error) {
	return r.listSummaries(summarySelect + ` ORDER BY r.fecha_ingreso DESC`)
}

func (r *reservationRepository) listSummaries(query string, args ...interface{}) ([]entities.ReservationSummary, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying reservations: %w", err)
	}
	defer rows.Close()

	var summaries []entities.ReservationSummary
	for rows.Next() {
		var s entities.ReservationSummary
		var monto sql.NullFloat64
		var metodo sql.NullString
		if err := rows.Scan(&s.ID, &s.HospedajeID, &s.FechaInicio, &s.FechaFin,
			&s.Huespedes, &monto, &metodo, &s.Estado, &s.CorreoTurista); err != nil {
			return nil, fmt.Errorf("error scanning reservation: %w", err)
		}
		if monto.Valid {
			s.MontoTotal = &monto.Float64
		}
		if metodo.Valid {
			s.MetodoPago = &metodo.String
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}
