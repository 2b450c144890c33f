package service

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"ecoreserva/internal/auth"
	"ecoreserva/internal/db"
	"ecoreserva/internal/entities"
	httperrors "ecoreserva/internal/errors"
	"ecoreserva/internal/repository"
)

const MetodoTarjeta = "Tarjeta"

type ReservationService struct {
	repo     repository.ReservationRepository
	users    repository.UserRepository
	notifier *ReservationNotifier
	stripe   *StripeService
}

func NewReservationService(repo repository.ReservationRepository, users repository.UserRepository,
	notifier *ReservationNotifier, stripe *StripeService) *ReservationService {
	return &ReservationService{repo: repo, users: users, notifier: notifier, stripe: stripe}
}

// Create books a lodging for [startDate, endDate). The overlap check, the
// reservation insert and the optional payment insert run in one transaction
// behind a lodging-row lock, so two concurrent requests for the same dates
// cannot both succeed.
func (s *ReservationService) Create(req entities.CreateReservationRequest, actor *auth.Claims) (*entities.CreateReservationResponse, error) {
	if req.PropertyID == 0 || req.StartDate == "" || req.EndDate == "" {
		return nil, httperrors.BadRequest("Datos incompletos para crear la reserva.")
	}

	ingreso, salida, err := parseStayDates(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	guests := req.Guests
	if guests == 0 {
		guests = 1
	}
	if guests < 0 {
		return nil, httperrors.BadRequest("El número de personas debe ser mayor a cero.")
	}

	res := &db.Reserva{
		Codigo:       uuid.New().String(),
		HospedajeID:  req.PropertyID,
		UsuarioID:    actor.UserID,
		FechaIngreso: ingreso,
		FechaSalida:  salida,
		NumPersonas:  guests,
		NombreEstado: EstadoPendiente,
	}
	if req.DepartmentID != 0 {
		res.DepartamentoID = sql.NullInt64{Int64: int64(req.DepartmentID), Valid: true}
	}

	var pago *db.Pago
	var checkoutURL string
	if req.Total > 0 && req.PaymentMethod != "" {
		pago = &db.Pago{
			Monto:        req.Total,
			NombreMetodo: req.PaymentMethod,
			UsuarioID:    actor.UserID,
		}
		if req.PaymentMethod == MetodoTarjeta && s.stripe != nil && s.stripe.Enabled() {
			url, sessionID, err := s.stripe.CreateCheckoutSession(
				int64(req.Total*100), "usd", "Reserva EcoReserva "+res.Codigo, actor.Email)
			if err != nil {
				return nil, fmt.Errorf("error creating checkout session: %w", err)
			}
			pago.StripeSessionID = sql.NullString{String: sessionID, Valid: true}
			checkoutURL = url
		}
	}

	if err := s.repo.CreateWithOverlapCheck(res, pago); err != nil {
		switch {
		case errors.Is(err, repository.ErrDatesUnavailable):
			return nil, httperrors.BadRequest("Las fechas seleccionadas ya están reservadas para este hospedaje.")
		case errors.Is(err, repository.ErrMetodoPagoDesconocido):
			return nil, httperrors.BadRequest("Método de pago no válido.")
		case errors.Is(err, repository.ErrNotFound):
			return nil, httperrors.NotFound("No se encontró el hospedaje especificado.")
		}
		return nil, err
	}

	s.notify(res, StatusPendingAdmin)

	return &entities.CreateReservationResponse{
		ID:          res.ID,
		Codigo:      res.Codigo,
		CheckoutURL: checkoutURL,
	}, nil
}

// UpdateDates lets the guest adjust dates and guest count while the
// reservation is still waiting for approval, re-running the overlap rule.
func (s *ReservationService) UpdateDates(id int, req entities.UpdateReservationRequest, actor *auth.Claims) error {
	res, err := s.getReservation(id)
	if err != nil {
		return err
	}
	if res.UsuarioID != actor.UserID {
		return httperrors.Forbidden("No tienes permisos para modificar esta reserva.")
	}
	if StatusForEstado(res.NombreEstado) != StatusPendingAdmin {
		return httperrors.Conflict("Solo se pueden modificar reservas pendientes de aprobación.")
	}

	ingreso, salida, err := parseStayDates(req.StartDate, req.EndDate)
	if err != nil {
		return err
	}
	guests := req.Guests
	if guests == 0 {
		guests = res.NumPersonas
	}
	if guests < 0 {
		return httperrors.BadRequest("El número de personas debe ser mayor a cero.")
	}

	if err := s.repo.UpdateDatesWithOverlapCheck(id, ingreso, salida, guests); err != nil {
		if errors.Is(err, repository.ErrDatesUnavailable) {
			return httperrors.BadRequest("Las fechas seleccionadas ya están reservadas para este hospedaje.")
		}
		return err
	}
	return nil
}

// UpdateStatus applies one step of the reservation workflow. Admins may
// apply any valid transition; the lodging's owner drives approval and the
// check-in chain; the guest may only cancel their own reservation while it
// is pending or approved. Out-of-order transitions are rejected.
func (s *ReservationService) UpdateStatus(id int, rawStatus string, actor *auth.Claims) error {
	if rawStatus == "" {
		return httperrors.BadRequest("Debe especificar un estado.")
	}
	target, ok := NormalizeStatus(rawStatus)
	if !ok {
		return httperrors.BadRequest("Estado de reserva no válido.")
	}

	res, err := s.getReservation(id)
	if err != nil {
		return err
	}
	current := StatusForEstado(res.NombreEstado)

	switch actor.Role {
	case RoleAdmin:
		// any valid transition
	case RoleOwner:
		if res.AnfitrionID != actor.UserID {
			return httperrors.Forbidden("No tienes permisos sobre las reservas de este hospedaje.")
		}
		if target == StatusCancelled {
			return httperrors.Forbidden("La cancelación corresponde al huésped.")
		}
	case RoleClient:
		if res.UsuarioID != actor.UserID {
			return httperrors.Forbidden("No tienes permisos para modificar esta reserva.")
		}
		if target != StatusCancelled {
			return httperrors.Forbidden("Solo puedes cancelar tu reserva.")
		}
	default:
		return httperrors.Forbidden("No tienes permisos para realizar esta acción.")
	}

	if !CanTransition(current, target) {
		return httperrors.Conflict(fmt.Sprintf("No se puede pasar la reserva de %s a %s.", current, target))
	}

	if err := s.repo.UpdateEstado(id, EstadoForStatus(target)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return httperrors.NotFound("No se encontró la reserva especificada.")
		}
		return err
	}

	if target == StatusCancelled {
		s.refundIfCardPaid(res.ID)
	}
	s.notify(res, target)
	return nil
}

func (s *ReservationService) ListMine(userID int) ([]entities.ReservationSummary, error) {
	return s.withWorkflowStatus(s.repo.ListByUser(userID))
}

func (s *ReservationService) ListForOwner(ownerID int) ([]entities.ReservationSummary, error) {
	return s.withWorkflowStatus(s.repo.ListByOwner(ownerID))
}

func (s *ReservationService) ListAll() ([]entities.ReservationSummary, error) {
	return s.withWorkflowStatus(s.repo.ListAll())
}

func (s *ReservationService) withWorkflowStatus(summaries []entities.ReservationSummary, err error) ([]entities.ReservationSummary, error) {
	if err != nil {
		return nil, err
	}
	for i := range summaries {
		summaries[i].Status = StatusForEstado(summaries[i].Estado)
	}
	return summaries, nil
}

func (s *ReservationService) getReservation(id int) (*db.Reserva, error) {
	res, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, httperrors.NotFound("No se encontró la reserva especificada.")
		}
		return nil, err
	}
	return res, nil
}

func (s *ReservationService) refundIfCardPaid(reservaID int) {
	if s.stripe == nil || !s.stripe.Enabled() {
		return
	}
	pago, err := s.repo.GetPagoByReserva(reservaID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			log.Printf("Error buscando pago para reembolso de la reserva %d: %v", reservaID, err)
		}
		return
	}
	if !pago.StripeSessionID.Valid || pago.StripeSessionID.String == "" {
		return
	}
	if err := s.stripe.RefundPaymentBySessionID(pago.StripeSessionID.String); err != nil {
		log.Printf("Error reembolsando el pago de la reserva %d: %v", reservaID, err)
	}
}

func (s *ReservationService) notify(res *db.Reserva, status string) {
	if s.notifier == nil {
		return
	}
	guest, err := s.users.GetByID(res.UsuarioID)
	if err != nil {
		log.Printf("No se pudo cargar el huésped %d para notificar la reserva %s: %v", res.UsuarioID, res.Codigo, err)
		return
	}
	s.notifier.NotifyStatusChange(guest, res, status)
}

// parseStayDates accepts plain dates (2006-01-02) or RFC3339 timestamps and
// enforces end > start.
func parseStayDates(start, end string) (time.Time, time.Time, error) {
	ingreso, err := parseDate(start)
	if err != nil {
		return time.Time{}, time.Time{}, httperrors.BadRequest("Las fechas de ingreso y salida no son válidas.")
	}
	salida, err := parseDate(end)
	if err != nil {
		return time.Time{}, time.Time{}, httperrors.BadRequest("Las fechas de ingreso y salida no son válidas.")
	}
	if !salida.After(ingreso) {
		return time.Time{}, time.Time{}, httperrors.BadRequest("Las fechas de ingreso y salida no son válidas.")
	}
	return ingreso, salida, nil
}

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
