package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecoreserva/internal/auth"
	"ecoreserva/internal/db"
	"ecoreserva/internal/entities"
	httperrors "ecoreserva/internal/errors"
	"ecoreserva/internal/repository"
)

// fakeReservationRepo keeps reservations in memory and applies the same
// half-open overlap rule the SQL layer uses.
type fakeReservationRepo struct {
	nextID   int
	owners   map[int]int // lodging id -> owner id
	reservas map[int]*db.Reserva
	pagos    map[int]*db.Pago // keyed by reservation id
	metodos  map[string]int
}

func newFakeReservationRepo(owners map[int]int) *fakeReservationRepo {
	return &fakeReservationRepo{
		nextID:   1,
		owners:   owners,
		reservas: map[int]*db.Reserva{},
		pagos:    map[int]*db.Pago{},
		metodos:  map[string]int{"Tarjeta": 1, "Efectivo": 2, "Transferencia": 3},
	}
}

func (f *fakeReservationRepo) overlaps(hospedajeID int, ingreso, salida time.Time, excludeID int) bool {
	for _, r := range f.reservas {
		if r.HospedajeID != hospedajeID || r.ID == excludeID {
			continue
		}
		if r.NombreEstado != EstadoPendiente && r.NombreEstado != EstadoConfirmada {
			continue
		}
		if r.FechaIngreso.Before(salida) && ingreso.Before(r.FechaSalida) {
			return true
		}
	}
	return false
}

func (f *fakeReservationRepo) CreateWithOverlapCheck(res *db.Reserva, pago *db.Pago) error {
	if _, ok := f.owners[res.HospedajeID]; !ok {
		return repository.ErrNotFound
	}
	if f.overlaps(res.HospedajeID, res.FechaIngreso, res.FechaSalida, 0) {
		return repository.ErrDatesUnavailable
	}
	if pago != nil {
		metodoID, ok := f.metodos[pago.NombreMetodo]
		if !ok {
			return repository.ErrMetodoPagoDesconocido
		}
		pago.MetodoID = metodoID
	}
	res.ID = f.nextID
	f.nextID++
	copied := *res
	f.reservas[res.ID] = &copied
	if pago != nil {
		pago.ReservaID = res.ID
		copiedPago := *pago
		f.pagos[res.ID] = &copiedPago
	}
	return nil
}

func (f *fakeReservationRepo) UpdateDatesWithOverlapCheck(reservaID int, ingreso, salida time.Time, numPersonas int) error {
	r, ok := f.reservas[reservaID]
	if !ok {
		return repository.ErrNotFound
	}
	if f.overlaps(r.HospedajeID, ingreso, salida, reservaID) {
		return repository.ErrDatesUnavailable
	}
	r.FechaIngreso = ingreso
	r.FechaSalida = salida
	r.NumPersonas = numPersonas
	return nil
}

func (f *fakeReservationRepo) GetByID(id int) (*db.Reserva, error) {
	r, ok := f.reservas[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *r
	copied.AnfitrionID = f.owners[r.HospedajeID]
	return &copied, nil
}

func (f *fakeReservationRepo) UpdateEstado(id int, estadoNombre string) error {
	r, ok := f.reservas[id]
	if !ok {
		return repository.ErrNotFound
	}
	r.NombreEstado = estadoNombre
	return nil
}

func (f *fakeReservationRepo) GetPagoByReserva(reservaID int) (*db.Pago, error) {
	p, ok := f.pagos[reservaID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (f *fakeReservationRepo) summaries(filter func(*db.Reserva) bool) []entities.ReservationSummary {
	var out []entities.ReservationSummary
	for _, r := range f.reservas {
		if !filter(r) {
			continue
		}
		s := entities.ReservationSummary{
			ID:          r.ID,
			HospedajeID: r.HospedajeID,
			FechaInicio: r.FechaIngreso,
			FechaFin:    r.FechaSalida,
			Huespedes:   r.NumPersonas,
			Estado:      r.NombreEstado,
		}
		if p, ok := f.pagos[r.ID]; ok {
			monto := p.Monto
			metodo := p.NombreMetodo
			s.MontoTotal = &monto
			s.MetodoPago = &metodo
		}
		out = append(out, s)
	}
	return out
}

func (f *fakeReservationRepo) ListByUser(userID int) ([]entities.ReservationSummary, error) {
	return f.summaries(func(r *db.Reserva) bool { return r.UsuarioID == userID }), nil
}

func (f *fakeReservationRepo) ListByOwner(ownerID int) ([]entities.ReservationSummary, error) {
	return f.summaries(func(r *db.Reserva) bool { return f.owners[r.HospedajeID] == ownerID }), nil
}

func (f *fakeReservationRepo) ListAll() ([]entities.ReservationSummary, error) {
	return f.summaries(func(*db.Reserva) bool { return true }), nil
}

const (
	ownerID   = 10
	guestID   = 20
	lodgingID = 1
)

func newTestReservationService(repo *fakeReservationRepo) *ReservationService {
	return NewReservationService(repo, newFakeUserRepo(), nil, nil)
}

func clientClaims(userID int) *auth.Claims {
	return &auth.Claims{UserID: userID, Email: "turista@test.com", Role: RoleClient}
}

func ownerClaims(userID int) *auth.Claims {
	return &auth.Claims{UserID: userID, Email: "anfitrion@test.com", Role: RoleOwner}
}

func adminClaims() *auth.Claims {
	return &auth.Claims{UserID: 1, Email: "admin@test.com", Role: RoleAdmin}
}

func createRequest(start, end string) entities.CreateReservationRequest {
	return entities.CreateReservationRequest{
		PropertyID: lodgingID,
		StartDate:  start,
		EndDate:    end,
		Guests:     2,
	}
}

func TestCreateReservation(t *testing.T) {
	repo := newFakeReservationRepo(map[int]int{lodgingID: ownerID})
	svc := newTestReservationService(repo)

	req := createRequest("2026-09-10", "2026-09-15")
	req.Total = 250
	req.PaymentMethod = "Efectivo"

	resp, err := svc.Create(req, clientClaims(guestID))
	require.NoError(t, err)
	assert.NotZero(t, resp.ID)
	assert.NotEmpty(t, resp.Codigo)
	assert.Empty(t, resp.CheckoutURL)

	stored := repo.reservas[resp.ID]
	require.NotNil(t, stored)
	assert.Equal(t, EstadoPendiente, stored.NombreEstado)
	assert.Equal(t, guestID, stored.UsuarioID)
	assert.Equal(t, 2, stored.NumPersonas)

	pago, ok := repo.pagos[resp.ID]
	require.True(t, ok, "payment row should be created alongside the reservation")
	assert.Equal(t, 250.0, pago.Monto)
	assert.Equal(t, "Efectivo", pago.NombreMetodo)
}

func TestCreateReservationGuestsDefaultToOne(t *testing.T) {
	repo := newFakeReservationRepo(map[int]int{lodgingID: ownerID})
	svc := newTestReservationService(repo)

	req := createRequest("2026-09-10", "2026-09-15")
	req.Guests = 0

	resp, err := svc.Create(req, clientClaims(guestID))
	require.NoError(t, err)
	assert.Equal(t, 1, repo.reservas[resp.ID].NumPersonas)
}

func TestCreateReservationOverlapRejected(t *testing.T) {
	repo := newFakeReservationRepo(map[int]int{lodgingID: ownerID})
	svc := newTestReservationService(repo)

	_, err := svc.Create(createRequest("2026-09-10", "2026-09-15"), clientClaims(guestID))
	require.NoError(t, err)

	_, err = svc.Create(createRequest("2026-09-12", "2026-09-20"), clientClaims(30))
	var httpErr *httperrors.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 400, httpErr.Status)
	assert.Equal(t, "Las fechas seleccionadas ya están reservadas para este hospedaje.", httpErr.Message)
	assert.Len(t, repo.reservas, 1)
}

func TestCreateReservationTouchingBoundariesAllowed(t *testing.T) {
	repo := newFakeReservationRepo(map[int]int{lodgingID: ownerID})
	svc := newTestReservationService(repo)

	_, err := svc.Create(createRequest("2026-09-10", "2026-09-15"), clientClaims(guestID))
	require.NoError(t, err)

	// Checkout day equals the next check-in day: no overlap.
	_, err = svc.Create(createRequest("2026-09-15", "2026-09-18"), clientClaims(30))
	require.NoError(t, err)

	_, err = svc.Create(createRequest("2026-09-05", "2026-09-10"), clientClaims(31))
	require.NoError(t, err)

	assert.Len(t, repo.reservas, 3)
}

func TestCreateReservationCancelledDatesFreeAgain(t *testing.T) {
	repo := newFakeReservationRepo(map[int]int{lodgingID: ownerID})
	svc := newTestReservationService(repo)

	resp, err := svc.Create(createRequest("2026-09-10", "2026-09-15"), clientClaims(guestID))
	require.NoError(t, err)
	require.NoError(t, svc.UpdateStatus(resp.ID, "cancelled", clientClaims(guestID)))

	_, err = svc.Create(createRequest("2026-09-10", "2026-09-15"), clientClaims(30))
	require.NoError(t, err)
}

func TestCreateReservationUnknownLodging(t *testing.T) {
	repo := newFakeReservationRepo(map[int]int{lodgingID: ownerID})
	svc := newTestReservationService(repo)

	req := createRequest("2026-09-10", "2026-09-15")
	req.PropertyID = 999

	_, err := svc.Create(req, clientClaims(guestID))
	var httpErr *httperrors.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 404, httpErr.Status)
}

func TestCreateReservationUnknownPaymentMethod(t *testing.T) {
	repo := newFakeReservationRepo(map[int]int{lodgingID: ownerID})
	svc := newTestReservationService(repo)

	req := createRequest("2026-09-10", "2026-09-15")
	req.Total = 100
	req.PaymentMethod = "Criptomoneda"

	_, err := svc.Create(req, clientClaims(guestID))
	var httpErr *httperrors.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 400, httpErr.Status)
	assert.Equal(t, "Método de pago no válido.", httpErr.Message)
	assert.Empty(t, repo.reservas, "nothing should persist when the payment method is unknown")
}

func TestCreateReservationInvalidDates(t *testing.T) {
	repo := newFakeReservationRepo(map[int]int{lodgingID: ownerID})
	svc := newTestReservationService(repo)

	for _, tt := range []struct{ start, end string }{
		{"2026-09-15", "2026-09-10"},
		{"2026-09-10", "2026-09-10"},
		{"no-es-fecha", "2026-09-10"},
	} {
		_, err := svc.Create(createRequest(tt.start, tt.end), clientClaims(guestID))
		var httpErr *httperrors.HTTPError
		require.ErrorAs(t, err, &httpErr, "%s..%s", tt.start, tt.end)
		assert.Equal(t, 400, httpErr.Status)
	}
}

func TestUpdateDates(t *testing.T) {
	repo := newFakeReservationRepo(map[int]int{lodgingID: ownerID})
	svc := newTestReservationService(repo)

	resp, err := svc.Create(createRequest("2026-09-10", "2026-09-15"), clientClaims(guestID))
	require.NoError(t, err)

	err = svc.UpdateDates(resp.ID, entities.UpdateReservationRequest{
		StartDate: "2026-10-01", EndDate: "2026-10-05", Guests: 3,
	}, clientClaims(guestID))
	require.NoError(t, err)

	stored := repo.reservas[resp.ID]
	assert.Equal(t, "2026-10-01", stored.FechaIngreso.Format("2006-01-02"))
	assert.Equal(t, 3, stored.NumPersonas)
}

func TestUpdateDatesOnlyByGuest(t *testing.T) {
	repo := newFakeReservationRepo(map[int]int{lodgingID: ownerID})
	svc := newTestReservationService(repo)

	resp, err := svc.Create(createRequest("2026-09-10", "2026-09-15"), clientClaims(guestID))
	require.NoError(t, err)

	err = svc.UpdateDates(resp.ID, entities.UpdateReservationRequest{
		StartDate: "2026-10-01", EndDate: "2026-10-05",
	}, clientClaims(99))
	var httpErr *httperrors.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 403, httpErr.Status)
}

func TestUpdateDatesOnlyWhilePending(t *testing.T) {
	repo := newFakeReservationRepo(map[int]int{lodgingID: ownerID})
	svc := newTestReservationService(repo)

	resp, err := svc.Create(createRequest("2026-09-10", "2026-09-15"), clientClaims(guestID))
	require.NoError(t, err)
	require.NoError(t, svc.UpdateStatus(resp.ID, "approved", ownerClaims(ownerID)))

	err = svc.UpdateDates(resp.ID, entities.UpdateReservationRequest{
		StartDate: "2026-10-01", EndDate: "2026-10-05",
	}, clientClaims(guestID))
	var httpErr *httperrors.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 409, httpErr.Status)
}

func TestUpdateDatesOverlapRejected(t *testing.T) {
	repo := newFakeReservationRepo(map[int]int{lodgingID: ownerID})
	svc := newTestReservationService(repo)

	_, err := svc.Create(createRequest("2026-09-10", "2026-09-15"), clientClaims(30))
	require.NoError(t, err)
	resp, err := svc.Create(createRequest("2026-09-20", "2026-09-25"), clientClaims(guestID))
	require.NoError(t, err)

	err = svc.UpdateDates(resp.ID, entities.UpdateReservationRequest{
		StartDate: "2026-09-12", EndDate: "2026-09-14",
	}, clientClaims(guestID))
	var httpErr *httperrors.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 400, httpErr.Status)
}

func TestUpdateStatusWorkflow(t *testing.T) {
	repo := newFakeReservationRepo(map[int]int{lodgingID: ownerID})
	svc := newTestReservationService(repo)

	resp, err := svc.Create(createRequest("2026-09-10", "2026-09-15"), clientClaims(guestID))
	require.NoError(t, err)

	// Owner cannot jump ahead of approval.
	err = svc.UpdateStatus(resp.ID, "checked_in", ownerClaims(ownerID))
	var httpErr *httperrors.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 409, httpErr.Status)

	require.NoError(t, svc.UpdateStatus(resp.ID, "approved", ownerClaims(ownerID)))
	assert.Equal(t, EstadoConfirmada, repo.reservas[resp.ID].NombreEstado)

	require.NoError(t, svc.UpdateStatus(resp.ID, "checked_in", ownerClaims(ownerID)))
	require.NoError(t, svc.UpdateStatus(resp.ID, "checked_out", ownerClaims(ownerID)))
	require.NoError(t, svc.UpdateStatus(resp.ID, "completed", adminClaims()))
	assert.Equal(t, EstadoCompletada, repo.reservas[resp.ID].NombreEstado)

	// Terminal: no way back.
	err = svc.UpdateStatus(resp.ID, "approved", adminClaims())
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 409, httpErr.Status)
}

func TestUpdateStatusAcceptsStoredNames(t *testing.T) {
	repo := newFakeReservationRepo(map[int]int{lodgingID: ownerID})
	svc := newTestReservationService(repo)

	resp, err := svc.Create(createRequest("2026-09-10", "2026-09-15"), clientClaims(guestID))
	require.NoError(t, err)

	require.NoError(t, svc.UpdateStatus(resp.ID, "Confirmada", ownerClaims(ownerID)))
	assert.Equal(t, EstadoConfirmada, repo.reservas[resp.ID].NombreEstado)
}

func TestUpdateStatusUnknownStatus(t *testing.T) {
	repo := newFakeReservationRepo(map[int]int{lodgingID: ownerID})
	svc := newTestReservationService(repo)

	resp, err := svc.Create(createRequest("2026-09-10", "2026-09-15"), clientClaims(guestID))
	require.NoError(t, err)

	err = svc.UpdateStatus(resp.ID, "Aprobada", adminClaims())
	var httpErr *httperrors.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 400, httpErr.Status)
	assert.Equal(t, "Estado de reserva no válido.", httpErr.Message)
}

func TestUpdateStatusOwnerScoping(t *testing.T) {
	repo := newFakeReservationRepo(map[int]int{lodgingID: ownerID, 2: 55})
	svc := newTestReservationService(repo)

	resp, err := svc.Create(createRequest("2026-09-10", "2026-09-15"), clientClaims(guestID))
	require.NoError(t, err)

	// A different owner holds a valid owner token but not this lodging.
	err = svc.UpdateStatus(resp.ID, "approved", ownerClaims(55))
	var httpErr *httperrors.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 403, httpErr.Status)
	assert.Equal(t, EstadoPendiente, repo.reservas[resp.ID].NombreEstado)
}

func TestUpdateStatusOwnerCannotCancel(t *testing.T) {
	repo := newFakeReservationRepo(map[int]int{lodgingID: ownerID})
	svc := newTestReservationService(repo)

	resp, err := svc.Create(createRequest("2026-09-10", "2026-09-15"), clientClaims(guestID))
	require.NoError(t, err)

	err = svc.UpdateStatus(resp.ID, "cancelled", ownerClaims(ownerID))
	var httpErr *httperrors.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 403, httpErr.Status)
	assert.Equal(t, "La cancelación corresponde al huésped.", httpErr.Message)
}

func TestUpdateStatusGuestCanOnlyCancel(t *testing.T) {
	repo := newFakeReservationRepo(map[int]int{lodgingID: ownerID})
	svc := newTestReservationService(repo)

	resp, err := svc.Create(createRequest("2026-09-10", "2026-09-15"), clientClaims(guestID))
	require.NoError(t, err)

	err = svc.UpdateStatus(resp.ID, "approved", clientClaims(guestID))
	var httpErr *httperrors.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 403, httpErr.Status)

	// Another guest cannot cancel someone else's reservation.
	err = svc.UpdateStatus(resp.ID, "cancelled", clientClaims(99))
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 403, httpErr.Status)

	// The guest can cancel from approved as well as pending.
	require.NoError(t, svc.UpdateStatus(resp.ID, "approved", adminClaims()))
	require.NoError(t, svc.UpdateStatus(resp.ID, "cancelled", clientClaims(guestID)))
	assert.Equal(t, EstadoCancelada, repo.reservas[resp.ID].NombreEstado)
}

func TestUpdateStatusReservationNotFound(t *testing.T) {
	repo := newFakeReservationRepo(map[int]int{lodgingID: ownerID})
	svc := newTestReservationService(repo)

	err := svc.UpdateStatus(999, "approved", adminClaims())
	var httpErr *httperrors.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 404, httpErr.Status)
}

func TestListsCarryWorkflowStatus(t *testing.T) {
	repo := newFakeReservationRepo(map[int]int{lodgingID: ownerID})
	svc := newTestReservationService(repo)

	resp, err := svc.Create(createRequest("2026-09-10", "2026-09-15"), clientClaims(guestID))
	require.NoError(t, err)
	require.NoError(t, svc.UpdateStatus(resp.ID, "approved", adminClaims()))

	mine, err := svc.ListMine(guestID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, EstadoConfirmada, mine[0].Estado)
	assert.Equal(t, StatusApproved, mine[0].Status)

	forOwner, err := svc.ListForOwner(ownerID)
	require.NoError(t, err)
	assert.Len(t, forOwner, 1)

	all, err := svc.ListAll()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
