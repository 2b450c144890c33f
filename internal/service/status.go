package service

// Workflow statuses exposed by the API.
const (
	StatusPendingAdmin = "pending_admin"
	StatusApproved     = "approved"
	StatusRejected     = "rejected"
	StatusCancelled    = "cancelled"
	StatusCheckedIn    = "checked_in"
	StatusCheckedOut   = "checked_out"
	StatusCompleted    = "completed"
)

// Status names as stored in estados_reserva.
const (
	EstadoPendiente  = "Pendiente"
	EstadoConfirmada = "Confirmada"
	EstadoRechazada  = "Rechazada"
	EstadoCancelada  = "Cancelada"
	EstadoCheckIn    = "CheckIn"
	EstadoCheckOut   = "CheckOut"
	EstadoCompletada = "Completada"
)

var statusToEstado = map[string]string{
	StatusPendingAdmin: EstadoPendiente,
	StatusApproved:     EstadoConfirmada,
	StatusRejected:     EstadoRechazada,
	StatusCancelled:    EstadoCancelada,
	StatusCheckedIn:    EstadoCheckIn,
	StatusCheckedOut:   EstadoCheckOut,
	StatusCompleted:    EstadoCompletada,
}

var estadoToStatus = map[string]string{}

func init() {
	for status, estado := range statusToEstado {
		estadoToStatus[estado] = status
	}
}

// NormalizeStatus accepts either a workflow status (approved) or a stored
// status name (Confirmada) and returns the workflow form.
func NormalizeStatus(s string) (string, bool) {
	if _, ok := statusToEstado[s]; ok {
		return s, true
	}
	if status, ok := estadoToStatus[s]; ok {
		return status, true
	}
	return "", false
}

// EstadoForStatus maps a workflow status to its stored name.
func EstadoForStatus(status string) string {
	return statusToEstado[status]
}

// StatusForEstado maps a stored status name to its workflow form.
func StatusForEstado(estado string) string {
	return estadoToStatus[estado]
}

// transitions encodes the reservation lifecycle:
// pending_admin -> approved/rejected/cancelled, approved -> cancelled/checked_in,
// checked_in -> checked_out, checked_out -> completed.
// rejected, cancelled and completed are terminal.
var transitions = map[string][]string{
	StatusPendingAdmin: {StatusApproved, StatusRejected, StatusCancelled},
	StatusApproved:     {StatusCancelled, StatusCheckedIn},
	StatusCheckedIn:    {StatusCheckedOut},
	StatusCheckedOut:   {StatusCompleted},
}

// CanTransition reports whether moving from one workflow status to another
// is allowed, regardless of who asks.
func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
