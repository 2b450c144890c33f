package service

import (
	"fmt"
	"log"

	"ecoreserva/internal/db"
)

// ReservationNotifier tells the guest about reservation status changes by
// email and, when a phone is on file, by SMS. Sends are best effort and
// never block or fail the request that triggered them.
type ReservationNotifier struct{}

func NewReservationNotifier() *ReservationNotifier {
	return &ReservationNotifier{}
}

var statusDescriptions = map[string]string{
	StatusPendingAdmin: "pendiente de aprobación",
	StatusApproved:     "confirmada",
	StatusRejected:     "rechazada",
	StatusCancelled:    "cancelada",
	StatusCheckedIn:    "con check-in registrado",
	StatusCheckedOut:   "con check-out registrado",
	StatusCompleted:    "completada",
}

func (n *ReservationNotifier) NotifyStatusChange(guest *db.Usuario, res *db.Reserva, status string) {
	descripcion, ok := statusDescriptions[status]
	if !ok {
		descripcion = status
	}

	subject := fmt.Sprintf("Tu reserva en EcoReserva está %s - Código: %s", descripcion, res.Codigo)
	body := fmt.Sprintf(
		"Hola %s,\n\nTu reserva en EcoReserva está %s.\n\n"+
			"Detalles de la reserva:\n"+
			"Código de Reserva: %s\n"+
			"Check-in: %s\n"+
			"Check-out: %s\n"+
			"Personas: %d\n\n"+
			"Gracias por elegir EcoReserva.",
		guest.Nombre, descripcion, res.Codigo,
		res.FechaIngreso.Format("02 Jan 2006"),
		res.FechaSalida.Format("02 Jan 2006"),
		res.NumPersonas,
	)

	go func() {
		if err := SendEmailWithSendGrid(guest.Correo, guest.Nombre, subject, body); err != nil {
			log.Printf("ALERTA (asíncrono): Falló envío de correo para reserva %s: %v", res.Codigo, err)
		}
	}()

	if guest.Telefono.Valid && guest.Telefono.String != "" {
		sms := fmt.Sprintf("EcoReserva: ¡Tu reserva %s está %s!\nCheck-in: %s.\nMás detalles en tu correo.",
			res.Codigo, descripcion, res.FechaIngreso.Format("02/01"))
		go func(to string) {
			if err := SendSMS(to, sms); err != nil {
				log.Printf("ALERTA (asíncrono): Falló envío de SMS para reserva %s: %v", res.Codigo, err)
			}
		}(guest.Telefono.String)
	}
}
