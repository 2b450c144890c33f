package db

import (
	"database/sql"
	"time"
)

type Usuario struct {
	ID         int
	Nombre     string
	Apellido   string
	Correo     string
	Contrasena string
	Telefono   sql.NullString
	RolID      int
	NombreRol  string
	CreatedAt  time.Time
}

type Hospedaje struct {
	ID              int
	Nombre          string
	Descripcion     string
	PrecioBase      float64
	AnfitrionID     int
	TipoID          int
	UbicacionID     int
	EstadoID        int
	NombreTipo      string
	NombreEstado    string
	CorreoAnfitrion string
}

type Departamento struct {
	ID              int
	HospedajeID     int
	Nombre          string
	Descripcion     string
	PrecioNoche     float64
	Capacidad       sql.NullInt64
	Estado          string
	NombreHospedaje string
	CorreoAnfitrion string
}

type Actividad struct {
	ID          int
	HospedajeID int
	Nombre      string
	Descripcion string
	Precio      float64
	TipoID      int
	UbicacionID int
	NombreTipo  string
}

type Reserva struct {
	ID             int
	Codigo         string
	HospedajeID    int
	DepartamentoID sql.NullInt64
	UsuarioID      int
	FechaIngreso   time.Time
	FechaSalida    time.Time
	NumPersonas    int
	EstadoID       int
	NombreEstado   string
	// AnfitrionID is the owning user of the reserved lodging, populated on reads.
	AnfitrionID int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Pago struct {
	ID              int
	ReservaID       int
	Monto           float64
	MetodoID        int
	NombreMetodo    string
	UsuarioID       int
	StripeSessionID sql.NullString
	CreatedAt       time.Time
}
