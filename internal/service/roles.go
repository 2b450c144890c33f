package service

// API roles.
const (
	RoleAdmin  = "admin"
	RoleOwner  = "owner"
	RoleClient = "client"
)

// Role names as stored in the roles table.
const (
	RolAdministrador = "Administrador"
	RolAnfitrion     = "Anfitrión"
	RolTurista       = "Turista"
)

// MapRoleToNombreRol maps an API role to its stored name. Anything that is
// not admin or owner registers as a client (Turista).
func MapRoleToNombreRol(role string) string {
	switch role {
	case RoleAdmin:
		return RolAdministrador
	case RoleOwner:
		return RolAnfitrion
	default:
		return RolTurista
	}
}

// MapNombreRolToRole maps a stored role name to its API form.
func MapNombreRolToRole(nombreRol string) string {
	switch nombreRol {
	case RolAdministrador:
		return RoleAdmin
	case RolAnfitrion:
		return RoleOwner
	default:
		return RoleClient
	}
}
