package service

import (
	"errors"
	"strings"

	"ecoreserva/internal/auth"
	"ecoreserva/internal/db"
	"ecoreserva/internal/entities"
	httperrors "ecoreserva/internal/errors"
	"ecoreserva/internal/repository"
)

const (
	defaultTipoHospedaje   = "Cabaña"
	defaultEstadoHospedaje = "Activo"
	genericUbicacion       = "General"
)

type LodgingService struct {
	repo  repository.LodgingRepository
	users repository.UserRepository
}

func NewLodgingService(repo repository.LodgingRepository, users repository.UserRepository) *LodgingService {
	return &LodgingService{repo: repo, users: users}
}

func (s *LodgingService) ListActive() ([]entities.LodgingResponse, error) {
	lodgings, err := s.repo.ListActive()
	if err != nil {
		return nil, err
	}
	return toLodgingResponses(lodgings, false), nil
}

func (s *LodgingService) ListByOwner(ownerID int) ([]entities.LodgingResponse, error) {
	lodgings, err := s.repo.ListByOwner(ownerID)
	if err != nil {
		return nil, err
	}
	return toLodgingResponses(lodgings, false), nil
}

func (s *LodgingService) ListAdmin() ([]entities.LodgingResponse, error) {
	lodgings, err := s.repo.ListAllWithOwner()
	if err != nil {
		return nil, err
	}
	return toLodgingResponses(lodgings, true), nil
}

func toLodgingResponses(lodgings []db.Hospedaje, withOwner bool) []entities.LodgingResponse {
	responses := make([]entities.LodgingResponse, 0, len(lodgings))
	for _, h := range lodgings {
		resp := entities.LodgingResponse{
			ID:          h.ID,
			Name:        h.Nombre,
			Description: h.Descripcion,
			Price:       h.PrecioBase,
			Type:        h.NombreTipo,
			Status:      h.NombreEstado,
			IsActive:    h.NombreEstado == defaultEstadoHospedaje,
		}
		if withOwner {
			resp.OwnerEmail = h.CorreoAnfitrion
		}
		responses = append(responses, resp)
	}
	return responses
}

// Create inserts a lodging, resolving omitted type, location and status the
// way the platform always has: type falls back to the "Cabaña" lookup,
// location to the caller-provided community/canton/province (creating a row
// against the first region) or the first existing location, status to Activo.
func (s *LodgingService) Create(req entities.CreateLodgingRequest, actor *auth.Claims) (int, error) {
	if req.Name == "" || req.Price == 0 {
		return 0, httperrors.BadRequest("Faltan datos obligatorios del hospedaje (nombre, precio).")
	}

	anfitrionID := actor.UserID
	if actor.Role == RoleAdmin && req.OwnerEmail != "" {
		owner, err := s.users.GetByEmail(strings.ToLower(req.OwnerEmail))
		if err != nil {
			return 0, err
		}
		if owner == nil {
			return 0, httperrors.BadRequest("No se encontró un usuario anfitrión con ese correo.")
		}
		anfitrionID = owner.ID
	}

	tipoID := req.TipoHospedajeID
	if tipoID == 0 {
		id, ok, err := s.repo.LookupTipo(defaultTipoHospedaje)
		if err != nil {
			return 0, err
		}
		if !ok {
			id = 1
		}
		tipoID = id
	}

	ubicacionID, err := s.resolveUbicacion(req)
	if err != nil {
		return 0, err
	}

	estadoID := req.EstadoHospedajeID
	if estadoID == 0 {
		id, ok, err := s.repo.LookupEstado(defaultEstadoHospedaje)
		if err != nil {
			return 0, err
		}
		if !ok {
			id = 1
		}
		estadoID = id
	}

	lodging := &db.Hospedaje{
		Nombre:      req.Name,
		Descripcion: req.Description,
		PrecioBase:  req.Price,
		AnfitrionID: anfitrionID,
		TipoID:      tipoID,
		UbicacionID: ubicacionID,
		EstadoID:    estadoID,
	}
	if err := s.repo.Create(lodging); err != nil {
		return 0, err
	}
	return lodging.ID, nil
}

func (s *LodgingService) resolveUbicacion(req entities.CreateLodgingRequest) (int, error) {
	if req.UbicacionID != 0 {
		return req.UbicacionID, nil
	}

	// A textual location from the caller always becomes a new row.
	if req.Comunidad != "" || req.Canton != "" || req.Provincia != "" {
		regionID, ok, err := s.repo.FirstRegion()
		if err != nil {
			return 0, err
		}
		if !ok {
			regionID = 1
		}
		comunidad := firstNonEmpty(req.Comunidad, req.Canton, req.Provincia, genericUbicacion)
		canton := firstNonEmpty(req.Canton, req.Comunidad, req.Provincia, genericUbicacion)
		provincia := firstNonEmpty(req.Provincia, req.Comunidad, req.Canton, genericUbicacion)
		return s.repo.CreateUbicacion(comunidad, canton, provincia, regionID)
	}

	id, ok, err := s.repo.FirstUbicacion()
	if err != nil {
		return 0, err
	}
	if ok {
		return id, nil
	}

	// Empty table: seed a generic location against the first region.
	regionID, ok, err := s.repo.FirstRegion()
	if err != nil {
		return 0, err
	}
	if !ok {
		regionID = 1
	}
	return s.repo.CreateUbicacion(genericUbicacion, genericUbicacion, genericUbicacion, regionID)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func (s *LodgingService) UpdateStatus(id int, status string) error {
	if status == "" {
		return httperrors.BadRequest("Debe especificar un estado.")
	}
	estadoID, ok, err := s.repo.LookupEstado(status)
	if err != nil {
		return err
	}
	if !ok {
		return httperrors.BadRequest("Estado de hospedaje no válido.")
	}
	if err := s.repo.UpdateEstado(id, estadoID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return httperrors.NotFound("No se encontró el hospedaje especificado.")
		}
		return err
	}
	return nil
}
