package service

import (
	"errors"

	"ecoreserva/internal/auth"
	"ecoreserva/internal/db"
	"ecoreserva/internal/entities"
	httperrors "ecoreserva/internal/errors"
	"ecoreserva/internal/repository"
)

const defaultTipoActividad = "Aventura"

type ActivityService struct {
	repo     repository.ActivityRepository
	lodgings repository.LodgingRepository
}

func NewActivityService(repo repository.ActivityRepository, lodgings repository.LodgingRepository) *ActivityService {
	return &ActivityService{repo: repo, lodgings: lodgings}
}

func (s *ActivityService) Create(req entities.ActivityRequest, actor *auth.Claims) (int, error) {
	if req.PropertyID == 0 || req.Name == "" {
		return 0, httperrors.BadRequest("Faltan datos de la actividad.")
	}

	lodging, err := s.requireLodgingAccess(req.PropertyID, actor)
	if err != nil {
		return 0, err
	}

	tipoID, err := s.resolveTipo(req.TipoActividadID, req.TypeName)
	if err != nil {
		return 0, err
	}

	// The activity inherits the lodging's location unless one is given.
	ubicacionID := req.UbicacionID
	if ubicacionID == 0 {
		ubicacionID = lodging.UbicacionID
	}
	if ubicacionID == 0 {
		return 0, httperrors.BadRequest("No se pudo determinar una ubicación válida para la actividad.")
	}

	activity := &db.Actividad{
		Nombre:      req.Name,
		Descripcion: req.Description,
		Precio:      req.Price,
		HospedajeID: req.PropertyID,
		TipoID:      tipoID,
		UbicacionID: ubicacionID,
	}
	if err := s.repo.Create(activity); err != nil {
		return 0, err
	}
	return activity.ID, nil
}

func (s *ActivityService) Update(id int, req entities.ActivityRequest, actor *auth.Claims) error {
	if req.PropertyID == 0 || req.Name == "" {
		return httperrors.BadRequest("Faltan datos de la actividad.")
	}

	activity, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return httperrors.NotFound("No se encontró la actividad especificada.")
		}
		return err
	}
	if _, err := s.requireLodgingAccess(activity.HospedajeID, actor); err != nil {
		return err
	}

	tipoID, err := s.resolveTipo(req.TipoActividadID, req.TypeName)
	if err != nil {
		return err
	}

	activity.Nombre = req.Name
	activity.Descripcion = req.Description
	activity.Precio = req.Price
	activity.HospedajeID = req.PropertyID
	activity.TipoID = tipoID
	return s.repo.Update(activity)
}

func (s *ActivityService) Delete(id int, actor *auth.Claims) error {
	activity, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return httperrors.NotFound("No se encontró la actividad especificada.")
		}
		return err
	}
	if _, err := s.requireLodgingAccess(activity.HospedajeID, actor); err != nil {
		return err
	}
	return s.repo.Delete(id)
}

func (s *ActivityService) ListByOwner(ownerID int) ([]entities.ActivityResponse, error) {
	activities, err := s.repo.ListByOwner(ownerID)
	if err != nil {
		return nil, err
	}
	return toActivityResponses(activities), nil
}

func (s *ActivityService) ListByLodging(hospedajeID int) ([]entities.ActivityResponse, error) {
	activities, err := s.repo.ListByHospedaje(hospedajeID)
	if err != nil {
		return nil, err
	}
	return toActivityResponses(activities), nil
}

// requireLodgingAccess loads the lodging and enforces resource-level
// ownership: an owner token only grants access to that owner's lodgings.
func (s *ActivityService) requireLodgingAccess(hospedajeID int, actor *auth.Claims) (*db.Hospedaje, error) {
	lodging, err := s.lodgings.GetByID(hospedajeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, httperrors.BadRequest("No se encontró el hospedaje especificado.")
		}
		return nil, err
	}
	if actor.Role == RoleOwner && lodging.AnfitrionID != actor.UserID {
		return nil, httperrors.Forbidden("No tienes permisos sobre este hospedaje.")
	}
	return lodging, nil
}

func (s *ActivityService) resolveTipo(tipoID int, typeName string) (int, error) {
	if tipoID != 0 {
		return tipoID, nil
	}
	nombre := typeName
	if nombre == "" {
		nombre = defaultTipoActividad
	}
	id, ok, err := s.repo.LookupTipo(nombre)
	if err != nil {
		return 0, err
	}
	if !ok {
		// Fall back to the default type before giving up entirely.
		id, ok, err = s.repo.LookupTipo(defaultTipoActividad)
		if err != nil {
			return 0, err
		}
		if !ok {
			id = 1
		}
	}
	return id, nil
}

func toActivityResponses(activities []db.Actividad) []entities.ActivityResponse {
	responses := make([]entities.ActivityResponse, 0, len(activities))
	for _, a := range activities {
		responses = append(responses, entities.ActivityResponse{
			ID:          a.ID,
			PropertyID:  a.HospedajeID,
			Name:        a.Nombre,
			Description: a.Descripcion,
			Price:       a.Precio,
			Type:        a.NombreTipo,
		})
	}
	return responses
}
