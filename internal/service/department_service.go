package service

import (
	"database/sql"
	"errors"

	"ecoreserva/internal/auth"
	"ecoreserva/internal/db"
	"ecoreserva/internal/entities"
	httperrors "ecoreserva/internal/errors"
	"ecoreserva/internal/repository"
)

const (
	EstadoDepartamentoPendiente = "Pendiente"
	EstadoDepartamentoAprobado  = "Aprobado"
	EstadoDepartamentoRechazado = "Rechazado"
)

type DepartmentService struct {
	repo     repository.DepartmentRepository
	lodgings repository.LodgingRepository
}

func NewDepartmentService(repo repository.DepartmentRepository, lodgings repository.LodgingRepository) *DepartmentService {
	return &DepartmentService{repo: repo, lodgings: lodgings}
}

func (s *DepartmentService) Create(req entities.CreateDepartmentRequest, actor *auth.Claims) (int, error) {
	if req.HotelID == 0 || req.Name == "" || req.Price == 0 {
		return 0, httperrors.BadRequest("Faltan datos obligatorios del departamento (hotel, nombre, precio).")
	}

	hotel, err := s.lodgings.GetByID(req.HotelID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, httperrors.BadRequest("No se encontró el hotel especificado.")
		}
		return 0, err
	}
	if actor.Role == RoleOwner && hotel.AnfitrionID != actor.UserID {
		return 0, httperrors.Forbidden("No puedes crear departamentos en un hotel que no es tuyo.")
	}

	department := &db.Departamento{
		HospedajeID: req.HotelID,
		Nombre:      req.Name,
		Descripcion: req.Description,
		PrecioNoche: req.Price,
	}
	if req.Capacity > 0 {
		department.Capacidad = sql.NullInt64{Int64: int64(req.Capacity), Valid: true}
	}
	if err := s.repo.Create(department); err != nil {
		return 0, err
	}
	return department.ID, nil
}

func (s *DepartmentService) ListByOwner(ownerID int) ([]entities.DepartmentResponse, error) {
	departments, err := s.repo.ListByOwner(ownerID)
	if err != nil {
		return nil, err
	}
	return toDepartmentResponses(departments), nil
}

func (s *DepartmentService) ListPending() ([]entities.DepartmentResponse, error) {
	departments, err := s.repo.ListPending()
	if err != nil {
		return nil, err
	}
	return toDepartmentResponses(departments), nil
}

func (s *DepartmentService) ListAvailableByLodging(hospedajeID int) ([]entities.DepartmentResponse, error) {
	departments, err := s.repo.ListApprovedAvailable(hospedajeID)
	if err != nil {
		return nil, err
	}
	return toDepartmentResponses(departments), nil
}

func toDepartmentResponses(departments []db.Departamento) []entities.DepartmentResponse {
	responses := make([]entities.DepartmentResponse, 0, len(departments))
	for _, d := range departments {
		resp := entities.DepartmentResponse{
			ID:          d.ID,
			HotelID:     d.HospedajeID,
			HotelName:   d.NombreHospedaje,
			OwnerEmail:  d.CorreoAnfitrion,
			Name:        d.Nombre,
			Description: d.Descripcion,
			Price:       d.PrecioNoche,
			Status:      d.Estado,
		}
		if d.Capacidad.Valid {
			resp.Capacity = int(d.Capacidad.Int64)
		}
		responses = append(responses, resp)
	}
	return responses
}

func (s *DepartmentService) UpdateStatus(id int, status string) error {
	if status != EstadoDepartamentoAprobado && status != EstadoDepartamentoRechazado {
		return httperrors.BadRequest("Estado de departamento no válido.")
	}
	if err := s.repo.UpdateEstado(id, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return httperrors.NotFound("No se encontró el departamento especificado.")
		}
		return err
	}
	return nil
}
