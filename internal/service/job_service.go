package service

import (
	"fmt"
	"log"
	"time"

	"ecoreserva/internal/repository"
)

type JobService struct {
	repo repository.JobRepository
}

func NewJobService(repo repository.JobRepository) *JobService {
	return &JobService{repo: repo}
}

// CompleteFinishedStays moves CheckOut reservations whose end date passed to
// Completada.
func (s *JobService) CompleteFinishedStays() error {
	log.Println("Cron Job: Checking for reservations to mark as 'Completada'...")

	ids, err := s.repo.CheckedOutPastEnd()
	if err != nil {
		return fmt.Errorf("cron job: failed to get checked-out reservations past end date: %w", err)
	}
	if len(ids) == 0 {
		log.Println("Cron Job: No checked-out reservations found past their end date.")
		return nil
	}

	log.Printf("Cron Job: Found %d reservations to mark as 'Completada'. IDs: %v", len(ids), ids)
	if err := s.repo.UpdateEstados(ids, EstadoCompletada); err != nil {
		return fmt.Errorf("cron job: failed to update reservation statuses: %w", err)
	}
	return nil
}

// PurgeStalePending cancels Pendiente reservations older than maxAge whose
// start date already passed without an owner decision.
func (s *JobService) PurgeStalePending(maxAge time.Duration) error {
	ids, err := s.repo.StalePendingIDs(time.Now().UTC().Add(-maxAge))
	if err != nil {
		return fmt.Errorf("cron job: failed to get stale pending reservations: %w", err)
	}
	if len(ids) == 0 {
		return nil
	}

	log.Printf("Cron Job: Cancelling %d stale pending reservations. IDs: %v", len(ids), ids)
	if err := s.repo.UpdateEstados(ids, EstadoCancelada); err != nil {
		return fmt.Errorf("cron job: failed to cancel stale pending reservations: %w", err)
	}
	return nil
}
