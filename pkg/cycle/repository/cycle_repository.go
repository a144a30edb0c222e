package repository

import (
	"errors"

	"agrisahayak/entities"
)

var (
	ErrNotFound = errors.New("cycle not found")
	// ErrConflict means a guarded update matched no row: either the cycle's
	// version moved under us or completion already happened.
	ErrConflict = errors.New("cycle update conflict")
)

type CycleRepository interface {
	Create(c *entities.CropCycle) error
	FindByCycleID(cycleID string) (*entities.CropCycle, error)
	ListByLand(landID string, activeOnly bool) ([]entities.CropCycle, error)
	ListActive() ([]entities.CropCycle, error)

	// Save persists the cycle's mutable fields guarded by its current
	// Version; the stored row's version is bumped on success.
	Save(c *entities.CropCycle) error

	// Complete flips the cycle inactive and writes the harvest outcome.
	// Guarded by is_active so a second completion returns ErrConflict.
	Complete(c *entities.CropCycle) error

	AppendActivity(a *entities.ActivityLog) error
	AppendDisease(d *entities.DiseaseEvent) error
}
