package repository

import "agrisahayak/entities"

type LandRepository interface {
	Create(l *entities.Land) error
	FindByLandID(landID string) (*entities.Land, error)
	List(limit int) ([]entities.Land, error)
}
