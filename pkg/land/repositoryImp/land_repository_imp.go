package repositoryImp

import (
	"agrisahayak/entities"
	"agrisahayak/pkg/land/repository"
	"gorm.io/gorm"
)

type landRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.LandRepository { return &landRepo{db} }

func (r *landRepo) Create(l *entities.Land) error { return r.db.Create(l).Error }

func (r *landRepo) FindByLandID(landID string) (*entities.Land, error) {
	var l entities.Land
	if err := r.db.Where("land_id = ?", landID).First(&l).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *landRepo) List(limit int) ([]entities.Land, error) {
	var out []entities.Land
	if limit <= 0 {
		limit = 100
	}
	if err := r.db.Order("id ASC").Limit(limit).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
