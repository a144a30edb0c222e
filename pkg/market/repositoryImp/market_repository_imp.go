package repositoryImp

import (
	"strings"
	"time"

	"agrisahayak/entities"
	"agrisahayak/pkg/market/repository"
	"gorm.io/gorm"
)

type marketRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.MarketRepository { return &marketRepo{db} }

func (r *marketRepo) Create(p *entities.MarketPrice) error {
	p.Crop = strings.ToLower(strings.TrimSpace(p.Crop))
	return r.db.Create(p).Error
}

func (r *marketRepo) Recent(crop string, days int) ([]entities.MarketPrice, error) {
	var out []entities.MarketPrice
	cut := time.Now().AddDate(0, 0, -days)
	err := r.db.Where("crop = ? AND recorded_date >= ?", strings.ToLower(strings.TrimSpace(crop)), cut).
		Order("recorded_date ASC").Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
