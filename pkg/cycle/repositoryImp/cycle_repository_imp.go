package repositoryImp

import (
	"errors"

	"gorm.io/gorm"

	"agrisahayak/entities"
	"agrisahayak/pkg/cycle/repository"
)

type cycleRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.CycleRepository { return &cycleRepo{db} }

func (r *cycleRepo) Create(c *entities.CropCycle) error { return r.db.Create(c).Error }

func (r *cycleRepo) FindByCycleID(cycleID string) (*entities.CropCycle, error) {
	var c entities.CropCycle
	err := r.db.Preload("Activities", func(db *gorm.DB) *gorm.DB {
		return db.Order("activity_date ASC, id ASC")
	}).Preload("DiseaseEvents", func(db *gorm.DB) *gorm.DB {
		return db.Order("reported_at ASC, id ASC")
	}).Where("cycle_id = ?", cycleID).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *cycleRepo) ListByLand(landID string, activeOnly bool) ([]entities.CropCycle, error) {
	var out []entities.CropCycle
	q := r.db.Preload("Activities").Preload("DiseaseEvents").Where("land_id = ?", landID)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Order("sowing_date DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *cycleRepo) ListActive() ([]entities.CropCycle, error) {
	var out []entities.CropCycle
	if err := r.db.Preload("Activities").Where("is_active = ?", true).Order("sowing_date DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *cycleRepo) Save(c *entities.CropCycle) error {
	res := r.db.Model(&entities.CropCycle{}).
		Where("id = ? AND version = ? AND is_active = ?", c.ID, c.Version, true).
		Updates(map[string]any{
			"health_status":   c.HealthStatus,
			"seed_cost":       c.SeedCost,
			"fertilizer_cost": c.FertilizerCost,
			"pesticide_cost":  c.PesticideCost,
			"labor_cost":      c.LaborCost,
			"irrigation_cost": c.IrrigationCost,
			"other_cost":      c.OtherCost,
			"total_cost":      c.TotalCost,
			"version":         gorm.Expr("version + 1"),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrConflict
	}
	c.Version++
	return nil
}

func (r *cycleRepo) Complete(c *entities.CropCycle) error {
	res := r.db.Model(&entities.CropCycle{}).
		Where("id = ? AND is_active = ?", c.ID, true).
		Updates(map[string]any{
			"is_active":            false,
			"actual_harvest":       c.ActualHarvest,
			"actual_yield_kg":      c.ActualYieldKg,
			"predicted_yield_kg":   c.PredictedYieldKg,
			"selling_price_per_kg": c.SellingPricePerKg,
			"total_revenue":        c.TotalRevenue,
			"profit":               c.Profit,
			"completion_notes":     c.CompletionNotes,
			"version":              gorm.Expr("version + 1"),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrConflict
	}
	c.IsActive = false
	c.Version++
	return nil
}

func (r *cycleRepo) AppendActivity(a *entities.ActivityLog) error { return r.db.Create(a).Error }

func (r *cycleRepo) AppendDisease(d *entities.DiseaseEvent) error { return r.db.Create(d).Error }
