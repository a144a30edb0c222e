package service

import (
	"errors"

	"agrisahayak/entities"
)

var (
	ErrLandNotFound   = errors.New("land not found")
	ErrCycleNotFound  = errors.New("crop cycle not found")
	ErrCycleCompleted = errors.New("crop cycle already completed")
	ErrConflict       = errors.New("concurrent update, retry")
	ErrInvalidInput   = errors.New("invalid input")
)

type StartInput struct {
	LandID          string
	Crop            string
	Season          string
	SowingDate      string // YYYY-MM-DD
	ExpectedHarvest string // optional YYYY-MM-DD, overrides the projection
}

type ActivityInput struct {
	ActivityType string
	Description  string
	Cost         float64
	Date         string // optional YYYY-MM-DD, defaults to today
}

type DiseaseInput struct {
	DiseaseName         string
	Confidence          float64 // [0,1]
	AffectedAreaPercent float64
}

type DiseaseOutcome struct {
	NewHealthStatus       string                    `json:"new_health_status"`
	UpdatedYieldPrediction entities.YieldPrediction `json:"updated_yield_prediction"`
	UrgentAlerts          []entities.Alert          `json:"urgent_alerts"`
	Articles              []entities.ArticleRef     `json:"articles,omitempty"`
}

type HealthOutcome struct {
	NewStatus       string                   `json:"new_status"`
	YieldPrediction entities.YieldPrediction `json:"yield_prediction"`
}

type CompleteInput struct {
	ActualYieldKg     float64
	SellingPricePerKg *float64
	Notes             string
}

type CompletionSummary struct {
	CycleID            string   `json:"cycle_id"`
	ActualYieldKg      float64  `json:"actual_yield_kg"`
	PredictedYieldKg   float64  `json:"predicted_yield_kg"`
	PredictionAccuracy string   `json:"prediction_accuracy"`
	TotalCost          float64  `json:"total_cost"`
	Revenue            *float64 `json:"revenue,omitempty"`
	Profit             *float64 `json:"profit,omitempty"`
	Notes              string   `json:"notes,omitempty"`
}

type CycleAlert struct {
	CycleID string         `json:"cycle_id"`
	Crop    string         `json:"crop"`
	Alert   entities.Alert `json:"alert"`
}

type ActiveOverview struct {
	TotalActive    int                  `json:"total_active"`
	Cycles         []entities.CropCycle `json:"cycles"`
	CriticalAlerts []CycleAlert         `json:"critical_alerts"`
}

type CycleService interface {
	Start(in StartInput) (*entities.CropCycle, error)
	Get(cycleID string) (*entities.CropCycle, error)
	ListByLand(landID string, activeOnly bool) ([]entities.CropCycle, error)
	ListActive() (*ActiveOverview, error)
	LogActivity(cycleID string, in ActivityInput) (*entities.ActivityLog, error)
	ReportDisease(cycleID string, in DiseaseInput) (*DiseaseOutcome, error)
	UpdateHealth(cycleID, status string) (*HealthOutcome, error)
	Complete(cycleID string, in CompleteInput) (*CompletionSummary, error)
}
