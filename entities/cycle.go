package entities

import "time"

// Growth stages in lifecycle order. FRUITING is declared for wire
// compatibility with rows written by older clients; the resolver in
// pkg/agronomy never produces it.
const (
	StageSowing      = "sowing"
	StageGermination = "germination"
	StageVegetative  = "vegetative"
	StageFlowering   = "flowering"
	StageFruiting    = "fruiting"
	StageMaturity    = "maturity"
	StageHarvest     = "harvest"
)

const (
	HealthHealthy   = "healthy"
	HealthAtRisk    = "at_risk"
	HealthInfected  = "infected"
	HealthRecovered = "recovered"
)

const (
	SeasonKharif = "kharif"
	SeasonRabi   = "rabi"
	SeasonZaid   = "zaid"
)

func ValidHealth(s string) bool {
	switch s {
	case HealthHealthy, HealthAtRisk, HealthInfected, HealthRecovered:
		return true
	}
	return false
}

func ValidSeason(s string) bool {
	switch s {
	case SeasonKharif, SeasonRabi, SeasonZaid:
		return true
	}
	return false
}

// CropCycle is one sowing-to-harvest tracking record on a land parcel.
// Growth stage, days since sowing, yield prediction and alerts are derived
// from wall-clock time on every read and are never persisted.
type CropCycle struct {
	ID      uint   `gorm:"primaryKey" json:"-"`
	CycleID string `gorm:"uniqueIndex" json:"cycle_id"`
	LandRef uint   `gorm:"index" json:"-"`
	LandID  string `gorm:"index" json:"land_id"`

	Crop            string    `json:"crop"`
	Season          string    `json:"season"` // kharif|rabi|zaid
	SowingDate      time.Time `json:"-"`
	ExpectedHarvest time.Time `json:"-"`

	HealthStatus string `gorm:"default:healthy" json:"health_status"`
	IsActive     bool   `gorm:"default:true" json:"is_active"`

	// Costs accumulated from activity logs.
	SeedCost       float64 `json:"seed_cost"`
	FertilizerCost float64 `json:"fertilizer_cost"`
	PesticideCost  float64 `json:"pesticide_cost"`
	LaborCost      float64 `json:"labor_cost"`
	IrrigationCost float64 `json:"irrigation_cost"`
	OtherCost      float64 `json:"other_cost"`
	TotalCost      float64 `json:"total_cost"`

	// Completion data. PredictedYieldKg is the estimate captured immediately
	// before completion, kept as the accuracy baseline.
	ActualHarvest     *time.Time `json:"actual_harvest,omitempty"`
	ActualYieldKg     *float64   `json:"actual_yield_kg,omitempty"`
	PredictedYieldKg  *float64   `json:"predicted_yield_kg,omitempty"`
	SellingPricePerKg *float64   `json:"selling_price_per_kg,omitempty"`
	TotalRevenue      *float64   `json:"total_revenue,omitempty"`
	Profit            *float64   `json:"profit,omitempty"`
	CompletionNotes   string     `json:"completion_notes,omitempty"`

	// Bumped on every mutation; guards against lost concurrent updates.
	Version int `json:"-"`

	// Derived on read, never stored.
	SowingDateStr      string           `gorm:"-" json:"sowing_date"`
	ExpectedHarvestStr string           `gorm:"-" json:"expected_harvest"`
	GrowthStage        string           `gorm:"-" json:"growth_stage"`
	DaysSinceSowing    int              `gorm:"-" json:"days_since_sowing"`
	YieldPrediction    *YieldPrediction `gorm:"-" json:"yield_prediction,omitempty"`
	Alerts             []Alert          `gorm:"-" json:"alerts"`
	Activities         []ActivityLog    `gorm:"foreignKey:CycleRef;constraint:OnDelete:CASCADE" json:"activities"`
	DiseaseEvents      []DiseaseEvent   `gorm:"foreignKey:CycleRef;constraint:OnDelete:CASCADE" json:"disease_events,omitempty"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// ActivityLog is an append-only child of a cycle. Rows are never updated
// after creation; costs roll into the cycle's accumulators at insert time.
type ActivityLog struct {
	ID       uint `gorm:"primaryKey" json:"-"`
	CycleRef uint `gorm:"index" json:"-"`

	ActivityType string    `json:"type"` // irrigation|fertilizer|pesticide|seed|weeding|labor|other
	Description  string    `json:"description"`
	Cost         float64   `json:"cost"`
	ActivityDate time.Time `json:"date"`

	LoggedAt time.Time `gorm:"autoCreateTime" json:"-"`
}

// DiseaseEvent records one disease report against a cycle. Read-only
// history; the confidence at report time drives the health transition.
type DiseaseEvent struct {
	ID       uint `gorm:"primaryKey" json:"-"`
	CycleRef uint `gorm:"index" json:"-"`

	DiseaseName         string  `json:"disease_name"`
	Confidence          float64 `json:"confidence"`
	AffectedAreaPercent float64 `json:"affected_area_percent"`
	Severity            string  `json:"severity"` // low|moderate|high

	ReportedAt time.Time `gorm:"autoCreateTime" json:"reported_at"`
}

type Alert struct {
	Type     string `json:"type"`
	Severity string `json:"severity"` // info|warning|critical
	Message  string `json:"message"`
}

type YieldPrediction struct {
	PredictedYieldKgPerAcre float64      `json:"predicted_yield_kg_per_acre"`
	Confidence              float64      `json:"confidence"`
	Factors                 YieldFactors `json:"factors"`
	MarketPriceEstimate     string       `json:"market_price_estimate"`
}

type YieldFactors struct {
	CropType     string `json:"crop_type"`
	HealthStatus string `json:"health_status"`
	GrowthStage  string `json:"growth_stage"`
}
