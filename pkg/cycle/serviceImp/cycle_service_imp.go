package serviceImp

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"agrisahayak/entities"
	"agrisahayak/pkg/agronomy"
	"agrisahayak/pkg/cropref"
	"agrisahayak/pkg/cycle/repository"
	"agrisahayak/pkg/cycle/service"
	landrepo "agrisahayak/pkg/land/repository"
)

const dateLayout = "2006-01-02"

// advisorySearcher is the optional hook into the advisory library; disease
// reports attach matching treatment articles when one is wired in.
type advisorySearcher interface {
	Articles(query string, k int) ([]entities.ArticleRef, error)
}

type cycleSvc struct {
	crops    *cropref.Table
	repo     repository.CycleRepository
	lands    landrepo.LandRepository
	advisory advisorySearcher

	now func() time.Time
}

func New(crops *cropref.Table, repo repository.CycleRepository, lands landrepo.LandRepository, advisory advisorySearcher) service.CycleService {
	return &cycleSvc{crops: crops, repo: repo, lands: lands, advisory: advisory, now: time.Now}
}

func newCycleID() string {
	return "CC" + strings.ToUpper(uuid.NewString()[:6])
}

// decorate recomputes every derived field from the current clock and the
// persisted health status. Derived state is never written back.
func (s *cycleSvc) decorate(c *entities.CropCycle) {
	days := int(s.now().Sub(c.SowingDate).Hours() / 24)
	if days < 0 {
		days = 0
	}
	c.DaysSinceSowing = days

	profile := s.crops.Lookup(c.Crop)
	if c.IsActive {
		c.GrowthStage = agronomy.ResolveStage(profile, days)
	} else {
		c.GrowthStage = entities.StageHarvest
	}

	pred := agronomy.EstimateYield(profile, c.Crop, c.HealthStatus, c.GrowthStage)
	c.YieldPrediction = &pred
	c.Alerts = agronomy.StageAlerts(c.Crop, c.GrowthStage, c.HealthStatus)

	c.SowingDateStr = c.SowingDate.Format(dateLayout)
	c.ExpectedHarvestStr = c.ExpectedHarvest.Format(dateLayout)
	if c.Activities == nil {
		c.Activities = []entities.ActivityLog{}
	}
}

func (s *cycleSvc) Start(in service.StartInput) (*entities.CropCycle, error) {
	if strings.TrimSpace(in.Crop) == "" {
		return nil, fmt.Errorf("%w: crop is required", service.ErrInvalidInput)
	}
	if !entities.ValidSeason(in.Season) {
		return nil, fmt.Errorf("%w: season must be kharif, rabi or zaid", service.ErrInvalidInput)
	}
	sowing, err := time.Parse(dateLayout, in.SowingDate)
	if err != nil {
		return nil, fmt.Errorf("%w: sowing_date must be YYYY-MM-DD", service.ErrInvalidInput)
	}

	land, err := s.lands.FindByLandID(in.LandID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, service.ErrLandNotFound
		}
		return nil, err
	}

	profile := s.crops.Lookup(in.Crop)
	harvest := sowing.AddDate(0, 0, profile.TotalDays)
	if in.ExpectedHarvest != "" {
		h, err := time.Parse(dateLayout, in.ExpectedHarvest)
		if err != nil {
			return nil, fmt.Errorf("%w: expected_harvest must be YYYY-MM-DD", service.ErrInvalidInput)
		}
		harvest = h
	}

	c := &entities.CropCycle{
		CycleID:         newCycleID(),
		LandRef:         land.ID,
		LandID:          in.LandID,
		Crop:            in.Crop,
		Season:          in.Season,
		SowingDate:      sowing,
		ExpectedHarvest: harvest,
		HealthStatus:    entities.HealthHealthy,
		IsActive:        true,
	}
	if err := s.repo.Create(c); err != nil {
		return nil, err
	}
	s.decorate(c)
	return c, nil
}

func (s *cycleSvc) Get(cycleID string) (*entities.CropCycle, error) {
	c, err := s.find(cycleID)
	if err != nil {
		return nil, err
	}
	s.decorate(c)
	return c, nil
}

func (s *cycleSvc) ListByLand(landID string, activeOnly bool) ([]entities.CropCycle, error) {
	cycles, err := s.repo.ListByLand(landID, activeOnly)
	if err != nil {
		return nil, err
	}
	for i := range cycles {
		s.decorate(&cycles[i])
	}
	return cycles, nil
}

func (s *cycleSvc) ListActive() (*service.ActiveOverview, error) {
	cycles, err := s.repo.ListActive()
	if err != nil {
		return nil, err
	}
	var critical []service.CycleAlert
	for i := range cycles {
		s.decorate(&cycles[i])
		for _, a := range agronomy.CriticalAlerts(cycles[i].Alerts) {
			critical = append(critical, service.CycleAlert{CycleID: cycles[i].CycleID, Crop: cycles[i].Crop, Alert: a})
		}
	}
	return &service.ActiveOverview{TotalActive: len(cycles), Cycles: cycles, CriticalAlerts: critical}, nil
}

func (s *cycleSvc) LogActivity(cycleID string, in service.ActivityInput) (*entities.ActivityLog, error) {
	if strings.TrimSpace(in.ActivityType) == "" {
		return nil, fmt.Errorf("%w: activity_type is required", service.ErrInvalidInput)
	}
	if in.Cost < 0 {
		return nil, fmt.Errorf("%w: cost cannot be negative", service.ErrInvalidInput)
	}
	date := s.now()
	if in.Date != "" {
		d, err := time.Parse(dateLayout, in.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", service.ErrInvalidInput)
		}
		date = d
	}

	c, err := s.find(cycleID)
	if err != nil {
		return nil, err
	}

	// Roll the cost in first; the version guard on Save can reject a stale
	// read, and an activity row must never exist without its cost counted.
	if in.Cost > 0 {
		addCost(c, in.ActivityType, in.Cost)
		if err := s.repo.Save(c); err != nil {
			return nil, saveErr(err)
		}
	}

	a := &entities.ActivityLog{
		CycleRef:     c.ID,
		ActivityType: in.ActivityType,
		Description:  in.Description,
		Cost:         in.Cost,
		ActivityDate: date,
	}
	if err := s.repo.AppendActivity(a); err != nil {
		return nil, err
	}
	return a, nil
}

// saveErr translates the repository's optimistic-lock failure into the
// caller-facing sentinel.
func saveErr(err error) error {
	if errors.Is(err, repository.ErrConflict) {
		return service.ErrConflict
	}
	return err
}

// addCost rolls an activity cost into the matching accumulator and the total.
func addCost(c *entities.CropCycle, activityType string, cost float64) {
	switch strings.ToLower(activityType) {
	case "seed", "sowing":
		c.SeedCost += cost
	case "fertilizer":
		c.FertilizerCost += cost
	case "pesticide":
		c.PesticideCost += cost
	case "irrigation":
		c.IrrigationCost += cost
	case "labor", "labour", "weeding":
		c.LaborCost += cost
	default:
		c.OtherCost += cost
	}
	c.TotalCost += cost
}

func (s *cycleSvc) ReportDisease(cycleID string, in service.DiseaseInput) (*service.DiseaseOutcome, error) {
	if strings.TrimSpace(in.DiseaseName) == "" {
		return nil, fmt.Errorf("%w: disease_name is required", service.ErrInvalidInput)
	}
	if in.Confidence < 0 || in.Confidence > 1 {
		return nil, fmt.Errorf("%w: confidence must be between 0 and 1", service.ErrInvalidInput)
	}

	c, err := s.find(cycleID)
	if err != nil {
		return nil, err
	}
	if !c.IsActive {
		return nil, service.ErrCycleCompleted
	}

	// One-shot, confidence-driven transition. Low-confidence reports never
	// downgrade an escalated status: better to keep treating an infected
	// crop than to clear it on a weak signal.
	changed := false
	switch {
	case in.Confidence > 0.8:
		changed = c.HealthStatus != entities.HealthInfected
		c.HealthStatus = entities.HealthInfected
	case in.Confidence > 0.5:
		if c.HealthStatus == entities.HealthHealthy || c.HealthStatus == entities.HealthRecovered {
			c.HealthStatus = entities.HealthAtRisk
			changed = true
		}
	}

	severity := "low"
	switch {
	case in.Confidence > 0.8:
		severity = "high"
	case in.Confidence > 0.5:
		severity = "moderate"
	}
	ev := &entities.DiseaseEvent{
		CycleRef:            c.ID,
		DiseaseName:         in.DiseaseName,
		Confidence:          in.Confidence,
		AffectedAreaPercent: in.AffectedAreaPercent,
		Severity:            severity,
	}
	if err := s.repo.AppendDisease(ev); err != nil {
		return nil, err
	}

	if changed {
		if err := s.repo.Save(c); err != nil {
			return nil, saveErr(err)
		}
	}

	s.decorate(c)
	out := &service.DiseaseOutcome{
		NewHealthStatus:        c.HealthStatus,
		UpdatedYieldPrediction: *c.YieldPrediction,
		UrgentAlerts:           agronomy.CriticalAlerts(c.Alerts),
	}
	if s.advisory != nil {
		refs, err := s.advisory.Articles(in.DiseaseName+" "+c.Crop, 3)
		if err == nil {
			out.Articles = refs
		}
	}
	return out, nil
}

func (s *cycleSvc) UpdateHealth(cycleID, status string) (*service.HealthOutcome, error) {
	if !entities.ValidHealth(status) {
		return nil, fmt.Errorf("%w: status must be healthy, at_risk, infected or recovered", service.ErrInvalidInput)
	}
	c, err := s.find(cycleID)
	if err != nil {
		return nil, err
	}
	if !c.IsActive {
		return nil, service.ErrCycleCompleted
	}

	c.HealthStatus = status
	if err := s.repo.Save(c); err != nil {
		return nil, saveErr(err)
	}
	s.decorate(c)
	return &service.HealthOutcome{NewStatus: c.HealthStatus, YieldPrediction: *c.YieldPrediction}, nil
}

func (s *cycleSvc) Complete(cycleID string, in service.CompleteInput) (*service.CompletionSummary, error) {
	if in.ActualYieldKg < 0 {
		return nil, fmt.Errorf("%w: actual_yield_kg cannot be negative", service.ErrInvalidInput)
	}
	c, err := s.find(cycleID)
	if err != nil {
		return nil, err
	}
	if !c.IsActive {
		return nil, service.ErrCycleCompleted
	}

	// The estimate computed just before completion is the accuracy baseline.
	s.decorate(c)
	predicted := c.YieldPrediction.PredictedYieldKgPerAcre

	now := s.now()
	c.ActualHarvest = &now
	c.ActualYieldKg = &in.ActualYieldKg
	c.PredictedYieldKg = &predicted
	c.CompletionNotes = in.Notes
	if in.SellingPricePerKg != nil {
		revenue := in.ActualYieldKg * (*in.SellingPricePerKg)
		profit := revenue - c.TotalCost
		c.SellingPricePerKg = in.SellingPricePerKg
		c.TotalRevenue = &revenue
		c.Profit = &profit
	}

	if err := s.repo.Complete(c); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, service.ErrCycleCompleted
		}
		return nil, err
	}

	accuracy := 0.0
	if predicted > 0 {
		diff := in.ActualYieldKg - predicted
		if diff < 0 {
			diff = -diff
		}
		accuracy = (1 - diff/predicted) * 100
	}

	return &service.CompletionSummary{
		CycleID:            c.CycleID,
		ActualYieldKg:      in.ActualYieldKg,
		PredictedYieldKg:   predicted,
		PredictionAccuracy: fmt.Sprintf("%.1f%%", accuracy),
		TotalCost:          c.TotalCost,
		Revenue:            c.TotalRevenue,
		Profit:             c.Profit,
		Notes:              in.Notes,
	}, nil
}

func (s *cycleSvc) find(cycleID string) (*entities.CropCycle, error) {
	c, err := s.repo.FindByCycleID(cycleID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, service.ErrCycleNotFound
		}
		return nil, err
	}
	return c, nil
}
