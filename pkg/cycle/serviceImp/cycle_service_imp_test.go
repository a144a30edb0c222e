package serviceImp

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"agrisahayak/database"
	"agrisahayak/entities"
	"agrisahayak/pkg/cropref"
	"agrisahayak/pkg/cycle/repository"
	cyclerepo "agrisahayak/pkg/cycle/repositoryImp"
	"agrisahayak/pkg/cycle/service"
	landrepo "agrisahayak/pkg/land/repositoryImp"
)

const testLandID = "LTEST01"

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// newTestSvc opens a throwaway sqlite database, seeds one land and returns
// a service whose clock is pinned to the given day.
func newTestSvc(t *testing.T, now time.Time) *cycleSvc {
	t.Helper()
	db := database.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	lands := landrepo.New(db)
	if err := lands.Create(&entities.Land{
		LandID: testLandID, Name: "north field", AreaAcres: 2.5,
		SoilType: "alluvial", IrrigationType: "canal",
		Village: "Rampur", District: "Varanasi", State: "Uttar Pradesh",
	}); err != nil {
		t.Fatalf("seed land: %v", err)
	}
	svc := New(cropref.New(), cyclerepo.New(db), lands, nil).(*cycleSvc)
	svc.now = func() time.Time { return now }
	return svc
}

func startRice(t *testing.T, svc *cycleSvc) *entities.CropCycle {
	t.Helper()
	c, err := svc.Start(service.StartInput{
		LandID: testLandID, Crop: "rice", Season: entities.SeasonKharif,
		SowingDate: "2024-06-01",
	})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	return c
}

func TestStartProjectsHarvestDate(t *testing.T) {
	svc := newTestSvc(t, date("2024-06-01"))
	c := startRice(t, svc)

	if c.ExpectedHarvestStr != "2024-09-29" {
		t.Errorf("expected_harvest = %s, want 2024-09-29 (120 days after sowing)", c.ExpectedHarvestStr)
	}
	if !strings.HasPrefix(c.CycleID, "CC") || len(c.CycleID) != 8 {
		t.Errorf("cycle id %q should be CC plus six characters", c.CycleID)
	}
	if c.HealthStatus != entities.HealthHealthy || !c.IsActive {
		t.Errorf("new cycle should be healthy and active, got %s/%v", c.HealthStatus, c.IsActive)
	}
	if c.GrowthStage != entities.StageSowing || c.DaysSinceSowing != 0 {
		t.Errorf("day 0 should be sowing, got %s at day %d", c.GrowthStage, c.DaysSinceSowing)
	}
}

func TestStartExplicitHarvestOverride(t *testing.T) {
	svc := newTestSvc(t, date("2024-06-01"))
	c, err := svc.Start(service.StartInput{
		LandID: testLandID, Crop: "rice", Season: entities.SeasonKharif,
		SowingDate: "2024-06-01", ExpectedHarvest: "2024-10-15",
	})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if c.ExpectedHarvestStr != "2024-10-15" {
		t.Errorf("expected_harvest = %s, want the explicit 2024-10-15", c.ExpectedHarvestStr)
	}
}

func TestStartUnknownLand(t *testing.T) {
	svc := newTestSvc(t, date("2024-06-01"))
	_, err := svc.Start(service.StartInput{
		LandID: "LNOPE99", Crop: "rice", Season: entities.SeasonKharif,
		SowingDate: "2024-06-01",
	})
	if !errors.Is(err, service.ErrLandNotFound) {
		t.Errorf("err = %v, want ErrLandNotFound", err)
	}
}

func TestStartValidation(t *testing.T) {
	svc := newTestSvc(t, date("2024-06-01"))
	bad := []service.StartInput{
		{LandID: testLandID, Crop: "", Season: "kharif", SowingDate: "2024-06-01"},
		{LandID: testLandID, Crop: "rice", Season: "monsoon", SowingDate: "2024-06-01"},
		{LandID: testLandID, Crop: "rice", Season: "kharif", SowingDate: "01-06-2024"},
		{LandID: testLandID, Crop: "rice", Season: "kharif", SowingDate: "2024-06-01", ExpectedHarvest: "soon"},
	}
	for i, in := range bad {
		if _, err := svc.Start(in); !errors.Is(err, service.ErrInvalidInput) {
			t.Errorf("case %d: err = %v, want ErrInvalidInput", i, err)
		}
	}
}

func TestGetRecomputesDerivedState(t *testing.T) {
	svc := newTestSvc(t, date("2024-06-01"))
	c := startRice(t, svc)

	// day 30: vegetative, healthy rice predicts the full base yield
	svc.now = func() time.Time { return date("2024-07-01") }
	got, err := svc.Get(c.CycleID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.DaysSinceSowing != 30 || got.GrowthStage != entities.StageVegetative {
		t.Errorf("day 30: got %s at day %d, want vegetative", got.GrowthStage, got.DaysSinceSowing)
	}
	yp := got.YieldPrediction
	if yp == nil || yp.PredictedYieldKgPerAcre != 2500 || yp.Confidence != 0.85 {
		t.Fatalf("healthy rice prediction = %+v, want 2500 kg at 0.85", yp)
	}
	if len(got.Alerts) == 0 {
		t.Error("vegetative stage should carry alerts")
	}
	if got.Activities == nil {
		t.Error("activities should decode as an empty list, not null")
	}

	// same row, later clock: stage advances without any write
	svc.now = func() time.Time { return date("2024-08-01") }
	got, err = svc.Get(c.CycleID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.DaysSinceSowing != 61 || got.GrowthStage != entities.StageFlowering {
		t.Errorf("day 61: got %s at day %d, want flowering", got.GrowthStage, got.DaysSinceSowing)
	}
}

func TestGetUnknownCycle(t *testing.T) {
	svc := newTestSvc(t, date("2024-06-01"))
	if _, err := svc.Get("CCNOPE9"); !errors.Is(err, service.ErrCycleNotFound) {
		t.Errorf("err = %v, want ErrCycleNotFound", err)
	}
}

func TestLogActivityAccumulatesCosts(t *testing.T) {
	svc := newTestSvc(t, date("2024-06-10"))
	c := startRice(t, svc)

	entries := []service.ActivityInput{
		{ActivityType: "seed", Cost: 1200, Description: "paddy seed"},
		{ActivityType: "fertilizer", Cost: 800, Date: "2024-06-20"},
		{ActivityType: "irrigation", Cost: 150},
		{ActivityType: "labour", Cost: 500},
		{ActivityType: "transport", Cost: 250},
		{ActivityType: "scouting"}, // free activities still get logged
	}
	for _, in := range entries {
		if _, err := svc.LogActivity(c.CycleID, in); err != nil {
			t.Fatalf("log %s: %v", in.ActivityType, err)
		}
	}

	got, err := svc.Get(c.CycleID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.SeedCost != 1200 || got.FertilizerCost != 800 || got.IrrigationCost != 150 ||
		got.LaborCost != 500 || got.OtherCost != 250 {
		t.Errorf("cost buckets wrong: %+v", got)
	}
	if got.TotalCost != 2900 {
		t.Errorf("total cost = %.0f, want 2900", got.TotalCost)
	}
	if len(got.Activities) != len(entries) {
		t.Errorf("got %d activities, want %d", len(got.Activities), len(entries))
	}
}

func TestLogActivityValidation(t *testing.T) {
	svc := newTestSvc(t, date("2024-06-10"))
	c := startRice(t, svc)

	if _, err := svc.LogActivity(c.CycleID, service.ActivityInput{Cost: 100}); !errors.Is(err, service.ErrInvalidInput) {
		t.Errorf("missing type: err = %v, want ErrInvalidInput", err)
	}
	if _, err := svc.LogActivity(c.CycleID, service.ActivityInput{ActivityType: "seed", Cost: -5}); !errors.Is(err, service.ErrInvalidInput) {
		t.Errorf("negative cost: err = %v, want ErrInvalidInput", err)
	}
	if _, err := svc.LogActivity("CCNOPE9", service.ActivityInput{ActivityType: "seed"}); !errors.Is(err, service.ErrCycleNotFound) {
		t.Errorf("unknown cycle: err = %v, want ErrCycleNotFound", err)
	}
}

func TestReportDiseaseThresholds(t *testing.T) {
	svc := newTestSvc(t, date("2024-07-01"))

	t.Run("high confidence infects", func(t *testing.T) {
		c := startRice(t, svc)
		out, err := svc.ReportDisease(c.CycleID, service.DiseaseInput{
			DiseaseName: "blast", Confidence: 0.95, AffectedAreaPercent: 30,
		})
		if err != nil {
			t.Fatalf("report: %v", err)
		}
		if out.NewHealthStatus != entities.HealthInfected {
			t.Errorf("status = %s, want infected", out.NewHealthStatus)
		}
		if out.UpdatedYieldPrediction.PredictedYieldKgPerAcre != 1750 ||
			out.UpdatedYieldPrediction.Confidence != 0.7 {
			t.Errorf("infected prediction = %+v, want 1750 at 0.7", out.UpdatedYieldPrediction)
		}
		if len(out.UrgentAlerts) == 0 || out.UrgentAlerts[0].Type != "disease" {
			t.Errorf("want a leading critical disease alert, got %+v", out.UrgentAlerts)
		}
		got, _ := svc.Get(c.CycleID)
		if len(got.DiseaseEvents) != 1 || got.DiseaseEvents[0].Severity != "high" {
			t.Errorf("disease history = %+v, want one high severity event", got.DiseaseEvents)
		}
	})

	t.Run("medium confidence marks at risk", func(t *testing.T) {
		c := startRice(t, svc)
		out, err := svc.ReportDisease(c.CycleID, service.DiseaseInput{DiseaseName: "blight", Confidence: 0.6})
		if err != nil {
			t.Fatalf("report: %v", err)
		}
		if out.NewHealthStatus != entities.HealthAtRisk {
			t.Errorf("status = %s, want at_risk", out.NewHealthStatus)
		}
		if out.UpdatedYieldPrediction.PredictedYieldKgPerAcre != 2125 {
			t.Errorf("at_risk prediction = %.0f, want 2125", out.UpdatedYieldPrediction.PredictedYieldKgPerAcre)
		}
	})

	t.Run("low confidence only records the event", func(t *testing.T) {
		c := startRice(t, svc)
		out, err := svc.ReportDisease(c.CycleID, service.DiseaseInput{DiseaseName: "rust", Confidence: 0.3})
		if err != nil {
			t.Fatalf("report: %v", err)
		}
		if out.NewHealthStatus != entities.HealthHealthy {
			t.Errorf("status = %s, want healthy unchanged", out.NewHealthStatus)
		}
		got, _ := svc.Get(c.CycleID)
		if len(got.DiseaseEvents) != 1 || got.DiseaseEvents[0].Severity != "low" {
			t.Errorf("low confidence report should still be kept: %+v", got.DiseaseEvents)
		}
	})

	t.Run("never downgrades", func(t *testing.T) {
		c := startRice(t, svc)
		if _, err := svc.ReportDisease(c.CycleID, service.DiseaseInput{DiseaseName: "blast", Confidence: 0.9}); err != nil {
			t.Fatalf("first report: %v", err)
		}
		out, err := svc.ReportDisease(c.CycleID, service.DiseaseInput{DiseaseName: "blast", Confidence: 0.6})
		if err != nil {
			t.Fatalf("second report: %v", err)
		}
		if out.NewHealthStatus != entities.HealthInfected {
			t.Errorf("moderate report after infection should keep infected, got %s", out.NewHealthStatus)
		}
	})
}

func TestReportDiseaseValidation(t *testing.T) {
	svc := newTestSvc(t, date("2024-07-01"))
	c := startRice(t, svc)

	if _, err := svc.ReportDisease(c.CycleID, service.DiseaseInput{Confidence: 0.9}); !errors.Is(err, service.ErrInvalidInput) {
		t.Errorf("missing name: err = %v, want ErrInvalidInput", err)
	}
	if _, err := svc.ReportDisease(c.CycleID, service.DiseaseInput{DiseaseName: "blast", Confidence: 1.2}); !errors.Is(err, service.ErrInvalidInput) {
		t.Errorf("confidence out of range: err = %v, want ErrInvalidInput", err)
	}
}

func TestUpdateHealthManualRecovery(t *testing.T) {
	svc := newTestSvc(t, date("2024-07-01"))
	c := startRice(t, svc)

	if _, err := svc.ReportDisease(c.CycleID, service.DiseaseInput{DiseaseName: "blast", Confidence: 0.9}); err != nil {
		t.Fatalf("infect: %v", err)
	}
	out, err := svc.UpdateHealth(c.CycleID, entities.HealthRecovered)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if out.NewStatus != entities.HealthRecovered {
		t.Errorf("status = %s, want recovered", out.NewStatus)
	}
	if out.YieldPrediction.PredictedYieldKgPerAcre != 2250 {
		t.Errorf("recovered prediction = %.0f, want 2250", out.YieldPrediction.PredictedYieldKgPerAcre)
	}

	if _, err := svc.UpdateHealth(c.CycleID, "thriving"); !errors.Is(err, service.ErrInvalidInput) {
		t.Errorf("bad status: err = %v, want ErrInvalidInput", err)
	}
}

func TestCompleteReportsAccuracy(t *testing.T) {
	svc := newTestSvc(t, date("2024-07-01"))
	c := startRice(t, svc)
	if _, err := svc.ReportDisease(c.CycleID, service.DiseaseInput{DiseaseName: "blast", Confidence: 0.9}); err != nil {
		t.Fatalf("infect: %v", err)
	}
	if _, err := svc.LogActivity(c.CycleID, service.ActivityInput{ActivityType: "pesticide", Cost: 2000}); err != nil {
		t.Fatalf("log: %v", err)
	}

	svc.now = func() time.Time { return date("2024-09-29") }
	price := 22.0
	sum, err := svc.Complete(c.CycleID, service.CompleteInput{
		ActualYieldKg: 1600, SellingPricePerKg: &price, Notes: "good monsoon",
	})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}

	if sum.PredictedYieldKg != 1750 {
		t.Errorf("predicted baseline = %.0f, want the infected estimate 1750", sum.PredictedYieldKg)
	}
	if sum.PredictionAccuracy != "91.4%" {
		t.Errorf("accuracy = %s, want 91.4%%", sum.PredictionAccuracy)
	}
	if sum.Revenue == nil || *sum.Revenue != 1600*22.0 {
		t.Errorf("revenue = %v, want 35200", sum.Revenue)
	}
	if sum.Profit == nil || *sum.Profit != 1600*22.0-2000 {
		t.Errorf("profit = %v, want 33200", sum.Profit)
	}

	// completed cycles read back as harvested and inactive
	got, err := svc.Get(c.CycleID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.IsActive || got.GrowthStage != entities.StageHarvest {
		t.Errorf("completed cycle: active=%v stage=%s, want inactive harvest", got.IsActive, got.GrowthStage)
	}
	if got.ActualYieldKg == nil || *got.ActualYieldKg != 1600 {
		t.Errorf("actual yield not persisted: %v", got.ActualYieldKg)
	}
}

func TestCompleteTwiceFails(t *testing.T) {
	svc := newTestSvc(t, date("2024-07-01"))
	c := startRice(t, svc)

	if _, err := svc.Complete(c.CycleID, service.CompleteInput{ActualYieldKg: 2400}); err != nil {
		t.Fatalf("first complete: %v", err)
	}
	if _, err := svc.Complete(c.CycleID, service.CompleteInput{ActualYieldKg: 2400}); !errors.Is(err, service.ErrCycleCompleted) {
		t.Errorf("second complete: err = %v, want ErrCycleCompleted", err)
	}
}

func TestCompletedCycleHealthIsFrozen(t *testing.T) {
	svc := newTestSvc(t, date("2024-09-29"))
	c := startRice(t, svc)
	if _, err := svc.Complete(c.CycleID, service.CompleteInput{ActualYieldKg: 2400}); err != nil {
		t.Fatalf("complete: %v", err)
	}

	if _, err := svc.UpdateHealth(c.CycleID, entities.HealthInfected); !errors.Is(err, service.ErrCycleCompleted) {
		t.Errorf("update health on completed cycle: err = %v, want ErrCycleCompleted", err)
	}
	if _, err := svc.ReportDisease(c.CycleID, service.DiseaseInput{DiseaseName: "blast", Confidence: 0.95}); !errors.Is(err, service.ErrCycleCompleted) {
		t.Errorf("report disease on completed cycle: err = %v, want ErrCycleCompleted", err)
	}

	got, err := svc.Get(c.CycleID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.HealthStatus != entities.HealthHealthy {
		t.Errorf("health = %s, want healthy untouched after completion", got.HealthStatus)
	}
	if len(got.DiseaseEvents) != 0 {
		t.Errorf("rejected report should not be recorded: %+v", got.DiseaseEvents)
	}
}

// failingLandRepo simulates a storage fault on every call.
type failingLandRepo struct{ err error }

func (f *failingLandRepo) Create(*entities.Land) error                 { return f.err }
func (f *failingLandRepo) FindByLandID(string) (*entities.Land, error) { return nil, f.err }
func (f *failingLandRepo) List(int) ([]entities.Land, error)           { return nil, f.err }

func TestStartLandLookupFailurePropagates(t *testing.T) {
	dbErr := errors.New("disk I/O error")
	svc := &cycleSvc{
		crops: cropref.New(),
		lands: &failingLandRepo{err: dbErr},
		now:   func() time.Time { return date("2024-06-01") },
	}
	_, err := svc.Start(service.StartInput{
		LandID: testLandID, Crop: "rice", Season: entities.SeasonKharif,
		SowingDate: "2024-06-01",
	})
	if errors.Is(err, service.ErrLandNotFound) {
		t.Fatal("a storage fault must not read as land-not-found")
	}
	if !errors.Is(err, dbErr) {
		t.Errorf("err = %v, want the storage error passed through", err)
	}
}

// conflictSaveRepo returns a fixed cycle and rejects every Save with the
// optimistic-lock conflict.
type conflictSaveRepo struct {
	repository.CycleRepository
	cycle    entities.CropCycle
	appended int
}

func (r *conflictSaveRepo) FindByCycleID(string) (*entities.CropCycle, error) {
	c := r.cycle
	return &c, nil
}
func (r *conflictSaveRepo) Save(*entities.CropCycle) error { return repository.ErrConflict }
func (r *conflictSaveRepo) AppendActivity(*entities.ActivityLog) error {
	r.appended++
	return nil
}

func TestLogActivityConflictLeavesNoOrphanRow(t *testing.T) {
	repo := &conflictSaveRepo{cycle: entities.CropCycle{
		ID: 1, CycleID: "CCAAAA01", Crop: "rice", IsActive: true,
		SowingDate: date("2024-06-01"), ExpectedHarvest: date("2024-09-29"),
		HealthStatus: entities.HealthHealthy,
	}}
	svc := &cycleSvc{
		crops: cropref.New(),
		repo:  repo,
		now:   func() time.Time { return date("2024-07-01") },
	}

	_, err := svc.LogActivity("CCAAAA01", service.ActivityInput{ActivityType: "fertilizer", Cost: 500})
	if !errors.Is(err, service.ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
	if repo.appended != 0 {
		t.Error("activity row must not be written when the cost save is rejected")
	}

	// free activities skip the guarded save entirely
	if _, err := svc.LogActivity("CCAAAA01", service.ActivityInput{ActivityType: "scouting"}); err != nil {
		t.Fatalf("zero-cost activity: %v", err)
	}
	if repo.appended != 1 {
		t.Errorf("appended = %d, want 1", repo.appended)
	}
}

func TestListByLandActiveFilter(t *testing.T) {
	svc := newTestSvc(t, date("2024-06-01"))
	a := startRice(t, svc)
	startRice(t, svc)
	if _, err := svc.Complete(a.CycleID, service.CompleteInput{ActualYieldKg: 2000}); err != nil {
		t.Fatalf("complete: %v", err)
	}

	active, err := svc.ListByLand(testLandID, true)
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 1 {
		t.Errorf("active cycles = %d, want 1", len(active))
	}
	all, err := svc.ListByLand(testLandID, false)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("all cycles = %d, want 2", len(all))
	}
	for _, c := range all {
		if c.GrowthStage == "" || c.YieldPrediction == nil {
			t.Errorf("listing should decorate every cycle: %+v", c)
		}
	}
}

func TestListActiveCollectsCriticalAlerts(t *testing.T) {
	svc := newTestSvc(t, date("2024-07-01"))
	startRice(t, svc)
	sick := startRice(t, svc)
	if _, err := svc.ReportDisease(sick.CycleID, service.DiseaseInput{DiseaseName: "blast", Confidence: 0.9}); err != nil {
		t.Fatalf("infect: %v", err)
	}

	ov, err := svc.ListActive()
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if ov.TotalActive != 2 {
		t.Errorf("total active = %d, want 2", ov.TotalActive)
	}
	if len(ov.CriticalAlerts) == 0 {
		t.Fatal("infected cycle should surface critical alerts")
	}
	for _, ca := range ov.CriticalAlerts {
		if ca.CycleID != sick.CycleID {
			t.Errorf("critical alert attributed to wrong cycle: %+v", ca)
		}
	}
}
