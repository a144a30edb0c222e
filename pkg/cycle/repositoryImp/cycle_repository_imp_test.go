package repositoryImp

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"agrisahayak/database"
	"agrisahayak/entities"
	"agrisahayak/pkg/cycle/repository"
)

func newTestRepo(t *testing.T) (repository.CycleRepository, *entities.CropCycle) {
	t.Helper()
	db := database.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))

	land := &entities.Land{LandID: "LTEST01", Name: "field"}
	if err := db.Create(land).Error; err != nil {
		t.Fatalf("seed land: %v", err)
	}
	repo := New(db)
	c := &entities.CropCycle{
		CycleID: "CCAAAA01", LandRef: land.ID, LandID: land.LandID,
		Crop: "rice", Season: entities.SeasonKharif,
		SowingDate:      time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		ExpectedHarvest: time.Date(2024, 9, 29, 0, 0, 0, 0, time.UTC),
		HealthStatus:    entities.HealthHealthy, IsActive: true,
	}
	if err := repo.Create(c); err != nil {
		t.Fatalf("create cycle: %v", err)
	}
	return repo, c
}

func TestSaveBumpsVersion(t *testing.T) {
	repo, c := newTestRepo(t)

	c.HealthStatus = entities.HealthAtRisk
	c.TotalCost = 100
	if err := repo.Save(c); err != nil {
		t.Fatalf("save: %v", err)
	}
	if c.Version != 1 {
		t.Errorf("version = %d, want 1 after first save", c.Version)
	}

	got, err := repo.FindByCycleID(c.CycleID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.HealthStatus != entities.HealthAtRisk || got.TotalCost != 100 || got.Version != 1 {
		t.Errorf("persisted row = %s/%.0f/v%d, want at_risk/100/v1", got.HealthStatus, got.TotalCost, got.Version)
	}
}

func TestSaveStaleVersionConflicts(t *testing.T) {
	repo, c := newTestRepo(t)

	stale, err := repo.FindByCycleID(c.CycleID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}

	c.HealthStatus = entities.HealthInfected
	if err := repo.Save(c); err != nil {
		t.Fatalf("save: %v", err)
	}

	stale.HealthStatus = entities.HealthRecovered
	if err := repo.Save(stale); !errors.Is(err, repository.ErrConflict) {
		t.Errorf("stale save: err = %v, want ErrConflict", err)
	}

	got, _ := repo.FindByCycleID(c.CycleID)
	if got.HealthStatus != entities.HealthInfected {
		t.Errorf("lost update: status = %s, want infected", got.HealthStatus)
	}
}

func TestCompleteOnlyOnce(t *testing.T) {
	repo, c := newTestRepo(t)

	now := time.Date(2024, 9, 29, 0, 0, 0, 0, time.UTC)
	yield := 2400.0
	c.ActualHarvest = &now
	c.ActualYieldKg = &yield
	if err := repo.Complete(c); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if c.IsActive {
		t.Error("complete should flip IsActive off")
	}
	if err := repo.Complete(c); !errors.Is(err, repository.ErrConflict) {
		t.Errorf("second complete: err = %v, want ErrConflict", err)
	}

	// completed rows reject further guarded writes even at the right version
	c.HealthStatus = entities.HealthInfected
	if err := repo.Save(c); !errors.Is(err, repository.ErrConflict) {
		t.Errorf("save on completed cycle: err = %v, want ErrConflict", err)
	}
}

func TestFindByCycleIDNotFound(t *testing.T) {
	repo, _ := newTestRepo(t)
	if _, err := repo.FindByCycleID("CCNOPE99"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestChildrenLoadInOrder(t *testing.T) {
	repo, c := newTestRepo(t)

	for i, d := range []string{"2024-06-20", "2024-06-05", "2024-06-12"} {
		day, _ := time.Parse("2006-01-02", d)
		err := repo.AppendActivity(&entities.ActivityLog{
			CycleRef: c.ID, ActivityType: "irrigation", Cost: float64(i), ActivityDate: day,
		})
		if err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := repo.FindByCycleID(c.CycleID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(got.Activities) != 3 {
		t.Fatalf("got %d activities, want 3", len(got.Activities))
	}
	for i := 1; i < len(got.Activities); i++ {
		if got.Activities[i].ActivityDate.Before(got.Activities[i-1].ActivityDate) {
			t.Errorf("activities out of date order: %v", got.Activities)
		}
	}
}
