package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"agrisahayak/entities"
)

const dateLayout = "2006-01-02"

func fmtOptFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}

// Workbook renders a land's cycles into an xlsx ledger with one sheet each
// for cycles, activities and disease events.
func Workbook(landID string, cycles []entities.CropCycle) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	const cyclesSheet = "Cycles"
	f.SetSheetName("Sheet1", cyclesSheet)
	actSheet, err := f.NewSheet("Activities")
	if err != nil {
		return nil, err
	}
	_ = actSheet
	if _, err := f.NewSheet("Diseases"); err != nil {
		return nil, err
	}

	setRow := func(sheet string, row int, values []any) error {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		return f.SetSheetRow(sheet, cell, &values)
	}

	if err := setRow(cyclesSheet, 1, []any{
		"cycle_id", "crop", "season", "sowing_date", "expected_harvest",
		"growth_stage", "health_status", "days_since_sowing",
		"predicted_yield_kg_per_acre", "total_cost", "is_active",
		"actual_yield_kg", "total_revenue", "profit",
	}); err != nil {
		return nil, err
	}

	actRow, disRow := 2, 2
	if err := setRow("Activities", 1, []any{"cycle_id", "type", "description", "cost", "date"}); err != nil {
		return nil, err
	}
	if err := setRow("Diseases", 1, []any{"cycle_id", "disease", "confidence", "affected_percent", "severity", "reported_at"}); err != nil {
		return nil, err
	}

	for i, c := range cycles {
		predicted := 0.0
		if c.YieldPrediction != nil {
			predicted = c.YieldPrediction.PredictedYieldKgPerAcre
		}
		if err := setRow(cyclesSheet, i+2, []any{
			c.CycleID, c.Crop, c.Season, c.SowingDate.Format(dateLayout),
			c.ExpectedHarvest.Format(dateLayout), c.GrowthStage, c.HealthStatus,
			c.DaysSinceSowing, predicted, c.TotalCost, c.IsActive,
			fmtOptFloat(c.ActualYieldKg), fmtOptFloat(c.TotalRevenue), fmtOptFloat(c.Profit),
		}); err != nil {
			return nil, err
		}
		for _, a := range c.Activities {
			if err := setRow("Activities", actRow, []any{
				c.CycleID, a.ActivityType, a.Description, a.Cost, a.ActivityDate.Format(dateLayout),
			}); err != nil {
				return nil, err
			}
			actRow++
		}
		for _, d := range c.DiseaseEvents {
			if err := setRow("Diseases", disRow, []any{
				c.CycleID, d.DiseaseName, d.Confidence, d.AffectedAreaPercent, d.Severity,
				d.ReportedAt.Format(dateLayout),
			}); err != nil {
				return nil, err
			}
			disRow++
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook for land %s: %w", landID, err)
	}
	return buf, nil
}

// CSV renders the cycles sheet only, for spreadsheet-less consumers.
func CSV(cycles []entities.CropCycle) (*bytes.Buffer, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	if err := w.Write([]string{
		"cycle_id", "crop", "season", "sowing_date", "expected_harvest",
		"growth_stage", "health_status", "days_since_sowing",
		"predicted_yield_kg_per_acre", "total_cost", "is_active",
		"actual_yield_kg", "total_revenue", "profit",
	}); err != nil {
		return nil, err
	}
	for _, c := range cycles {
		predicted := ""
		if c.YieldPrediction != nil {
			predicted = strconv.FormatFloat(c.YieldPrediction.PredictedYieldKgPerAcre, 'f', 0, 64)
		}
		if err := w.Write([]string{
			c.CycleID, c.Crop, c.Season, c.SowingDate.Format(dateLayout),
			c.ExpectedHarvest.Format(dateLayout), c.GrowthStage, c.HealthStatus,
			strconv.Itoa(c.DaysSinceSowing), predicted,
			strconv.FormatFloat(c.TotalCost, 'f', 2, 64),
			strconv.FormatBool(c.IsActive),
			fmtOptFloat(c.ActualYieldKg), fmtOptFloat(c.TotalRevenue), fmtOptFloat(c.Profit),
		}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf, w.Error()
}
