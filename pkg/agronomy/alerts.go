package agronomy

import (
	"fmt"

	"agrisahayak/entities"
)

// StageAlerts returns the advisory list for a cycle's current state.
// Stage alerts keep table order; a critical disease alert is prepended
// when health is at risk or infected, so callers can rely on position 0.
func StageAlerts(crop, stage, health string) []entities.Alert {
	var alerts []entities.Alert

	switch stage {
	case entities.StageGermination:
		alerts = []entities.Alert{
			{Type: "weather", Severity: "info", Message: "Monitor soil moisture - critical for germination"},
			{Type: "pest", Severity: "warning", Message: fmt.Sprintf("Watch for cutworms and root grubs in %s", crop)},
		}
	case entities.StageVegetative:
		alerts = []entities.Alert{
			{Type: "nutrition", Severity: "info", Message: "Apply nitrogen fertilizer for healthy leaf growth"},
			{Type: "disease", Severity: "warning", Message: "High humidity increases fungal disease risk"},
		}
	case entities.StageFlowering:
		alerts = []entities.Alert{
			{Type: "weather", Severity: "critical", Message: "Avoid water stress during flowering - affects yield"},
			{Type: "pest", Severity: "warning", Message: "Monitor for aphids and thrips"},
		}
	case entities.StageMaturity:
		alerts = []entities.Alert{
			{Type: "harvest", Severity: "info", Message: "Check crop maturity indicators regularly"},
			{Type: "weather", Severity: "warning", Message: "Avoid harvesting if rain is expected"},
		}
	case entities.StageHarvest:
		alerts = []entities.Alert{
			{Type: "market", Severity: "info", Message: "Check current mandi prices before selling"},
			{Type: "storage", Severity: "info", Message: "Ensure proper drying before storage"},
		}
	}

	switch health {
	case entities.HealthAtRisk:
		alerts = append([]entities.Alert{
			{Type: "disease", Severity: "critical", Message: "Disease risk detected - inspect immediately"},
		}, alerts...)
	case entities.HealthInfected:
		alerts = append([]entities.Alert{
			{Type: "disease", Severity: "critical", Message: "Active disease detected - treatment required"},
		}, alerts...)
	}

	return alerts
}

// CriticalAlerts filters an alert list down to severity "critical".
func CriticalAlerts(alerts []entities.Alert) []entities.Alert {
	var out []entities.Alert
	for _, a := range alerts {
		if a.Severity == "critical" {
			out = append(out, a)
		}
	}
	return out
}
