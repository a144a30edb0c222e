package agronomy

import (
	"fmt"
	"math"
	"strings"

	"agrisahayak/entities"
	"agrisahayak/pkg/cropref"
)

// Yield penalty per health status relative to the crop's base yield.
var healthMultiplier = map[string]float64{
	entities.HealthHealthy:   1.0,
	entities.HealthAtRisk:    0.85,
	entities.HealthInfected:  0.7,
	entities.HealthRecovered: 0.9,
}

// EstimateYield projects the per-acre yield from the crop's base yield and
// the current health status. The growth stage is carried in the factors
// block for traceability but does not scale the number. Deterministic.
// The factors echo the caller's crop name, not the profile's, so unknown
// crops falling back to the default profile still report themselves.
func EstimateYield(p cropref.Profile, crop, health, stage string) entities.YieldPrediction {
	multiplier, ok := healthMultiplier[health]
	if !ok {
		multiplier = 1.0
	}
	predicted := math.Round(p.BaseYieldKgPerAcre * multiplier)

	confidence := 0.7
	if health == entities.HealthHealthy {
		confidence = 0.85
	}

	return entities.YieldPrediction{
		PredictedYieldKgPerAcre: predicted,
		Confidence:              confidence,
		Factors: entities.YieldFactors{
			CropType:     strings.ToLower(strings.TrimSpace(crop)),
			HealthStatus: health,
			GrowthStage:  stage,
		},
		MarketPriceEstimate: fmt.Sprintf("₹%.0f/quintal", math.Round(predicted*20/100)),
	}
}
