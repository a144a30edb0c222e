package agronomy

import (
	"agrisahayak/entities"
	"agrisahayak/pkg/cropref"
)

// ResolveStage maps days-since-sowing onto a growth stage by walking the
// profile's cumulative stage thresholds. Always returns a stage; past the
// last threshold the crop is considered harvest-ready. Monotonic in days
// for a fixed profile.
func ResolveStage(p cropref.Profile, days int) string {
	if days <= 0 {
		return entities.StageSowing
	}

	cumulative := 0

	if days <= p.Germination {
		return entities.StageGermination
	}
	cumulative += p.Germination

	if days <= cumulative+p.Vegetative {
		return entities.StageVegetative
	}
	cumulative += p.Vegetative

	if days <= cumulative+p.Flowering {
		return entities.StageFlowering
	}
	cumulative += p.Flowering

	if days <= cumulative+p.Maturity {
		return entities.StageMaturity
	}

	return entities.StageHarvest
}
