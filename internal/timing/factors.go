package timing

import (
	"math"
	"time"

	"github.com/bobby-s-dev/birth-timing/internal/models"
)

// factorInputs bundles everything a factor rule can look at.
type factorInputs struct {
	location models.LocationData
	date     time.Time
	solar    models.SolarActivityData
	seasonal models.SeasonalRiskData
}

// factorRule produces at most one risk factor. Rules run in order; their
// output order is part of the engine's contract.
type factorRule func(in factorInputs) (models.RiskFactor, bool)

var factorRules = []factorRule{
	solarActivityFactor,
	uvExposureFactor,
	vitaminDFactor,
	infectionFactor,
	schoolAgeFactor,
	latitudeFactor,
	seasonFactor,
}

// buildRiskFactors evaluates the rule table. At minimum it yields the solar,
// vitamin D, latitude and season factors; the rest are threshold-gated.
func buildRiskFactors(location models.LocationData, date time.Time, solarData models.SolarActivityData, seasonalData models.SeasonalRiskData) []models.RiskFactor {
	in := factorInputs{
		location: location,
		date:     date,
		solar:    solarData,
		seasonal: seasonalData,
	}

	factors := make([]models.RiskFactor, 0, len(factorRules))
	for _, rule := range factorRules {
		if factor, ok := rule(in); ok {
			factors = append(factors, factor)
		}
	}
	return factors
}

// solarActivityFactor always fires; the branch is selected by the lifespan
// impact thresholds and the impact scales from the lifespan delta.
func solarActivityFactor(in factorInputs) (models.RiskFactor, bool) {
	impact := clampImpact(int(math.Round(in.solar.LifespanImpact * 10)))

	factor := models.RiskFactor{
		Category: models.CategorySolar,
		Impact:   impact,
		Severity: impactSeverity(impact),
	}

	switch {
	case in.solar.LifespanImpact < -1:
		factor.Name = "Solar Activity Risk"
		factor.Description = "Elevated sunspot activity during the target window increases modeled gestational stress."
	case in.solar.LifespanImpact > 0.5:
		factor.Name = "Solar Minimum Benefit"
		factor.Description = "Quiet solar conditions in the target window are favorable in the cycle model."
	default:
		factor.Name = "Solar Activity Neutral"
		factor.Description = "Solar activity in the target window is near the model baseline."
	}

	return factor, true
}

// uvExposureFactor fires only when the solar UV level departs meaningfully
// from the index-6 midpoint.
func uvExposureFactor(in factorInputs) (models.RiskFactor, bool) {
	impact := int(math.Round((in.solar.UVRadiationLevel - 6) * 5))
	if impact > -3 && impact < 3 {
		return models.RiskFactor{}, false
	}

	name := "Elevated UV Radiation"
	description := "UV radiation in the target window runs above the reference level."
	if impact < 0 {
		name = "Reduced UV Radiation"
		description = "UV radiation in the target window runs below the reference level."
	}

	return models.RiskFactor{
		Category:    models.CategorySolar,
		Name:        name,
		Impact:      clampImpact(impact),
		Severity:    impactSeverity(impact),
		Description: description,
	}, true
}

// vitaminDFactor always fires; direction follows the deviation from the
// 60-point synthesis baseline.
func vitaminDFactor(in factorInputs) (models.RiskFactor, bool) {
	impact := clampImpact(int(math.Round((in.seasonal.VitaminDScore - 60) / 2)))

	name := "Vitamin D Synthesis Advantage"
	description := "The first six months of life fall in a strong UV window for vitamin D production."
	if in.seasonal.VitaminDScore < 60 {
		name = "Vitamin D Deficiency Risk"
		description = "Limited UV in the first six months of life constrains vitamin D synthesis."
	}

	return models.RiskFactor{
		Category:    models.CategorySeasonal,
		Name:        name,
		Impact:      impact,
		Severity:    impactSeverity(impact),
		Description: description,
	}, true
}

// infectionFactor fires when the normalized infectious risk is far from the
// mid-band.
func infectionFactor(in factorInputs) (models.RiskFactor, bool) {
	impact := int(math.Round((50 - in.seasonal.InfectiousRisk) * 0.4))
	if impact >= -3 && impact <= 3 {
		return models.RiskFactor{}, false
	}

	name := "Low Infection Season"
	description := "Birth falls in a low period of the seasonal infection cycle."
	if impact < 0 {
		name = "Infectious Season Exposure"
		description = "Birth falls in a high period of the seasonal infection cycle."
	}

	return models.RiskFactor{
		Category:    models.CategorySeasonal,
		Name:        name,
		Impact:      clampImpact(impact),
		Severity:    impactSeverity(impact),
		Description: description,
	}, true
}

// schoolAgeFactor fires only when the relative age effect is clearly
// advantageous.
func schoolAgeFactor(in factorInputs) (models.RiskFactor, bool) {
	if in.seasonal.RelativeAgeAdvantage <= 60 {
		return models.RiskFactor{}, false
	}

	impact := clampImpact(int(math.Round((in.seasonal.RelativeAgeAdvantage - 50) * 0.3)))

	return models.RiskFactor{
		Category:    models.CategorySeasonal,
		Name:        "School Cohort Age Advantage",
		Impact:      impact,
		Severity:    impactSeverity(impact),
		Description: "Birth shortly after the school-year cutoff places the child among the oldest in the cohort.",
	}, true
}

// latitudeFactor always fires. Mid-latitudes around 35 degrees score best;
// the factor flips to a challenge beyond that.
func latitudeFactor(in factorInputs) (models.RiskFactor, bool) {
	impact := clampImpact(int(math.Round((35 - math.Abs(in.location.Latitude)) * 0.6)))

	name := "Latitude Advantage"
	description := "The location's latitude offers a balanced daylight and UV profile."
	if impact < 0 {
		name = "Latitude Challenge"
		description = "Extreme latitude limits daylight balance and UV availability across the year."
	}

	return models.RiskFactor{
		Category:    models.CategoryGeographic,
		Name:        name,
		Impact:      impact,
		Severity:    impactSeverity(impact),
		Description: description,
	}, true
}

// seasonFactor emits exactly one environmental factor chosen by calendar
// season.
func seasonFactor(in factorInputs) (models.RiskFactor, bool) {
	var (
		name        string
		impact      int
		description string
	)

	switch in.date.Month() {
	case time.March, time.April, time.May:
		name = "Spring Allergy Season"
		impact = -12
		description = "Peak pollen exposure coincides with early infancy."
	case time.June, time.July, time.August:
		name = "Summer Outdoor Advantage"
		impact = 8
		description = "Warm-season birth supports outdoor time and daylight exposure."
	case time.September, time.October, time.November:
		name = "Mild Autumn Conditions"
		impact = 5
		description = "Moderate temperatures and allergen levels around the birth window."
	default:
		name = "Winter Indoor Confinement"
		impact = -18
		description = "Cold-season birth concentrates early infancy indoors during virus season."
	}

	return models.RiskFactor{
		Category:    models.CategoryEnvironmental,
		Name:        name,
		Impact:      impact,
		Severity:    environmentalSeverity(impact),
		Description: description,
	}, true
}

// environmentalSeverity uses a wider cut than the model-driven factors: only
// the deep-winter impact rates MEDIUM, and the category never rates HIGH.
func environmentalSeverity(impact int) models.RiskLevel {
	abs := impact
	if abs < 0 {
		abs = -abs
	}
	if abs > 15 {
		return models.RiskMedium
	}
	return models.RiskLow
}

// impactSeverity applies the shared severity cut used by the model-driven
// factors.
func impactSeverity(impact int) models.RiskLevel {
	abs := impact
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs > 18:
		return models.RiskHigh
	case abs > 10:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}

func clampImpact(impact int) int {
	if impact > 100 {
		return 100
	}
	if impact < -100 {
		return -100
	}
	return impact
}
