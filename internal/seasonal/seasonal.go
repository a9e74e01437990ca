package seasonal

import (
	"math"
	"time"

	"github.com/bobby-s-dev/birth-timing/internal/geo"
	"github.com/bobby-s-dev/birth-timing/internal/models"
)

// Multipliers holds the relative disease-risk ratios for one birth month,
// centered near 1.0.
type Multipliers struct {
	Cardiovascular float64
	MentalHealth   float64
	Autoimmune     float64
	Respiratory    float64
	Infectious     float64
}

// Northern Hemisphere reference table, birth months January-December.
// Literature-derived seasonal ratios: winter births carry higher respiratory,
// infectious and cardiovascular load; spring births skew autoimmune.
var northernMultipliers = [12]Multipliers{
	{Cardiovascular: 1.08, MentalHealth: 1.07, Autoimmune: 0.97, Respiratory: 1.20, Infectious: 0.98},
	{Cardiovascular: 1.07, MentalHealth: 1.06, Autoimmune: 0.98, Respiratory: 1.18, Infectious: 0.97},
	{Cardiovascular: 1.04, MentalHealth: 1.02, Autoimmune: 1.04, Respiratory: 1.10, Infectious: 0.95},
	{Cardiovascular: 1.00, MentalHealth: 0.98, Autoimmune: 1.06, Respiratory: 1.00, Infectious: 0.90},
	{Cardiovascular: 0.96, MentalHealth: 0.94, Autoimmune: 1.05, Respiratory: 0.92, Infectious: 0.86},
	{Cardiovascular: 0.93, MentalHealth: 0.91, Autoimmune: 1.02, Respiratory: 0.86, Infectious: 0.82},
	{Cardiovascular: 0.92, MentalHealth: 0.90, Autoimmune: 1.00, Respiratory: 0.84, Infectious: 0.81},
	{Cardiovascular: 0.93, MentalHealth: 0.91, Autoimmune: 0.99, Respiratory: 0.85, Infectious: 0.82},
	{Cardiovascular: 0.96, MentalHealth: 0.93, Autoimmune: 1.00, Respiratory: 0.92, Infectious: 0.86},
	{Cardiovascular: 1.00, MentalHealth: 0.97, Autoimmune: 1.01, Respiratory: 1.02, Infectious: 0.90},
	{Cardiovascular: 1.04, MentalHealth: 1.02, Autoimmune: 0.99, Respiratory: 1.12, Infectious: 0.94},
	{Cardiovascular: 1.07, MentalHealth: 1.06, Autoimmune: 0.97, Respiratory: 1.18, Infectious: 0.97},
}

// School-year cutoff month by country; births just after the cutoff are the
// oldest in their cohort.
var schoolCutoffMonths = map[string]int{
	"United States":  9,
	"USA":            9,
	"US":             9,
	"United Kingdom": 9,
	"UK":             9,
	"Canada":         9,
	"France":         9,
	"Australia":      1,
	"Germany":        6,
	"Japan":          4,
}

const defaultCutoffMonth = 9

// Composite weights for the overall seasonal score.
const (
	weightVitaminD    = 0.30
	weightInfectious  = 0.25
	weightRelativeAge = 0.15
	weightCardio      = 0.15
	weightMental      = 0.10
	weightAutoimmune  = 0.05
)

// DiseaseRisks returns the month's multipliers, hemisphere-adjusted. Southern
// locations read the Northern table with a six-month offset to mirror the
// inverted seasons.
func DiseaseRisks(month int, latitude float64) Multipliers {
	if !geo.IsNorthernHemisphere(latitude) {
		month = ((month+5)%12 + 1)
	}
	return northernMultipliers[month-1]
}

// VitaminDSynthesis scores the UV available for vitamin D production over the
// first six months of life (birth month plus the five following, wrapping the
// calendar year). 0-100.
func VitaminDSynthesis(location models.LocationData, date time.Time) float64 {
	month := int(date.Month())

	var total float64
	for i := 0; i < 6; i++ {
		m := (month-1+i)%12 + 1
		total += geo.UVIntensityByLatitude(location.Latitude, m)
	}

	score := total / 6 * 10
	return clamp(score, 0, 100)
}

// RelativeAgeAdvantage scores the school-cohort age effect: 100 for a birth in
// the cutoff month (oldest in cohort), falling ~8.33 points per month after.
func RelativeAgeAdvantage(date time.Time, country string) float64 {
	cutoff, ok := schoolCutoffMonths[country]
	if !ok {
		cutoff = defaultCutoffMonth
	}

	monthsAfterCutoff := ((int(date.Month()) - cutoff + 12) % 12)
	score := 100 - 8.33*float64(monthsAfterCutoff)
	if score < 0 {
		return 0
	}
	return score
}

// Calculate builds the full deterministic seasonal profile for a date and
// location.
func Calculate(location models.LocationData, date time.Time) models.SeasonalRiskData {
	month := int(date.Month())
	risks := DiseaseRisks(month, location.Latitude)

	vitaminD := VitaminDSynthesis(location, date)
	relativeAge := RelativeAgeAdvantage(date, location.Country)

	// Rescale each raw multiplier's deviation from its baseline onto 0-100
	// before weighting.
	normInfectious := clamp((risks.Infectious-0.8)*500, 0, 100)
	normCardio := clamp((risks.Cardiovascular-0.9)*500, 0, 100)
	normMental := clamp((risks.MentalHealth-0.85)*400, 0, 100)
	normAutoimmune := clamp(math.Abs(risks.Autoimmune-1.0)*1000, 0, 100)

	overall := vitaminD*weightVitaminD +
		(100-normInfectious)*weightInfectious +
		relativeAge*weightRelativeAge +
		(100-normCardio)*weightCardio +
		(100-normMental)*weightMental +
		(100-normAutoimmune)*weightAutoimmune

	return models.SeasonalRiskData{
		BirthMonth:           month,
		VitaminDScore:        math.Round(vitaminD*10) / 10,
		InfectiousRisk:       math.Round(normInfectious*10) / 10,
		RelativeAgeAdvantage: math.Round(relativeAge*10) / 10,
		CardiovascularRisk:   risks.Cardiovascular,
		MentalHealthRisk:     risks.MentalHealth,
		AutoImmuneRisk:       risks.Autoimmune,
		OverallSeasonalScore: math.Round(overall*10) / 10,
		RiskLevel:            riskLevel(overall),
	}
}

// riskLevel names are inverted relative to the score: a high seasonal score
// means low risk.
func riskLevel(score float64) models.RiskLevel {
	switch {
	case score >= 70:
		return models.RiskLow
	case score >= 50:
		return models.RiskMedium
	default:
		return models.RiskHigh
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
