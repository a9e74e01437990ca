package models

import (
	"time"
)

// RiskLevel classifies a risk tier. Note that for seasonal scores the naming is
// inverted: a higher overall seasonal score maps to a LOWER risk level.
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// CyclePhase describes where a date falls inside an 11-year solar cycle.
type CyclePhase string

const (
	PhaseMinimum    CyclePhase = "minimum"
	PhaseAscending  CyclePhase = "ascending"
	PhaseMaximum    CyclePhase = "maximum"
	PhaseDescending CyclePhase = "descending"
)

// FactorCategory groups risk factors by their source model.
type FactorCategory string

const (
	CategorySolar         FactorCategory = "solar"
	CategorySeasonal      FactorCategory = "seasonal"
	CategoryGeographic    FactorCategory = "geographic"
	CategoryEnvironmental FactorCategory = "environmental"
)

// Trend is the coarse direction of scores across a timing analysis window.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendStable    Trend = "stable"
	TrendDeclining Trend = "declining"
)

// LocationData is the resolved location consumed by the engine. It is produced
// by the geocoding client (or supplied directly by the caller) and never
// mutated after construction.
type LocationData struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	City      string  `json:"city,omitempty"`
	Country   string  `json:"country,omitempty"`
	Timezone  string  `json:"timezone,omitempty"`
	Accuracy  float64 `json:"accuracy,omitempty"`
}

// SolarCycle is one row of the historical solar cycle table (cycles 20-25) or
// an extrapolated future cycle. Cycles are contiguous and non-overlapping;
// StartYear < PeakYear < EndYear.
type SolarCycle struct {
	CycleNumber int        `json:"cycle_number"`
	StartYear   int        `json:"start_year"`
	PeakYear    int        `json:"peak_year"`
	EndYear     int        `json:"end_year"`
	MaxSunspots float64    `json:"max_sunspots"`
	Phase       CyclePhase `json:"phase"`
}

// SolarActivityData is a per-date synthetic solar sample. The sunspot number
// carries injected noise, so two uncached samples for the same date may differ
// by up to the noise amplitude; cached samples are stable within a session.
type SolarActivityData struct {
	Date               time.Time  `json:"date"`
	SunspotNumber      int        `json:"sunspot_number"`
	SolarFluxIndex     float64    `json:"solar_flux_index"`
	GeomagneticIndex   int        `json:"geomagnetic_index"`
	CosmicRayIntensity float64    `json:"cosmic_ray_intensity"`
	CyclePhase         CyclePhase `json:"cycle_phase"`
	SolarRisk          RiskLevel  `json:"solar_risk"`
	MentalHealthFactor float64    `json:"mental_health_factor"`
	LifespanImpact     float64    `json:"lifespan_impact"`
	UVRadiationLevel   float64    `json:"uv_radiation_level"`
}

// SeasonalRiskData is the fully deterministic seasonal profile for a
// (date, location) pair.
type SeasonalRiskData struct {
	BirthMonth           int       `json:"birth_month"`
	VitaminDScore        float64   `json:"vitamin_d_score"`
	InfectiousRisk       float64   `json:"infectious_risk"`
	RelativeAgeAdvantage float64   `json:"relative_age_advantage"`
	CardiovascularRisk   float64   `json:"cardiovascular_risk"`
	MentalHealthRisk     float64   `json:"mental_health_risk"`
	AutoImmuneRisk       float64   `json:"auto_immune_risk"`
	OverallSeasonalScore float64   `json:"overall_seasonal_score"`
	RiskLevel            RiskLevel `json:"risk_level"`
}

// RiskFactor is one named, signed contribution to the overall assessment.
// Positive impact is beneficial. Factors form an ordered list, not a set.
type RiskFactor struct {
	Category    FactorCategory `json:"category"`
	Name        string         `json:"name"`
	Impact      int            `json:"impact"`
	Severity    RiskLevel      `json:"severity"`
	Description string         `json:"description"`
}

// OptimalTimingResult is the engine's output for a single target month.
type OptimalTimingResult struct {
	BirthDate           time.Time         `json:"birth_date"`
	OverallScore        int               `json:"overall_score"`
	LifeExpectancyDelta float64           `json:"life_expectancy_delta"`
	ConfidenceLevel     RiskLevel         `json:"confidence_level"`
	RiskFactors         []RiskFactor      `json:"risk_factors"`
	Recommendations     []string          `json:"recommendations"`
	SolarData           SolarActivityData `json:"solar_data"`
	SeasonalData        SeasonalRiskData  `json:"seasonal_data"`
}

// TimingAnalysis aggregates monthly results across a date range.
type TimingAnalysis struct {
	OptimalWindows    []OptimalTimingResult `json:"optimal_windows"`
	CurrentTiming     OptimalTimingResult   `json:"current_timing"`
	BestOverallMonth  int                   `json:"best_overall_month"`
	WorstOverallMonth int                   `json:"worst_overall_month"`
	YearlyTrend       Trend                 `json:"yearly_trend"`
}

// OptimalityReport is the stable export shape consumed by presentation code.
type OptimalityReport struct {
	Summary         string                `json:"summary"`
	Analysis        OptimalTimingResult   `json:"analysis"`
	Alternatives    []OptimalTimingResult `json:"alternatives"`
	ScientificBasis []string              `json:"scientific_basis"`
}
