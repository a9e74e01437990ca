package timing

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/bobby-s-dev/birth-timing/internal/models"
	"github.com/bobby-s-dev/birth-timing/internal/seasonal"
	"github.com/bobby-s-dev/birth-timing/internal/solar"
	"go.uber.org/zap"
)

// ErrInvalidInput is returned by boundary validation for malformed locations
// or dates. The engine itself is total over well-formed input and never
// fails mid-computation.
var ErrInvalidInput = errors.New("invalid input")

// Category weights for the composite score.
const (
	weightSolar         = 0.40
	weightSeasonal      = 0.35
	weightGeographic    = 0.15
	weightEnvironmental = 0.10
)

// environmentalBaseline is a fixed placeholder sub-score; the environmental
// model contributes through discrete risk factors rather than a computed
// category score.
const environmentalBaseline = 75.0

// Engine computes birth timing optimality scores from the solar and seasonal
// models.
type Engine struct {
	solar  *solar.Service
	logger *zap.Logger
}

func NewEngine(solarService *solar.Service, logger *zap.Logger) *Engine {
	return &Engine{
		solar:  solarService,
		logger: logger,
	}
}

// ValidateLocation rejects NaN or out-of-range coordinates. Callers are
// expected to validate once at the boundary; Calculate assumes well-formed
// input.
func ValidateLocation(location models.LocationData) error {
	if math.IsNaN(location.Latitude) || location.Latitude < -90 || location.Latitude > 90 {
		return fmt.Errorf("%w: latitude %v out of range [-90,90]", ErrInvalidInput, location.Latitude)
	}
	if math.IsNaN(location.Longitude) || location.Longitude < -180 || location.Longitude > 180 {
		return fmt.Errorf("%w: longitude %v out of range [-180,180]", ErrInvalidInput, location.Longitude)
	}
	return nil
}

// Calculate scores a single target month for the location. Seasonal fields of
// the result are fully deterministic; solar fields carry the sampled noise
// (stable per date within a session through the sample cache).
func (e *Engine) Calculate(location models.LocationData, targetDate time.Time) models.OptimalTimingResult {
	solarData := e.solar.Fetch(targetDate)
	seasonalData := seasonal.Calculate(location, targetDate)

	factors := buildRiskFactors(location, targetDate, solarData, seasonalData)

	overallScore := e.overallScore(location, solarData, seasonalData)
	recommendations := buildRecommendations(location, solarData, seasonalData, overallScore)

	delta := solarData.LifespanImpact + (seasonalData.OverallSeasonalScore-50)/100

	result := models.OptimalTimingResult{
		BirthDate:           targetDate,
		OverallScore:        overallScore,
		LifeExpectancyDelta: math.Round(delta*10) / 10,
		ConfidenceLevel:     confidenceLevel(overallScore),
		RiskFactors:         factors,
		Recommendations:     recommendations,
		SolarData:           solarData,
		SeasonalData:        seasonalData,
	}

	e.logger.Debug("Timing calculated",
		zap.String("date", targetDate.Format("2006-01")),
		zap.Int("score", overallScore),
		zap.String("confidence", string(result.ConfidenceLevel)),
		zap.Int("risk_factors", len(factors)))

	return result
}

// overallScore combines the four category sub-scores with fixed weights into
// an integer in [0,100].
func (e *Engine) overallScore(location models.LocationData, solarData models.SolarActivityData, seasonalData models.SeasonalRiskData) int {
	solarScore := 100 - 15*math.Abs(solarData.LifespanImpact)
	if solarScore < 0 {
		solarScore = 0
	}

	geographicScore := 100 - math.Abs(location.Latitude)
	if geographicScore < 0 {
		geographicScore = 0
	}

	weighted := solarScore*weightSolar +
		seasonalData.OverallSeasonalScore*weightSeasonal +
		geographicScore*weightGeographic +
		environmentalBaseline*weightEnvironmental

	score := int(math.Round(weighted))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

// confidenceLevel is a threshold function of the overall score. This mirrors
// the shipped behavior: confidence tracks timing quality, not an independent
// uncertainty measure.
func confidenceLevel(score int) models.RiskLevel {
	switch {
	case score >= 80:
		return models.RiskHigh
	case score >= 60:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}
