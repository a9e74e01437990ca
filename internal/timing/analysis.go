package timing

import (
	"math"
	"sort"
	"time"

	"github.com/bobby-s-dev/birth-timing/internal/models"
	"go.uber.org/zap"
)

// optimalWindowShare is the fraction of evaluated months surfaced as optimal
// windows (ceiling).
const optimalWindowShare = 0.25

// trendThreshold is the mean-score difference between calendar years needed
// before the trend leaves "stable".
const trendThreshold = 5.0

// AnalyzeRange evaluates every month in [-rangeMonths, +rangeMonths] around
// the center date (2*rangeMonths+1 evaluations) and aggregates the results.
// Each evaluation samples the solar model independently, so the call is
// O(range) in model work.
func (e *Engine) AnalyzeRange(location models.LocationData, centerDate time.Time, rangeMonths int) models.TimingAnalysis {
	total := 2*rangeMonths + 1
	results := make([]models.OptimalTimingResult, 0, total)

	for offset := -rangeMonths; offset <= rangeMonths; offset++ {
		target := centerDate.AddDate(0, offset, 0)
		results = append(results, e.Calculate(location, target))
	}

	current := results[rangeMonths]

	ranked := make([]models.OptimalTimingResult, len(results))
	copy(ranked, results)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].OverallScore > ranked[j].OverallScore
	})

	windowCount := int(math.Ceil(float64(total) * optimalWindowShare))
	optimal := ranked[:windowCount]

	analysis := models.TimingAnalysis{
		OptimalWindows:    optimal,
		CurrentTiming:     current,
		BestOverallMonth:  int(ranked[0].BirthDate.Month()),
		WorstOverallMonth: int(ranked[len(ranked)-1].BirthDate.Month()),
		YearlyTrend:       yearlyTrend(results, centerDate.Year()),
	}

	e.logger.Info("Timing range analyzed",
		zap.String("center", centerDate.Format("2006-01")),
		zap.Int("months", total),
		zap.Int("optimal_windows", windowCount),
		zap.Int("best_month", analysis.BestOverallMonth),
		zap.String("trend", string(analysis.YearlyTrend)))

	return analysis
}

// yearlyTrend compares mean scores of the current calendar year against the
// next within the window. Windows missing either year are stable.
func yearlyTrend(results []models.OptimalTimingResult, currentYear int) models.Trend {
	var currentSum, nextSum float64
	var currentCount, nextCount int

	for _, result := range results {
		switch result.BirthDate.Year() {
		case currentYear:
			currentSum += float64(result.OverallScore)
			currentCount++
		case currentYear + 1:
			nextSum += float64(result.OverallScore)
			nextCount++
		}
	}

	if currentCount == 0 || nextCount == 0 {
		return models.TrendStable
	}

	diff := nextSum/float64(nextCount) - currentSum/float64(currentCount)
	switch {
	case diff >= trendThreshold:
		return models.TrendImproving
	case diff <= -trendThreshold:
		return models.TrendDeclining
	default:
		return models.TrendStable
	}
}
