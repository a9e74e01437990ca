package timing

import (
	"fmt"
	"strings"
	"time"

	"github.com/bobby-s-dev/birth-timing/internal/models"
)

// scientificBasis is the fixed citation list bundled with every report. The
// report shape {summary, analysis, alternatives, scientific_basis} is a
// stable wire format.
var scientificBasis = []string{
	"Lowell WE, Davis GE. The light of life: evidence that the sun modulates human lifespan. Med Hypotheses. 2008;70(3):501-507.",
	"Skjærvø GR, Fossøy F, Røskaft E. Solar activity at birth predicted infant survival and women's fertility in historical Norway. Proc R Soc B. 2015;282(1801).",
	"Disanto G, et al. Month of birth, vitamin D and risk of immune-mediated disease: a case control study. BMC Med. 2012;10:69.",
	"Bell JF, Daniels S. Are summer-born children disadvantaged? The birthdate effect in education. Oxford Rev Educ. 1990;16(1):67-80.",
	"Foster RG, Roenneberg T. Human responses to the geophysical daily, annual and lunar cycles. Curr Biol. 2008;18(17):R784-R794.",
	"Dobson R. Season of birth and health: a review of seasonal programming effects. J Dev Orig Health Dis. 2016;7(4):330-341.",
}

// defaultReportRange is the month radius used for report alternatives when
// the caller does not specify one.
const defaultReportRange = 12

// Report bundles a single-month analysis with ranked alternatives from the
// surrounding window and a free-text summary.
func (e *Engine) Report(location models.LocationData, targetDate time.Time, rangeMonths int) models.OptimalityReport {
	if rangeMonths <= 0 {
		rangeMonths = defaultReportRange
	}

	analysis := e.AnalyzeRange(location, targetDate, rangeMonths)
	current := analysis.CurrentTiming

	alternatives := make([]models.OptimalTimingResult, 0, len(analysis.OptimalWindows))
	for _, window := range analysis.OptimalWindows {
		if window.BirthDate.Year() == targetDate.Year() && window.BirthDate.Month() == targetDate.Month() {
			continue
		}
		alternatives = append(alternatives, window)
	}

	return models.OptimalityReport{
		Summary:         reportSummary(location, current, analysis),
		Analysis:        current,
		Alternatives:    alternatives,
		ScientificBasis: scientificBasis,
	}
}

func reportSummary(location models.LocationData, current models.OptimalTimingResult, analysis models.TimingAnalysis) string {
	place := location.City
	if place == "" {
		place = fmt.Sprintf("%.2f, %.2f", location.Latitude, location.Longitude)
	}
	if location.Country != "" {
		place += ", " + location.Country
	}

	var b strings.Builder
	fmt.Fprintf(&b, "A birth in %s %d at %s scores %d/100 (%s confidence). ",
		current.BirthDate.Month(), current.BirthDate.Year(), place,
		current.OverallScore, strings.ToLower(string(current.ConfidenceLevel)))

	fmt.Fprintf(&b, "Solar activity is %s with %d sunspots and a modeled lifespan impact of %+.1f years. ",
		strings.ToLower(string(current.SolarData.SolarRisk)),
		current.SolarData.SunspotNumber,
		current.SolarData.LifespanImpact)

	fmt.Fprintf(&b, "The seasonal profile scores %.0f/100 (%s risk). ",
		current.SeasonalData.OverallSeasonalScore,
		strings.ToLower(string(current.SeasonalData.RiskLevel)))

	fmt.Fprintf(&b, "Across the analyzed window, %s is the strongest month, %s the weakest, and the yearly trend is %s.",
		time.Month(analysis.BestOverallMonth), time.Month(analysis.WorstOverallMonth), analysis.YearlyTrend)

	return b.String()
}
