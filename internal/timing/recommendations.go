package timing

import (
	"math"
	"sort"

	"github.com/bobby-s-dev/birth-timing/internal/models"
	"github.com/bobby-s-dev/birth-timing/internal/seasonal"
)

// criticalPrefix marks advisories that must lead the rendered list. The
// classification travels on the rule, not the string; the prefix is only
// presentation.
const criticalPrefix = "⚠️ CRITICAL: "

// recPriority orders rendered recommendations: critical advisories first,
// then delay suggestions, then everything else in rule order.
type recPriority int

const (
	priorityCritical recPriority = iota
	priorityDelay
	priorityNormal
)

type recommendation struct {
	priority recPriority
	text     string
}

// recRule appends one advisory when its condition holds.
type recRule struct {
	applies func(in factorInputs, score int) bool
	build   func(in factorInputs) recommendation
}

var recRules = []recRule{
	{
		applies: func(in factorInputs, _ int) bool { return in.solar.LifespanImpact < -2 },
		build: func(in factorInputs) recommendation {
			return recommendation{priorityCritical, criticalPrefix + "High solar activity period. Gestational exposure in this window carries the model's largest penalty."}
		},
	},
	{
		applies: func(in factorInputs, _ int) bool {
			return in.solar.LifespanImpact < -1 && in.solar.LifespanImpact >= -2
		},
		build: func(in factorInputs) recommendation {
			return recommendation{priorityDelay, "Consider delaying conception until the descending phase of the solar cycle."}
		},
	},
	{
		applies: func(in factorInputs, _ int) bool { return in.solar.LifespanImpact > 0.5 },
		build: func(in factorInputs) recommendation {
			return recommendation{priorityNormal, "Solar minimum conditions make this a favorable window in the cycle model."}
		},
	},
	{
		applies: func(in factorInputs, _ int) bool { return in.seasonal.VitaminDScore < 40 },
		build: func(in factorInputs) recommendation {
			return recommendation{priorityNormal, "Plan vitamin D supplementation: the first months of life fall in a low-UV window."}
		},
	},
	{
		applies: func(in factorInputs, _ int) bool { return in.seasonal.VitaminDScore > 70 },
		build: func(in factorInputs) recommendation {
			return recommendation{priorityNormal, "Strong vitamin D synthesis window in the months after birth."}
		},
	},
	{
		applies: func(in factorInputs, _ int) bool { return in.seasonal.InfectiousRisk > 70 },
		build: func(in factorInputs) recommendation {
			return recommendation{priorityCritical, criticalPrefix + "Peak infectious season. Keep the newborn's vaccination schedule tight and limit early crowd exposure."}
		},
	},
	{
		applies: func(in factorInputs, _ int) bool {
			return in.seasonal.InfectiousRisk > 50 && in.seasonal.InfectiousRisk <= 70
		},
		build: func(in factorInputs) recommendation {
			return recommendation{priorityNormal, "Elevated seasonal infection risk: limit exposure to crowded indoor spaces in the first months."}
		},
	},
	{
		applies: func(in factorInputs, _ int) bool { return in.seasonal.RelativeAgeAdvantage > 75 },
		build: func(in factorInputs) recommendation {
			return recommendation{priorityNormal, "Birth timing maximizes the relative age advantage at school entry."}
		},
	},
	{
		applies: func(in factorInputs, _ int) bool { return in.seasonal.RelativeAgeAdvantage < 25 },
		build: func(in factorInputs) recommendation {
			return recommendation{priorityNormal, "The child would be among the youngest in the school cohort; weigh the relative age effect."}
		},
	},
	{
		applies: func(in factorInputs, _ int) bool { return math.Abs(in.location.Latitude) > 60 },
		build: func(in factorInputs) recommendation {
			return recommendation{priorityNormal, "Extreme latitude sharply reduces winter daylight; plan light exposure for mother and infant."}
		},
	},
	{
		applies: func(in factorInputs, _ int) bool { return in.solar.MentalHealthFactor > 1 },
		build: func(in factorInputs) recommendation {
			return recommendation{priorityNormal, "Geomagnetic activity is elevated in this window; monitor perinatal mental health."}
		},
	},
}

// buildRecommendations runs the rule table, appends the seasonal model's own
// advisories and a closing summary keyed to the score tier, deduplicates by
// text and orders critical advisories first, then delay suggestions.
func buildRecommendations(location models.LocationData, solarData models.SolarActivityData, seasonalData models.SeasonalRiskData, score int) []string {
	in := factorInputs{
		location: location,
		solar:    solarData,
		seasonal: seasonalData,
	}

	recs := make([]recommendation, 0, len(recRules)+4)
	for _, rule := range recRules {
		if rule.applies(in, score) {
			recs = append(recs, rule.build(in))
		}
	}

	for _, text := range seasonal.Recommendations(seasonalData) {
		recs = append(recs, recommendation{priorityNormal, text})
	}

	recs = append(recs, closingSummary(score))

	recs = dedupe(recs)
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].priority < recs[j].priority
	})

	texts := make([]string, len(recs))
	for i, rec := range recs {
		texts[i] = rec.text
	}
	return texts
}

// closingSummary picks the single wrap-up line by score tier. The lowest tier
// is a delay suggestion and sorts with the other delay advisories.
func closingSummary(score int) recommendation {
	switch {
	case score >= 80:
		return recommendation{priorityNormal, "Overall: an excellent timing window."}
	case score >= 60:
		return recommendation{priorityNormal, "Overall: good timing with manageable risk factors."}
	case score >= 40:
		return recommendation{priorityNormal, "Overall: mixed timing; weigh the identified risks against personal constraints."}
	default:
		return recommendation{priorityDelay, "Overall: Consider delaying to a more favorable window."}
	}
}

// dedupe keeps the first occurrence of each text, preserving rule order and
// the strongest (earliest-appended) priority for duplicates.
func dedupe(recs []recommendation) []recommendation {
	seen := make(map[string]bool, len(recs))
	out := recs[:0]
	for _, rec := range recs {
		if seen[rec.text] {
			continue
		}
		seen[rec.text] = true
		out = append(out, rec)
	}
	return out
}
