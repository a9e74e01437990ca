package seasonal

import (
	"github.com/bobby-s-dev/birth-timing/internal/models"
)

// Recommendations returns the seasonal model's own advisory strings for a
// profile. One line per birth season plus a line for a HIGH-risk profile.
func Recommendations(data models.SeasonalRiskData) []string {
	var recs []string

	switch data.BirthMonth {
	case 3, 4, 5:
		recs = append(recs, "Spring birth: antihistamine planning and pollen monitoring help during early infancy.")
	case 6, 7, 8:
		recs = append(recs, "Summer birth: favorable outdoor conditions; mind heat stress in the first weeks.")
	case 9, 10, 11:
		recs = append(recs, "Autumn birth: schedule the first winter's immunizations early.")
	default:
		recs = append(recs, "Winter birth: prioritize indoor air quality and daylight exposure for the newborn.")
	}

	if data.RiskLevel == models.RiskHigh {
		recs = append(recs, "Seasonal profile is unfavorable overall; discuss timing with a clinician.")
	}

	return recs
}
