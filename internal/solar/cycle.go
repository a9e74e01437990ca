package solar

import (
	"time"

	"github.com/bobby-s-dev/birth-timing/internal/models"
)

// Historical solar cycles 20-25 covering 1964-2030. Boundary years are shared
// between adjacent cycles; lookup returns the earlier cycle for those years.
var historicalCycles = []models.SolarCycle{
	{CycleNumber: 20, StartYear: 1964, PeakYear: 1968, EndYear: 1976, MaxSunspots: 110, Phase: models.PhaseMinimum},
	{CycleNumber: 21, StartYear: 1976, PeakYear: 1979, EndYear: 1986, MaxSunspots: 164, Phase: models.PhaseMinimum},
	{CycleNumber: 22, StartYear: 1986, PeakYear: 1989, EndYear: 1996, MaxSunspots: 158, Phase: models.PhaseMinimum},
	{CycleNumber: 23, StartYear: 1996, PeakYear: 2000, EndYear: 2008, MaxSunspots: 120, Phase: models.PhaseMinimum},
	{CycleNumber: 24, StartYear: 2008, PeakYear: 2014, EndYear: 2019, MaxSunspots: 82, Phase: models.PhaseMinimum},
	{CycleNumber: 25, StartYear: 2019, PeakYear: 2025, EndYear: 2030, MaxSunspots: 125, Phase: models.PhaseMaximum},
}

// averageCycleMax is assumed for extrapolated future cycles.
const averageCycleMax = 140

// futureCycleLength is the assumed span of every extrapolated cycle, in years.
const futureCycleLength = 11

// FindCycle returns the solar cycle enclosing the given date. Dates past the
// tabulated cycles fall through to PredictFutureCycle; dates before cycle 20
// are clamped onto cycle 20.
func FindCycle(date time.Time) models.SolarCycle {
	year := date.Year()

	if year < historicalCycles[0].StartYear {
		return historicalCycles[0]
	}

	for _, cycle := range historicalCycles {
		if year >= cycle.StartYear && year <= cycle.EndYear {
			return cycle
		}
	}

	return PredictFutureCycle(year)
}

// PredictFutureCycle extrapolates past the tabulated cycles: each future cycle
// spans exactly 11 years with an average-strength maximum, peaking 4 years in.
func PredictFutureCycle(year int) models.SolarCycle {
	last := historicalCycles[len(historicalCycles)-1]

	offset := (year - last.EndYear) / futureCycleLength
	start := last.EndYear + offset*futureCycleLength

	return models.SolarCycle{
		CycleNumber: last.CycleNumber + 1 + offset,
		StartYear:   start,
		PeakYear:    start + 4,
		EndYear:     start + futureCycleLength,
		MaxSunspots: averageCycleMax,
		Phase:       models.PhaseMinimum,
	}
}

// cycleProgress places a date inside its cycle as a fraction in [0,~1].
func cycleProgress(date time.Time, cycle models.SolarCycle) float64 {
	fractionalYear := float64(date.Year()) + float64(date.YearDay()-1)/365.25
	length := float64(cycle.EndYear - cycle.StartYear)
	return (fractionalYear - float64(cycle.StartYear)) / length
}

// phaseAt maps cycle progress to the conventional phase names.
func phaseAt(progress float64) models.CyclePhase {
	switch {
	case progress < 0.15:
		return models.PhaseMinimum
	case progress < 0.45:
		return models.PhaseAscending
	case progress < 0.60:
		return models.PhaseMaximum
	case progress < 0.90:
		return models.PhaseDescending
	default:
		return models.PhaseMinimum
	}
}
