package solar

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/bobby-s-dev/birth-timing/internal/models"
)

// noiseAmplitude is the +/- band applied to every sunspot sample, in sunspot
// units. Callers needing reproducibility must hold a sample rather than
// recompute it.
const noiseAmplitude = 10

// Noise supplies the stochastic term added to the synthetic sunspot number.
type Noise func() float64

// NoNoise disables the stochastic term; used by tests and reproducible runs.
func NoNoise() float64 { return 0 }

// RandomNoise returns uniform noise in [-noiseAmplitude, +noiseAmplitude]
// drawn from the given source. rand.Rand is not safe for concurrent use, and
// a model is shared across request goroutines, so draws are serialized here.
func RandomNoise(rng *rand.Rand) Noise {
	var mu sync.Mutex
	return func() float64 {
		mu.Lock()
		defer mu.Unlock()
		return (rng.Float64()*2 - 1) * noiseAmplitude
	}
}

// Model generates synthetic solar activity samples from the cycle table.
type Model struct {
	noise Noise
}

// NewModel builds a model around the given noise source. A nil noise source
// seeds a fresh generator from the wall clock.
func NewModel(noise Noise) *Model {
	if noise == nil {
		noise = RandomNoise(rand.New(rand.NewSource(time.Now().UnixNano())))
	}
	return &Model{noise: noise}
}

// SunspotNumber derives a synthetic daily sunspot number for the date. The
// waveform is a sine over cycle progress plus a Gaussian bump placing the
// activity peak ~36% into the cycle, scaled by the cycle maximum, with the
// model's noise term added. Non-negative, rounded to the nearest integer.
func (m *Model) SunspotNumber(date time.Time) int {
	cycle := FindCycle(date)
	progress := cycleProgress(date, cycle)

	baseActivity := math.Sin(2 * math.Pi * progress)
	peakAdjustment := math.Exp(-8 * math.Pow(progress-0.36, 2))

	sunspots := (0.7*baseActivity+0.8*peakAdjustment)*cycle.MaxSunspots + m.noise()
	if sunspots < 0 {
		sunspots = 0
	}

	return int(math.Round(sunspots))
}

// Sample produces the full activity record for a date. Each call draws fresh
// noise; memoization lives in Service, not here.
func (m *Model) Sample(date time.Time) models.SolarActivityData {
	cycle := FindCycle(date)
	progress := cycleProgress(date, cycle)
	sunspots := m.SunspotNumber(date)

	return models.SolarActivityData{
		Date:               date,
		SunspotNumber:      sunspots,
		SolarFluxIndex:     solarFluxIndex(sunspots),
		GeomagneticIndex:   geomagneticIndex(sunspots),
		CosmicRayIntensity: cosmicRayIntensity(sunspots),
		CyclePhase:         phaseAt(progress),
		SolarRisk:          RiskTier(sunspots),
		MentalHealthFactor: MentalHealthFactor(sunspots),
		LifespanImpact:     LifespanImpact(sunspots, int(date.Month())),
		UVRadiationLevel:   UVLevel(sunspots),
	}
}

// RiskTier classifies a sunspot number into the solar risk bands.
func RiskTier(sunspots int) models.RiskLevel {
	switch {
	case sunspots < 50:
		return models.RiskLow
	case sunspots < 100:
		return models.RiskMedium
	default:
		return models.RiskHigh
	}
}

// MentalHealthFactor returns the mood-disturbance multiplier applied during
// high activity.
func MentalHealthFactor(sunspots int) float64 {
	if sunspots > 90 {
		return 1.3
	}
	return 1.0
}

// LifespanImpact estimates the lifespan delta in years for a birth at the
// given activity level and calendar month. Three linear segments over the
// sunspot number clamped to [0,200]: a mild positive band below 30, a steep
// negative ramp to 120, and a steeper ramp above, plus a small month-of-year
// perturbation. Rounded to one decimal.
func LifespanImpact(sunspots int, month int) float64 {
	s := float64(sunspots)
	if s > 200 {
		s = 200
	}
	if s < 0 {
		s = 0
	}

	var impact float64
	switch {
	case s < 30:
		impact = 0.5 - (s/30)*0.8
	case s <= 120:
		impact = -0.3 - ((s-30)/90)*4.5
	default:
		impact = -4.8 - ((s-120)/80)*1.8
	}

	impact += (float64(month) - 6) * 0.1

	return math.Round(impact*10) / 10
}

// UVLevel maps the sunspot number onto the 0-11 UV index scale. Activity
// raises the baseline by up to 30%.
func UVLevel(sunspots int) float64 {
	uv := 5 * (1 + float64(sunspots)/200*0.3)
	return math.Min(11, uv)
}

// solarFluxIndex converts sunspot number to 10.7cm flux using the standard
// linear approximation.
func solarFluxIndex(sunspots int) float64 {
	return math.Round((67+0.73*float64(sunspots))*10) / 10
}

// geomagneticIndex derives a planetary K-index style value in [0,9].
func geomagneticIndex(sunspots int) int {
	k := int(math.Round(float64(sunspots) / 30))
	if k > 9 {
		k = 9
	}
	if k < 0 {
		k = 0
	}
	return k
}

// cosmicRayIntensity is anti-correlated with solar activity: the heliosphere
// shields more as the cycle rises. Relative scale 0-100.
func cosmicRayIntensity(sunspots int) float64 {
	intensity := 100 - float64(sunspots)/3
	if intensity < 0 {
		return 0
	}
	return math.Round(intensity*10) / 10
}
