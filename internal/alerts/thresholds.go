package alerts

import (
	"github.com/souhardya/vervoer-core/internal/infrastructure/config"
)

// Metric names as they appear on the wire and in configuration.
const (
	MetricHeartRate   = "heart_rate"
	MetricSpO2        = "spo2"
	MetricTemperature = "temperature"
	MetricPressure    = "pressure"
)

// Threshold is the safe range and presentation metadata for one metric.
type Threshold struct {
	Min   float64
	Max   float64
	Label string
	Unit  string

	// Percentage caps readings at 100 regardless of Max.
	Percentage bool
}

// Thresholds maps metric name to its safe range.
type Thresholds map[string]Threshold

// DefaultThresholds returns the built-in safe ranges for the four vitals the
// Vervoer module reports.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MetricHeartRate:   {Min: 60, Max: 100, Label: "Heart Rate", Unit: "bpm"},
		MetricSpO2:        {Min: 90, Max: 100, Label: "SpO2", Unit: "%", Percentage: true},
		MetricTemperature: {Min: 36.0, Max: 37.5, Label: "Temperature", Unit: "°C"},
		MetricPressure:    {Min: 30, Max: 40, Label: "Pressure", Unit: "PSI"},
	}
}

// ThresholdsFromConfig starts from the defaults and applies any per-metric
// bound overrides from configuration. Labels and units are not configurable;
// overrides for unknown metrics are ignored.
func ThresholdsFromConfig(overrides config.ThresholdsConfig) Thresholds {
	thresholds := DefaultThresholds()
	for name, bounds := range overrides {
		t, ok := thresholds[name]
		if !ok {
			continue
		}
		t.Min = bounds.Min
		t.Max = bounds.Max
		thresholds[name] = t
	}
	return thresholds
}
