package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// WriteVital records a single vital-sign reading.
//
// This is the primary method for recording wearable telemetry. The write is
// non-blocking; data is batched and sent asynchronously.
//
// Parameters:
//   - deviceID: The wearable identifier (e.g., "vervoer-001")
//   - metric: The vital name (e.g., "heart_rate", "spo2")
//   - value: The numeric reading
//
// Example:
//
//	client.WriteVital("vervoer-001", "heart_rate", 86)
//	client.WriteVital("vervoer-001", "temperature", 36.6)
func (c *Client) WriteVital(deviceID, metric string, value float64) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"vitals",
		map[string]string{
			"device_id": deviceID,
			"metric":    metric,
		},
		map[string]interface{}{
			"value": value,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WriteAlert records that a threshold alert was raised, for offline review of
// alert frequency alongside the vitals series.
//
// Parameters:
//   - deviceID: The wearable identifier
//   - metric: The vital that breached its safe range
//   - kind: The alert kind (warning, error)
//   - value: The reading that triggered the alert
func (c *Client) WriteAlert(deviceID, metric, kind string, value float64) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"alerts",
		map[string]string{
			"device_id": deviceID,
			"metric":    metric,
			"kind":      kind,
		},
		map[string]interface{}{
			"value": value,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}
