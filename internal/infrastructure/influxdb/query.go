package influxdb

import (
	"context"
	"fmt"
	"time"
)

// Sample is one historical reading returned from the vitals series.
type Sample struct {
	Metric string    `json:"metric"`
	Value  float64   `json:"value"`
	Time   time.Time `json:"time"`
}

// QueryVitals returns historical readings for one device over the given
// window, oldest first. An empty metric selects all metrics.
//
// Parameters:
//   - ctx: Context for cancellation
//   - deviceID: The wearable identifier
//   - metric: Metric name filter, or "" for all
//   - window: How far back to look
//
// Returns:
//   - []Sample: Matching readings
//   - error: If the query fails or the client is disconnected
func (c *Client) QueryVitals(ctx context.Context, deviceID, metric string, window time.Duration) ([]Sample, error) {
	if !c.IsConnected() {
		return nil, ErrNotConnected
	}

	flux := fmt.Sprintf(`
from(bucket: %q)
  |> range(start: -%s)
  |> filter(fn: (r) => r._measurement == "vitals")
  |> filter(fn: (r) => r.device_id == %q)`,
		c.cfg.Bucket, window.String(), deviceID)
	if metric != "" {
		flux += fmt.Sprintf("\n  |> filter(fn: (r) => r.metric == %q)", metric)
	}

	queryAPI := c.client.QueryAPI(c.cfg.Org)
	result, err := queryAPI.Query(ctx, flux)
	if err != nil {
		return nil, fmt.Errorf("querying vitals history: %w", err)
	}
	defer result.Close() //nolint:errcheck // Read errors surface via result.Err below

	var samples []Sample
	for result.Next() {
		record := result.Record()
		value, ok := record.Value().(float64)
		if !ok {
			continue
		}
		name, _ := record.ValueByKey("metric").(string)
		samples = append(samples, Sample{
			Metric: name,
			Value:  value,
			Time:   record.Time(),
		})
	}
	if result.Err() != nil {
		return nil, fmt.Errorf("reading vitals history: %w", result.Err())
	}

	return samples, nil
}
