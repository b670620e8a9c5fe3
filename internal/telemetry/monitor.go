package telemetry

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/souhardya/vervoer-core/internal/alerts"
	"github.com/souhardya/vervoer-core/internal/infrastructure/mqtt"
)

// vitalsQoS receives readings at least once; a duplicate reading is harmless.
const vitalsQoS = 1

// Subscriber is the slice of the MQTT client the monitor needs.
type Subscriber interface {
	Subscribe(topic string, qos byte, handler mqtt.MessageHandler) error
}

// Recorder persists readings and raised alerts to the history store.
type Recorder interface {
	WriteVital(deviceID, metric string, value float64)
	WriteAlert(deviceID, metric, kind string, value float64)
}

// Broadcaster pushes live events to connected UI shells.
type Broadcaster interface {
	Broadcast(event string, data any)
}

// Logger is the minimal logging interface the monitor uses.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Warn(string, ...any)  {}

// reading is the wire payload on a vitals topic. The bridge publishes either
// a bare number or this envelope.
type reading struct {
	Value float64 `json:"value"`
}

// deviceStatus is the wire payload on the device status topic.
type deviceStatus struct {
	Status string `json:"status"`
}

// VitalUpdate is the event payload broadcast for every accepted reading.
type VitalUpdate struct {
	Metric string  `json:"metric"`
	Value  float64 `json:"value"`
}

// ConnectionUpdate is the event payload broadcast on connection changes.
type ConnectionUpdate struct {
	Connected bool `json:"connected"`
}

// Monitor bridges the wearable's MQTT telemetry into the alert pipeline.
//
// For every reading it feeds the evaluator, records the normalized value to
// the history store, and broadcasts a vitals.updated event. Device status
// messages drive the evaluator's connection state and a device.connection
// event.
type Monitor struct {
	deviceID   string
	subscriber Subscriber
	evaluator  *alerts.Evaluator
	thresholds alerts.Thresholds
	recorder   Recorder
	hub        Broadcaster
	logger     Logger
}

// NewMonitor creates a telemetry monitor.
//
// Parameters:
//   - deviceID: The wearable to watch
//   - subscriber: MQTT client
//   - evaluator: Threshold alert evaluator
//   - thresholds: Safe ranges, for alert history classification
//   - recorder: Vitals history store (may be nil)
//   - hub: Live event broadcaster (may be nil)
//   - logger: Logger instance (may be nil)
func NewMonitor(
	deviceID string,
	subscriber Subscriber,
	evaluator *alerts.Evaluator,
	thresholds alerts.Thresholds,
	recorder Recorder,
	hub Broadcaster,
	logger Logger,
) *Monitor {
	if logger == nil {
		logger = noopLogger{}
	}
	return &Monitor{
		deviceID:   deviceID,
		subscriber: subscriber,
		evaluator:  evaluator,
		thresholds: thresholds,
		recorder:   recorder,
		hub:        hub,
		logger:     logger,
	}
}

// Start subscribes to the device's vitals and status topics. Handlers run on
// the MQTT client's goroutines; Start itself returns immediately.
func (m *Monitor) Start() error {
	topics := mqtt.Topics{}

	if err := m.subscriber.Subscribe(topics.AllVitals(m.deviceID), vitalsQoS, m.handleVital); err != nil {
		return fmt.Errorf("subscribing to vitals: %w", err)
	}
	if err := m.subscriber.Subscribe(topics.DeviceStatus(m.deviceID), vitalsQoS, m.handleStatus); err != nil {
		return fmt.Errorf("subscribing to device status: %w", err)
	}

	return nil
}

// handleVital processes one reading from a vitals topic.
func (m *Monitor) handleVital(topic string, payload []byte) error {
	metric := metricFromTopic(topic)
	if metric == "" {
		return fmt.Errorf("vitals topic %q has no metric segment", topic)
	}

	value, err := parseReading(payload)
	if err != nil {
		return fmt.Errorf("parsing reading on %q: %w", topic, err)
	}

	normalized, err := m.evaluator.Apply(metric, value)
	if err != nil {
		if errors.Is(err, alerts.ErrDeviceOffline) {
			// Stale in-flight message after a disconnect; drop it.
			m.logger.Debug("dropping reading, device offline", "metric", metric)
			return nil
		}
		return err
	}

	if m.recorder != nil {
		m.recorder.WriteVital(m.deviceID, metric, normalized)
		if threshold, ok := m.thresholds[metric]; ok {
			if normalized > threshold.Max || normalized < threshold.Min {
				m.recorder.WriteAlert(m.deviceID, metric, string(alerts.KindWarning), normalized)
			}
		}
	}

	if m.hub != nil {
		m.hub.Broadcast("vitals.updated", VitalUpdate{Metric: metric, Value: normalized})
	}

	return nil
}

// handleStatus processes a device connection status message.
func (m *Monitor) handleStatus(topic string, payload []byte) error {
	var status deviceStatus
	if err := json.Unmarshal(payload, &status); err != nil {
		// Plain-text "online"/"offline" from simpler bridges.
		status.Status = strings.TrimSpace(string(payload))
	}

	var connected bool
	switch strings.ToLower(status.Status) {
	case "online", "connected":
		connected = true
	case "offline", "disconnected":
		connected = false
	default:
		return fmt.Errorf("unknown device status %q on %q", status.Status, topic)
	}

	wasConnected := m.evaluator.Connected()
	m.evaluator.SetConnected(connected)

	if m.hub != nil && wasConnected != connected {
		m.hub.Broadcast("device.connection", ConnectionUpdate{Connected: connected})
	}

	return nil
}

// metricFromTopic extracts the metric segment from vervoer/vitals/{device}/{metric}.
func metricFromTopic(topic string) string {
	idx := strings.LastIndex(topic, "/")
	if idx < 0 || idx == len(topic)-1 {
		return ""
	}
	return topic[idx+1:]
}

// parseReading accepts either a bare JSON number or a {"value": n} envelope.
func parseReading(payload []byte) (float64, error) {
	var bare float64
	if err := json.Unmarshal(payload, &bare); err == nil {
		return bare, nil
	}

	var env reading
	if err := json.Unmarshal(payload, &env); err != nil {
		return 0, fmt.Errorf("payload is neither a number nor a reading object: %w", err)
	}
	return env.Value, nil
}
