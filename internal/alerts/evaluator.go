package alerts

import (
	"fmt"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Notifier delivers device notifications for escalated alerts.
type Notifier interface {
	// Notify sends one notification with a title and body.
	Notify(title, body string) error
}

// Logger is the minimal logging interface the evaluator uses.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Warn(string, ...any)  {}

// Baseline readings shown before the first live sample arrives.
var seedValues = map[string]float64{
	MetricHeartRate:   86,
	MetricSpO2:        98,
	MetricTemperature: 36.6,
	MetricPressure:    34.2,
}

// Evaluator checks incoming vital readings against their safe ranges and
// maintains the alert log, the current reading per metric, and the device
// connection state.
//
// Out-of-range readings produce a warning entry and a device notification.
// Connection state changes produce success/error entries; only the
// disconnect is escalated to a notification. Readings are rejected with
// ErrDeviceOffline while the connection is down.
//
// Thread Safety: all methods are safe for concurrent use.
type Evaluator struct {
	thresholds Thresholds
	log        *Log
	notifier   Notifier
	logger     Logger

	mu        sync.RWMutex
	connected bool
	values    map[string]float64
	onEntry   func(Entry)
}

// NewEvaluator creates an evaluator seeded with baseline readings and an
// established connection.
//
// Parameters:
//   - thresholds: Safe ranges per metric
//   - log: Alert history sink
//   - notifier: Device notification sender (may be nil)
//   - logger: Logger instance (may be nil)
func NewEvaluator(thresholds Thresholds, log *Log, notifier Notifier, logger Logger) *Evaluator {
	if logger == nil {
		logger = noopLogger{}
	}

	values := make(map[string]float64, len(seedValues))
	for metric := range thresholds {
		if seed, ok := seedValues[metric]; ok {
			values[metric] = seed
		}
	}

	return &Evaluator{
		thresholds: thresholds,
		log:        log,
		notifier:   notifier,
		logger:     logger,
		connected:  true,
		values:     values,
	}
}

// OnEntry registers a hook invoked for every appended entry. Used by the API
// layer to broadcast alert.raised events. Must be called before readings flow.
func (e *Evaluator) OnEntry(fn func(Entry)) {
	e.mu.Lock()
	e.onEntry = fn
	e.mu.Unlock()
}

// Connected reports the current device connection state.
func (e *Evaluator) Connected() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.connected
}

// Values returns a copy of the current reading per metric.
func (e *Evaluator) Values() map[string]float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make(map[string]float64, len(e.values))
	for k, v := range e.values {
		out[k] = v
	}
	return out
}

// SetConnected records a device connection state change. Repeated reports of
// the same state are ignored; a real change appends a log entry, and a lost
// connection is escalated to a device notification.
func (e *Evaluator) SetConnected(connected bool) {
	e.mu.Lock()
	if e.connected == connected {
		e.mu.Unlock()
		return
	}
	e.connected = connected
	e.mu.Unlock()

	if connected {
		e.record(KindSuccess, "Device Connected", "Connection to Vervoer module established.")
	} else {
		e.record(KindError, "Device Disconnected", "Lost connection to Vervoer module.")
	}
}

// Apply records an absolute reading for a metric and evaluates it against the
// safe range.
//
// The value is normalized first: rounded to one decimal, floored at zero, and
// capped at 100 for percentage metrics. A normalized value outside [Min, Max]
// appends a warning entry and triggers a device notification.
//
// Returns:
//   - float64: The normalized value now held for the metric
//   - error: ErrDeviceOffline or ErrUnknownMetric
func (e *Evaluator) Apply(metric string, value float64) (float64, error) {
	threshold, ok := e.thresholds[metric]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownMetric, metric)
	}

	e.mu.Lock()
	if !e.connected {
		e.mu.Unlock()
		return 0, ErrDeviceOffline
	}

	value = math.Round(value*10) / 10
	if value < 0 {
		value = 0
	}
	if threshold.Percentage && value > 100 {
		value = 100
	}

	e.values[metric] = value
	e.mu.Unlock()

	switch {
	case value > threshold.Max:
		e.record(KindWarning,
			"⚠️ High "+threshold.Label,
			fmt.Sprintf("Critical: %s%s exceeds limit of %s%s.",
				formatReading(value), threshold.Unit,
				formatReading(threshold.Max), threshold.Unit),
		)
	case value < threshold.Min:
		e.record(KindWarning,
			"⚠️ Low "+threshold.Label,
			fmt.Sprintf("Critical: %s%s is below limit of %s%s.",
				formatReading(value), threshold.Unit,
				formatReading(threshold.Min), threshold.Unit),
		)
	}

	return value, nil
}

// Nudge shifts a metric by a delta relative to its current reading. Backs the
// local simulation endpoint.
func (e *Evaluator) Nudge(metric string, delta float64) (float64, error) {
	e.mu.RLock()
	current := e.values[metric]
	e.mu.RUnlock()

	return e.Apply(metric, current+delta)
}

// record appends an entry, broadcasts it, and escalates notifiable kinds.
func (e *Evaluator) record(kind Kind, title, message string) {
	now := time.Now().UTC()
	entry := Entry{
		ID:        entryID(now),
		Kind:      kind,
		Title:     title,
		Message:   message,
		Timestamp: now,
	}
	e.log.Append(entry)

	e.logger.Debug("alert recorded", "kind", string(kind), "title", title)

	e.mu.RLock()
	onEntry := e.onEntry
	e.mu.RUnlock()
	if onEntry != nil {
		onEntry(entry)
	}

	if kind.Notifiable() && e.notifier != nil {
		if err := e.notifier.Notify(title, message); err != nil {
			e.logger.Warn("delivering device notification failed", "error", err)
		}
	}
}

// formatReading renders a reading the way the UI shows it: up to one decimal,
// trailing zeros dropped.
func formatReading(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// entryID builds a sortable entry ID: the creation timestamp in nanoseconds,
// with a short random suffix to break ties within the same instant.
func entryID(t time.Time) string {
	return fmt.Sprintf("%d-%s", t.UnixNano(), uuid.NewString()[:8])
}
