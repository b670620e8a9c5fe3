package alerts

import "errors"

// Package-level errors.
var (
	// ErrDeviceOffline is returned when a reading is applied while the
	// device connection is down.
	ErrDeviceOffline = errors.New("alerts: device is offline")

	// ErrUnknownMetric is returned for readings of a metric with no
	// configured threshold.
	ErrUnknownMetric = errors.New("alerts: unknown metric")
)
