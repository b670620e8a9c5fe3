// Package alerts implements the threshold alert pipeline: safe ranges per
// vital sign, the evaluator that checks readings against them, the in-memory
// alert log, and the device notification escalation.
//
// The pipeline is deliberately local. Alert history lives in memory only, and
// notifications are published to the device's MQTT notify topic for the UI
// shell's push bridge. Nothing alert-related talks to the remote backend.
//
// Classification is two-level: every event becomes a log entry (connection,
// success, warning, error), but only warnings and errors escalate to a device
// notification.
package alerts
