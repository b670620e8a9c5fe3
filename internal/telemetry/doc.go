// Package telemetry subscribes to the wearable's MQTT topics and feeds the
// alert pipeline, the vitals history store, and the live event hub.
package telemetry
