// Package influxdb records vital-sign history to InfluxDB.
//
// The companion daemon writes every accepted wearable reading and every
// threshold alert as time-series points. Writes are batched and non-blocking;
// the vitals pipeline never stalls on the history store. InfluxDB is optional
// and disabled by default; when disabled the daemon runs with in-memory
// state only.
package influxdb
