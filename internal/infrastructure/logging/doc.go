// Package logging provides structured logging for the Vervoer companion daemon.
//
// It wraps log/slog with configuration-driven format and level selection and
// stamps every record with the service name and version.
//
// Usage:
//
//	log := logging.New(cfg.Logging, version)
//	log.Info("session refreshed", "authenticated", true)
//
//	sessionLog := log.With("component", "session")
//	sessionLog.Debug("token loaded from storage")
package logging
