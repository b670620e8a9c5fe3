// Package database provides the SQLite-backed local state store for the
// Vervoer companion daemon.
//
// The companion keeps only small device-local state here: the persisted
// session token and the schema migration history. The store is opened once at
// startup, migrated, and shared by the packages that need it.
//
// Usage:
//
//	db, err := database.Open(database.Config{Path: cfg.Database.Path, WALMode: true, BusyTimeout: 5})
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	if err := db.Migrate(ctx); err != nil {
//	    return err
//	}
//
// Thread Safety: the wrapper is safe for concurrent use; SQLite is configured
// with a single writer connection.
package database
