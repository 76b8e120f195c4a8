// Package sqlite provides the SQLite-based implementation of driven.AnnotationStore.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, accessed through jmoiron/sqlx for struct scanning and named parameters.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
// Applied versions are recorded in schema_migrations.
//
// # Data Location
//
// By default, the database is stored at ~/.lenk/data/lenk.db
//
// # Errors
//
// Database failures are returned wrapping domain.ErrPersistenceUnavailable.
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
