package postgres

// Package postgres contains Postgres-backed implementations of outbound ports.
//
// Notes:
// - Migrations in /migrations are the source of truth for the schema.
// - Adapters here target those migrations and are covered by the repository
//   contract tests (run with PG_DSN set).
// - Constraint failures are translated to port errors at the call site;
//   raw driver errors never leave this package for expected conditions.
