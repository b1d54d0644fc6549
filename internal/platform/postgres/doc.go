// Package postgres provides PostgreSQL-backed implementations of the cache
// and progress store interfaces. Connections are owned by the caller; the
// stores accept a *sql.DB driven by the pgx stdlib driver so goose
// migrations and the stores share one connection type.
package postgres
