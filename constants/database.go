package constants

// Dialect identifies a supported SQL dialect, both for the emitter and for the
// execute-wrapper's connection provider.
type Dialect string

// Supported dialects.
const (
	Postgres Dialect = "postgres"
	MySQL    Dialect = "mysql"
	SQLite   Dialect = "sqlite"
)
