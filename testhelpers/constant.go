package testhelpers

import "time"

// Test container image constants.
const (
	// PostgresImage is the default PostgreSQL test container image.
	PostgresImage = "postgres:17-alpine"
	// MySQLImage is the default MySQL test container image.
	MySQLImage = "mysql:lts"
)

// Test database configuration constants.
const (
	// TestDatabaseName is the default test database name.
	TestDatabaseName = "testdb"
	// TestUsername is the default test database username.
	TestUsername = "testuser"
	// TestPassword is the default test database password.
	TestPassword = "testpass"
)

// DefaultContainerTimeout is the default timeout for container startup.
const DefaultContainerTimeout = 30 * time.Second
