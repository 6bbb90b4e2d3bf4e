package constants

// Environment variable keys.
const (
	EnvKeyPrefix   = "LQ"
	EnvNodeID      = EnvKeyPrefix + "_NODE_ID"     // XID node identifier
	EnvLogLevel    = EnvKeyPrefix + "_LOG_LEVEL"   // Log level (debug|info|warn|error)
	EnvConfigPath  = EnvKeyPrefix + "_CONFIG_PATH" // Custom config file path
	EnvSQLGuard    = EnvKeyPrefix + "_ENABLE_SQL_GUARD"
)
