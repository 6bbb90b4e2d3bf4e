package config

import "github.com/lambdaquery/lq/constants"

// DatasourceConfig defines connection settings for the execute-wrapper layer.
// The compiler itself never opens a connection; this config only feeds
// internal/database's bun.DB construction.
type DatasourceConfig struct {
	Dialect        constants.Dialect `config:"dialect"`
	Host           string            `config:"host"`
	Port           uint16            `config:"port"`
	User           string            `config:"user"`
	Password       string            `config:"password"`
	Database       string            `config:"database"`
	Schema         string            `config:"schema"`
	Path           string            `config:"path"`
	EnableSQLGuard bool              `config:"enable_sql_guard"`
}
