package config

import "github.com/lambdaquery/lq/constants"

// CompilerConfig controls the compiler's default dialect and strictness.
type CompilerConfig struct {
	// Dialect is the SQL dialect used when a statement is compiled without an
	// explicit per-call dialect override.
	Dialect constants.Dialect `config:"dialect" validate:"required,oneof=postgres mysql sqlite" label:"compiler dialect"`
	// Strict rejects ambiguous type coercions during auto-parameterization
	// instead of falling back to the caller-supplied value as-is.
	Strict bool `config:"strict"`
	// EnableSQLGuard runs the adapted sqlguard pass over every statement this
	// module emits, in addition to the dialect emitter's own rules.
	EnableSQLGuard bool `config:"enable_sql_guard"`
}

// DefaultCompilerConfig returns the zero-configuration defaults.
func DefaultCompilerConfig() CompilerConfig {
	return CompilerConfig{
		Dialect:        constants.Postgres,
		Strict:         true,
		EnableSQLGuard: false,
	}
}
