package constants

const (
	// ModuleName is the name of this query compiler module.
	ModuleName = "lq"
	// ModuleVersion follows semantic versioning (semver).
	ModuleVersion = "v0.1.0"
)
