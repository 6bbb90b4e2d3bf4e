package config

import (
	"fmt"

	"go.uber.org/fx"

	"github.com/lambdaquery/lq/config"
	"github.com/lambdaquery/lq/internal/log"
	"github.com/lambdaquery/lq/validator"
)

// newDatasourceConfig parses the execute-wrapper's connection settings from the "datasource" section.
func newDatasourceConfig(cfg config.Config) (*config.DatasourceConfig, error) {
	var datasourceConfig config.DatasourceConfig
	if err := cfg.Unmarshal("datasource", &datasourceConfig); err != nil {
		return nil, fmt.Errorf("failed to unmarshal datasource config: %w", err)
	}

	return &datasourceConfig, nil
}

// newCompilerConfig parses the compiler's defaults from the "compiler" section, falling
// back to DefaultCompilerConfig for anything left unset.
func newCompilerConfig(cfg config.Config) (*config.CompilerConfig, error) {
	compilerConfig := config.DefaultCompilerConfig()
	if err := cfg.Unmarshal("compiler", &compilerConfig); err != nil {
		return nil, fmt.Errorf("failed to unmarshal compiler config: %w", err)
	}

	if err := validator.Validate(compilerConfig); err != nil {
		return nil, fmt.Errorf("invalid compiler config: %w", err)
	}

	return &compilerConfig, nil
}

var (
	logger = log.Named("config")
	Module = fx.Module(
		"lq:config",
		fx.Provide(
			newConfig,
			newDatasourceConfig,
			newCompilerConfig,
		),
		fx.Invoke(func() {
			logger.Info("Config module initialized")
		}),
	)
)
