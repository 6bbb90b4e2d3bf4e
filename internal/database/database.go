package database

import (
	"database/sql"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/schema"

	"github.com/lambdaquery/lq/config"
	logPkg "github.com/lambdaquery/lq/log"
)

// New opens a *bun.DB for the configured dialect and wires the query-logging
// and sql-guard hooks. It performs no I/O beyond opening the driver handle;
// callers are responsible for pinging and closing it.
func New(cfg *config.DatasourceConfig, options ...Option) (*bun.DB, error) {
	provider, exists := registry.provider(cfg.Dialect)
	if !exists {
		return nil, newUnsupportedDBTypeError(cfg.Dialect)
	}

	sqlDB, dialect, err := provider.Connect(cfg)
	if err != nil {
		return nil, err
	}

	opts := newDefaultOptions(cfg)
	opts.apply(options...)

	return setupBunDB(sqlDB, dialect, opts), nil
}

func setupBunDB(sqlDB *sql.DB, dialect schema.Dialect, opts *databaseOptions) *bun.DB {
	db := bun.NewDB(sqlDB, dialect, opts.BunOptions...)

	if opts.PoolConfig != nil {
		opts.PoolConfig.ApplyToDB(sqlDB)
	}

	if opts.EnableQueryHook {
		addQueryHook(db, opts.Logger, opts.SQLGuardConfig)
	}

	return db
}

// logDBVersion logs the connected database's reported version.
func logDBVersion(provider DatabaseProvider, db *bun.DB, logger logPkg.Logger) error {
	version, err := provider.QueryVersion(db)
	if err != nil {
		return wrapVersionQueryError(provider.Type(), err)
	}

	logger.Infof("Database type: %s | Database version: %s", provider.Type(), version)

	return nil
}
