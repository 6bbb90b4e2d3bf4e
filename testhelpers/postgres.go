package testhelpers

import (
	"context"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/lambdaquery/lq/config"
	"github.com/lambdaquery/lq/constants"
)

type PostgresContainer struct {
	container *postgres.PostgresContainer
	DsConfig  *config.DatasourceConfig
}

func (c *PostgresContainer) Terminate(ctx context.Context, suite *suite.Suite) {
	if err := c.container.Terminate(ctx); err != nil {
		suite.T().Logf("Failed to terminate postgres container: %v", err)
	}
}

func NewPostgresContainer(ctx context.Context, suite *suite.Suite) *PostgresContainer {
	postgresContainer, err := postgres.Run(
		ctx,
		PostgresImage,
		postgres.WithDatabase(TestDatabaseName),
		postgres.WithUsername(TestUsername),
		postgres.WithPassword(TestPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(DefaultContainerTimeout),
		),
	)
	suite.Require().NoError(err)
	suite.T().Log("PostgreSQL container started successfully")

	host, err := postgresContainer.Host(ctx)
	suite.Require().NoError(err)

	port, err := postgresContainer.MappedPort(ctx, "5432")
	suite.Require().NoError(err)

	dsConfig := &config.DatasourceConfig{
		Dialect:  constants.Postgres,
		Host:     host,
		Port:     uint16(port.Int()),
		User:     TestUsername,
		Password: TestPassword,
		Database: TestDatabaseName,
	}

	return &PostgresContainer{
		container: postgresContainer,
		DsConfig:  dsConfig,
	}
}
