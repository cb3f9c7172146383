package endpoint

import (
	"go.uber.org/zap"

	"github.com/datastax/data-filter-apis/config"
	"github.com/datastax/data-filter-apis/db"
	"github.com/datastax/data-filter-apis/graphql"
	"github.com/datastax/data-filter-apis/log"
	"github.com/datastax/data-filter-apis/rest"
	"github.com/datastax/data-filter-apis/types"
)

const DefaultDriver = db.DriverPostgres

type DataEndpointConfig struct {
	driver          string
	dsn             string
	dbOptions       *db.Options
	entities        []config.Entity
	naming          config.NamingConvention
	maxFilterValues int
	logger          log.Logger
}

func (cfg DataEndpointConfig) Entities() []config.Entity {
	return cfg.entities
}

func (cfg DataEndpointConfig) Naming() config.NamingConvention {
	return cfg.naming
}

func (cfg DataEndpointConfig) MaxFilterValues() int {
	return cfg.maxFilterValues
}

func (cfg DataEndpointConfig) Logger() log.Logger {
	return cfg.logger
}

func (cfg *DataEndpointConfig) WithDriver(driver string) *DataEndpointConfig {
	cfg.driver = driver
	return cfg
}

func (cfg *DataEndpointConfig) WithDbOptions(options *db.Options) *DataEndpointConfig {
	cfg.dbOptions = options
	return cfg
}

func (cfg *DataEndpointConfig) WithEntities(entities []config.Entity) *DataEndpointConfig {
	cfg.entities = entities
	return cfg
}

func (cfg *DataEndpointConfig) WithNaming(naming config.NamingConvention) *DataEndpointConfig {
	cfg.naming = naming
	return cfg
}

func (cfg *DataEndpointConfig) WithMaxFilterValues(maxFilterValues int) *DataEndpointConfig {
	cfg.maxFilterValues = maxFilterValues
	return cfg
}

func (cfg DataEndpointConfig) NewEndpoint() (*DataEndpoint, error) {
	dbClient, err := db.NewDb(cfg.driver, cfg.dsn, cfg.dbOptions)
	if err != nil {
		return nil, err
	}
	return cfg.newEndpointWithDb(dbClient), nil
}

func (cfg DataEndpointConfig) newEndpointWithDb(dbClient *db.Db) *DataEndpoint {
	return &DataEndpoint{
		dbClient:        dbClient,
		graphQLRouteGen: graphql.NewRouteGenerator(dbClient, cfg),
		restRouteGen:    rest.NewRouteGenerator(dbClient, cfg),
	}
}

type DataEndpoint struct {
	dbClient        *db.Db
	graphQLRouteGen *graphql.RouteGenerator
	restRouteGen    *rest.RouteGenerator
}

func NewEndpointConfig(dsn string) (*DataEndpointConfig, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return NewEndpointConfigWithLogger(log.NewZapLogger(logger), dsn), nil
}

func NewEndpointConfigWithLogger(logger log.Logger, dsn string) *DataEndpointConfig {
	return &DataEndpointConfig{
		driver: DefaultDriver,
		dsn:    dsn,
		naming: config.NewDefaultNaming(),
		logger: logger,
	}
}

func (e *DataEndpoint) RoutesGraphQL(pattern string) ([]types.Route, error) {
	return e.graphQLRouteGen.Routes(pattern)
}

func (e *DataEndpoint) RoutesREST(prefix string) []types.Route {
	return e.restRouteGen.Routes(prefix)
}

func (e *DataEndpoint) Close() error {
	return e.dbClient.Close()
}
