package rest

import (
	"github.com/datastax/data-filter-apis/config"
	"github.com/datastax/data-filter-apis/db"
	restEndpointV1 "github.com/datastax/data-filter-apis/rest/endpoint/v1"
	"github.com/datastax/data-filter-apis/types"
)

type RouteGenerator struct {
	dbClient *db.Db
	config   config.Config
}

func NewRouteGenerator(
	dbClient *db.Db,
	cfg config.Config,
) *RouteGenerator {
	return &RouteGenerator{
		dbClient: dbClient,
		config:   cfg,
	}
}

func (g *RouteGenerator) Routes(prefix string) []types.Route {
	return restEndpointV1.Routes(prefix, g.config, g.dbClient)
}
