package endpoint

import (
	"fmt"
	"net/http"
	"path"

	"github.com/julienschmidt/httprouter"

	"github.com/datastax/data-filter-apis/config"
	"github.com/datastax/data-filter-apis/db"
	"github.com/datastax/data-filter-apis/log"
	"github.com/datastax/data-filter-apis/types"
)

const (
	EntitiesPath   = "/v1/entities"
	RowsPathFormat = "/v1/entities/%s/rows"
)

type routeList struct {
	dbClient        *db.Db
	entities        []config.Entity
	maxFilterValues int
	logger          log.Logger
	params          func(*http.Request, string) string
}

// Routes returns a slice of all the REST endpoint routes
func Routes(prefix string, cfg config.Config, dbClient *db.Db) []types.Route {
	rl := routeList{
		dbClient:        dbClient,
		entities:        cfg.Entities(),
		maxFilterValues: cfg.MaxFilterValues(),
		logger:          cfg.Logger(),
		params:          httprouterParams,
	}

	return []types.Route{
		{
			Method:  http.MethodGet,
			Pattern: path.Join(prefix, EntitiesPath),
			Handler: http.HandlerFunc(rl.GetEntities),
		},
		{
			Method:  http.MethodGet,
			Pattern: path.Join(prefix, fmt.Sprintf(RowsPathFormat, ":entityName")),
			Handler: http.HandlerFunc(rl.GetRows),
		},
	}
}

func httprouterParams(r *http.Request, name string) string {
	return httprouter.ParamsFromContext(r.Context()).ByName(name)
}
