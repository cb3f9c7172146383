package testutil

import (
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/datastax/data-filter-apis/config"
	"github.com/datastax/data-filter-apis/log"
)

func TestLogger() log.Logger {
	if strings.ToUpper(os.Getenv("TEST_TRACE")) == "ON" {
		logger, err := zap.NewProduction()
		if err != nil {
			panic(err)
		}
		return log.NewZapLogger(logger)
	}

	return log.NewZapLogger(zap.NewNop())
}

func PanicIfError(err error) {
	if err != nil {
		panic(err)
	}
}

// UsersEntity is a users table filterable by team, gender and name.
func UsersEntity() config.EntityConfig {
	return config.EntityConfig{
		Name:    "users",
		Table:   "app_users",
		Columns: []string{"id", "team_id", "gender", "name"},
		Aliases: map[string]string{"team": "team_id"},
	}
}

func TeamsEntity() config.EntityConfig {
	return config.EntityConfig{
		Name:    "teams",
		Table:   "app_teams",
		Columns: []string{"id", "name"},
	}
}

// Entities builds the fixture entities with the default naming convention.
func Entities(cfgs ...config.EntityConfig) []config.Entity {
	if len(cfgs) == 0 {
		cfgs = []config.EntityConfig{UsersEntity(), TeamsEntity()}
	}
	entities, err := config.NewEntities(cfgs, config.NewDefaultNaming())
	PanicIfError(err)
	return entities
}
