package endpoint

import (
	"github.com/datastax/data-filter-apis/config"
	"github.com/datastax/data-filter-apis/internal/testutil"
	"github.com/datastax/data-filter-apis/log"
)

func testLogger() log.Logger {
	return testutil.TestLogger()
}

func usersEntity() config.EntityConfig {
	return testutil.UsersEntity()
}
