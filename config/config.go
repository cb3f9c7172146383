package config

import (
	"github.com/datastax/data-filter-apis/log"
)

type Config interface {
	Entities() []Entity
	Naming() NamingConvention
	MaxFilterValues() int
	Logger() log.Logger
}
