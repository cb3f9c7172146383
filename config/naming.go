package config

import (
	"strings"

	"github.com/iancoleman/strcase"
)

// NamingConvention converts between SQL column names and the names exposed to clients.
type NamingConvention interface {
	// ToExternalKey returns the filter key clients may use for a column, besides the
	// column name itself.
	ToExternalKey(column string) string

	ToSQLColumn(name string) string

	ToGraphQLField(name string) string

	ToGraphQLType(name string) string
}

type defaultNaming struct {
}

func NewDefaultNaming() NamingConvention {
	return &defaultNaming{}
}

func (n *defaultNaming) ToExternalKey(column string) string {
	return strcase.ToLowerCamel(column)
}

func (n *defaultNaming) ToSQLColumn(name string) string {
	return strcase.ToSnake(name)
}

func (n *defaultNaming) ToGraphQLField(name string) string {
	return strcase.ToLowerCamel(name)
}

func (n *defaultNaming) ToGraphQLType(name string) string {
	return strcase.ToCamel(name)
}

func lowerKey(name string) string {
	return strings.ToLower(name)
}
