package graphql

import (
	"fmt"

	"github.com/graphql-go/graphql"

	"github.com/datastax/data-filter-apis/config"
	"github.com/datastax/data-filter-apis/db"
	"github.com/datastax/data-filter-apis/log"
)

var filterEntryInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "FilterEntry",
	Fields: graphql.InputObjectConfigFieldMap{
		"key": &graphql.InputObjectFieldConfig{
			Type: graphql.NewNonNull(graphql.String),
		},
		"value": &graphql.InputObjectFieldConfig{
			Type: graphql.NewNonNull(graphql.String),
		},
	},
	Description: "A raw filter. Comma separated values, a leading ! negates a value and null matches missing values.",
})

var orderEnum = graphql.NewEnum(graphql.EnumConfig{
	Name: "Order",
	Values: graphql.EnumValueConfigMap{
		"asc":  &graphql.EnumValueConfig{Value: "asc"},
		"desc": &graphql.EnumValueConfig{Value: "desc"},
	},
})

var orderByInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "OrderBy",
	Fields: graphql.InputObjectConfigFieldMap{
		"column": &graphql.InputObjectFieldConfig{
			Type: graphql.NewNonNull(graphql.String),
		},
		"order": &graphql.InputObjectFieldConfig{
			Type:         orderEnum,
			DefaultValue: "asc",
		},
	},
})

type SchemaGenerator struct {
	dbClient        *db.Db
	entities        []config.Entity
	naming          config.NamingConvention
	maxFilterValues int
	logger          log.Logger
}

func NewSchemaGenerator(dbClient *db.Db, cfg config.Config) *SchemaGenerator {
	return &SchemaGenerator{
		dbClient:        dbClient,
		entities:        cfg.Entities(),
		naming:          cfg.Naming(),
		maxFilterValues: cfg.MaxFilterValues(),
		logger:          cfg.Logger(),
	}
}

func (sg *SchemaGenerator) BuildSchema() (graphql.Schema, error) {
	if len(sg.entities) == 0 {
		return graphql.Schema{}, fmt.Errorf("no entities configured")
	}

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: graphql.NewObject(graphql.ObjectConfig{
			Name:   "Query",
			Fields: sg.buildQueryFields(),
		}),
	})
}

func (sg *SchemaGenerator) buildQueryFields() graphql.Fields {
	fields := graphql.Fields{}
	for i := range sg.entities {
		entity := &sg.entities[i]
		fields[sg.naming.ToGraphQLField(entity.Name)] = &graphql.Field{
			Type: graphql.NewList(newRowType(sg.naming.ToGraphQLType(entity.Name) + "Row")),
			Args: graphql.FieldConfigArgument{
				"filter": &graphql.ArgumentConfig{
					Type: graphql.NewList(graphql.NewNonNull(filterEntryInput)),
				},
				"orderBy": &graphql.ArgumentConfig{
					Type: graphql.NewList(graphql.NewNonNull(orderByInput)),
				},
				"limit": &graphql.ArgumentConfig{
					Type: graphql.Int,
				},
			},
			Description: fmt.Sprintf("Rows of %s", entity.Name),
			Resolve:     sg.rowsResolver(entity),
		}
	}
	fields["entities"] = &graphql.Field{
		Type:    graphql.NewList(graphql.String),
		Resolve: sg.entitiesResolver(),
	}
	return fields
}
