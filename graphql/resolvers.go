package graphql

import (
	"errors"
	"fmt"

	"github.com/graphql-go/graphql"
	"github.com/mitchellh/mapstructure"

	"github.com/datastax/data-filter-apis/config"
	"github.com/datastax/data-filter-apis/filter"
	"github.com/datastax/data-filter-apis/query"
)

type filterEntry struct {
	Key   string `mapstructure:"key"`
	Value string `mapstructure:"value"`
}

type orderBy struct {
	Column string `mapstructure:"column"`
	Order  string `mapstructure:"order"`
}

type rowsArgs struct {
	Filter  []filterEntry `mapstructure:"filter"`
	OrderBy []orderBy     `mapstructure:"orderBy"`
	Limit   int           `mapstructure:"limit"`
}

func (a rowsArgs) params() filter.Params {
	params := make(filter.Params, 0, len(a.Filter))
	for _, entry := range a.Filter {
		params = append(params, filter.Param{Key: entry.Key, Value: entry.Value})
	}
	return params
}

func (sg *SchemaGenerator) rowsResolver(entity *config.Entity) graphql.FieldResolveFn {
	return func(params graphql.ResolveParams) (interface{}, error) {
		var args rowsArgs
		if err := mapstructure.Decode(params.Args, &args); err != nil {
			return nil, err
		}

		filterParams := args.params()
		if sg.maxFilterValues > 0 && filterParams.ValueCount() > sg.maxFilterValues {
			return nil, fmt.Errorf("too many filter values, at most %d are allowed", sg.maxFilterValues)
		}

		selectQuery := query.From(entity.Table).WithLimit(args.Limit)
		for _, order := range args.OrderBy {
			if !entity.HasColumn(order.Column) {
				return nil, fmt.Errorf("unknown order by column '%s'", order.Column)
			}
			direction := order.Order
			if direction == "" {
				direction = "asc"
			}
			selectQuery = selectQuery.Order(order.Column, direction)
		}

		selectQuery, err := selectQuery.Filter(filterParams, entity.Mapper())
		if err != nil {
			var filterErr *filter.Error
			if errors.As(err, &filterErr) {
				sg.logger.Debug("unable to filter rows",
					"entity", entity.Name,
					"keys", filterErr.Keys)
			}
			return nil, err
		}

		rows, err := sg.dbClient.Select(params.Context, selectQuery)
		if err != nil {
			sg.logger.Error("unable to execute select query",
				"entity", entity.Name,
				"error", err)
			return nil, errors.New("unable to execute select query")
		}

		return rows, nil
	}
}

func (sg *SchemaGenerator) entitiesResolver() graphql.FieldResolveFn {
	return func(params graphql.ResolveParams) (interface{}, error) {
		names := make([]string, 0, len(sg.entities))
		for i := range sg.entities {
			names = append(names, sg.entities[i].Name)
		}
		return names, nil
	}
}
