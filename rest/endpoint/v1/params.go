package endpoint

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/datastax/data-filter-apis/config"
	"github.com/datastax/data-filter-apis/filter"
	e "github.com/datastax/data-filter-apis/rest/errors"
)

const (
	filterPrefix = "filter["
	filterSuffix = "]"
)

// filterParams collects the filter[key]=value query parameters in the order their keys
// first appear in rawQuery. Repeated keys are kept together and joined with commas by the
// filter package. Pairs that fail to unescape are skipped, as url.ParseQuery does.
func filterParams(rawQuery string) filter.Params {
	var params filter.Params
	index := make(map[string]int)
	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}
		rawKey, rawValue, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil || !isFilterKey(key) {
			continue
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			continue
		}

		name := strings.TrimSuffix(strings.TrimPrefix(key, filterPrefix), filterSuffix)
		if i, ok := index[name]; ok {
			params[i].Value = append(params[i].Value.([]string), value)
			continue
		}
		index[name] = len(params)
		params = append(params, filter.Param{Key: name, Value: []string{value}})
	}
	return params
}

func isFilterKey(key string) bool {
	return strings.HasPrefix(key, filterPrefix) && strings.HasSuffix(key, filterSuffix) &&
		len(key) > len(filterPrefix+filterSuffix)
}

type listOptions struct {
	fields  []string
	orderBy string
	order   string
	limit   int
}

// parseListOptions reads fields, orderBy and limit. Column names must be declared for entity.
func parseListOptions(values url.Values, entity *config.Entity) (*listOptions, error) {
	options := &listOptions{}

	if fields := values.Get("fields"); fields != "" {
		for _, field := range strings.Split(fields, ",") {
			if !entity.HasColumn(field) {
				return nil, e.NewBadRequestError(fmt.Sprintf("unknown field '%s'", field))
			}
			options.fields = append(options.fields, field)
		}
	}

	if orderBy := values.Get("orderBy"); orderBy != "" {
		column, order := orderBy, "asc"
		if i := strings.LastIndex(orderBy, ":"); i >= 0 {
			column, order = orderBy[:i], strings.ToLower(orderBy[i+1:])
		}
		if !entity.HasColumn(column) {
			return nil, e.NewBadRequestError(fmt.Sprintf("unknown order by column '%s'", column))
		}
		if order != "asc" && order != "desc" {
			return nil, e.NewBadRequestError("order must be either 'asc' or 'desc'")
		}
		options.orderBy, options.order = column, order
	}

	if limit := values.Get("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 0 {
			return nil, e.NewBadRequestError("limit must be a positive integer")
		}
		options.limit = n
	}

	return options, nil
}
