package query

import (
	"fmt"
	"strings"

	"github.com/datastax/data-filter-apis/filter"
	"github.com/datastax/data-filter-apis/internal/validation"
)

type ColumnOrder struct {
	Column string `validate:"required"`
	Order  string `validate:"required,oneof=asc desc ASC DESC"`
}

// Select builds a SELECT statement over a single table. It is a value type: every
// method returns a modified copy and leaves the receiver untouched.
type Select struct {
	Table      string `validate:"required"`
	Columns    []string
	Conditions []Condition
	OrderBy    []ColumnOrder `validate:"dive"`
	Limit      int           `validate:"min=0"`
}

func From(table string) Select {
	return Select{Table: table}
}

func (s Select) Where(conditions ...Condition) Select {
	merged := make([]Condition, 0, len(s.Conditions)+len(conditions))
	merged = append(merged, s.Conditions...)
	s.Conditions = append(merged, conditions...)
	return s
}

// Filter restricts the query with the given raw filter parameters. Empty params leave
// the query unchanged. A *filter.Error is returned when a key cannot be mapped.
func (s Select) Filter(params filter.Params, mapper filter.ColumnMapper) (Select, error) {
	if len(params) == 0 {
		return s, nil
	}

	spec, err := filter.Extract(params, mapper)
	if err != nil {
		return s, err
	}

	return s.Where(Conditions(spec)...), nil
}

func (s Select) Select(columns ...string) Select {
	s.Columns = append([]string(nil), columns...)
	return s
}

func (s Select) Order(column, order string) Select {
	orderBy := make([]ColumnOrder, 0, len(s.OrderBy)+1)
	orderBy = append(orderBy, s.OrderBy...)
	s.OrderBy = append(orderBy, ColumnOrder{Column: column, Order: order})
	return s
}

func (s Select) WithLimit(limit int) Select {
	s.Limit = limit
	return s
}

// ToSQL renders the statement with "?" placeholders and its bound values in order.
func (s Select) ToSQL() (string, []interface{}, error) {
	if err := validation.Struct(s); err != nil {
		return "", nil, err
	}

	returnColumns := "*"
	if len(s.Columns) != 0 {
		quoted := make([]string, len(s.Columns))
		for i, column := range s.Columns {
			quoted[i] = quoteIdentifier(column)
		}
		returnColumns = strings.Join(quoted, ", ")
	}

	query := fmt.Sprintf("SELECT %s FROM %s", returnColumns, quoteIdentifier(s.Table))

	var vals []interface{}
	if len(s.Conditions) > 0 {
		clauses := make([]string, len(s.Conditions))
		for i, condition := range s.Conditions {
			clauses[i] = condition.Clause
			vals = append(vals, condition.Values...)
		}
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	if len(s.OrderBy) > 0 {
		orders := make([]string, len(s.OrderBy))
		for i, order := range s.OrderBy {
			orders[i] = quoteIdentifier(order.Column) + " " + strings.ToUpper(order.Order)
		}
		query += " ORDER BY " + strings.Join(orders, ", ")
	}

	if s.Limit > 0 {
		query += " LIMIT ?"
		vals = append(vals, s.Limit)
	}

	return query, vals, nil
}
