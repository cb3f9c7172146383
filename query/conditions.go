package query

import (
	"strings"

	"github.com/datastax/data-filter-apis/filter"
)

// Condition is a rendered WHERE fragment with its bound values, using "?" placeholders.
type Condition struct {
	Clause string
	Values []interface{}
}

// Conditions renders spec as one condition per column, in column order:
//
//	("a" IN (?, ?) OR "a" IS NULL) AND "a" NOT IN (?) AND "a" IS NOT NULL
//
// Only the parts backed by values are emitted.
func Conditions(spec *filter.Spec) []Condition {
	if spec.Empty() {
		return nil
	}

	var conditions []Condition
	for _, column := range spec.Columns() {
		var parts []string
		var values []interface{}

		if includes, ok := spec.Include[column]; ok && len(includes) > 0 {
			clause, vals := includeExpression(column, includes)
			parts = append(parts, clause)
			values = append(values, vals...)
		}

		if excludes, ok := spec.Exclude[column]; ok && len(excludes) > 0 {
			clause, vals := excludeExpression(column, excludes)
			parts = append(parts, clause)
			values = append(values, vals...)
		}

		if len(parts) == 0 {
			continue
		}
		conditions = append(conditions, Condition{
			Clause: strings.Join(parts, " AND "),
			Values: values,
		})
	}

	return conditions
}

func includeExpression(column string, includes []interface{}) (string, []interface{}) {
	vals, hasNull := splitNull(includes)
	name := quoteIdentifier(column)

	var parts []string
	if len(vals) > 0 {
		parts = append(parts, name+" IN ("+placeholders(len(vals))+")")
	}
	if hasNull {
		parts = append(parts, name+" IS NULL")
	}

	if len(parts) == 1 {
		return parts[0], vals
	}
	return "(" + strings.Join(parts, " OR ") + ")", vals
}

func excludeExpression(column string, excludes []interface{}) (string, []interface{}) {
	vals, hasNull := splitNull(excludes)
	name := quoteIdentifier(column)

	var parts []string
	if len(vals) > 0 {
		parts = append(parts, name+" NOT IN ("+placeholders(len(vals))+")")
	}
	if hasNull {
		parts = append(parts, name+" IS NOT NULL")
	}
	return strings.Join(parts, " AND "), vals
}

func splitNull(values []interface{}) ([]interface{}, bool) {
	hasNull := false
	vals := make([]interface{}, 0, len(values))
	for _, v := range values {
		if filter.IsNull(v) {
			hasNull = true
			continue
		}
		vals = append(vals, v)
	}
	return vals, hasNull
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// quoteIdentifier quotes every dot separated part of name.
func quoteIdentifier(name string) string {
	parts := strings.Split(name, ".")
	for i, part := range parts {
		parts[i] = `"` + strings.ReplaceAll(part, `"`, `""`) + `"`
	}
	return strings.Join(parts, ".")
}
