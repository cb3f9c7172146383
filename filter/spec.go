package filter

import (
	"fmt"
	"sort"
	"strings"
)

type nullValue struct{}

func (nullValue) String() string {
	return "NULL"
}

// Null is the value produced for the literal "null". It stands for the absence of a
// value and is rendered as IS NULL / IS NOT NULL rather than compared as a string.
var Null interface{} = nullValue{}

// IsNull reports whether value is the Null sentinel.
func IsNull(value interface{}) bool {
	_, ok := value.(nullValue)
	return ok
}

// Spec is the result of a successful extraction. Both maps are keyed by resolved
// column name; values are either strings or Null, in the order they were parsed.
// A column may appear in both maps.
type Spec struct {
	Include map[string][]interface{}
	Exclude map[string][]interface{}
}

func newSpec() *Spec {
	return &Spec{
		Include: map[string][]interface{}{},
		Exclude: map[string][]interface{}{},
	}
}

// Empty reports whether the spec constrains nothing.
func (s *Spec) Empty() bool {
	return s == nil || (len(s.Include) == 0 && len(s.Exclude) == 0)
}

// Columns returns the sorted union of the columns referenced by Include and Exclude.
func (s *Spec) Columns() []string {
	if s == nil {
		return nil
	}
	seen := make(map[string]bool, len(s.Include)+len(s.Exclude))
	columns := make([]string, 0, len(s.Include)+len(s.Exclude))
	for _, m := range []map[string][]interface{}{s.Include, s.Exclude} {
		for column := range m {
			if !seen[column] {
				seen[column] = true
				columns = append(columns, column)
			}
		}
	}
	sort.Strings(columns)
	return columns
}

// ValueCount returns the total number of values held by the spec.
func (s *Spec) ValueCount() int {
	if s == nil {
		return 0
	}
	count := 0
	for _, values := range s.Include {
		count += len(values)
	}
	for _, values := range s.Exclude {
		count += len(values)
	}
	return count
}

func (s *Spec) add(exclude bool, column string, value interface{}) {
	target := s.Include
	if exclude {
		target = s.Exclude
	}
	target[column] = append(target[column], value)
}

// Error is returned by Extract when one or more keys could not be mapped to a column.
type Error struct {
	// Keys holds the unresolved keys with their original casing, in first-seen order.
	Keys []string
}

func (e *Error) Error() string {
	return fmt.Sprintf("cannot filter by: %s", strings.Join(e.Keys, ", "))
}
