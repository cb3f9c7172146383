package filter

import (
	"sort"
)

// Param is a single raw filter key with its value. The value is anything that can be
// turned into a string; slices of strings are joined with commas.
type Param struct {
	Key   string
	Value interface{}
}

// Params is an ordered list of raw filter parameters.
type Params []Param

// ParamsFromMap converts a map into Params ordered by key.
func ParamsFromMap(m map[string]interface{}) Params {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	params := make(Params, 0, len(keys))
	for _, k := range keys {
		params = append(params, Param{Key: k, Value: m[k]})
	}
	return params
}

// ValueCount returns the number of filter values params will produce, resolved or not.
func (p Params) ValueCount() int {
	count := 0
	for _, param := range p {
		count += len(splitValues(toString(param.Value)))
	}
	return count
}
