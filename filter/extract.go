package filter

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"
)

const (
	separator = ","
	negation  = "!"
	nullToken = "null"
)

// Extract parses params into a Spec, resolving every key through mapper.
//
// Keys are lower-cased before they are handed to mapper. When any key cannot be
// resolved, no Spec is returned and the error is an *Error naming all of them.
func Extract(params Params, mapper ColumnMapper) (*Spec, error) {
	spec := newSpec()

	var failed []string
	for _, param := range params {
		column, ok := mapper.MapColumn(strings.ToLower(param.Key))
		if !ok {
			failed = append(failed, param.Key)
			continue
		}

		for _, token := range splitValues(toString(param.Value)) {
			exclude, value := parseToken(token)
			spec.add(exclude, column, value)
		}
	}

	if len(failed) > 0 {
		return nil, &Error{Keys: failed}
	}

	return spec, nil
}

// parseToken reports whether token is negated and returns its normalized value.
func parseToken(token string) (bool, interface{}) {
	exclude := false
	// A negation needs at least one byte after "!". Newlines are ordinary bytes here.
	if len(token) > len(negation) && strings.HasPrefix(token, negation) {
		exclude = true
		token = token[len(negation):]
	}

	if strings.ToLower(token) == nullToken {
		return exclude, Null
	}
	return exclude, token
}

// splitValues splits on commas, keeping empty fields between separators but dropping
// trailing ones.
func splitValues(raw string) []string {
	tokens := strings.Split(raw, separator)
	end := len(tokens)
	for end > 0 && tokens[end-1] == "" {
		end--
	}
	return tokens[:end]
}

func toString(value interface{}) string {
	switch v := value.(type) {
	case []string:
		return strings.Join(v, separator)
	case []interface{}:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = toString(item)
		}
		return strings.Join(parts, separator)
	}

	s, err := cast.ToStringE(value)
	if err != nil {
		return fmt.Sprint(value)
	}
	return s
}
