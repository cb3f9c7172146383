package graphql

import (
	"encoding"
	"fmt"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"
)

// newRowType builds the scalar returned for rows of one entity. Each row is a JSON
// object keyed by column name.
func newRowType(name string) *graphql.Scalar {
	return graphql.NewScalar(graphql.ScalarConfig{
		Name:         name,
		Description:  fmt.Sprintf("The `%s` scalar type represents a single record as a JSON object keyed by column name.", name),
		Serialize:    serializeRow,
		ParseValue:   identityFn,
		ParseLiteral: func(valueAST ast.Value) interface{} {
			// Rows are output only
			return nil
		},
	})
}

func identityFn(value interface{}) interface{} {
	return value
}

func serializeRow(value interface{}) interface{} {
	switch value := value.(type) {
	case map[string]interface{}:
		serialized := make(map[string]interface{}, len(value))
		for column, v := range value {
			if marshaler, ok := v.(encoding.TextMarshaler); ok {
				serialized[column] = marshalText(marshaler)
				continue
			}
			serialized[column] = v
		}
		return serialized
	default:
		return value
	}
}

func marshalText(value encoding.TextMarshaler) *string {
	buff, err := value.MarshalText()
	if err != nil {
		return nil
	}

	var s = string(buff)
	return &s
}
