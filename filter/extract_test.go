package filter

import (
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var usersMapper = Columns{
	"team_id": "team_id",
	"team":    "team_id",
	"gender":  "gender",
	"k":       "attr_k",
}

func include(column string, values ...interface{}) map[string][]interface{} {
	return map[string][]interface{}{column: values}
}

func TestExtract(t *testing.T) {
	empty := map[string][]interface{}{}
	tests := []struct {
		name        string
		params      Params
		wantInclude map[string][]interface{}
		wantExclude map[string][]interface{}
	}{
		{
			name:        "Single value",
			params:      Params{{"gender", "f"}},
			wantInclude: include("gender", "f"),
			wantExclude: empty,
		}, {
			name:        "Combined values",
			params:      Params{{"team_id", "1,2"}},
			wantInclude: include("team_id", "1", "2"),
			wantExclude: empty,
		}, {
			name:        "Mixed include and exclude",
			params:      Params{{"team_id", "1,!2"}},
			wantInclude: include("team_id", "1"),
			wantExclude: include("team_id", "2"),
		}, {
			name:        "Negation",
			params:      Params{{"k", "!x"}},
			wantInclude: empty,
			wantExclude: include("attr_k", "x"),
		}, {
			name:        "Null",
			params:      Params{{"team_id", "null"}},
			wantInclude: include("team_id", Null),
			wantExclude: empty,
		}, {
			name:        "Negated null",
			params:      Params{{"team_id", "!null"}},
			wantInclude: empty,
			wantExclude: include("team_id", Null),
		}, {
			name:        "Negated null upper case",
			params:      Params{{"team_id", "!NuLL"}},
			wantInclude: empty,
			wantExclude: include("team_id", Null),
		}, {
			name:        "Bare bang",
			params:      Params{{"k", "!"}},
			wantInclude: include("attr_k", "!"),
			wantExclude: empty,
		}, {
			name:        "Double bang",
			params:      Params{{"k", "!!"}},
			wantInclude: empty,
			wantExclude: include("attr_k", "!"),
		}, {
			name:        "Negated multi-line value",
			params:      Params{{"k", "!a\nb"}},
			wantInclude: empty,
			wantExclude: include("attr_k", "a\nb"),
		}, {
			name:        "Empty token between commas",
			params:      Params{{"k", "a,,b"}},
			wantInclude: include("attr_k", "a", "", "b"),
			wantExclude: empty,
		}, {
			name:        "Trailing commas dropped",
			params:      Params{{"k", "a,b,,"}},
			wantInclude: include("attr_k", "a", "b"),
			wantExclude: empty,
		}, {
			name:        "Empty value",
			params:      Params{{"k", ""}},
			wantInclude: empty,
			wantExclude: empty,
		}, {
			name:        "Values keep their case",
			params:      Params{{"gender", "F,nullable"}},
			wantInclude: include("gender", "F", "nullable"),
			wantExclude: empty,
		}, {
			name:        "Case insensitive key",
			params:      Params{{"Gender", "f"}},
			wantInclude: include("gender", "f"),
			wantExclude: empty,
		}, {
			name:        "Duplicates preserved",
			params:      Params{{"k", "a,a"}},
			wantInclude: include("attr_k", "a", "a"),
			wantExclude: empty,
		}, {
			name:        "Keys sharing a column accumulate",
			params:      Params{{"team_id", "1"}, {"team", "2,!3"}},
			wantInclude: include("team_id", "1", "2"),
			wantExclude: include("team_id", "3"),
		}, {
			name:        "Integer value",
			params:      Params{{"team_id", 7}},
			wantInclude: include("team_id", "7"),
			wantExclude: empty,
		}, {
			name:        "String slice value",
			params:      Params{{"team_id", []string{"1", "!2"}}},
			wantInclude: include("team_id", "1"),
			wantExclude: include("team_id", "2"),
		}, {
			name:        "Nil value",
			params:      Params{{"team_id", nil}},
			wantInclude: empty,
			wantExclude: empty,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Extract(tt.params, usersMapper)
			require.NoError(t, err)
			if !reflect.DeepEqual(got.Include, tt.wantInclude) {
				t.Errorf("Extract() include = %v, want %v", got.Include, tt.wantInclude)
			}
			if !reflect.DeepEqual(got.Exclude, tt.wantExclude) {
				t.Errorf("Extract() exclude = %v, want %v", got.Exclude, tt.wantExclude)
			}
		})
	}
}

func TestExtractNullCaseInsensitive(t *testing.T) {
	lower, err := Extract(Params{{"k", "null"}}, usersMapper)
	require.NoError(t, err)
	upper, err := Extract(Params{{"k", "NULL"}}, usersMapper)
	require.NoError(t, err)
	assert.Equal(t, lower, upper)
	assert.True(t, IsNull(lower.Include["attr_k"][0]))
}

func TestExtractUnresolvedKeys(t *testing.T) {
	_, err := Extract(Params{{"bogus", "f"}}, usersMapper)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bogus")

	spec, err := Extract(Params{
		{"Bogus", "f"},
		{"gender", "m"},
		{"other", "!null"},
	}, usersMapper)
	assert.Nil(t, spec)

	var filterErr *Error
	require.True(t, errors.As(err, &filterErr))
	assert.Equal(t, []string{"Bogus", "other"}, filterErr.Keys)
	assert.Equal(t, "cannot filter by: Bogus, other", err.Error())
}

func TestExtractLowerCasesKeyForMapper(t *testing.T) {
	var seen []string
	mapper := MapperFunc(func(key string) (string, bool) {
		seen = append(seen, key)
		return "col", true
	})

	_, err := Extract(Params{{"TeamID", "1"}, {"GENDER", "f"}}, mapper)
	require.NoError(t, err)
	assert.Equal(t, []string{"teamid", "gender"}, seen)
}

func TestExtractConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			spec, err := Extract(Params{{"team_id", "1,!2,null"}}, usersMapper)
			assert.NoError(t, err)
			assert.Equal(t, []interface{}{"1", Null}, spec.Include["team_id"])
			assert.Equal(t, []interface{}{"2"}, spec.Exclude["team_id"])
		}()
	}
	wg.Wait()
}

func TestParamsFromMap(t *testing.T) {
	params := ParamsFromMap(map[string]interface{}{"b": "2", "a": "1"})
	assert.Equal(t, Params{{"a", "1"}, {"b", "2"}}, params)

}

func TestSpecHelpers(t *testing.T) {
	var nilSpec *Spec
	assert.True(t, nilSpec.Empty())
	assert.Nil(t, nilSpec.Columns())

	spec, err := Extract(Params{{"team_id", "1,!2"}, {"gender", "f"}}, usersMapper)
	require.NoError(t, err)
	assert.False(t, spec.Empty())
	assert.Equal(t, []string{"gender", "team_id"}, spec.Columns())
	assert.Equal(t, 3, spec.ValueCount())
	assert.Equal(t, "NULL", Null.(interface{ String() string }).String())
}

func TestParamsValueCount(t *testing.T) {
	params := Params{{"team_id", "1,!2,,null"}, {"gender", []string{"f", "m"}}, {"k", ""}}
	assert.Equal(t, 6, params.ValueCount())
	assert.Equal(t, 0, Params(nil).ValueCount())
}
