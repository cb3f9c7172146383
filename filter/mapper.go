package filter

// ColumnMapper resolves a lower-cased external filter key to a column name.
// Implementations must be deterministic and free of side effects.
type ColumnMapper interface {
	MapColumn(key string) (string, bool)
}

// MapperFunc adapts an ordinary function to the ColumnMapper interface.
type MapperFunc func(key string) (string, bool)

func (f MapperFunc) MapColumn(key string) (string, bool) {
	return f(key)
}

// Columns is a static mapping table from lower-cased external key to column name.
// It is built once and read-only afterwards, so it can be shared between goroutines.
type Columns map[string]string

func (c Columns) MapColumn(key string) (string, bool) {
	column, ok := c[key]
	return column, ok
}
