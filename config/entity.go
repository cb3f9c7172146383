package config

import (
	"fmt"
	"sort"

	"github.com/spf13/viper"

	"github.com/datastax/data-filter-apis/filter"
	"github.com/datastax/data-filter-apis/internal/validation"
)

// EntityConfig declares a filterable record collection as it appears in the config file:
//
//	entities:
//	  - name: users
//	    table: app_users
//	    columns: [id, team_id, gender]
//	    aliases:
//	      team: team_id
type EntityConfig struct {
	Name    string            `mapstructure:"name" validate:"required"`
	Table   string            `mapstructure:"table" validate:"required"`
	Columns []string          `mapstructure:"columns" validate:"required,min=1,dive,required"`
	Aliases map[string]string `mapstructure:"aliases"`
}

// Entity is a validated EntityConfig together with its column mapping table. It is
// read-only once built.
type Entity struct {
	Name    string
	Table   string
	Columns []string
	mapper  filter.Columns
}

// Mapper returns the filter key to column mapping of the entity.
func (e *Entity) Mapper() filter.ColumnMapper {
	return e.mapper
}

// FilterKeys returns the lower-cased keys accepted as filters, sorted.
func (e *Entity) FilterKeys() []string {
	keys := make([]string, 0, len(e.mapper))
	for k := range e.mapper {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// HasColumn reports whether column is declared for the entity.
func (e *Entity) HasColumn(column string) bool {
	for _, c := range e.Columns {
		if c == column {
			return true
		}
	}
	return false
}

// NewEntity validates cfg and builds its mapping table. Every column is reachable by
// its own name and by the external key produced by naming; aliases add extra keys and may
// refer to a column by either form.
func NewEntity(cfg EntityConfig, naming NamingConvention) (*Entity, error) {
	if err := validation.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid entity %q: %w", cfg.Name, err)
	}

	mapper := filter.Columns{}
	for _, column := range cfg.Columns {
		mapper[lowerKey(column)] = column
		external := lowerKey(naming.ToExternalKey(column))
		if _, ok := mapper[external]; !ok {
			mapper[external] = column
		}
	}

	entity := &Entity{
		Name:    cfg.Name,
		Table:   cfg.Table,
		Columns: cfg.Columns,
		mapper:  mapper,
	}

	for alias, column := range cfg.Aliases {
		if !entity.HasColumn(column) {
			// Aliases may name their column in external form, e.g. teamId for team_id
			sqlColumn := naming.ToSQLColumn(column)
			if !entity.HasColumn(sqlColumn) {
				return nil, fmt.Errorf("invalid entity %q: alias %q refers to unknown column %q", cfg.Name, alias, column)
			}
			column = sqlColumn
		}
		mapper[lowerKey(alias)] = column
	}

	return entity, nil
}

// NewEntities builds all entities, rejecting duplicate names.
func NewEntities(cfgs []EntityConfig, naming NamingConvention) ([]Entity, error) {
	entities := make([]Entity, 0, len(cfgs))
	seen := make(map[string]bool, len(cfgs))
	for _, cfg := range cfgs {
		if seen[cfg.Name] {
			return nil, fmt.Errorf("duplicate entity %q", cfg.Name)
		}
		seen[cfg.Name] = true

		entity, err := NewEntity(cfg, naming)
		if err != nil {
			return nil, err
		}
		entities = append(entities, *entity)
	}
	return entities, nil
}

// LoadEntities decodes the "entities" key of v.
func LoadEntities(v *viper.Viper, naming NamingConvention) ([]Entity, error) {
	var cfgs []EntityConfig
	if err := v.UnmarshalKey("entities", &cfgs); err != nil {
		return nil, fmt.Errorf("unable to decode entities: %w", err)
	}
	return NewEntities(cfgs, naming)
}

// FindEntity returns the entity with the given name, or nil.
func FindEntity(entities []Entity, name string) *Entity {
	for i := range entities {
		if entities[i].Name == name {
			return &entities[i]
		}
	}
	return nil
}
