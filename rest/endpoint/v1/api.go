package endpoint

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/datastax/data-filter-apis/config"
	"github.com/datastax/data-filter-apis/filter"
	"github.com/datastax/data-filter-apis/query"
	e "github.com/datastax/data-filter-apis/rest/errors"
	m "github.com/datastax/data-filter-apis/rest/models"
)

func (s *routeList) GetEntities(w http.ResponseWriter, r *http.Request) {
	entities := make([]m.Entity, 0, len(s.entities))
	for i := range s.entities {
		entities = append(entities, m.Entity{
			Name:       s.entities[i].Name,
			FilterKeys: s.entities[i].FilterKeys(),
		})
	}

	RespondJSONObjectWithCode(w, http.StatusOK, m.Entities{Entities: entities})
}

func (s *routeList) GetRows(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	entityName := s.params(r, "entityName")
	entity := config.FindEntity(s.entities, entityName)
	if entity == nil {
		err := e.NewNotFoundError("entity", entityName)
		RespondWithError(w, err, errorStatus(err))
		return
	}

	values := r.URL.Query()
	options, err := parseListOptions(values, entity)
	if err != nil {
		RespondWithError(w, err, errorStatus(err))
		return
	}

	params := filterParams(r.URL.RawQuery)
	if s.maxFilterValues > 0 && params.ValueCount() > s.maxFilterValues {
		RespondWithError(w, e.NewBadRequestError(
			fmt.Sprintf("too many filter values, at most %d are allowed", s.maxFilterValues)), http.StatusBadRequest)
		return
	}

	selectQuery := query.From(entity.Table).Select(options.fields...).WithLimit(options.limit)
	if options.orderBy != "" {
		selectQuery = selectQuery.Order(options.orderBy, options.order)
	}

	selectQuery, err = selectQuery.Filter(params, entity.Mapper())
	if err != nil {
		var filterErr *filter.Error
		if errors.As(err, &filterErr) {
			s.logger.Debug("unable to filter rows",
				"entity", entity.Name,
				"keys", filterErr.Keys)
		}
		RespondWithError(w, err, errorStatus(err))
		return
	}

	rows, err := s.dbClient.Select(ctx, selectQuery)
	if err != nil {
		s.logger.Error("unable to execute select query",
			"entity", entity.Name,
			"error", err)
		RespondWithError(w, errors.New("unable to execute select query"), http.StatusInternalServerError)
		return
	}

	RespondJSONObjectWithCode(w, http.StatusOK, m.Rows{
		Rows:  rows,
		Count: len(rows),
	})
}

// errorStatus maps request errors to their HTTP status code.
func errorStatus(err error) int {
	var notFound *e.NotFoundError
	var badRequest *e.BadRequestError
	var filterErr *filter.Error
	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &badRequest), errors.As(err, &filterErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
