package config

import (
	"fmt"
	"strings"
)

// EndpointTypes is the set of API surfaces the server exposes.
type EndpointTypes int

const (
	RESTEndpoint EndpointTypes = 1 << iota
	GraphQLEndpoint
)

func Endpoints(names ...string) (EndpointTypes, error) {
	var e EndpointTypes
	err := e.Add(names...)
	return e, err
}

func (e *EndpointTypes) Set(types EndpointTypes)             { *e |= types }
func (e *EndpointTypes) Clear(types EndpointTypes)           { *e &= ^types }
func (e EndpointTypes) IsSupported(types EndpointTypes) bool { return e&types != 0 }

func (e *EndpointTypes) Add(names ...string) error {
	for _, name := range names {
		switch strings.ToLower(name) {
		case "rest":
			e.Set(RESTEndpoint)
		case "graphql":
			e.Set(GraphQLEndpoint)
		default:
			return fmt.Errorf("invalid endpoint type: %s", name)
		}
	}
	return nil
}

func (e EndpointTypes) String() string {
	var names []string
	if e.IsSupported(RESTEndpoint) {
		names = append(names, "REST")
	}
	if e.IsSupported(GraphQLEndpoint) {
		names = append(names, "GraphQL")
	}
	return strings.Join(names, "/")
}
