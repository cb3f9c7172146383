package models

// An entity that can be listed and filtered
type Entity struct {
	Name string `json:"name"`

	// Keys accepted inside filter[...] query parameters
	FilterKeys []string `json:"filterKeys"`
}

type Entities struct {
	Entities []Entity `json:"entities"`
}
