package models

type Rows struct {
	Rows  []map[string]interface{} `json:"rows"`
	Count int                      `json:"count"`
}
