// Package filter translates flat, untrusted filter parameters (typically taken from a
// query string) into include and exclude value lists keyed by column.
//
// Multiple values for the same key are separated by commas, a leading exclamation
// mark negates a value and the literal "null" (in any case) is translated to the Null
// sentinel:
//
//	team_id=1,2      team_id IN (1, 2)
//	team_id=1,!2     team_id IN (1) AND team_id NOT IN (2)
//	team_id=!null    team_id IS NOT NULL
//
// Keys are resolved to columns through a ColumnMapper. Extract fails with an *Error
// listing every key that could not be resolved.
package filter
