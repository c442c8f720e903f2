package models

import "strings"

// ValidationErrors collects form validation messages. Services return it as
// an error so handlers can answer 400.
type ValidationErrors []string

// HasErrors returns true if there are validation errors
func (ve ValidationErrors) HasErrors() bool {
	return len(ve) > 0
}

func (ve ValidationErrors) Error() string {
	return "validation failed: " + strings.Join(ve, ", ")
}
