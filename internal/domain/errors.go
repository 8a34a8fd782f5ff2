package domain

import "fmt"

// ValidationError reports a malformed entity at construction time.
type ValidationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

// NotFoundError reports an operation referencing an absent key.
type NotFoundError struct {
	Entity string
	Key    any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %v not found", e.Entity, e.Key)
}

// ExternalDataError reports that the remote API returned no usable record.
type ExternalDataError struct {
	Op  string
	Msg string
}

func (e *ExternalDataError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Msg)
}
