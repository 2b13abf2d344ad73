package function

import "fmt"

// UnknownFunctionError is returned when neither the static registry nor
// the catalog-driven path can resolve a function name. The name carries
// the implementing class name when the failure happened past the alias
// mapping step.
type UnknownFunctionError struct {
	Name string
}

func (e *UnknownFunctionError) Error() string {
	return fmt.Sprintf("unknown function: %s", e.Name)
}

// UnknownOperatorError is returned when an operator name matches no entry
// in the operator table for its arity class.
type UnknownOperatorError struct {
	Name string
}

func (e *UnknownOperatorError) Error() string {
	return fmt.Sprintf("unknown operator: %s", e.Name)
}

// AmbiguousOperatorError is returned when more than one operator remains
// after filtering by name and arity class.
type AmbiguousOperatorError struct {
	Name string
}

func (e *AmbiguousOperatorError) Error() string {
	return fmt.Sprintf("ambiguous operator: %s", e.Name)
}
