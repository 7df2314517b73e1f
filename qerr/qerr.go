// Package qerr defines the error taxonomy shared by the numerical packages.
//
// The only error class the library raises itself is DomainError: a
// precondition violation on a routine's input domain. Fixed-budget
// truncations (series cut at maxTerms, quadrature at n points) are not
// errors; they return an approximation whose accuracy is bounded by the
// budget the caller chose.
package qerr

import (
	"errors"
	"fmt"
)

// DomainError reports that an argument lies outside the domain a routine
// is defined on. It is always fatal for the current computation; callers
// running batches are expected to catch it per item.
type DomainError struct {
	Msg string
}

func (e *DomainError) Error() string { return e.Msg }

// Domainf builds a DomainError from a format string.
func Domainf(format string, args ...interface{}) error {
	return &DomainError{Msg: fmt.Sprintf(format, args...)}
}

// IsDomain reports whether any error in err's chain is a DomainError.
func IsDomain(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}
