package tabular

import (
	"fmt"
	"strings"
)

// SchemaMismatchError is returned when a required column is entirely absent
// from an input. Fatal for that one file only; batch callers convert it into
// a skip-with-reason entry and keep going.
type SchemaMismatchError struct {
	Missing []string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("schema mismatch: missing required column(s): %s", strings.Join(e.Missing, ", "))
}

// InvalidRowError marks a row that cannot be coerced at all (not used for
// ordinary missing numeric cells, which become an explicit missing marker).
type InvalidRowError struct {
	Line   int
	Reason string
}

func (e *InvalidRowError) Error() string {
	return fmt.Sprintf("invalid row %d: %s", e.Line, e.Reason)
}

// DivisionPolicyError signals that a computation reached a division whose
// denominator the policy branches should have excluded. It indicates a bug in
// the caller's precondition handling and is raised loudly, never converted
// into Inf or NaN.
type DivisionPolicyError struct {
	Context string
}

func (e *DivisionPolicyError) Error() string {
	return fmt.Sprintf("division policy violation: %s", e.Context)
}
