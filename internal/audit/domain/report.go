package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// IntegrityError describes a single failed check discovered during chain
// verification. Index is the entry's position in stored order.
type IntegrityError struct {
	Check   string `json:"check"`
	Index   int    `json:"index"`
	EntryID string `json:"entry_id,omitempty"`
	Message string `json:"message"`
}

func (e IntegrityError) String() string {
	return fmt.Sprintf("[%s] entry %d (%s): %s", e.Check, e.Index, e.EntryID, e.Message)
}

// IntegrityReport is the complete, non-fail-fast result of verifying a chain.
// All four checks run over the full entry list; every discovered error is
// collected.
type IntegrityReport struct {
	Valid  bool             `json:"valid"`
	Errors []IntegrityError `json:"errors,omitempty"`
}

// Add records a failed check and marks the report invalid.
func (r *IntegrityReport) Add(check string, index int, entryID, format string, args ...any) {
	r.Valid = false
	r.Errors = append(r.Errors, IntegrityError{
		Check:   check,
		Index:   index,
		EntryID: entryID,
		Message: fmt.Sprintf(format, args...),
	})
}

// ErrorsForCheck filters the report down to one check's failures.
func (r *IntegrityReport) ErrorsForCheck(check string) []IntegrityError {
	var out []IntegrityError
	for _, e := range r.Errors {
		if e.Check == check {
			out = append(out, e)
		}
	}
	return out
}

// LogResult is the never-throwing outcome of an append. A degraded result
// carries a sentinel EntryID and the diagnostic error; the caller's primary
// action is never blocked by it.
type LogResult struct {
	EntryID  uuid.UUID
	Signed   bool
	Degraded bool
	Err      error
}

// DegradedLogResult builds the sentinel result returned when an append could
// not be completed.
func DegradedLogResult(err error) *LogResult {
	return &LogResult{EntryID: uuid.Nil, Degraded: true, Err: err}
}
