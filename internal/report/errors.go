package report

import "fmt"

// ErrorCode is a closed enumeration of the ways a report build can fail.
// Callers that only care whether a report is available can treat any
// non-nil error as "unavailable"; tests assert on the code.
type ErrorCode string

const (
	// ErrCodeInternal is a recovered computation fault. The cause is
	// deliberately not surfaced: report generation is all-or-nothing and
	// nothing above this layer observes why it failed.
	ErrCodeInternal ErrorCode = "internal"

	// ErrCodeBadInput marks input the builders refuse to render, such as
	// an empty consumer name on a shared item.
	ErrCodeBadInput ErrorCode = "bad_input"
)

// Error is the only error type the report builders return.
type Error struct {
	Code ErrorCode
	msg  string
}

func (e *Error) Error() string {
	if e.msg == "" {
		return fmt.Sprintf("report unavailable (%s)", e.Code)
	}
	return fmt.Sprintf("report unavailable (%s): %s", e.Code, e.msg)
}

func badInput(format string, args ...any) *Error {
	return &Error{Code: ErrCodeBadInput, msg: fmt.Sprintf(format, args...)}
}

// guard converts a panic inside a builder into ErrCodeInternal. Every
// exported builder defers it so no fault ever crosses the package
// boundary, and no partial report is ever returned.
func guard(out *string, err *error) {
	if r := recover(); r != nil {
		*out = ""
		*err = &Error{Code: ErrCodeInternal}
	}
}
