// Package fault reports internal errors: invariant violations that indicate
// a bug rather than an illegal player request. Reports are logged every time
// but raise a visible alert only once per Reporter.
package fault

import (
	"errors"
	"fmt"

	"github.com/go-logr/logr"
)

// Error is an internal error raised where an invariant was found broken.
type Error struct {
	Op     string
	Detail string
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%s] %s", e.Op, e.Detail)
}

// New returns an *Error for op with a formatted detail.
func New(op, format string, args ...any) *Error {
	return &Error{Op: op, Detail: fmt.Sprintf(format, args...)}
}

// Is reports whether err is or wraps an internal *Error.
func Is(err error) bool {
	var fe *Error
	return errors.As(err, &fe)
}

// AlertFunc shows a message to the player.
type AlertFunc func(message string)

// Reporter logs internal errors and latches a one-time alert.
type Reporter struct {
	log     logr.Logger
	alert   AlertFunc
	alerted bool
	count   int
}

// NewReporter creates a reporter. alert may be nil.
func NewReporter(log logr.Logger, alert AlertFunc) *Reporter {
	return &Reporter{log: log, alert: alert}
}

// Report logs err with the given key/value pairs. The first report also
// raises the alert; later ones are only logged.
func (r *Reporter) Report(err error, keysAndValues ...any) {
	if r == nil {
		return
	}
	r.count++
	r.log.Error(err, "internal error", keysAndValues...)
	if r.alerted {
		return
	}
	r.alerted = true
	if r.alert != nil {
		r.alert("Internal error: " + err.Error() + ". The game may be in an inconsistent state.")
	}
}

// Alerted reports whether the one-time alert has fired.
func (r *Reporter) Alerted() bool { return r.alerted }

// Count returns the number of reports so far.
func (r *Reporter) Count() int { return r.count }
