package validation

import (
	"fmt"
	"strings"
)

// Issue names one rejected field and why it was rejected.
type Issue struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s %s", i.Field, i.Reason)
}

// Error is returned when a submission is rejected. It never accompanies a
// partial result.
type Error struct {
	Issues []Issue
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, issue.String())
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// Checker accumulates issues so that every problem with a submission is
// reported at once instead of one per round trip.
type Checker struct {
	issues []Issue
}

// Add records an issue for field.
func (c *Checker) Add(field, reason string) {
	c.issues = append(c.issues, Issue{Field: field, Reason: reason})
}

// Addf records an issue for field with a formatted reason.
func (c *Checker) Addf(field, format string, args ...interface{}) {
	c.Add(field, fmt.Sprintf(format, args...))
}

// Positive requires value > 0.
func (c *Checker) Positive(field string, value float64) {
	if value <= 0 {
		c.Add(field, "must be greater than zero")
	}
}

// NonNegative requires value >= 0.
func (c *Checker) NonNegative(field string, value float64) {
	if value < 0 {
		c.Add(field, "must be non-negative")
	}
}

// Range requires lo <= value <= hi.
func (c *Checker) Range(field string, value, lo, hi float64) {
	if value < lo || value > hi {
		c.Addf(field, "must be between %g and %g", lo, hi)
	}
}

// Whole requires value to be an integer.
func (c *Checker) Whole(field string, value float64) {
	if value != float64(int64(value)) {
		c.Add(field, "must be a whole number")
	}
}

// Failed reports whether any issue has been recorded.
func (c *Checker) Failed() bool {
	return len(c.issues) > 0
}

// Issues returns a copy of the recorded issues.
func (c *Checker) Issues() []Issue {
	return append([]Issue(nil), c.issues...)
}

// Err returns an *Error holding every recorded issue, or nil.
func (c *Checker) Err() error {
	if len(c.issues) == 0 {
		return nil
	}
	return &Error{Issues: c.Issues()}
}

// Reject is a shortcut for a single-issue rejection.
func Reject(field, reason string) error {
	return &Error{Issues: []Issue{{Field: field, Reason: reason}}}
}
