package utils

import "strings"

// Errs accumulates a sequence of possibly-nil errors and reports the first
// one, the way codec type registration in the teacher repo accumulates
// registration errors before panicking once (see the linearcodec
// registration pattern used across the corpus).
type Errs struct {
	Err error
}

// Add appends any non-nil errors, keeping only the first.
func (e *Errs) Add(errs ...error) {
	if e.Err != nil {
		return
	}
	for _, err := range errs {
		if err != nil {
			e.Err = err
			return
		}
	}
}

// Errored reports whether Add ever saw a non-nil error.
func (e *Errs) Errored() bool {
	return e.Err != nil
}

// MultiErr joins multiple errors into one, used where independent
// reconciliation failures (e.g. per-pending-transaction errors) must all be
// reported instead of short-circuiting on the first.
type MultiErr struct {
	Errs []error
}

func (m *MultiErr) Add(err error) {
	if err != nil {
		m.Errs = append(m.Errs, err)
	}
}

func (m *MultiErr) ErrorOrNil() error {
	if len(m.Errs) == 0 {
		return nil
	}
	return m
}

func (m *MultiErr) Error() string {
	parts := make([]string, len(m.Errs))
	for i, err := range m.Errs {
		parts[i] = err.Error()
	}
	return strings.Join(parts, "; ")
}
