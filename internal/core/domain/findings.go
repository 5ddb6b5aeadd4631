package domain

import (
	"errors"
	"slices"

	"go.trai.ch/zerr"
)

// Findings accumulates the errors of one validation stage.
type Findings struct {
	kind error
	errs []error
}

// NewFindings creates an empty collection for the given stage error kind.
func NewFindings(kind error) *Findings {
	return &Findings{kind: kind}
}

// Add records a finding of the given kind about subject, with optional key/value metadata.
func (f *Findings) Add(kind error, subject string, kv ...any) {
	err := zerr.Wrap(kind, subject)
	for i := 0; i+1 < len(kv); i += 2 {
		if k, ok := kv[i].(string); ok {
			err = zerr.With(err, k, kv[i+1])
		}
	}
	f.errs = append(f.errs, err)
}

// Len returns the number of findings.
func (f *Findings) Len() int {
	return len(f.errs)
}

// Err returns nil when empty, otherwise a *FindingsError.
func (f *Findings) Err() error {
	if len(f.errs) == 0 {
		return nil
	}
	return &FindingsError{kind: f.kind, findings: slices.Clone(f.errs)}
}

// FindingsError is a failed stage together with every finding it recorded.
// errors.Is matches both the stage kind and each finding's kind.
type FindingsError struct {
	kind     error
	findings []error
}

// Kind returns the stage error kind.
func (e *FindingsError) Kind() error { return e.kind }

// Findings returns the individual findings.
func (e *FindingsError) Findings() []error { return e.findings }

// Error lists the stage kind followed by one finding per line.
func (e *FindingsError) Error() string {
	return errors.Join(e.Unwrap()...).Error()
}

// Unwrap returns the stage kind followed by the findings.
func (e *FindingsError) Unwrap() []error {
	return append([]error{e.kind}, e.findings...)
}
