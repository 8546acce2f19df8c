package domain

import (
	"errors"
	"fmt"
)

var (
	ErrLoad                = errors.New("load timeline")
	ErrInsufficientCharges = errors.New("insufficient charges")
	ErrEntryOutOfRange     = errors.New("timeline entry out of range")
	ErrNoTimeline          = errors.New("no timeline loaded")
)

// LoadError reports a timeline file that could not be opened or decoded.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load timeline %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() []error {
	return []error{ErrLoad, e.Err}
}
