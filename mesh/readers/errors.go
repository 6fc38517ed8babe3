package readers

import (
	"errors"
	"fmt"
)

// Failure kinds of a mesh load, test with errors.Is
var (
	ErrOpenFailure          = errors.New("unable to open mesh file")
	ErrStreamFailure        = errors.New("mesh record truncated")
	ErrUnsupportedCellShape = errors.New("only tets implemented currently")
	ErrIndexOutOfRange      = errors.New("record refers to illegal node")
)

// LoadError reports which file, and which line when known, aborted a load
type LoadError struct {
	File string
	Line int // 1-based, zero when the failure is not tied to one line
	Kind error
	Err  error
}

func (e *LoadError) Error() string {
	msg := e.File
	if e.Line > 0 {
		msg = fmt.Sprintf("%s:%d", msg, e.Line)
	}
	msg += ": " + e.Kind.Error()
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *LoadError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newLoadError(file string, line int, kind, err error) *LoadError {
	return &LoadError{File: file, Line: line, Kind: kind, Err: err}
}
