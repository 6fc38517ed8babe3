package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Number is the set of element types an Array can hold
type Number interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64
}

// Array3 and Array4 are fixed size tuples stored by value, used for node
// coordinates and connectivity. The zero value is all zeros.
type Array3[T Number] [3]T
type Array4[T Number] [4]T

type (
	NodeCoords = Array3[float64]
	TetNodes   = Array4[int]
	TriNodes   = Array3[int]
)

func (a Array3[T]) Add(o Array3[T]) (r Array3[T]) {
	for n := range a {
		r[n] = a[n] + o[n]
	}
	return
}

func (a Array3[T]) Sub(o Array3[T]) (r Array3[T]) {
	for n := range a {
		r[n] = a[n] - o[n]
	}
	return
}

func (a Array3[T]) Scale(s T) (r Array3[T]) {
	for n := range a {
		r[n] = a[n] * s
	}
	return
}

func (a Array3[T]) Div(s T) (r Array3[T]) {
	for n := range a {
		r[n] = a[n] / s
	}
	return
}

func (a Array3[T]) String() string { return joinValues(a[:]) }

// Scan implements fmt.Scanner, reading 3 whitespace delimited values in order
func (a *Array3[T]) Scan(state fmt.ScanState, verb rune) error {
	return scanValues(state, a[:])
}

func (a Array4[T]) Add(o Array4[T]) (r Array4[T]) {
	for n := range a {
		r[n] = a[n] + o[n]
	}
	return
}

func (a Array4[T]) Sub(o Array4[T]) (r Array4[T]) {
	for n := range a {
		r[n] = a[n] - o[n]
	}
	return
}

func (a Array4[T]) Scale(s T) (r Array4[T]) {
	for n := range a {
		r[n] = a[n] * s
	}
	return
}

func (a Array4[T]) Div(s T) (r Array4[T]) {
	for n := range a {
		r[n] = a[n] / s
	}
	return
}

func (a Array4[T]) String() string { return joinValues(a[:]) }

// Scan implements fmt.Scanner, reading 4 whitespace delimited values in order
func (a *Array4[T]) Scan(state fmt.ScanState, verb rune) error {
	return scanValues(state, a[:])
}

// ParseArray3 reads the first 3 fields, extra fields are ignored
func ParseArray3[T Number](fields []string) (a Array3[T], err error) {
	err = ParseValues(a[:], fields)
	return
}

// ParseArray4 reads the first 4 fields, extra fields are ignored
func ParseArray4[T Number](fields []string) (a Array4[T], err error) {
	err = ParseValues(a[:], fields)
	return
}

// ParseValues fills dst from the leading len(dst) fields
func ParseValues[T Number](dst []T, fields []string) (err error) {
	if len(fields) < len(dst) {
		return fmt.Errorf("expected %d values, got %d", len(dst), len(fields))
	}
	for i := range dst {
		if dst[i], err = ParseNumber[T](fields[i]); err != nil {
			return
		}
	}
	return
}

// ParseNumber converts a single token to T
func ParseNumber[T Number](token string) (v T, err error) {
	switch any(v).(type) {
	case float32, float64:
		var f float64
		if f, err = strconv.ParseFloat(token, 64); err != nil {
			return
		}
		v = T(f)
	default:
		var i int64
		if i, err = strconv.ParseInt(token, 10, 64); err != nil {
			return
		}
		v = T(i)
	}
	return
}

func scanValues[T Number](state fmt.ScanState, dst []T) (err error) {
	for i := range dst {
		var tok []byte
		if tok, err = state.Token(true, nil); err != nil {
			return
		}
		if len(tok) == 0 {
			return fmt.Errorf("expected %d values, got %d", len(dst), i)
		}
		if dst[i], err = ParseNumber[T](string(tok)); err != nil {
			return
		}
	}
	return
}

func joinValues[T Number](vals []T) string {
	var sb strings.Builder
	for i, v := range vals {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprint(&sb, v)
	}
	return sb.String()
}
