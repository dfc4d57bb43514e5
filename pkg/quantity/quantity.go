// Package quantity implements the Quantity tagged union (C1): four
// lossless numeric representations (int, dec, rat, f64) dispatched by a "t"
// discriminator, validated at construction time per
// original_source/crates/northroot-canonical/src/quantities.rs.
package quantity

import (
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/Northroot-Labs/northroot-kernel/pkg/ids"
)

// Kind identifies which variant of the Quantity union a value holds.
type Kind string

const (
	KindInt Kind = "int"
	KindDec Kind = "dec"
	KindRat Kind = "rat"
	KindF64 Kind = "f64"
)

var (
	integerPattern         = regexp.MustCompile(`^-?[1-9][0-9]*$|^0$`)
	positiveIntegerPattern = regexp.MustCompile(`^[1-9][0-9]*$`)
	f64BitsPattern         = regexp.MustCompile(`^[0-9a-f]{16}$`)
)

func isValidInteger(s string) bool         { return integerPattern.MatchString(s) }
func isValidPositiveInteger(s string) bool { return positiveIntegerPattern.MatchString(s) }

// Quantity is an exact numeric value in one of four lossless forms. Exactly
// one of the kind-specific fields is populated, selected by Kind.
type Quantity struct {
	Kind Kind

	// int
	IntValue string

	// dec
	DecMantissa string
	DecScale    int

	// rat
	RatNumerator   string
	RatDenominator string

	// f64
	F64Bits string
}

// NewInt validates v as a canonical signed integer string ("0", or an
// optional "-" followed by a nonzero-leading digit sequence; "-0" is
// rejected).
func NewInt(v string) (Quantity, error) {
	if !isValidInteger(v) {
		return Quantity{}, &ids.ValidationError{Field: "quantity.int.v", Value: v, Want: "canonical signed integer"}
	}
	return Quantity{Kind: KindInt, IntValue: v}, nil
}

// NewDec validates mantissa m (signed integer string) and scale s (0-18
// inclusive, decimal places implied below the mantissa).
func NewDec(m string, s int) (Quantity, error) {
	if !isValidInteger(m) {
		return Quantity{}, &ids.ValidationError{Field: "quantity.dec.m", Value: m, Want: "canonical signed integer"}
	}
	if s < 0 || s > 18 {
		return Quantity{}, &ids.ValidationError{Field: "quantity.dec.s", Value: fmt.Sprint(s), Want: "0-18"}
	}
	return Quantity{Kind: KindDec, DecMantissa: m, DecScale: s}, nil
}

// NewRat validates numerator n (signed integer string) and denominator d (a
// strictly positive integer string, no leading zeros, never "0").
func NewRat(n, d string) (Quantity, error) {
	if !isValidInteger(n) {
		return Quantity{}, &ids.ValidationError{Field: "quantity.rat.n", Value: n, Want: "canonical signed integer"}
	}
	if !isValidPositiveInteger(d) {
		return Quantity{}, &ids.ValidationError{Field: "quantity.rat.d", Value: d, Want: "canonical positive integer"}
	}
	return Quantity{Kind: KindRat, RatNumerator: n, RatDenominator: d}, nil
}

// NewF64 validates bits as the 16 lowercase hex characters of an IEEE-754
// binary64 bit pattern.
func NewF64(bits string) (Quantity, error) {
	if !f64BitsPattern.MatchString(bits) {
		return Quantity{}, &ids.ValidationError{Field: "quantity.f64.bits", Value: bits, Want: "16 lowercase hex chars"}
	}
	return Quantity{Kind: KindF64, F64Bits: bits}, nil
}

type wireForm struct {
	T    Kind   `json:"t"`
	V    string `json:"v,omitempty"`
	M    string `json:"m,omitempty"`
	S    *int   `json:"s,omitempty"`
	N    string `json:"n,omitempty"`
	D    string `json:"d,omitempty"`
	Bits string `json:"bits,omitempty"`
}

func (q Quantity) MarshalJSON() ([]byte, error) {
	w := wireForm{T: q.Kind}
	switch q.Kind {
	case KindInt:
		w.V = q.IntValue
	case KindDec:
		w.M = q.DecMantissa
		s := q.DecScale
		w.S = &s
	case KindRat:
		w.N = q.RatNumerator
		w.D = q.RatDenominator
	case KindF64:
		w.Bits = q.F64Bits
	default:
		return nil, fmt.Errorf("quantity: unknown kind %q", q.Kind)
	}
	return json.Marshal(w)
}

func (q *Quantity) UnmarshalJSON(data []byte) error {
	var w wireForm
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	var (
		built Quantity
		err   error
	)
	switch w.T {
	case KindInt:
		built, err = NewInt(w.V)
	case KindDec:
		if w.S == nil {
			return &ids.ValidationError{Field: "quantity.dec.s", Value: "", Want: "0-18"}
		}
		built, err = NewDec(w.M, *w.S)
	case KindRat:
		built, err = NewRat(w.N, w.D)
	case KindF64:
		built, err = NewF64(w.Bits)
	default:
		return fmt.Errorf("quantity: unknown discriminator %q", w.T)
	}
	if err != nil {
		return err
	}
	*q = built
	return nil
}
