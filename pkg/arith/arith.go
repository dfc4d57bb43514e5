// Package arith implements exact-precision comparison and multiplication
// over quantity.Quantity (C5), grounded in the math/big-based decimal
// arithmetic in core/pkg/kernel/csnf_decimal.go. Comparisons never coerce
// between kinds: a dec can only be compared to another dec, and so on; a
// mismatched pair is Invalid.
package arith

import (
	"math/big"

	"github.com/Northroot-Labs/northroot-kernel/pkg/quantity"
)

// CmpResult is the outcome of comparing a "used" quantity against a "cap"
// quantity.
type CmpResult string

const (
	// WithinBounds means used <= cap.
	WithinBounds CmpResult = "within_bounds"
	// ExceedsBounds means used > cap.
	ExceedsBounds CmpResult = "exceeds_bounds"
	// Invalid means the pair cannot be compared exactly: different kinds,
	// or (for f64) bit patterns that are not byte-identical.
	Invalid CmpResult = "invalid"
)

func bigIntFromInteger(s string) (*big.Int, bool) {
	n := new(big.Int)
	_, ok := n.SetString(s, 10)
	return n, ok
}

// Cmp compares used against cap. Only same-kind pairs are comparable for
// int/dec/rat; f64 is compared only by byte-identical bit pattern (never
// numeric value), matching spec.md's rule that floating point quantities
// carry no ordering guarantee across distinct encodings.
func Cmp(used, cap quantity.Quantity) CmpResult {
	if used.Kind != cap.Kind {
		return Invalid
	}
	switch used.Kind {
	case quantity.KindInt:
		u, ok1 := bigIntFromInteger(used.IntValue)
		c, ok2 := bigIntFromInteger(cap.IntValue)
		if !ok1 || !ok2 {
			return Invalid
		}
		return cmpBigInt(u, c)
	case quantity.KindDec:
		u, c, ok := alignedDecimals(used, cap)
		if !ok {
			return Invalid
		}
		return cmpBigInt(u, c)
	case quantity.KindRat:
		return cmpRat(used, cap)
	case quantity.KindF64:
		if used.F64Bits == cap.F64Bits {
			return WithinBounds
		}
		return Invalid
	default:
		return Invalid
	}
}

func cmpBigInt(a, b *big.Int) CmpResult {
	switch a.Cmp(b) {
	case 1:
		return ExceedsBounds
	default:
		return WithinBounds
	}
}

// alignedDecimals scales the lower-scale mantissa up to the higher scale so
// the two big.Int mantissas are directly comparable.
func alignedDecimals(a, b quantity.Quantity) (*big.Int, *big.Int, bool) {
	am, ok1 := bigIntFromInteger(a.DecMantissa)
	bm, ok2 := bigIntFromInteger(b.DecMantissa)
	if !ok1 || !ok2 {
		return nil, nil, false
	}
	scale := a.DecScale
	if b.DecScale > scale {
		scale = b.DecScale
	}
	am = new(big.Int).Mul(am, pow10(scale-a.DecScale))
	bm = new(big.Int).Mul(bm, pow10(scale-b.DecScale))
	return am, bm, true
}

func pow10(n int) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}

// cmpRat compares two rationals n/d by cross-multiplication: used.n*cap.d
// vs cap.n*used.d, both denominators being strictly positive per
// quantity.NewRat's validation.
func cmpRat(used, cap quantity.Quantity) CmpResult {
	un, ok1 := bigIntFromInteger(used.RatNumerator)
	ud, ok2 := bigIntFromInteger(used.RatDenominator)
	cn, ok3 := bigIntFromInteger(cap.RatNumerator)
	cd, ok4 := bigIntFromInteger(cap.RatDenominator)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return Invalid
	}
	lhs := new(big.Int).Mul(un, cd)
	rhs := new(big.Int).Mul(cn, ud)
	return cmpBigInt(lhs, rhs)
}

// Mul multiplies a and b when their kinds support an exact product:
// int*int -> int, int*dec or dec*int -> dec at the dec operand's scale,
// dec*dec -> dec at the sum of both scales (ok=false above scale 18). Any
// other combination (rat, f64, or mismatched unsupported pairs) returns
// ok=false: multiplication is defined only where the result stays exact and
// representable in the same tagged-union shape spec.md uses for Quantity.
func Mul(a, b quantity.Quantity) (quantity.Quantity, bool) {
	switch {
	case a.Kind == quantity.KindInt && b.Kind == quantity.KindInt:
		av, ok1 := bigIntFromInteger(a.IntValue)
		bv, ok2 := bigIntFromInteger(b.IntValue)
		if !ok1 || !ok2 {
			return quantity.Quantity{}, false
		}
		product := new(big.Int).Mul(av, bv)
		q, err := quantity.NewInt(product.String())
		return q, err == nil
	case a.Kind == quantity.KindDec && b.Kind == quantity.KindDec:
		am, ok1 := bigIntFromInteger(a.DecMantissa)
		bm, ok2 := bigIntFromInteger(b.DecMantissa)
		if !ok1 || !ok2 {
			return quantity.Quantity{}, false
		}
		scale := a.DecScale + b.DecScale
		if scale > 18 {
			return quantity.Quantity{}, false
		}
		product := new(big.Int).Mul(am, bm)
		q, err := quantity.NewDec(product.String(), scale)
		return q, err == nil
	case a.Kind == quantity.KindInt && b.Kind == quantity.KindDec:
		return mulIntDec(a, b)
	case a.Kind == quantity.KindDec && b.Kind == quantity.KindInt:
		return mulIntDec(b, a)
	default:
		return quantity.Quantity{}, false
	}
}

func mulIntDec(intQ, decQ quantity.Quantity) (quantity.Quantity, bool) {
	iv, ok1 := bigIntFromInteger(intQ.IntValue)
	dm, ok2 := bigIntFromInteger(decQ.DecMantissa)
	if !ok1 || !ok2 {
		return quantity.Quantity{}, false
	}
	product := new(big.Int).Mul(iv, dm)
	q, err := quantity.NewDec(product.String(), decQ.DecScale)
	return q, err == nil
}
