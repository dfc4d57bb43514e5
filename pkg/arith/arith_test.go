package arith

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Northroot-Labs/northroot-kernel/pkg/quantity"
)

func mustInt(t *testing.T, v string) quantity.Quantity {
	q, err := quantity.NewInt(v)
	require.NoError(t, err)
	return q
}

func mustDec(t *testing.T, m string, s int) quantity.Quantity {
	q, err := quantity.NewDec(m, s)
	require.NoError(t, err)
	return q
}

func mustRat(t *testing.T, n, d string) quantity.Quantity {
	q, err := quantity.NewRat(n, d)
	require.NoError(t, err)
	return q
}

func TestCmpIntWithinAndExceeds(t *testing.T) {
	assert.Equal(t, WithinBounds, Cmp(mustInt(t, "5"), mustInt(t, "10")))
	assert.Equal(t, WithinBounds, Cmp(mustInt(t, "10"), mustInt(t, "10")))
	assert.Equal(t, ExceedsBounds, Cmp(mustInt(t, "11"), mustInt(t, "10")))
	assert.Equal(t, WithinBounds, Cmp(mustInt(t, "-5"), mustInt(t, "0")))
}

func TestCmpDecDifferentScales(t *testing.T) {
	// 1.50 == 1.5
	assert.Equal(t, WithinBounds, Cmp(mustDec(t, "150", 2), mustDec(t, "15", 1)))
	assert.Equal(t, ExceedsBounds, Cmp(mustDec(t, "151", 2), mustDec(t, "15", 1)))
}

func TestCmpRatCrossMultiply(t *testing.T) {
	// 1/3 vs 2/6 -> equal, within bounds
	assert.Equal(t, WithinBounds, Cmp(mustRat(t, "1", "3"), mustRat(t, "2", "6")))
	// 2/3 vs 1/2 -> exceeds
	assert.Equal(t, ExceedsBounds, Cmp(mustRat(t, "2", "3"), mustRat(t, "1", "2")))
}

func TestCmpF64ByteIdentity(t *testing.T) {
	f1, err := quantity.NewF64("3ff0000000000000")
	require.NoError(t, err)
	f2, err := quantity.NewF64("3ff0000000000000")
	require.NoError(t, err)
	f3, err := quantity.NewF64("4000000000000000")
	require.NoError(t, err)

	assert.Equal(t, WithinBounds, Cmp(f1, f2))
	assert.Equal(t, Invalid, Cmp(f1, f3), "different bit patterns never compare, even if numerically close")
}

func TestCmpMismatchedKindsInvalid(t *testing.T) {
	assert.Equal(t, Invalid, Cmp(mustInt(t, "5"), mustDec(t, "5", 0)))
}

func TestMulIntInt(t *testing.T) {
	q, ok := Mul(mustInt(t, "6"), mustInt(t, "7"))
	require.True(t, ok)
	assert.Equal(t, "42", q.IntValue)
}

func TestMulDecDec(t *testing.T) {
	q, ok := Mul(mustDec(t, "15", 1), mustDec(t, "2", 0))
	require.True(t, ok)
	assert.Equal(t, "30", q.DecMantissa)
	assert.Equal(t, 1, q.DecScale)
}

func TestMulIntDec(t *testing.T) {
	q, ok := Mul(mustInt(t, "3"), mustDec(t, "150", 2))
	require.True(t, ok)
	assert.Equal(t, "450", q.DecMantissa)
	assert.Equal(t, 2, q.DecScale)
}

func TestMulUnsupportedKindsFail(t *testing.T) {
	_, ok := Mul(mustRat(t, "1", "2"), mustInt(t, "2"))
	assert.False(t, ok)
}
