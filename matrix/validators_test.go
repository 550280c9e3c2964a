package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/lvmds/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDense(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(rows)
	require.NoError(t, err)

	return m
}

// TestValidateNotNil covers untyped and typed nil inputs.
func TestValidateNotNil(t *testing.T) {
	var typed *matrix.Dense
	assert.ErrorIs(t, matrix.ValidateNotNil(nil), matrix.ErrNilMatrix)
	assert.ErrorIs(t, matrix.ValidateNotNil(typed), matrix.ErrNilMatrix)
	assert.NoError(t, matrix.ValidateNotNil(mustDense(t, [][]float64{{1}})))
}

// TestValidateSquareAndShape checks the cheap shape validators.
func TestValidateSquareAndShape(t *testing.T) {
	sq := mustDense(t, [][]float64{{1, 2}, {3, 4}})
	rect := mustDense(t, [][]float64{{1, 2, 3}, {4, 5, 6}})

	assert.NoError(t, matrix.ValidateSquare(sq))
	assert.ErrorIs(t, matrix.ValidateSquare(rect), matrix.ErrNonSquare)
	assert.NoError(t, matrix.ValidateSameShape(sq, sq.Clone()))
	assert.ErrorIs(t, matrix.ValidateSameShape(sq, rect), matrix.ErrDimensionMismatch)
}

// TestValidateSymmetric checks tolerance handling and the failure path.
func TestValidateSymmetric(t *testing.T) {
	sym := mustDense(t, [][]float64{{0, 1, 2}, {1, 0, 3}, {2, 3, 0}})
	near := mustDense(t, [][]float64{{0, 1}, {1 + 1e-12, 0}})
	asym := mustDense(t, [][]float64{{0, 1}, {2, 0}})
	rect := mustDense(t, [][]float64{{0, 1, 2}})

	assert.NoError(t, matrix.ValidateSymmetric(sym, 0))
	assert.NoError(t, matrix.ValidateSymmetric(near, matrix.DefaultEpsilon))
	assert.NoError(t, matrix.ValidateSymmetric(near, -matrix.DefaultEpsilon), "negative tol is |tol|")
	assert.ErrorIs(t, matrix.ValidateSymmetric(near, 0), matrix.ErrAsymmetry)
	assert.ErrorIs(t, matrix.ValidateSymmetric(asym, matrix.DefaultEpsilon), matrix.ErrAsymmetry)
	assert.ErrorIs(t, matrix.ValidateSymmetric(rect, 0), matrix.ErrNonSquare)
	assert.ErrorIs(t, matrix.ValidateSymmetric(sym, math.NaN()), matrix.ErrNaNInf)
	assert.ErrorIs(t, matrix.ValidateSymmetric(nil, 0), matrix.ErrNilMatrix)
}

// TestValidateFiniteAndNonNegative covers value-level validators.
func TestValidateFiniteAndNonNegative(t *testing.T) {
	good := mustDense(t, [][]float64{{0, 1}, {1, 0}})
	neg := mustDense(t, [][]float64{{0, -1}, {-1, 0}})

	assert.NoError(t, matrix.ValidateFinite(good))
	assert.NoError(t, matrix.ValidateNonNegative(good))
	assert.ErrorIs(t, matrix.ValidateNonNegative(neg), matrix.ErrNegative)

	// Data() bypasses the Set policy, so validators must still catch NaN.
	bad := good.Clone().(*matrix.Dense)
	bad.Data()[1] = math.NaN()
	assert.ErrorIs(t, matrix.ValidateFinite(bad), matrix.ErrNaNInf)
	assert.ErrorIs(t, matrix.ValidateNonNegative(bad), matrix.ErrNaNInf)
}
