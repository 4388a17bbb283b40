// SPDX-License-Identifier: MIT
// Package: kec/matrix
//
// errors.go - sentinel errors. Callers match with errors.Is; call sites add
// context through matrixErrorf.

package matrix

import (
	"errors"
	"fmt"
)

var (
	// ErrGraphNil indicates that a nil *core.Graph was passed into an adapter.
	ErrGraphNil = errors.New("matrix: graph is nil")

	// ErrBadShape indicates a non-positive or inconsistent shape.
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrOutOfRange indicates a row or column index outside the matrix.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible operand dimensions.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNonSquare signals that a square matrix was required.
	ErrNonSquare = errors.New("matrix: matrix is not square")

	// ErrNaNInf signals a NaN or ±Inf entry where finite values are required.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrUnknownNormalization signals an unsupported Laplacian variant.
	ErrUnknownNormalization = errors.New("matrix: unknown Laplacian normalization")
)

// matrixErrorf prefixes err with the calling method tag.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
