// SPDX-License-Identifier: MIT

package kecerr_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/kec/kecerr"
)

func TestKinds(t *testing.T) {
	var err error = fmt.Errorf("wrap: %w", &kecerr.DegenerateGraphError{Op: "Shuffle", Reason: "isolated vertex", Vertex: "z", Seed: 7})
	require.ErrorIs(t, err, kecerr.ErrDegenerateGraph)
	require.NotErrorIs(t, err, kecerr.ErrEmptyGraph)

	var dge *kecerr.DegenerateGraphError
	require.True(t, errors.As(err, &dge))
	require.Equal(t, int64(7), dge.Seed)
	require.Contains(t, err.Error(), `vertex="z"`)

	require.ErrorIs(t, &kecerr.EmptyGraphError{Op: "Embed"}, kecerr.ErrEmptyGraph)
}

func TestCancelledUnwrapsContext(t *testing.T) {
	err := &kecerr.CancelledError{Op: "cg.Solve", Progress: 3, Cause: context.DeadlineExceeded}
	require.ErrorIs(t, err, kecerr.ErrCancelled)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
