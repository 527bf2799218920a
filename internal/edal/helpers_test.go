// internal/edal/helpers_test.go
package edal

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newChain(t *testing.T, e EnclosureType, size, maxTypes int) *Chain {
	t.Helper()
	c, err := NewChain(e, size, maxTypes, WithLogger(quietLogger()))
	require.NoError(t, err)
	return c
}

func fit(t *testing.T, c *Chain, ct ComponentType, n int) {
	t.Helper()
	require.NoError(t, c.FitComponent(ct, n))
}

// splitCooling builds an ESES chain of two 256-byte blocks holding three
// cooling records: two in block 0, one in block 1.
func splitCooling(t *testing.T) *Chain {
	t.Helper()
	c := newChain(t, EnclosureViper, 256, 4)
	require.NoError(t, c.AppendBlock())
	fit(t, c, TypeCooling, 3)
	return c
}

func corruptComponent(t *testing.T, c *Chain, ct ComponentType, idx int) {
	t.Helper()
	d, local, err := c.locate(ct, idx)
	require.NoError(t, err)
	d.record(local)[0] ^= 0xFF
}
