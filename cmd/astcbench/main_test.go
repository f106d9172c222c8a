package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSyntheticImage(t *testing.T) {
	for _, cs := range []int{1, 2, 4} {
		raw, err := syntheticImage(20, 10, cs)
		require.NoError(t, err)
		require.Equal(t, 20*10*4*cs, raw.DataSize())
		require.Equal(t, 3, raw.OriginalNumComponents())
		raw.Release()
	}
}

func TestRunIsDeterministicAcrossWorkers(t *testing.T) {
	cfg := benchConfig{
		width: 24, height: 16,
		blockX: 6, blockY: 6,
		quality:       10,
		componentSize: 1,
		workers:       3,
		iters:         2,
		decompress:    true,
	}
	require.NoError(t, run(context.Background(), cfg))
}
