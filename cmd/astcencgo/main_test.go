package main

import (
	"image"
	"math"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func TestParseBlock(t *testing.T) {
	x, y, err := parseBlock("6x5")
	require.NoError(t, err)
	require.Equal(t, 6, x)
	require.Equal(t, 5, y)

	for _, s := range []string{"", "4", "4x4x4", "0x4", "axb", "256x4"} {
		_, _, err := parseBlock(s)
		require.Error(t, err, s)
	}
}

func TestParseQuality(t *testing.T) {
	tests := map[string]float32{
		"fastest":    0,
		"medium":     60,
		"Thorough":   98,
		"exhaustive": 100,
		"42.5":       42.5,
	}
	for in, want := range tests {
		got, err := parseQuality(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}

	for _, s := range []string{"-1", "101", "slow"} {
		_, err := parseQuality(s)
		require.Error(t, err, s)
	}
}

func TestEncodeOptions_QualityPresets(t *testing.T) {
	for in, want := range map[string]float32{"fastest": 0, "0": 0, "thorough": 98} {
		cmd := &cobra.Command{}
		addEncodeFlags(cmd)
		require.NoError(t, cmd.Flags().Set("quality", in))

		opts, err := encodeOptions(cmd)
		require.NoError(t, err, in)
		require.NotNil(t, opts.Quality, in)
		require.Equal(t, want, *opts.Quality, in)
	}
}

func TestPSNRRGB(t *testing.T) {
	a := []byte{10, 20, 30, 255, 40, 50, 60, 255}
	require.True(t, math.IsInf(psnrRGB(a, a), 1))

	b := []byte{11, 20, 30, 0, 40, 50, 60, 0}
	// One channel off by one over six samples: mse = 1/6.
	require.InDelta(t, 10*math.Log10(255*255*6), psnrRGB(a, b), 1e-9)
}

func TestFitImage(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 200, 100))
	require.Same(t, src, fitImage(src, 0))
	require.Same(t, src, fitImage(src, 200))

	got := fitImage(src, 50)
	require.Equal(t, image.Rect(0, 0, 50, 25), got.Bounds())
}
