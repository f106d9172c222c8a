package astcimage_test

import (
	"context"
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-astc/astcencoder/astc"
	"github.com/go-astc/astcencoder/astcimage"
)

// solidImage returns a w x h image where every pixel holds rgba, stored with
// componentSize-byte samples and truncated to nc channels.
func solidImage(t *testing.T, w, h, nc, cs int, rgba [4]float32, linear, hdr bool) *astcimage.RawImage {
	t.Helper()

	src := make([]byte, w*h*nc*cs)
	for p := 0; p < w*h; p++ {
		for c := 0; c < nc; c++ {
			off := (p*nc + c) * cs
			switch cs {
			case 1:
				src[off] = byte(rgba[c]*255 + 0.5)
			case 2:
				binary.LittleEndian.PutUint16(src[off:], halfBits(rgba[c]))
			case 4:
				binary.LittleEndian.PutUint32(src[off:], math.Float32bits(rgba[c]))
			}
		}
	}
	img, err := astcimage.NewRawImage(src, w, h, nc, cs, linear, hdr)
	require.NoError(t, err)
	return img
}

// halfBits encodes the few exact values the tests use.
func halfBits(f float32) uint16 {
	switch f {
	case 0:
		return 0x0000
	case 0.25:
		return 0x3400
	case 0.5:
		return 0x3800
	case 0.75:
		return 0x3A00
	default:
		return 0x3C00
	}
}

func noiseImage(t *testing.T, w, h int) *astcimage.RawImage {
	t.Helper()

	src := make([]byte, w*h*4)
	for i := range src {
		src[i] = byte(i * 17)
	}
	img, err := astcimage.NewRawImage(src, w, h, 4, 1, false, false)
	require.NoError(t, err)
	return img
}

func TestCompress_BlockGridUsesCeilingDivision(t *testing.T) {
	raw := solidImage(t, 10, 10, 4, 1, [4]float32{0.25, 0.5, 0.75, 1}, false, false)
	defer raw.Release()

	comp, err := raw.Compress(4, 4, 60, nil, nil)
	require.NoError(t, err)
	defer comp.Release()

	require.Equal(t, astcimage.BlockGrid{Width: 3, Height: 3, Depth: 1}, comp.NumBlocks())
	require.Equal(t, astcimage.Footprint{Width: 4, Height: 4, Depth: 1}, comp.BlockFootprint())
	require.Equal(t, 144, comp.DataSize())
	require.Len(t, comp.Data(), 144)
	require.Equal(t, 1, comp.Depth())
}

func TestRoundTrip_PreservesMetadata(t *testing.T) {
	tests := []struct {
		name   string
		nc, cs int
		linear bool
		hdr    bool
	}{
		{"u8 rgba", 4, 1, false, false},
		{"u8 gray linear", 1, 1, true, false},
		{"half rgb", 3, 2, true, true},
		{"float rg", 2, 4, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := solidImage(t, 13, 7, tt.nc, tt.cs, [4]float32{0.5, 0.25, 0.75, 1}, tt.linear, tt.hdr)
			defer raw.Release()

			comp, err := raw.Compress(6, 6, 60, nil, nil)
			require.NoError(t, err)
			defer comp.Release()

			require.Equal(t, astcimage.BlockGrid{Width: 3, Height: 2, Depth: 1}, comp.NumBlocks())
			require.Equal(t, 3*2*16, comp.DataSize())
			require.Equal(t, tt.nc, comp.OriginalNumComponents())
			require.Equal(t, tt.cs, comp.ComponentSize())
			require.Equal(t, tt.linear, comp.Linear())
			require.Equal(t, tt.hdr, comp.HDR())

			out, err := comp.Decompress(nil, nil)
			require.NoError(t, err)
			defer out.Release()

			require.Equal(t, raw.Width(), out.Width())
			require.Equal(t, raw.Height(), out.Height())
			require.Equal(t, raw.OriginalNumComponents(), out.OriginalNumComponents())
			require.Equal(t, raw.ComponentSize(), out.ComponentSize())
			require.Equal(t, raw.Linear(), out.Linear())
			require.Equal(t, raw.HDR(), out.HDR())
			require.Equal(t, raw.DataSize(), out.DataSize())
		})
	}
}

func TestRoundTrip_SolidColorU8(t *testing.T) {
	raw := solidImage(t, 8, 8, 3, 1, [4]float32{0.5, 0.25, 0.75, 1}, false, false)
	defer raw.Release()

	comp, err := raw.Compress(4, 4, 60, nil, nil)
	require.NoError(t, err)
	defer comp.Release()

	out, err := comp.Decompress(nil, nil)
	require.NoError(t, err)
	defer out.Release()

	want := raw.Data()
	got := out.Data()
	for i := range got {
		require.InDelta(t, want[i], got[i], 2, "byte %d", i)
	}
}

func TestCompress_InvalidConfig(t *testing.T) {
	raw := solidImage(t, 8, 8, 4, 1, [4]float32{1, 1, 1, 1}, false, false)
	defer raw.Release()

	comp, err := raw.Compress(7, 7, 60, nil, nil)
	require.Nil(t, comp)
	require.ErrorIs(t, err, astcimage.ErrConfigInit)
	require.Equal(t, astc.ErrBadBlockSize, astc.ErrorCodeOf(err))

	comp, err = raw.Compress(4, 4, 101, nil, nil)
	require.Nil(t, comp)
	require.ErrorIs(t, err, astcimage.ErrConfigInit)
	require.Equal(t, astcimage.KindConfig, astcimage.KindOf(err))
}

func TestCompress_StopFromProgressCancels(t *testing.T) {
	raw := noiseImage(t, 64, 64)
	defer raw.Release()

	type tag struct{ id int }
	info := &tag{id: 7}
	var calls []float32
	stop := func(userInfo any, p float32) bool {
		require.Same(t, info, userInfo)
		calls = append(calls, p)
		return true
	}

	comp, err := raw.Compress(4, 4, 10, info, stop)
	require.Nil(t, comp)
	require.ErrorIs(t, err, astcimage.ErrCancelled)
	require.Equal(t, astcimage.KindCancelled, astcimage.KindOf(err))
	require.Equal(t, []float32{1}, calls)

	var slot astcimage.ErrorInfo
	slot.Capture(err)
	require.Equal(t, "task was cancelled", slot.Message())
}

func TestCompress_ProgressIsFraction(t *testing.T) {
	raw := noiseImage(t, 32, 32)
	defer raw.Release()

	var calls []float32
	comp, err := raw.Compress(4, 4, 10, nil, func(_ any, p float32) bool {
		calls = append(calls, p)
		return false
	})
	require.NoError(t, err)
	defer comp.Release()

	require.NotEmpty(t, calls)
	for _, p := range calls {
		require.GreaterOrEqual(t, p, float32(0))
		require.LessOrEqual(t, p, float32(1))
	}
	require.Equal(t, float32(1), calls[len(calls)-1])
}

func TestWorker_CompressWithDoneContext(t *testing.T) {
	raw := noiseImage(t, 16, 16)
	defer raw.Release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var w astcimage.Worker
	comp, err := w.Compress(ctx, raw, astcimage.CompressOptions{})
	require.Nil(t, comp)
	require.ErrorIs(t, err, astcimage.ErrCancelled)
	require.ErrorIs(t, err, context.Canceled)
}

func TestWorker_ContextCancelledMidCompress(t *testing.T) {
	raw := noiseImage(t, 512, 512)
	defer raw.Release()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls int
	var w astcimage.Worker
	comp, err := w.Compress(ctx, raw, astcimage.CompressOptions{
		Quality: astcimage.Quality(1),
		Progress: func(_ any, p float32) bool {
			calls++
			cancel()
			return false
		},
	})
	require.Nil(t, comp)
	require.ErrorIs(t, err, astcimage.ErrCancelled)
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 1, calls)

	// The worker is reusable after a cancelled call.
	small := noiseImage(t, 8, 8)
	defer small.Release()
	comp, err = w.Compress(context.Background(), small, astcimage.CompressOptions{})
	require.NoError(t, err)
	comp.Release()
}

func TestWorker_CompressDefaults(t *testing.T) {
	raw := noiseImage(t, 9, 9)
	defer raw.Release()

	var w astcimage.Worker
	comp, err := w.Compress(context.Background(), raw, astcimage.CompressOptions{})
	require.NoError(t, err)
	defer comp.Release()

	require.Equal(t, astcimage.Footprint{Width: 4, Height: 4, Depth: 1}, comp.BlockFootprint())
	require.Equal(t, astcimage.BlockGrid{Width: 3, Height: 3, Depth: 1}, comp.NumBlocks())
}

func TestDecompress_StopIsIgnored(t *testing.T) {
	raw := noiseImage(t, 16, 16)
	defer raw.Release()

	comp, err := raw.Compress(4, 4, 10, nil, nil)
	require.NoError(t, err)
	defer comp.Release()

	var calls []float32
	out, err := comp.Decompress("ctx", func(userInfo any, p float32) bool {
		require.Equal(t, "ctx", userInfo)
		calls = append(calls, p)
		return true
	})
	require.NoError(t, err)
	defer out.Release()
	require.Equal(t, []float32{1}, calls)
}

func TestCompressedImage_MarshalASTC(t *testing.T) {
	raw := noiseImage(t, 20, 12)
	defer raw.Release()

	comp, err := raw.Compress(8, 6, 10, nil, nil)
	require.NoError(t, err)
	defer comp.Release()

	file, err := comp.MarshalASTC()
	require.NoError(t, err)

	h, blocks, err := astc.ParseFile(file)
	require.NoError(t, err)
	require.Equal(t, astc.Header{BlockX: 8, BlockY: 6, BlockZ: 1, SizeX: 20, SizeY: 12, SizeZ: 1}, h)
	require.Equal(t, comp.Data(), blocks)

	decoded, w, hgt, err := astc.DecodeRGBA8(file)
	require.NoError(t, err)
	require.Equal(t, 20, w)
	require.Equal(t, 12, hgt)
	require.Len(t, decoded, 20*12*4)
}

func TestNilHandles(t *testing.T) {
	var raw *astcimage.RawImage
	require.Nil(t, raw.Retain())
	require.NotPanics(t, raw.Release)
	require.Zero(t, raw.RefCount())

	var comp *astcimage.CompressedImage
	require.Nil(t, comp.Retain())
	require.NotPanics(t, comp.Release)

	var w astcimage.Worker
	_, err := w.Compress(context.Background(), nil, astcimage.CompressOptions{})
	require.ErrorIs(t, err, astcimage.ErrNoData)
	_, err = w.Decompress(nil, astcimage.DecompressOptions{})
	require.ErrorIs(t, err, astcimage.ErrNoData)
}
