package astcimage_test

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-astc/astcencoder/astcimage"
)

func TestNewRawImage_BufferLength(t *testing.T) {
	for _, w := range []int{1, 3, 7} {
		for _, h := range []int{1, 5} {
			for nc := 1; nc <= 4; nc++ {
				for _, cs := range []int{1, 2, 4} {
					src := make([]byte, w*h*nc*cs)
					img, err := astcimage.NewRawImage(src, w, h, nc, cs, true, false)
					require.NoError(t, err, "w=%d h=%d nc=%d cs=%d", w, h, nc, cs)
					require.Equal(t, w*h*4*cs, img.DataSize())
					require.Len(t, img.Data(), w*h*4*cs)
					require.Equal(t, w, img.Width())
					require.Equal(t, h, img.Height())
					require.Equal(t, nc, img.OriginalNumComponents())
					require.Equal(t, cs, img.ComponentSize())
					require.True(t, img.Linear())
					require.False(t, img.HDR())
					img.Release()
				}
			}
		}
	}
}

func TestNewRawImage_SynthesizesOpaqueBytes(t *testing.T) {
	const w, h = 3, 2
	for nc := 1; nc <= 3; nc++ {
		src := make([]byte, w*h*nc)
		for i := range src {
			src[i] = byte(i*7 + 1)
		}

		img, err := astcimage.NewRawImage(src, w, h, nc, 1, false, false)
		require.NoError(t, err)

		data := img.Data()
		for p := 0; p < w*h; p++ {
			for c := 0; c < 4; c++ {
				got := data[p*4+c]
				if c < nc {
					require.Equal(t, src[p*nc+c], got, "nc=%d pixel %d channel %d", nc, p, c)
				} else {
					require.Equal(t, byte(0xFF), got, "nc=%d pixel %d channel %d", nc, p, c)
				}
			}
		}
		img.Release()
	}
}

func TestNewRawImage_SynthesizesOpaqueFloats(t *testing.T) {
	half := []byte{0x00, 0x38, 0x00, 0x34, 0x00, 0x30} // 0.5, 0.25, 0.125
	img, err := astcimage.NewRawImage(half, 1, 1, 3, 2, false, false)
	require.NoError(t, err)
	require.Equal(t, []byte{0x00, 0x38, 0x00, 0x34, 0x00, 0x30, 0x00, 0x3C}, img.Data())
	img.Release()

	single := make([]byte, 4)
	binary.LittleEndian.PutUint32(single, math.Float32bits(0.75))
	img, err = astcimage.NewRawImage(single, 1, 1, 1, 4, false, true)
	require.NoError(t, err)

	data := img.Data()
	require.Equal(t, float32(0.75), math.Float32frombits(binary.LittleEndian.Uint32(data[0:])))
	for c := 1; c < 4; c++ {
		require.Equal(t, float32(1), math.Float32frombits(binary.LittleEndian.Uint32(data[c*4:])))
	}
	img.Release()
}

func TestNewRawImage_CopiesSource(t *testing.T) {
	src := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	img, err := astcimage.NewRawImage(src, 2, 1, 4, 1, false, false)
	require.NoError(t, err)
	defer img.Release()

	src[0] = 99
	require.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8}, img.Data())
}

func TestNewRawImage_InvalidInputs(t *testing.T) {
	valid := make([]byte, 64)
	tests := []struct {
		name          string
		data          []byte
		width, height int
		nc, cs        int
		want          error
	}{
		{"nil data", nil, 0, 0, 0, 3, astcimage.ErrNoData},
		{"zero width", valid, 0, 1, 4, 1, astcimage.ErrInvalidWidth},
		{"zero height", valid, 1, 0, 4, 1, astcimage.ErrInvalidHeight},
		{"zero components", valid, 1, 1, 0, 1, astcimage.ErrUnsupportedComponentCount},
		{"five components", valid, 1, 1, 5, 1, astcimage.ErrUnsupportedComponentCount},
		{"three byte components", valid, 1, 1, 4, 3, astcimage.ErrUnsupportedComponentSize},
		{"short data", valid, 4, 4, 4, 1, astcimage.ErrShortData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := astcimage.NewRawImage(tt.data, tt.width, tt.height, tt.nc, tt.cs, false, false)
			require.Nil(t, img)
			require.ErrorIs(t, err, tt.want)
			require.NotEmpty(t, err.Error())
			require.Equal(t, astcimage.KindInvalidInput, astcimage.KindOf(err))
		})
	}
}
