package astcimage_test

import (
	"encoding/binary"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-astc/astcencoder/astcimage"
)

func TestRawImage_ImageBytes(t *testing.T) {
	src := []byte{10, 20, 30, 40, 50, 60, 70, 80}
	raw, err := astcimage.NewRawImage(src, 2, 1, 4, 1, false, false)
	require.NoError(t, err)
	defer raw.Release()

	img, err := raw.Image()
	require.NoError(t, err)
	nrgba, ok := img.(*image.NRGBA)
	require.True(t, ok)
	require.Equal(t, image.Rect(0, 0, 2, 1), nrgba.Bounds())
	require.Equal(t, color.NRGBA{R: 50, G: 60, B: 70, A: 80}, nrgba.NRGBAAt(1, 0))
}

func TestRawImage_ImageFloatsClamp(t *testing.T) {
	src := make([]byte, 16)
	for i, v := range []float32{-1, 0.5, 2, float32(math.NaN())} {
		binary.LittleEndian.PutUint32(src[i*4:], math.Float32bits(v))
	}
	raw, err := astcimage.NewRawImage(src, 1, 1, 4, 4, true, true)
	require.NoError(t, err)
	defer raw.Release()

	img, err := raw.Image()
	require.NoError(t, err)
	nrgba, ok := img.(*image.NRGBA64)
	require.True(t, ok)
	require.Equal(t, color.NRGBA64{R: 0, G: 32768, B: 65535, A: 0}, nrgba.NRGBA64At(0, 0))
}

func TestRawImage_ImageHalf(t *testing.T) {
	raw, err := astcimage.NewRawImage([]byte{0x00, 0x38}, 1, 1, 1, 2, false, false)
	require.NoError(t, err)
	defer raw.Release()

	img, err := raw.Image()
	require.NoError(t, err)
	require.Equal(t, color.NRGBA64{R: 32768, G: 65535, B: 65535, A: 65535}, img.(*image.NRGBA64).NRGBA64At(0, 0))
}

func TestNewRawImageFromImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 8, 7))
	src.Set(5, 5, color.RGBA{R: 255, A: 255})
	src.Set(7, 6, color.RGBA{G: 128, B: 128, A: 128})

	raw, err := astcimage.NewRawImageFromImage(src, true)
	require.NoError(t, err)
	defer raw.Release()

	require.Equal(t, 3, raw.Width())
	require.Equal(t, 2, raw.Height())
	require.Equal(t, 4, raw.OriginalNumComponents())
	require.True(t, raw.Linear())

	data := raw.Data()
	require.Equal(t, []byte{255, 0, 0, 255}, data[0:4])
	last := (1*3 + 2) * 4
	require.Equal(t, []byte{0, 255, 255, 128}, data[last:last+4])

	_, err = astcimage.NewRawImageFromImage(nil, false)
	require.ErrorIs(t, err, astcimage.ErrNoData)
	_, err = astcimage.NewRawImageFromImage(image.NewNRGBA(image.Rect(0, 0, 0, 4)), false)
	require.ErrorIs(t, err, astcimage.ErrInvalidWidth)
}
