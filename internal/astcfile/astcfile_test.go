package astcfile_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-astc/astcencoder/astc"
	"github.com/go-astc/astcencoder/astcimage"
	"github.com/go-astc/astcencoder/internal/astcfile"
)

func compressSolid(t *testing.T, w, h, bw, bh int) *astcimage.CompressedImage {
	t.Helper()

	src := make([]byte, w*h*4)
	for i := 0; i < len(src); i += 4 {
		copy(src[i:], []byte{200, 100, 50, 255})
	}
	raw, err := astcimage.NewRawImage(src, w, h, 4, 1, false, false)
	require.NoError(t, err)
	defer raw.Release()

	comp, err := raw.Compress(bw, bh, 20, nil, nil)
	require.NoError(t, err)
	return comp
}

func TestWriteRead(t *testing.T) {
	comp := compressSolid(t, 37, 19, 6, 6)
	defer comp.Release()

	for _, zstd := range []bool{false, true} {
		var buf bytes.Buffer
		require.NoError(t, astcfile.Write(&buf, comp, astcfile.Options{Zstd: zstd}))
		stored := buf.Len()

		f, err := astcfile.Read(&buf)
		require.NoError(t, err)
		require.Equal(t, zstd, f.Zstd)
		require.Equal(t, comp.Data(), f.Blocks)

		info, err := f.Info()
		require.NoError(t, err)
		require.Equal(t, 7, info.BlocksX)
		require.Equal(t, 4, info.BlocksY)
		require.Equal(t, 1, info.BlocksZ)
		require.Equal(t, 28, info.TotalBlocks)
		require.Equal(t, stored, info.StoredSize)
		require.InDelta(t, 128.0/36.0, info.BitsPerTexel, 1e-9)
		require.Equal(t, astc.Header{BlockX: 6, BlockY: 6, BlockZ: 1, SizeX: 37, SizeY: 19, SizeZ: 1}, info.Header)
	}
}

func TestZstdShrinksUniformImage(t *testing.T) {
	comp := compressSolid(t, 256, 256, 4, 4)
	defer comp.Release()

	plain, err := astcfile.Marshal(comp, astcfile.Options{})
	require.NoError(t, err)
	packed, err := astcfile.Marshal(comp, astcfile.Options{Zstd: true})
	require.NoError(t, err)
	require.Less(t, len(packed), len(plain)/10)
}

func TestDecodeRGBA8(t *testing.T) {
	comp := compressSolid(t, 8, 8, 4, 4)
	defer comp.Release()

	data, err := astcfile.Marshal(comp, astcfile.Options{Zstd: true})
	require.NoError(t, err)
	f, err := astcfile.Parse(data)
	require.NoError(t, err)

	pix, err := f.DecodeRGBA8(astc.ProfileLDR)
	require.NoError(t, err)
	require.Len(t, pix, 8*8*4)
	for i := 0; i < len(pix); i += 4 {
		require.InDelta(t, 200, pix[i], 2)
		require.InDelta(t, 100, pix[i+1], 2)
		require.InDelta(t, 50, pix[i+2], 2)
		require.Equal(t, byte(255), pix[i+3])
	}

	fpix, err := f.DecodeRGBAF32(astc.ProfileLDR)
	require.NoError(t, err)
	require.InDelta(t, 200.0/255.0, fpix[0], 0.02)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := astcfile.Parse([]byte("not an astc file at all"))
	require.Error(t, err)

	_, err = astcfile.Parse([]byte{0x28, 0xB5, 0x2F, 0xFD, 0x00})
	require.ErrorContains(t, err, "zstd")

	require.Error(t, astcfile.Write(&bytes.Buffer{}, nil, astcfile.Options{}))
}
