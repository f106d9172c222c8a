// Package astcfile reads and writes .astc containers, optionally wrapped in a zstd frame.
package astcfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/go-astc/astcencoder/astc"
	"github.com/go-astc/astcencoder/astcimage"
)

// zstdMagic is the little-endian zstd frame magic number 0xFD2FB528.
var zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}

// Options controls Write.
type Options struct {
	// Zstd wraps the container in a zstd frame.
	Zstd bool
	// Level is the zstd encoder level. Zero selects zstd.SpeedBetterCompression.
	Level zstd.EncoderLevel
}

// File is a parsed container.
type File struct {
	Header astc.Header
	// Blocks holds the 16-byte blocks in raster order.
	Blocks []byte
	// Zstd reports whether the container was zstd-wrapped on disk.
	Zstd bool
	// StoredSize is the number of bytes read from disk.
	StoredSize int
}

// Info summarizes a container.
type Info struct {
	Header                    astc.Header
	BlocksX, BlocksY, BlocksZ int
	TotalBlocks               int
	Zstd                      bool
	StoredSize                int
	// BitsPerTexel is the storage rate of the block footprint.
	BitsPerTexel float64
}

var decoderPool = sync.Pool{
	New: func() any {
		dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1), zstd.WithDecoderLowmem(true))
		if err != nil {
			panic(err)
		}
		return dec
	},
}

// Marshal returns the container bytes for img.
func Marshal(img *astcimage.CompressedImage, opts Options) ([]byte, error) {
	if img == nil {
		return nil, errors.New("astcfile: nil image")
	}
	raw, err := img.MarshalASTC()
	if err != nil {
		return nil, err
	}
	if !opts.Zstd {
		return raw, nil
	}

	level := opts.Level
	if level == 0 {
		level = zstd.SpeedBetterCompression
	}
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderConcurrency(1), zstd.WithEncoderLevel(level))
	if err != nil {
		return nil, fmt.Errorf("astcfile: zstd encoder: %w", err)
	}
	defer enc.Close()
	return enc.EncodeAll(raw, make([]byte, 0, len(raw)/2)), nil
}

// Write writes img to w as an .astc container.
func Write(w io.Writer, img *astcimage.CompressedImage, opts Options) error {
	data, err := Marshal(img, opts)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Read reads a container from r. A leading zstd frame is detected and unwrapped.
func Read(r io.Reader) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse parses a container held in memory. The returned blocks may alias data.
func Parse(data []byte) (*File, error) {
	f := &File{StoredSize: len(data)}
	if bytes.HasPrefix(data, zstdMagic) {
		dec := decoderPool.Get().(*zstd.Decoder)
		plain, err := dec.DecodeAll(data, nil)
		decoderPool.Put(dec)
		if err != nil {
			return nil, fmt.Errorf("astcfile: zstd: %w", err)
		}
		data = plain
		f.Zstd = true
	}

	h, blocks, err := astc.ParseFile(data)
	if err != nil {
		return nil, err
	}
	f.Header = h
	f.Blocks = blocks
	return f, nil
}

// Info returns the block grid and storage summary of f.
func (f *File) Info() (Info, error) {
	bx, by, bz, total, err := f.Header.BlockCount()
	if err != nil {
		return Info{}, err
	}
	texels := int(f.Header.BlockX) * int(f.Header.BlockY) * int(f.Header.BlockZ)
	return Info{
		Header:       f.Header,
		BlocksX:      bx,
		BlocksY:      by,
		BlocksZ:      bz,
		TotalBlocks:  total,
		Zstd:         f.Zstd,
		StoredSize:   f.StoredSize,
		BitsPerTexel: float64(astc.BlockBytes*8) / float64(texels),
	}, nil
}

// DecodeRGBA8 decodes every slice of f into interleaved RGBA8 texels.
func (f *File) DecodeRGBA8(profile astc.Profile) ([]byte, error) {
	n := int(f.Header.SizeX) * int(f.Header.SizeY) * int(f.Header.SizeZ) * 4
	dst := make([]byte, n)
	if err := astc.DecodeRGBA8VolumeFromParsedWithProfileInto(profile, f.Header, f.Blocks, dst); err != nil {
		return nil, err
	}
	return dst, nil
}

// DecodeRGBAF32 decodes every slice of f into interleaved float RGBA texels.
func (f *File) DecodeRGBAF32(profile astc.Profile) ([]float32, error) {
	n := int(f.Header.SizeX) * int(f.Header.SizeY) * int(f.Header.SizeZ) * 4
	dst := make([]float32, n)
	if err := astc.DecodeRGBAF32VolumeFromParsedWithProfileInto(profile, f.Header, f.Blocks, dst); err != nil {
		return nil, err
	}
	return dst, nil
}
