package astcimage

import (
	"encoding/binary"
	"math"

	"github.com/go-astc/astcencoder/astc"
)

// codecInput wraps a canonical RGBA buffer in the codec's image descriptor.
// Byte samples alias buf; half and float samples are decoded from little-endian.
func codecInput(buf []byte, width, height, depth, componentSize int) (*astc.Image, error) {
	img := &astc.Image{DimX: width, DimY: height, DimZ: depth}
	switch componentSize {
	case 1:
		img.DataType = astc.TypeU8
		img.DataU8 = buf
	case 2:
		img.DataType = astc.TypeF16
		img.DataF16 = make([]uint16, len(buf)/2)
		for i := range img.DataF16 {
			img.DataF16[i] = binary.LittleEndian.Uint16(buf[i*2:])
		}
	case 4:
		img.DataType = astc.TypeF32
		img.DataF32 = make([]float32, len(buf)/4)
		for i := range img.DataF32 {
			img.DataF32[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
		}
	default:
		return nil, newError(ErrUnsupportedComponentSize, nil)
	}
	return img, nil
}

// codecOutput returns a codec image descriptor sized for dst.
// Byte samples are written to dst directly; others need storeCodecOutput.
func codecOutput(dst []byte, width, height, depth, componentSize int) (*astc.Image, error) {
	img := &astc.Image{DimX: width, DimY: height, DimZ: depth}
	switch componentSize {
	case 1:
		img.DataType = astc.TypeU8
		img.DataU8 = dst
	case 2:
		img.DataType = astc.TypeF16
		img.DataF16 = make([]uint16, len(dst)/2)
	case 4:
		img.DataType = astc.TypeF32
		img.DataF32 = make([]float32, len(dst)/4)
	default:
		return nil, newError(ErrUnsupportedComponentSize, nil)
	}
	return img, nil
}

func storeCodecOutput(dst []byte, img *astc.Image) {
	switch img.DataType {
	case astc.TypeF16:
		for i, v := range img.DataF16 {
			binary.LittleEndian.PutUint16(dst[i*2:], v)
		}
	case astc.TypeF32:
		for i, v := range img.DataF32 {
			binary.LittleEndian.PutUint32(dst[i*4:], math.Float32bits(v))
		}
	}
}
