package astcimage

import (
	"encoding/binary"
	"math"

	"github.com/x448/float16"
)

// NewRawImage copies data into a new RawImage with 4 interleaved channels.
//
// data holds width*height pixels of numComponents channels each, componentSize bytes per
// channel. Channels missing from a 1-3 channel source are filled with the opaque value for the
// sample format: 0xFF for bytes and 1.0 for half and single floats. Float samples are not filled
// with 0xFF bytes, which would read as NaN. The caller keeps ownership of data.
func NewRawImage(data []byte, width, height, numComponents, componentSize int, linear, hdr bool) (*RawImage, error) {
	if data == nil {
		return nil, newError(ErrNoData, nil)
	}
	if width < 1 {
		return nil, newError(ErrInvalidWidth, nil)
	}
	if height < 1 {
		return nil, newError(ErrInvalidHeight, nil)
	}
	if numComponents < 1 || numComponents > 4 {
		return nil, newError(ErrUnsupportedComponentCount, nil)
	}
	if !validComponentSize(componentSize) {
		return nil, newError(ErrUnsupportedComponentSize, nil)
	}
	pixels := width * height
	if len(data) < pixels*numComponents*componentSize {
		return nil, newError(ErrShortData, nil)
	}

	buf := allocBuffer(pixels * 4 * componentSize)
	normalizePixels(buf.bytes(), data, pixels, numComponents, componentSize)
	return newRawImage(buf, width, height, numComponents, componentSize, linear, hdr), nil
}

func validComponentSize(componentSize int) bool {
	return componentSize == 1 || componentSize == 2 || componentSize == 4
}

// normalizePixels expands src into the 4-channel layout of dst.
func normalizePixels(dst, src []byte, pixels, numComponents, componentSize int) {
	if numComponents == 4 {
		copy(dst, src[:len(dst)])
		return
	}

	fillOpaque(dst, componentSize)
	srcStride := numComponents * componentSize
	dstStride := 4 * componentSize
	for i := 0; i < pixels; i++ {
		copy(dst[i*dstStride:i*dstStride+srcStride], src[i*srcStride:(i+1)*srcStride])
	}
}

// opaqueSample returns the encoding of a full-intensity sample.
func opaqueSample(componentSize int) []byte {
	switch componentSize {
	case 2:
		var b [2]byte
		binary.LittleEndian.PutUint16(b[:], float16.Fromfloat32(1).Bits())
		return b[:]
	case 4:
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], math.Float32bits(1))
		return b[:]
	default:
		return []byte{0xFF}
	}
}

func fillOpaque(dst []byte, componentSize int) {
	if len(dst) == 0 {
		return
	}
	n := copy(dst, opaqueSample(componentSize))
	for n < len(dst) {
		n += copy(dst[n:], dst[:n])
	}
}
