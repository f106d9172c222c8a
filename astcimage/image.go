package astcimage

import (
	"encoding/binary"
	"image"
	"image/draw"
	"math"

	"github.com/x448/float16"
)

// Image returns a copy of r as an image.Image.
//
// Byte images become *image.NRGBA. Half and float images become *image.NRGBA64 with samples
// clamped to [0, 1].
func (r *RawImage) Image() (image.Image, error) {
	data := r.Data()
	if data == nil {
		return nil, newError(ErrNoData, nil)
	}
	rect := image.Rect(0, 0, r.width, r.height)
	switch r.componentSize {
	case 1:
		img := image.NewNRGBA(rect)
		copy(img.Pix, data)
		return img, nil
	case 2, 4:
		img := image.NewNRGBA64(rect)
		n := r.width * r.height * 4
		for i := 0; i < n; i++ {
			v := unitToU16(sampleFloat(data, i, r.componentSize))
			binary.BigEndian.PutUint16(img.Pix[i*2:], v)
		}
		return img, nil
	default:
		return nil, newError(ErrUnsupportedComponentSize, nil)
	}
}

func sampleFloat(data []byte, i, componentSize int) float32 {
	if componentSize == 2 {
		return float16.Frombits(binary.LittleEndian.Uint16(data[i*2:])).Float32()
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
}

func unitToU16(f float32) uint16 {
	switch {
	case !(f > 0):
		return 0
	case f >= 1:
		return math.MaxUint16
	default:
		return uint16(f*math.MaxUint16 + 0.5)
	}
}

// NewRawImageFromImage converts img to a 4-channel byte RawImage with non-premultiplied alpha.
func NewRawImageFromImage(img image.Image, linear bool) (*RawImage, error) {
	if img == nil {
		return nil, newError(ErrNoData, nil)
	}
	b := img.Bounds()
	nrgba, ok := img.(*image.NRGBA)
	if !ok || b.Min != (image.Point{}) || nrgba.Stride != b.Dx()*4 {
		nrgba = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)
	}
	return NewRawImage(nrgba.Pix, b.Dx(), b.Dy(), 4, 1, linear, false)
}
