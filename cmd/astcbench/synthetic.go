package main

import (
	"encoding/binary"
	"math"

	"github.com/x448/float16"

	"github.com/go-astc/astcencoder/astcimage"
)

// syntheticImage returns a smooth RGB gradient with a few hard edges, stored with
// componentSize-byte samples.
func syntheticImage(width, height, componentSize int) (*astcimage.RawImage, error) {
	if componentSize != 1 && componentSize != 2 && componentSize != 4 {
		componentSize = 1
	}
	src := make([]byte, width*height*3*componentSize)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			fx := float32(x) / float32(max(width-1, 1))
			fy := float32(y) / float32(max(height-1, 1))
			rgb := [3]float32{fx, fy, 0.5}
			if (x/32+y/32)%2 == 0 {
				rgb[2] = 1 - fx*fy
			}
			for c, v := range rgb {
				off := ((y*width+x)*3 + c) * componentSize
				switch componentSize {
				case 1:
					src[off] = byte(v*255 + 0.5)
				case 2:
					binary.LittleEndian.PutUint16(src[off:], float16.Fromfloat32(v).Bits())
				case 4:
					binary.LittleEndian.PutUint32(src[off:], math.Float32bits(v))
				}
			}
		}
	}
	return astcimage.NewRawImage(src, width, height, 3, componentSize, false, false)
}
