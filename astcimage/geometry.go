package astcimage

import (
	"fmt"

	"github.com/go-astc/astcencoder/astc"
)

// Footprint is the texel extent covered by one compressed block.
type Footprint struct {
	Width, Height, Depth int
}

func (f Footprint) String() string {
	return fmt.Sprintf("%dx%dx%d", f.Width, f.Height, f.Depth)
}

// BlockGrid is the number of compressed blocks along each axis of an image.
type BlockGrid struct {
	Width, Height, Depth int
}

// newBlockGrid returns ceil(dim/block) along each axis.
func newBlockGrid(width, height, depth int, fp Footprint) BlockGrid {
	return BlockGrid{
		Width:  ceilDiv(width, fp.Width),
		Height: ceilDiv(height, fp.Height),
		Depth:  ceilDiv(depth, fp.Depth),
	}
}

// Count returns the total number of blocks.
func (g BlockGrid) Count() int {
	return g.Width * g.Height * g.Depth
}

// ByteLen returns the size of the compressed payload, 16 bytes per block.
func (g BlockGrid) ByteLen() int {
	return g.Count() * astc.BlockBytes
}

func ceilDiv(n, d int) int {
	if d <= 0 {
		return 0
	}
	return (n + d - 1) / d
}
