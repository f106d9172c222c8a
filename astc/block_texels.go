package astc

// texel is a single RGBA component storage type accepted by the block extractor.
type texel interface {
	~uint8 | ~uint16 | ~float32
}

// extractBlockVolume gathers one block footprint of RGBA texels starting at (x0, y0, z0) into dst.
//
// Texels outside the image replicate the nearest edge texel, matching the reference encoder's
// handling of partial blocks on the right, bottom and back edges.
func extractBlockVolume[T texel](pix []T, width, height, depth, x0, y0, z0, blockX, blockY, blockZ int, dst []T) {
	xyStride := width * height * 4
	yStride := width * 4

	for bz := 0; bz < blockZ; bz++ {
		z := min(z0+bz, depth-1)
		zBase := z * xyStride
		for by := 0; by < blockY; by++ {
			y := min(y0+by, height-1)
			yBase := zBase + y*yStride
			rowOff := (bz*blockY + by) * blockX * 4
			for bx := 0; bx < blockX; bx++ {
				x := min(x0+bx, width-1)
				src := yBase + x*4
				copy(dst[rowOff+bx*4:rowOff+bx*4+4], pix[src:src+4])
			}
		}
	}
}
