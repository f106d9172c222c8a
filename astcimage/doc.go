// Package astcimage provides reference-counted handles over uncompressed and ASTC-compressed
// image buffers, and drives the astc codec to convert between them.
//
// A RawImage always stores 4 interleaved channels. NewRawImage expands 1-3 channel sources and
// synthesizes the missing channels as fully opaque. Compressing a RawImage produces a
// CompressedImage carrying the block grid and the source format metadata; decompressing it
// produces a new RawImage with the same dimensions and metadata.
//
// Sample encodings by component size:
//
//	1: unsigned byte, 0..255
//	2: IEEE 754 half float, little-endian
//	4: IEEE 754 single float, little-endian
//
// Both image types start with a reference count of one. Retain adds a reference and Release
// drops one; the pixel buffer is freed exactly when the count reaches zero, and the handle must
// not be used afterwards.
//
// Compress and Decompress run synchronously on the calling goroutine with a single codec
// worker. A Worker carries the progress and cancellation state of one call at a time; use one
// Worker per goroutine to encode independent images in parallel.
package astcimage
