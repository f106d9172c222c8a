package astcimage

import "context"

// RawImage is a reference-counted, immutable 4-channel pixel buffer.
type RawImage struct {
	refs refCount
	buf  *ownedBuffer

	width                 int
	height                int
	originalNumComponents int
	componentSize         int
	linear                bool
	hdr                   bool
}

func newRawImage(buf *ownedBuffer, width, height, numComponents, componentSize int, linear, hdr bool) *RawImage {
	r := &RawImage{
		buf:                   buf,
		width:                 width,
		height:                height,
		originalNumComponents: numComponents,
		componentSize:         componentSize,
		linear:                linear,
		hdr:                   hdr,
	}
	r.refs.init()
	return r
}

// Data returns the pixel buffer. It must not be modified.
func (r *RawImage) Data() []byte { return r.buf.bytes() }

// DataSize returns width*height*4*componentSize.
func (r *RawImage) DataSize() int { return r.buf.len() }

func (r *RawImage) Width() int  { return r.width }
func (r *RawImage) Height() int { return r.height }

// ComponentSize returns the size of one channel sample in bytes: 1, 2 or 4.
func (r *RawImage) ComponentSize() int { return r.componentSize }

// OriginalNumComponents returns the channel count of the source before normalization.
func (r *RawImage) OriginalNumComponents() int { return r.originalNumComponents }

func (r *RawImage) Linear() bool { return r.linear }
func (r *RawImage) HDR() bool    { return r.hdr }

// Retain adds a reference and returns r. Retain on nil returns nil.
func (r *RawImage) Retain() *RawImage {
	if r == nil {
		return nil
	}
	r.refs.retain("RawImage")
	return r
}

// Release drops a reference. The pixel buffer is freed when the last reference is dropped.
// Release on nil is a no-op.
func (r *RawImage) Release() {
	if r == nil {
		return
	}
	if r.refs.release("RawImage") {
		r.buf.free()
	}
}

// RefCount returns the current number of references.
func (r *RawImage) RefCount() int {
	if r == nil {
		return 0
	}
	return r.refs.load()
}

// Compress encodes r with a blockWidth x blockHeight footprint at the given quality (0-100).
//
// progress may be nil. It receives userInfo and the completed fraction; returning true stops the
// encoder and Compress fails with ErrCancelled.
func (r *RawImage) Compress(blockWidth, blockHeight int, quality float32, userInfo any, progress ProgressFunc) (*CompressedImage, error) {
	var w Worker
	return w.compress(context.Background(), r, CompressOptions{
		BlockWidth:  blockWidth,
		BlockHeight: blockHeight,
		Quality:     &quality,
		UserInfo:    userInfo,
		Progress:    progress,
	})
}
