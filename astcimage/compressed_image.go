package astcimage

import (
	"fmt"
	"math"

	"github.com/go-astc/astcencoder/astc"
)

// CompressedImage is a reference-counted, immutable buffer of ASTC blocks together with the
// format metadata of the RawImage it was encoded from.
type CompressedImage struct {
	refs refCount
	buf  *ownedBuffer

	width                 int
	height                int
	depth                 int
	originalNumComponents int
	componentSize         int
	linear                bool
	hdr                   bool

	blocks    BlockGrid
	footprint Footprint
}

func newCompressedImage(buf *ownedBuffer, src *RawImage, blocks BlockGrid, fp Footprint) *CompressedImage {
	c := &CompressedImage{
		buf:                   buf,
		width:                 src.width,
		height:                src.height,
		depth:                 1,
		originalNumComponents: src.originalNumComponents,
		componentSize:         src.componentSize,
		linear:                src.linear,
		hdr:                   src.hdr,
		blocks:                blocks,
		footprint:             fp,
	}
	c.refs.init()
	return c
}

// Data returns the compressed blocks in raster order. It must not be modified.
func (c *CompressedImage) Data() []byte { return c.buf.bytes() }

// DataSize returns NumBlocks().Count()*16.
func (c *CompressedImage) DataSize() int { return c.buf.len() }

func (c *CompressedImage) Width() int  { return c.width }
func (c *CompressedImage) Height() int { return c.height }
func (c *CompressedImage) Depth() int  { return c.depth }

func (c *CompressedImage) ComponentSize() int         { return c.componentSize }
func (c *CompressedImage) OriginalNumComponents() int { return c.originalNumComponents }
func (c *CompressedImage) Linear() bool               { return c.linear }
func (c *CompressedImage) HDR() bool                  { return c.hdr }

// NumBlocks returns the block grid.
func (c *CompressedImage) NumBlocks() BlockGrid { return c.blocks }

// BlockFootprint returns the texel extent of one block.
func (c *CompressedImage) BlockFootprint() Footprint { return c.footprint }

// Retain adds a reference and returns c. Retain on nil returns nil.
func (c *CompressedImage) Retain() *CompressedImage {
	if c == nil {
		return nil
	}
	c.refs.retain("CompressedImage")
	return c
}

// Release drops a reference. The block buffer is freed when the last reference is dropped.
// Release on nil is a no-op.
func (c *CompressedImage) Release() {
	if c == nil {
		return
	}
	if c.refs.release("CompressedImage") {
		c.buf.free()
	}
}

// RefCount returns the current number of references.
func (c *CompressedImage) RefCount() int {
	if c == nil {
		return 0
	}
	return c.refs.load()
}

// Decompress decodes c into a new RawImage using the stored footprint and format metadata.
//
// progress may be nil. It receives userInfo and the completed fraction; its return value is
// ignored because decoding cannot be stopped.
func (c *CompressedImage) Decompress(userInfo any, progress ProgressFunc) (*RawImage, error) {
	var w Worker
	return w.Decompress(c, DecompressOptions{UserInfo: userInfo, Progress: progress})
}

// maxHeaderDim is the largest image dimension a 24-bit header field can hold.
const maxHeaderDim = 1<<24 - 1

// Header returns the .astc file header describing c.
func (c *CompressedImage) Header() (astc.Header, error) {
	fp := c.footprint
	if fp.Width > math.MaxUint8 || fp.Height > math.MaxUint8 || fp.Depth > math.MaxUint8 {
		return astc.Header{}, fmt.Errorf("astcimage: footprint %s does not fit a file header", fp)
	}
	if c.width > maxHeaderDim || c.height > maxHeaderDim || c.depth > maxHeaderDim {
		return astc.Header{}, fmt.Errorf("astcimage: %dx%dx%d image does not fit a file header", c.width, c.height, c.depth)
	}
	h := astc.Header{
		BlockX: uint8(fp.Width),
		BlockY: uint8(fp.Height),
		BlockZ: uint8(fp.Depth),
		SizeX:  uint32(c.width),
		SizeY:  uint32(c.height),
		SizeZ:  uint32(c.depth),
	}
	return h, nil
}

// MarshalASTC returns c as an .astc file: the 16-byte header followed by the blocks.
func (c *CompressedImage) MarshalASTC() ([]byte, error) {
	h, err := c.Header()
	if err != nil {
		return nil, err
	}
	hdr, err := astc.MarshalHeader(h)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, astc.HeaderSize+c.DataSize())
	out = append(out, hdr[:]...)
	out = append(out, c.Data()...)
	return out, nil
}
