package astcimage

const (
	DefaultBlockWidth  = 4
	DefaultBlockHeight = 4

	// DefaultQuality is the codec's "medium" preset.
	DefaultQuality float32 = 60

	// DecompressQuality is the fixed preset used to configure decoding.
	DecompressQuality float32 = 60

	compressThreads = 1
)

// ProgressFunc receives the opaque userInfo of a call and the completed fraction in [0, 1].
//
// Returning true asks a compression to stop. Decompression ignores the result.
type ProgressFunc func(userInfo any, progress float32) (stop bool)

// CompressOptions configures Worker.Compress.
type CompressOptions struct {
	// BlockWidth and BlockHeight select the 2D block footprint. Zero selects the 4x4 default.
	BlockWidth  int
	BlockHeight int

	// Quality is the codec's 0-100 speed/quality dial. Nil selects DefaultQuality; use
	// Quality(0) for the fastest preset.
	Quality *float32

	UserInfo any
	Progress ProgressFunc
}

func (o CompressOptions) withDefaults() CompressOptions {
	if o.BlockWidth == 0 {
		o.BlockWidth = DefaultBlockWidth
	}
	if o.BlockHeight == 0 {
		o.BlockHeight = DefaultBlockHeight
	}
	return o
}

func (o CompressOptions) quality() float32 {
	if o.Quality == nil {
		return DefaultQuality
	}
	return *o.Quality
}

// Quality returns a pointer to q for CompressOptions.Quality.
func Quality(q float32) *float32 {
	return &q
}

func (o CompressOptions) footprint() Footprint {
	return Footprint{Width: o.BlockWidth, Height: o.BlockHeight, Depth: 1}
}

// DecompressOptions configures Worker.Decompress.
type DecompressOptions struct {
	UserInfo any
	Progress ProgressFunc
}
