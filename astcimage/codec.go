package astcimage

import "github.com/go-astc/astcencoder/astc"

// codec is the configuration and context allocation surface of the astc package.
type codec interface {
	configInit(profile astc.Profile, blockX, blockY, blockZ int, quality float32, flags astc.Flags) (astc.Config, error)
	contextAlloc(cfg *astc.Config, threadCount int) (codecContext, error)
}

// codecContext is the subset of *astc.Context the driver uses.
type codecContext interface {
	CompressImage(img *astc.Image, swizzle astc.Swizzle, out []byte, threadIndex int) error
	CompressCancel() error
	DecompressImage(data []byte, imgOut *astc.Image, swizzle astc.Swizzle, threadIndex int) error
	Close() error
}

type astcCodec struct{}

func (astcCodec) configInit(profile astc.Profile, blockX, blockY, blockZ int, quality float32, flags astc.Flags) (astc.Config, error) {
	return astc.ConfigInit(profile, blockX, blockY, blockZ, quality, flags)
}

func (astcCodec) contextAlloc(cfg *astc.Config, threadCount int) (codecContext, error) {
	ctx, err := astc.ContextAlloc(cfg, threadCount)
	if err != nil {
		return nil, err
	}
	return ctx, nil
}

// codecSwizzle passes RGB through and forces alpha to one in both directions.
var codecSwizzle = astc.Swizzle{R: astc.SwzR, G: astc.SwzG, B: astc.SwzB, A: astc.Swz1}
