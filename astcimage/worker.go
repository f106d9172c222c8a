package astcimage

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/golang/glog"

	"github.com/go-astc/astcencoder/astc"
)

// Worker runs one compress or decompress call at a time and carries that call's progress and
// cancellation state.
//
// The zero value is ready to use. A call made while another is in flight on the same Worker
// fails with ErrWorkerBusy. Distinct Workers share no mutable state.
type Worker struct {
	busy  atomic.Bool
	state callState

	// codec is nil in production; tests substitute a fake.
	codec codec
}

func (w *Worker) codecImpl() codec {
	if w.codec != nil {
		return w.codec
	}
	return astcCodec{}
}

func (w *Worker) acquire(ctx context.Context, userInfo any, progress ProgressFunc) (callGuard, error) {
	if !w.busy.CompareAndSwap(false, true) {
		return callGuard{}, newError(ErrWorkerBusy, nil)
	}
	w.state = callState{ctx: ctx, userInfo: userInfo, progress: progress}
	return callGuard{w: w, state: &w.state}, nil
}

// Compress encodes raw into a new CompressedImage.
//
// Zero-valued block sizes and a nil Quality select the defaults. ctx is polled at each progress checkpoint; when it is
// done, or opts.Progress returns true, the encoder is stopped and Compress fails with
// ErrCancelled even if the codec itself finished.
func (w *Worker) Compress(ctx context.Context, raw *RawImage, opts CompressOptions) (*CompressedImage, error) {
	return w.compress(ctx, raw, opts.withDefaults())
}

func (w *Worker) compress(ctx context.Context, raw *RawImage, opts CompressOptions) (*CompressedImage, error) {
	if raw == nil || raw.Data() == nil {
		return nil, newError(ErrNoData, nil)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	guard, err := w.acquire(ctx, opts.UserInfo, opts.Progress)
	if err != nil {
		return nil, err
	}
	defer guard.release()
	state := guard.state

	if ctx.Err() != nil {
		return nil, newError(ErrCancelled, context.Cause(ctx))
	}

	start := time.Now()
	fp := opts.footprint()
	c := w.codecImpl()

	cfg, err := c.configInit(astc.ProfileLDR, fp.Width, fp.Height, fp.Depth, opts.quality(), astc.FlagUseDecodeUNORM8)
	if err != nil {
		return nil, newError(ErrConfigInit, err)
	}
	cfg.ProgressCallback = state.compressProgress

	cctx, err := c.contextAlloc(&cfg, compressThreads)
	if err != nil {
		return nil, newError(ErrContextAlloc, err)
	}
	defer closeContext(cctx)
	state.codecCtx = cctx

	img, err := codecInput(raw.Data(), raw.width, raw.height, 1, raw.componentSize)
	if err != nil {
		return nil, err
	}

	blocks := newBlockGrid(raw.width, raw.height, 1, fp)
	out := allocBuffer(blocks.ByteLen())
	defer out.free()

	if err := cctx.CompressImage(img, codecSwizzle, out.bytes(), 0); err != nil {
		return nil, newError(ErrCompress, err)
	}
	if state.cancelled {
		glog.Warningf("astcimage: compress %dx%d cancelled after codec returned", raw.width, raw.height)
		return nil, newError(ErrCancelled, state.cause)
	}

	glog.V(1).Infof("astcimage: compressed %dx%d cs=%d block=%s q=%.0f into %d bytes in %v",
		raw.width, raw.height, raw.componentSize, fp, opts.quality(), out.len(), time.Since(start))
	return newCompressedImage(out.transfer(), raw, blocks, fp), nil
}

// Decompress decodes img into a new RawImage with img's dimensions and format metadata.
//
// opts.Progress observes decoding but cannot stop it.
func (w *Worker) Decompress(img *CompressedImage, opts DecompressOptions) (*RawImage, error) {
	if img == nil || img.Data() == nil {
		return nil, newError(ErrNoData, nil)
	}
	guard, err := w.acquire(context.Background(), opts.UserInfo, opts.Progress)
	if err != nil {
		return nil, err
	}
	defer guard.release()
	state := guard.state

	start := time.Now()
	fp := img.footprint
	c := w.codecImpl()

	cfg, err := c.configInit(astc.ProfileLDR, fp.Width, fp.Height, fp.Depth, DecompressQuality,
		astc.FlagUseDecodeUNORM8|astc.FlagDecompressOnly)
	if err != nil {
		return nil, newError(ErrConfigInit, err)
	}
	cfg.ProgressCallback = state.decompressProgress

	cctx, err := c.contextAlloc(&cfg, compressThreads)
	if err != nil {
		return nil, newError(ErrContextAlloc, err)
	}
	defer closeContext(cctx)
	state.codecCtx = cctx

	dst := allocBuffer(img.width * img.height * img.depth * 4 * img.componentSize)
	defer dst.free()

	out, err := codecOutput(dst.bytes(), img.width, img.height, img.depth, img.componentSize)
	if err != nil {
		return nil, err
	}
	if err := cctx.DecompressImage(img.Data()[:img.blocks.ByteLen()], out, codecSwizzle, 0); err != nil {
		return nil, newError(ErrDecompress, err)
	}
	storeCodecOutput(dst.bytes(), out)

	glog.V(1).Infof("astcimage: decompressed %dx%d cs=%d block=%s in %v",
		img.width, img.height, img.componentSize, fp, time.Since(start))
	return newRawImage(dst.transfer(), img.width, img.height, img.originalNumComponents,
		img.componentSize, img.linear, img.hdr), nil
}

func closeContext(cctx codecContext) {
	if err := cctx.Close(); err != nil {
		glog.Warningf("astcimage: closing codec context: %v", err)
		return
	}
	glog.V(2).Info("astcimage: codec context freed")
}
