package astcimage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-astc/astcencoder/astc"
)

type fakeCodec struct {
	configErr error
	allocErr  error
	ctx       *fakeContext

	profile astc.Profile
	flags   astc.Flags
	quality float32
	threads int
}

func (f *fakeCodec) configInit(profile astc.Profile, blockX, blockY, blockZ int, quality float32, flags astc.Flags) (astc.Config, error) {
	f.profile, f.flags, f.quality = profile, flags, quality
	if f.configErr != nil {
		return astc.Config{}, f.configErr
	}
	return astc.Config{Profile: profile, Flags: flags, BlockX: uint32(blockX), BlockY: uint32(blockY), BlockZ: uint32(blockZ)}, nil
}

func (f *fakeCodec) contextAlloc(cfg *astc.Config, threadCount int) (codecContext, error) {
	f.threads = threadCount
	if f.allocErr != nil {
		return nil, f.allocErr
	}
	f.ctx.cfg = *cfg
	return f.ctx, nil
}

// fakeContext replays progress values through the installed hook and returns canned errors.
type fakeContext struct {
	cfg      astc.Config
	progress []float32
	err      error

	swizzle     astc.Swizzle
	outLen      int
	cancelCalls int
	closeCalls  int
}

func (f *fakeContext) run(swizzle astc.Swizzle) error {
	f.swizzle = swizzle
	for _, p := range f.progress {
		if f.cfg.ProgressCallback != nil {
			f.cfg.ProgressCallback(p)
		}
	}
	return f.err
}

func (f *fakeContext) CompressImage(img *astc.Image, swizzle astc.Swizzle, out []byte, threadIndex int) error {
	f.outLen = len(out)
	return f.run(swizzle)
}

func (f *fakeContext) DecompressImage(data []byte, imgOut *astc.Image, swizzle astc.Swizzle, threadIndex int) error {
	return f.run(swizzle)
}

func (f *fakeContext) CompressCancel() error {
	f.cancelCalls++
	return nil
}

func (f *fakeContext) Close() error {
	f.closeCalls++
	return nil
}

func newTestRaw(t *testing.T, w, h int) *RawImage {
	t.Helper()
	raw, err := NewRawImage(make([]byte, w*h*4), w, h, 4, 1, false, false)
	require.NoError(t, err)
	return raw
}

func requireIdle(t *testing.T, w *Worker) {
	t.Helper()
	require.False(t, w.busy.Load())
	require.Nil(t, w.state.ctx)
	require.Nil(t, w.state.codecCtx)
	require.Nil(t, w.state.userInfo)
	require.Nil(t, w.state.progress)
	require.False(t, w.state.cancelled)
	require.NoError(t, w.state.cause)
}

func TestWorker_CompressConfiguresCodec(t *testing.T) {
	fc := &fakeCodec{ctx: &fakeContext{}}
	w := &Worker{codec: fc}
	raw := newTestRaw(t, 10, 10)
	defer raw.Release()

	comp, err := w.compress(context.Background(), raw, CompressOptions{BlockWidth: 4, BlockHeight: 4, Quality: Quality(42)})
	require.NoError(t, err)
	defer comp.Release()

	require.Equal(t, astc.ProfileLDR, fc.profile)
	require.Equal(t, astc.FlagUseDecodeUNORM8, fc.flags)
	require.Equal(t, float32(42), fc.quality)
	require.Equal(t, 1, fc.threads)
	require.Equal(t, codecSwizzle, fc.ctx.swizzle)
	require.Equal(t, 144, fc.ctx.outLen)
	require.Equal(t, 1, fc.ctx.closeCalls)
	requireIdle(t, w)
}

func TestWorker_CompressQualityReachesCodec(t *testing.T) {
	raw := newTestRaw(t, 8, 8)
	defer raw.Release()

	tests := []struct {
		name string
		opts CompressOptions
		want float32
	}{
		{"unset", CompressOptions{}, DefaultQuality},
		{"fastest", CompressOptions{Quality: Quality(0)}, 0},
		{"exhaustive", CompressOptions{Quality: Quality(100)}, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc := &fakeCodec{ctx: &fakeContext{}}
			comp, err := (&Worker{codec: fc}).Compress(context.Background(), raw, tt.opts)
			require.NoError(t, err)
			comp.Release()
			require.Equal(t, tt.want, fc.quality)
		})
	}

	fc := &fakeCodec{ctx: &fakeContext{}}
	comp, err := (&Worker{codec: fc}).compress(context.Background(), raw, CompressOptions{BlockWidth: 4, BlockHeight: 4, Quality: Quality(0)})
	require.NoError(t, err)
	comp.Release()
	require.Equal(t, float32(0), fc.quality)
}

func TestWorker_DecompressConfiguresCodec(t *testing.T) {
	raw := newTestRaw(t, 10, 10)
	defer raw.Release()
	comp, err := (&Worker{codec: &fakeCodec{ctx: &fakeContext{}}}).compress(context.Background(), raw, CompressOptions{BlockWidth: 5, BlockHeight: 5, Quality: Quality(60)})
	require.NoError(t, err)
	defer comp.Release()

	fc := &fakeCodec{ctx: &fakeContext{}}
	w := &Worker{codec: fc}
	out, err := w.Decompress(comp, DecompressOptions{})
	require.NoError(t, err)
	defer out.Release()

	require.Equal(t, astc.FlagUseDecodeUNORM8|astc.FlagDecompressOnly, fc.flags)
	require.Equal(t, DecompressQuality, fc.quality)
	require.Equal(t, 1, fc.threads)
	require.Equal(t, codecSwizzle, fc.ctx.swizzle)
	require.Equal(t, 1, fc.ctx.closeCalls)
	requireIdle(t, w)
}

func TestWorker_CompressFailuresReleaseResources(t *testing.T) {
	cause := errors.New("codec failure")
	tests := []struct {
		name       string
		codec      *fakeCodec
		want       error
		wantCloses int
	}{
		{"config", &fakeCodec{configErr: cause, ctx: &fakeContext{}}, ErrConfigInit, 0},
		{"context", &fakeCodec{allocErr: cause, ctx: &fakeContext{}}, ErrContextAlloc, 0},
		{"compress", &fakeCodec{ctx: &fakeContext{err: cause}}, ErrCompress, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := newTestRaw(t, 8, 8)
			defer raw.Release()
			before := liveBuffers.Load()

			w := &Worker{codec: tt.codec}
			comp, err := w.compress(context.Background(), raw, CompressOptions{BlockWidth: 4, BlockHeight: 4})
			require.Nil(t, comp)
			require.ErrorIs(t, err, tt.want)
			require.ErrorIs(t, err, cause)
			require.Equal(t, tt.wantCloses, tt.codec.ctx.closeCalls)
			require.Equal(t, before, liveBuffers.Load())
			requireIdle(t, w)
		})
	}
}

func TestWorker_DecompressFailureReleasesResources(t *testing.T) {
	raw := newTestRaw(t, 8, 8)
	defer raw.Release()
	comp, err := (&Worker{codec: &fakeCodec{ctx: &fakeContext{}}}).compress(context.Background(), raw, CompressOptions{BlockWidth: 4, BlockHeight: 4})
	require.NoError(t, err)
	defer comp.Release()

	cause := errors.New("corrupt block")
	fc := &fakeCodec{ctx: &fakeContext{err: cause}}
	before := liveBuffers.Load()

	out, err := (&Worker{codec: fc}).Decompress(comp, DecompressOptions{})
	require.Nil(t, out)
	require.ErrorIs(t, err, ErrDecompress)
	require.Equal(t, KindExecution, KindOf(err))
	require.Equal(t, 1, fc.ctx.closeCalls)
	require.Equal(t, before, liveBuffers.Load())
}

func TestWorker_CancelOverridesCodecSuccess(t *testing.T) {
	fc := &fakeCodec{ctx: &fakeContext{progress: []float32{25, 50, 75, 100}}}
	w := &Worker{codec: fc}
	raw := newTestRaw(t, 8, 8)
	defer raw.Release()
	before := liveBuffers.Load()

	var seen []float32
	comp, err := w.compress(context.Background(), raw, CompressOptions{
		BlockWidth:  4,
		BlockHeight: 4,
		Progress: func(_ any, p float32) bool {
			seen = append(seen, p)
			return p >= 0.5
		},
	})
	require.Nil(t, comp)
	require.ErrorIs(t, err, ErrCancelled)
	require.NoError(t, errors.Unwrap(err))
	require.Equal(t, []float32{0.25, 0.5}, seen)
	require.Equal(t, 1, fc.ctx.cancelCalls)
	require.Equal(t, 1, fc.ctx.closeCalls)
	require.Equal(t, before, liveBuffers.Load())
	requireIdle(t, w)
}

func TestWorker_CancelCauseIsReported(t *testing.T) {
	raw := newTestRaw(t, 8, 8)
	defer raw.Release()
	cause := errors.New("shutting down")

	t.Run("before call", func(t *testing.T) {
		ctx, cancel := context.WithCancelCause(context.Background())
		cancel(cause)

		fc := &fakeCodec{ctx: &fakeContext{}}
		_, err := (&Worker{codec: fc}).Compress(ctx, raw, CompressOptions{})
		require.ErrorIs(t, err, ErrCancelled)
		require.ErrorIs(t, err, cause)
	})

	t.Run("during call", func(t *testing.T) {
		ctx, cancel := context.WithCancelCause(context.Background())
		defer cancel(nil)

		fc := &fakeCodec{ctx: &fakeContext{progress: []float32{25, 50, 100}}}
		w := &Worker{codec: fc}
		_, err := w.Compress(ctx, raw, CompressOptions{
			Progress: func(_ any, p float32) bool {
				if p >= 0.5 {
					cancel(cause)
				}
				return false
			},
		})
		require.ErrorIs(t, err, ErrCancelled)
		require.ErrorIs(t, err, cause)
		require.Equal(t, 1, fc.ctx.cancelCalls)
		requireIdle(t, w)
	})
}

func TestWorker_DecompressForwardsProgressWithoutCancel(t *testing.T) {
	raw := newTestRaw(t, 8, 8)
	defer raw.Release()
	comp, err := (&Worker{codec: &fakeCodec{ctx: &fakeContext{}}}).compress(context.Background(), raw, CompressOptions{BlockWidth: 4, BlockHeight: 4})
	require.NoError(t, err)
	defer comp.Release()

	fc := &fakeCodec{ctx: &fakeContext{progress: []float32{50, 100}}}
	var seen []float32
	out, err := (&Worker{codec: fc}).Decompress(comp, DecompressOptions{
		Progress: func(_ any, p float32) bool {
			seen = append(seen, p)
			return true
		},
	})
	require.NoError(t, err)
	defer out.Release()
	require.Equal(t, []float32{0.5, 1}, seen)
	require.Zero(t, fc.ctx.cancelCalls)
}

func TestWorker_RejectsReentrantCall(t *testing.T) {
	fc := &fakeCodec{ctx: &fakeContext{progress: []float32{100}}}
	w := &Worker{codec: fc}
	raw := newTestRaw(t, 4, 4)
	defer raw.Release()

	var nestedErr error
	comp, err := w.compress(context.Background(), raw, CompressOptions{
		BlockWidth:  4,
		BlockHeight: 4,
		Progress: func(_ any, _ float32) bool {
			_, nestedErr = w.compress(context.Background(), raw, CompressOptions{BlockWidth: 4, BlockHeight: 4})
			return false
		},
	})
	require.NoError(t, err)
	defer comp.Release()
	require.ErrorIs(t, nestedErr, ErrWorkerBusy)
	requireIdle(t, w)

	again, err := w.compress(context.Background(), raw, CompressOptions{BlockWidth: 4, BlockHeight: 4})
	require.NoError(t, err)
	again.Release()
}

func TestRawImage_ReleaseDestroysOnce(t *testing.T) {
	before := liveBuffers.Load()
	raw := newTestRaw(t, 4, 4)
	require.Equal(t, before+1, liveBuffers.Load())

	const n = 5
	for i := 0; i < n; i++ {
		require.Same(t, raw, raw.Retain())
	}
	require.Equal(t, n+1, raw.RefCount())

	for i := 0; i < n; i++ {
		raw.Release()
		require.NotNil(t, raw.Data())
	}
	raw.Release()

	require.Zero(t, raw.RefCount())
	require.Nil(t, raw.Data())
	require.Equal(t, before, liveBuffers.Load())
	require.Panics(t, raw.Release)
}

func TestCompressedImage_ReleaseDestroysOnce(t *testing.T) {
	raw := newTestRaw(t, 8, 8)
	defer raw.Release()
	comp, err := (&Worker{codec: &fakeCodec{ctx: &fakeContext{}}}).compress(context.Background(), raw, CompressOptions{BlockWidth: 4, BlockHeight: 4})
	require.NoError(t, err)

	before := liveBuffers.Load()
	comp.Retain()
	comp.Retain()
	comp.Release()
	comp.Release()
	require.Equal(t, before, liveBuffers.Load())
	comp.Release()

	require.Nil(t, comp.Data())
	require.Equal(t, before-1, liveBuffers.Load())
	require.Panics(t, func() { comp.Retain() })
}

func TestRawImage_ConcurrentRetainRelease(t *testing.T) {
	raw := newTestRaw(t, 4, 4)
	defer raw.Release()

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 1000; j++ {
				raw.Retain().Release()
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
	require.Equal(t, 1, raw.RefCount())
}
