package astcimage

import (
	"context"

	"github.com/golang/glog"
)

// callState connects the codec's progress hook to the caller for a single call.
type callState struct {
	ctx      context.Context
	codecCtx codecContext
	userInfo any
	progress ProgressFunc

	cancelled bool
	// cause is the context error when the context, not the callback, stopped the call.
	cause error
}

// compressProgress is installed as the codec progress hook while compressing.
// p is the codec's 0-100 completion value.
func (s *callState) compressProgress(p float32) {
	if s.cancelled {
		return
	}
	stop := false
	if s.progress != nil {
		stop = s.progress(s.userInfo, p/100)
	}
	if !stop && s.ctx != nil && s.ctx.Err() != nil {
		stop = true
		s.cause = context.Cause(s.ctx)
	}
	if !stop {
		return
	}
	s.cancelled = true
	glog.V(2).Infof("astcimage: cancel requested at %.1f%%", p)
	if s.codecCtx != nil {
		_ = s.codecCtx.CompressCancel()
	}
}

// decompressProgress is installed as the codec progress hook while decompressing.
func (s *callState) decompressProgress(p float32) {
	if s.progress != nil {
		s.progress(s.userInfo, p/100)
	}
}

// callGuard holds a Worker for the duration of one call.
type callGuard struct {
	w     *Worker
	state *callState
}

func (g callGuard) release() {
	g.w.state = callState{}
	g.w.busy.Store(false)
}
