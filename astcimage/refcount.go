package astcimage

import "sync/atomic"

// refCount is an intrusive atomic reference count that starts at one.
type refCount struct {
	n atomic.Int64
}

func (r *refCount) init() {
	r.n.Store(1)
}

func (r *refCount) retain(what string) {
	if r.n.Add(1) <= 1 {
		panic("astcimage: retain of released " + what)
	}
}

// release drops one reference and reports whether it was the last one.
func (r *refCount) release(what string) bool {
	n := r.n.Add(-1)
	if n < 0 {
		panic("astcimage: release of released " + what)
	}
	return n == 0
}

func (r *refCount) load() int {
	return int(r.n.Load())
}
