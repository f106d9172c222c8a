package astcimage

import "sync/atomic"

// liveBuffers counts pixel and block buffers that have been allocated and not yet freed.
var liveBuffers atomic.Int64

// ownedBuffer is a byte buffer with exactly one owner.
//
// Ownership moves with transfer. free releases the buffer once; freeing an empty or transferred
// buffer is a no-op, so a deferred free covers every early return of the allocating call.
type ownedBuffer struct {
	b []byte
}

// allocBuffer returns a zero-filled buffer of n bytes.
func allocBuffer(n int) *ownedBuffer {
	liveBuffers.Add(1)
	return &ownedBuffer{b: make([]byte, n)}
}

func (o *ownedBuffer) bytes() []byte {
	if o == nil {
		return nil
	}
	return o.b
}

func (o *ownedBuffer) len() int {
	return len(o.bytes())
}

// transfer moves the contents into a new owner and leaves o empty.
func (o *ownedBuffer) transfer() *ownedBuffer {
	t := &ownedBuffer{b: o.b}
	o.b = nil
	return t
}

func (o *ownedBuffer) free() {
	if o == nil || o.b == nil {
		return
	}
	o.b = nil
	liveBuffers.Add(-1)
}
