package util

import (
	"sync"
)

// RingBuffer is a fixed-size circular buffer of audio samples. Writers push
// whole blocks; readers always see the most recent samples.
type RingBuffer struct {
	sync.RWMutex
	buf   []float32
	index int
}

// NewRingBuffer creates a new ring buffer with the given size.
func NewRingBuffer(size int) *RingBuffer {
	return &RingBuffer{buf: make([]float32, size)}
}

// Len returns the capacity of the buffer.
func (r *RingBuffer) Len() int {
	return len(r.buf)
}

// Push data onto the ring buffer. Blocks longer than the buffer keep only
// their tail.
func (r *RingBuffer) Push(data []float32) {
	if len(data) > len(r.buf) {
		data = data[len(data)-len(r.buf):]
	}

	r.Lock()
	defer r.Unlock()

	n := copy(r.buf[r.index:], data)
	if n < len(data) {
		copy(r.buf, data[n:])
	}
	r.index = (r.index + len(data)) % len(r.buf)
}

// PushStride pushes every stride-th sample of data starting at offset. It is
// used to split an interleaved block into one channel.
func (r *RingBuffer) PushStride(data []float32, offset, stride int) {
	r.Lock()
	defer r.Unlock()

	for i := offset; i < len(data); i += stride {
		r.buf[r.index] = data[i]
		r.index++
		if r.index == len(r.buf) {
			r.index = 0
		}
	}
}

// Get the most recent N data points from the buffer, oldest first.
func (r *RingBuffer) Get(size int) []float32 {
	ret := make([]float32, size)
	r.Read(ret)
	return ret
}

// Read fills dst with the most recent len(dst) samples, oldest first.
func (r *RingBuffer) Read(dst []float32) {
	if len(dst) > len(r.buf) {
		panic("cant read more than size of buffer")
	}

	r.RLock()
	defer r.RUnlock()

	st := r.index - len(dst)
	if st >= 0 {
		copy(dst, r.buf[st:r.index])
		return
	}
	n := copy(dst, r.buf[len(r.buf)+st:])
	copy(dst[n:], r.buf[:r.index])
}
