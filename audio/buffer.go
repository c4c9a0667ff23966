package audio

import (
	"github.com/golang/glog"

	"github.com/peragwin/spacerobot/audio/util"
)

// Frames gives read access to the most recent audio frame. Every call
// returns a fresh copy, so callers may keep or modify it.
type Frames interface {
	Size() int
	Left() []float32
	Right() []float32
	Mix() []float32
}

// Input holds the latest stereo frame delivered by a source. Writers and
// readers never block each other for longer than a copy; a reader may see a
// frame that straddles two blocks, which is acceptable for visualization.
type Input struct {
	size  int
	left  *util.RingBuffer
	right *util.RingBuffer
}

// NewInput creates an Input exposing frames of size samples per channel.
// Until something is pushed it reads as silence.
func NewInput(size int) *Input {
	return &Input{
		size:  size,
		left:  util.NewRingBuffer(size),
		right: util.NewRingBuffer(size),
	}
}

// Size is the number of samples per channel in a frame.
func (in *Input) Size() int {
	return in.size
}

// Push splits an interleaved block into the channel buffers. Mono blocks
// (channels == 1) feed both channels.
func (in *Input) Push(block []float32, channels int) {
	if channels <= 1 {
		in.left.Push(block)
		in.right.Push(block)
		return
	}
	in.left.PushStride(block, 0, channels)
	in.right.PushStride(block, 1, channels)
}

// Left returns the latest left channel frame.
func (in *Input) Left() []float32 {
	return in.left.Get(in.size)
}

// Right returns the latest right channel frame.
func (in *Input) Right() []float32 {
	return in.right.Get(in.size)
}

// Mix returns the latest frame mixed down to mono.
func (in *Input) Mix() []float32 {
	l := in.left.Get(in.size)
	r := in.right.Get(in.size)
	for i := range l {
		l[i] = (l[i] + r[i]) / 2
	}
	return l
}

// Feed copies every block from src into dst until src closes or done is
// closed. It returns a channel that is closed when feeding stops.
func Feed(done <-chan struct{}, src <-chan []float32, channels int, dst *Input) <-chan struct{} {
	stopped := make(chan struct{})

	go func() {
		defer close(stopped)
		blocks := 0
		for {
			select {
			case <-done:
				return
			case x, ok := <-src:
				if !ok {
					glog.Infof("audio source closed after %d blocks", blocks)
					return
				}
				dst.Push(x, channels)
				blocks++
				if glog.V(3) && blocks%100 == 0 {
					glog.Infof("audio: %d blocks received", blocks)
				}
			}
		}
	}()

	return stopped
}
