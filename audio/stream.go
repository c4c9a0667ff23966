package audio

import (
	"context"
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// Config represents a config that is used to open a new Stream.
type Config struct {
	// BlockSize is the number of frames per channel in each block
	BlockSize int
	// Channels is the number of input channels; blocks are interleaved
	Channels int
	// SampleRate is the sample rate (Fs).
	SampleRate float64
}

// DefaultConfig is stereo line-in at 48 kHz in blocks of 1024 frames.
var DefaultConfig = Config{
	BlockSize:  1024,
	Channels:   2,
	SampleRate: 48000,
}

// NewSource initializes a new streaming source with portaudio and returns a channel on which
// to receive interleaved blocks. Each block is a fresh slice the receiver may keep.
func NewSource(ctx context.Context, cfg *Config) (<-chan []float32, <-chan error) {
	out := make(chan []float32)
	errc := make(chan error, 1)
	done := ctx.Done()

	go func() {
		defer close(out)

		if err := portaudio.Initialize(); err != nil {
			errc <- fmt.Errorf("initializing portaudio: %w", err)
			return
		}
		defer portaudio.Terminate()

		in := make([]float32, cfg.BlockSize*cfg.Channels)

		stream, err := portaudio.OpenDefaultStream(
			cfg.Channels, 0, cfg.SampleRate, cfg.BlockSize, in)
		if err != nil {
			errc <- fmt.Errorf("opening stream: %w", err)
			return
		}
		defer stream.Close()
		if err := stream.Start(); err != nil {
			errc <- fmt.Errorf("starting stream: %w", err)
			return
		}

		for {
			if err := stream.Read(); err != nil {
				errc <- fmt.Errorf("reading from stream: %w", err)
				return
			}

			select {
			case <-done:
				return
			case out <- append([]float32(nil), in...):
			}
		}
	}()

	return out, errc
}
