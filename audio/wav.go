package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Clip is a decoded WAV file held in memory as interleaved samples in [-1, 1].
type Clip struct {
	Samples    []float32
	Channels   int
	SampleRate float64
}

// OpenWav decodes the WAV file at path.
func OpenWav(path string) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	clip, err := DecodeWav(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return clip, nil
}

// DecodeWav reads a whole WAV stream.
func DecodeWav(r io.ReadSeeker) (*Clip, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, errors.New("invalid WAV file")
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("reading WAV PCM data: %w", err)
	}
	if buf.Format == nil || buf.Format.NumChannels == 0 {
		return nil, errors.New("WAV file has no channels")
	}
	if len(buf.Data) < buf.Format.NumChannels {
		return nil, errors.New("WAV file has no samples")
	}

	return &Clip{
		Samples:    toFloat(buf),
		Channels:   buf.Format.NumChannels,
		SampleRate: float64(buf.Format.SampleRate),
	}, nil
}

func toFloat(buf *audio.IntBuffer) []float32 {
	depth := buf.SourceBitDepth
	if depth == 0 {
		depth = 16
	}
	scale := float32(int64(1) << uint(depth-1))
	offset := 0
	if depth == 8 {
		// 8-bit WAV is unsigned
		offset = 128
	}
	out := make([]float32, len(buf.Data))
	for i, s := range buf.Data {
		out[i] = float32(s-offset) / scale
	}
	return out
}

// Play loops the clip in real time, emitting interleaved blocks of
// blockSize frames until ctx is cancelled.
func (c *Clip) Play(ctx context.Context, blockSize int) <-chan []float32 {
	out := make(chan []float32)

	go func() {
		defer close(out)

		period := time.Duration(float64(time.Second) * float64(blockSize) / c.SampleRate)
		tick := time.NewTicker(period)
		defer tick.Stop()

		pos := 0
		for {
			block := make([]float32, blockSize*c.Channels)
			for i := range block {
				block[i] = c.Samples[pos]
				if pos++; pos == len(c.Samples) {
					pos = 0
				}
			}

			select {
			case <-ctx.Done():
				return
			case <-tick.C:
			}
			select {
			case <-ctx.Done():
				return
			case out <- block:
			}
		}
	}()

	return out
}
