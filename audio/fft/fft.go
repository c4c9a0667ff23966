package fft

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
	"gonum.org/v1/gonum/floats"
)

// Analyzer is a windowed FFT over a fixed-size audio frame. Each visualizer
// owns its own Analyzer; it is not safe for concurrent use.
type Analyzer struct {
	SampleRate float64
	Size       int

	window   []float64
	scratch  []float64
	spectrum []float64

	octaves        int
	bandsPerOctave int
	averages       []float64
}

// NewAnalyzer creates an analyzer for frames of the given size. Size must be
// a power of two.
func NewAnalyzer(size int, sampleRate float64) *Analyzer {
	return &Analyzer{
		SampleRate: sampleRate,
		Size:       size,
		window:     window.Hann(size),
		scratch:    make([]float64, size),
		spectrum:   make([]float64, size/2+1),
	}
}

// LogAverages enables logarithmically spaced averages. The spectrum is split
// into octaves halving down from the Nyquist frequency until an octave would
// be narrower than minBandwidth Hz, and every octave is split into
// bandsPerOctave equal-width bands.
func (a *Analyzer) LogAverages(minBandwidth float64, bandsPerOctave int) {
	nyq := a.SampleRate / 2
	octaves := 1
	for nyq /= 2; nyq > minBandwidth; nyq /= 2 {
		octaves++
	}
	a.octaves = octaves
	a.bandsPerOctave = bandsPerOctave
	a.averages = make([]float64, octaves*bandsPerOctave)
}

// Forward runs the transform over frame. Frames shorter than Size are zero
// padded; longer frames use their first Size samples.
func (a *Analyzer) Forward(frame []float32) {
	for i := range a.scratch {
		x := 0.0
		if i < len(frame) {
			x = float64(frame[i])
		}
		a.scratch[i] = x * a.window[i]
	}

	F := fft.FFTReal(a.scratch)
	for i := range a.spectrum {
		a.spectrum[i] = cmplx.Abs(F[i])
	}

	if a.averages != nil {
		a.fillAverages()
	}
}

func (a *Analyzer) fillAverages() {
	nyq := a.SampleRate / 2
	for i := 0; i < a.octaves; i++ {
		lo := 0.0
		if i > 0 {
			lo = nyq / math.Pow(2, float64(a.octaves-i))
		}
		hi := nyq / math.Pow(2, float64(a.octaves-i-1))
		step := (hi - lo) / float64(a.bandsPerOctave)

		f := lo
		for j := 0; j < a.bandsPerOctave; j++ {
			a.averages[j+i*a.bandsPerOctave] = a.bandAverage(f, f+step)
			f += step
		}
	}
}

func (a *Analyzer) bandAverage(lo, hi float64) float64 {
	l, h := a.FreqToIndex(lo), a.FreqToIndex(hi)
	return floats.Sum(a.spectrum[l:h+1]) / float64(h-l+1)
}

// SpecSize is the number of magnitude bins, Size/2+1. The last bin holds
// the Nyquist frequency.
func (a *Analyzer) SpecSize() int {
	return len(a.spectrum)
}

// Spectrum returns the magnitudes of the last frame. The slice is reused.
func (a *Analyzer) Spectrum() []float64 {
	return a.spectrum
}

// Band returns the magnitude of bin i, or 0 when i is out of range.
func (a *Analyzer) Band(i int) float64 {
	if i < 0 || i >= len(a.spectrum) {
		return 0
	}
	return a.spectrum[i]
}

// BandWidth is the width in Hz of a single bin.
func (a *Analyzer) BandWidth() float64 {
	return a.SampleRate / float64(a.Size)
}

// FreqToIndex returns the bin containing frequency hz.
func (a *Analyzer) FreqToIndex(hz float64) int {
	bw := a.BandWidth()
	if hz < bw/2 {
		return 0
	}
	if hz > a.SampleRate/2-bw/2 {
		return len(a.spectrum) - 1
	}
	return int(math.Round(float64(a.Size) * hz / a.SampleRate))
}

// Freq returns the magnitude of the bin containing frequency hz.
func (a *Analyzer) Freq(hz float64) float64 {
	return a.spectrum[a.FreqToIndex(hz)]
}

// AvgSize is the number of log averages, 0 until LogAverages is called.
func (a *Analyzer) AvgSize() int {
	return len(a.averages)
}

// Avg returns log average i, or 0 when i is out of range.
func (a *Analyzer) Avg(i int) float64 {
	if i < 0 || i >= len(a.averages) {
		return 0
	}
	return a.averages[i]
}

// DB converts a magnitude to decibels. Zero maps to zero rather than
// negative infinity.
func DB(x float64) float64 {
	if x == 0 {
		return 0
	}
	return 10 * math.Log10(x)
}

// Smoother applies an exponential moving average to successive spectra:
// s[i] = Alpha*s[i] + (1-Alpha)*x[i].
type Smoother struct {
	Alpha  float64
	values []float64
}

// DefaultSmoothing is the EMA coefficient shared by the visualizers.
const DefaultSmoothing = 0.60

// NewSmoother creates a smoother over n values.
func NewSmoother(n int, alpha float64) *Smoother {
	return &Smoother{Alpha: alpha, values: make([]float64, n)}
}

// Update folds current into the running average and returns it.
func (s *Smoother) Update(current []float64) []float64 {
	for i := range s.values {
		x := 0.0
		if i < len(current) {
			x = current[i]
		}
		s.values[i] = s.Alpha*s.values[i] + (1-s.Alpha)*x
	}
	return s.values
}

// Values returns the smoothed values.
func (s *Smoother) Values() []float64 {
	return s.values
}
