package aprstx

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/dsp/fourier"
)

func test_modem() *ModemConfig {
	var mc = DefaultConfig().Modem
	mc.TxSilenceMs = 0
	mc.TxAmplitude = 1.0
	return &mc
}

func TestAFSKSampleCount(t *testing.T) {
	var mc = test_modem()

	var bits = make([]bool, 272)
	var wave = afsk_gen(bits, mc)

	// 40 samples per symbol at 48000 / 1200.
	assert.Len(t, wave, 272*40)
}

func TestAFSKSilencePadding(t *testing.T) {
	var mc = test_modem()
	mc.TxSilenceMs = 500

	var wave = afsk_gen(make([]bool, 10), mc)
	require.Len(t, wave, 24000+10*40+24000)

	for i := 0; i < 24000; i++ {
		assert.Zero(t, wave[i])
	}
	for i := len(wave) - 24000; i < len(wave); i++ {
		assert.Zero(t, wave[i])
	}
}

func TestAFSKAmplitudeBound(t *testing.T) {
	var mc = test_modem()
	mc.TxAmplitude = 0.5

	var bits = []bool{true, false, true, true, false, false, true, false}
	for _, s := range afsk_gen(bits, mc) {
		assert.LessOrEqual(t, math.Abs(float64(s)), 0.5)
	}
}

func TestAFSKPhaseContinuity(t *testing.T) {
	var mc = test_modem()

	// Alternate tones every bit; any phase reset at a boundary
	// shows up as a sample-to-sample jump bigger than the fastest
	// tone can produce.
	var bits = make([]bool, 64)
	for i := range bits {
		bits[i] = i%2 == 0
	}

	var wave = afsk_gen(bits, mc)

	// |sin(p + inc) - sin(p)| <= inc; the space tone has the
	// largest increment.
	var max_step = 2 * math.Pi * float64(mc.SpaceFreq) / float64(mc.SamplesPerSec)

	for i := 1; i < len(wave); i++ {
		var step = math.Abs(float64(wave[i]) - float64(wave[i-1]))
		assert.LessOrEqual(t, step, max_step+1e-6, "discontinuity at sample %d", i)
	}
}

func TestAFSKTonePlacement(t *testing.T) {
	var mc = test_modem()

	var check_tone = func(bit bool, want_freq int) {
		var bits = make([]bool, 120) // 0.1 s of one tone
		for i := range bits {
			bits[i] = bit
		}
		var wave = afsk_gen(bits, mc)

		var n = len(wave)
		var in = make([]float64, n)
		for i, s := range wave {
			in[i] = float64(s)
		}

		var fft = fourier.NewFFT(n)
		var spectrum = fft.Coefficients(nil, in)

		var peak_bin = 0
		var peak = 0.0
		for i, c := range spectrum {
			var mag = cmplx_abs(c)
			if mag > peak {
				peak = mag
				peak_bin = i
			}
		}

		var bin_hz = float64(mc.SamplesPerSec) / float64(n)
		var peak_freq = float64(peak_bin) * bin_hz
		assert.InDelta(t, float64(want_freq), peak_freq, bin_hz, "tone for bit %v", bit)
	}

	// Level 1 is the mark tone, level 0 the space tone.
	check_tone(true, mc.MarkFreq)
	check_tone(false, mc.SpaceFreq)
}

func cmplx_abs(c complex128) float64 {
	return math.Hypot(real(c), imag(c))
}
