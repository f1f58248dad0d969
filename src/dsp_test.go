package aprstx

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

// The production design: L = 50, transition centered at 0.45 of the
// input Nyquist interval, 0.1 wide.
func interp_taps() []float64 {
	return gen_lowpass(50, 50, 0.45, 0.1)
}

func TestLowpassShape(t *testing.T) {
	var taps = interp_taps()

	// Odd length, so there is a center tap.
	require.NotEmpty(t, taps)
	assert.Equal(t, 1, len(taps)%2)

	// Linear phase: symmetric about the center.
	for i := 0; i < len(taps)/2; i++ {
		assert.InDelta(t, taps[i], taps[len(taps)-1-i], 1e-12)
	}

	// Center tap is the peak.
	var center = taps[len(taps)/2]
	for _, tap := range taps {
		assert.LessOrEqual(t, tap, center+1e-12)
	}
}

func TestLowpassDCGain(t *testing.T) {
	// Gain L at DC makes up for the 1/L energy loss of zero
	// stuffing.
	var taps = interp_taps()
	assert.InDelta(t, 50.0, floats.Sum(taps), 1e-9)
}

// Directly evaluate |H(f)| at a normalized frequency (cycles per
// output sample).
func freq_response(taps []float64, f float64) float64 {
	var re, im float64
	for n, tap := range taps {
		re += tap * math.Cos(2*math.Pi*f*float64(n))
		im -= tap * math.Sin(2*math.Pi*f*float64(n))
	}
	return math.Hypot(re, im)
}

func TestLowpassBands(t *testing.T) {
	var taps = interp_taps()

	// Passband edge at 0.4/50, transition centered at 0.45/50,
	// stopband from 0.5/50 of the output rate.
	assert.InDelta(t, 50.0, freq_response(taps, 0), 1e-9)
	assert.InDelta(t, 50.0, freq_response(taps, 0.2*0.4/50), 50*0.01)

	// Kaiser beta 7 buys roughly 70 dB; be content with 40.
	assert.Less(t, freq_response(taps, 0.55/50), 50*0.01)
	assert.Less(t, freq_response(taps, 1.5/50), 50*0.01)
}

func TestComputeNtapsOdd(t *testing.T) {
	for _, tw := range []float64{0.05, 0.1, 0.2, 0.35} {
		var n = compute_ntaps(50, tw, 7.0)
		assert.Equal(t, 1, n%2, "transition width %v", tw)
		assert.Positive(t, n)
	}
}

func TestBesselI0(t *testing.T) {
	// I0(0) = 1; reference values from Abramowitz & Stegun.
	assert.InDelta(t, 1.0, bessel_i0(0), 1e-12)
	assert.InDelta(t, 1.2660658777520084, bessel_i0(1), 1e-9)
	assert.InDelta(t, 11.301921952136331, bessel_i0(4), 1e-6)
}

func TestKaiserWindowShape(t *testing.T) {
	var w = kaiser_window(101, 7.0)

	// Peak of 1 in the middle, tapering monotonically-ish to the
	// small edge value.
	assert.InDelta(t, 1.0, w[50], 1e-12)
	assert.Less(t, w[0], 0.01)
	assert.InDelta(t, w[0], w[100], 1e-12)
	for i := 0; i < 50; i++ {
		assert.LessOrEqual(t, w[i], w[i+1]+1e-12)
	}
}
