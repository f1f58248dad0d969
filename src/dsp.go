package aprstx

/*------------------------------------------------------------------
 *
 * Purpose:	Generate the low pass kernel for the interpolator.
 *
 *		Kaiser windowed sinc design, following the classic
 *		firdes recipe: estimate the tap count from the
 *		transition width, window a sinc at the cutoff, then
 *		normalize the DC gain.
 *
 *----------------------------------------------------------------*/

import "math"

/*------------------------------------------------------------------
 *
 * Name:        bessel_i0
 *
 * Purpose:     0th order modified Bessel function of the first kind.
 *		Series expansion, used by the Kaiser window.
 *
 *----------------------------------------------------------------*/

func bessel_i0(x float64) float64 {

	const EPSILON = 1.0e-21

	var s = 1.0
	var d = 1.0
	var y = (x / 2.0) * (x / 2.0)

	for n := 1.0; d > EPSILON*s; n++ {
		d *= y / (n * n)
		s += d
	}
	return s
}

/*------------------------------------------------------------------
 *
 * Name:        compute_ntaps
 *
 * Purpose:     Estimate the number of taps needed for the given
 *		transition width and Kaiser beta.  Forced odd so the
 *		filter has a center tap.
 *
 *----------------------------------------------------------------*/

func compute_ntaps(sampling_freq float64, transition_width float64, beta float64) int {

	var a = beta/0.1102 + 8.7
	var ntaps = int(a * sampling_freq / (22.0 * transition_width))
	if ntaps%2 == 0 {
		ntaps++
	}
	return ntaps
}

func kaiser_window(ntaps int, beta float64) []float64 {

	var ibeta = 1.0 / bessel_i0(beta)
	var inm1 = 1.0 / float64(ntaps-1)

	var w = make([]float64, ntaps)
	for i := range w {
		var val = 2.0*float64(i)*inm1 - 1.0
		w[i] = bessel_i0(beta*math.Sqrt(math.Max(0, 1.0-val*val))) * ibeta
	}
	return w
}

/*------------------------------------------------------------------
 *
 * Name:        gen_lowpass
 *
 * Purpose:     Generate low pass filter kernel.
 *
 * Inputs:   	gain		- DC gain.  For an interpolating filter
 *				  this is the interpolation factor, to
 *				  make up for the zero-stuffing loss.
 *
 *		sampling_freq	- Sample rate the cutoff is relative to.
 *
 *		cutoff_freq	- Center of the transition band.
 *
 *		transition_width - Width of the transition band.
 *
 * Returns:	Filter taps, normalized so they sum to gain.
 *
 *----------------------------------------------------------------*/

func gen_lowpass(gain float64, sampling_freq float64, cutoff_freq float64, transition_width float64) []float64 {

	const beta = 7.0

	var ntaps = compute_ntaps(sampling_freq, transition_width, beta)
	var w = kaiser_window(ntaps, beta)

	var m = (ntaps - 1) / 2
	var fw_t0 = 2.0 * math.Pi * cutoff_freq / sampling_freq

	var taps = make([]float64, ntaps)
	for n := -m; n <= m; n++ {
		var idx = n + m
		if n == 0 {
			taps[idx] = (fw_t0 / math.Pi) * w[idx]
		} else {
			taps[idx] = (math.Sin(float64(n)*fw_t0) / (float64(n) * math.Pi)) * w[idx]
		}
	}

	var sum = 0.0
	for _, t := range taps {
		sum += t
	}

	var norm = gain / sum
	for i := range taps {
		taps[i] *= norm
	}
	return taps
}
