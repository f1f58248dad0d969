package aprstx

/*------------------------------------------------------------------
 *
 * Purpose:	Narrowband FM modulator.
 *
 *		Integrates the audio into instantaneous phase and
 *		emits complex baseband at the audio sample rate.
 *		Sensitivity is 2 pi * deviation / sample rate, so a
 *		full scale input swings the carrier by the peak
 *		deviation.
 *
 *----------------------------------------------------------------*/

import "math"

type fm_mod_t struct {
	sensitivity float64
	phase       float64 /* Carried across chunks within one frame.  Kept in (-pi, pi]. */
}

func fm_mod_init(deviation float64, samples_per_sec int) *fm_mod_t {
	return &fm_mod_t{
		sensitivity: 2 * math.Pi * deviation / float64(samples_per_sec),
	}
}

/*------------------------------------------------------------------
 *
 * Name:	fm_modulate
 *
 * Purpose:	Modulate one chunk of audio into the ring buffer.
 *
 * Inputs:	input	- Audio samples, nominally within [-1, +1].
 *
 *		out	- Ring buffer between modulator and
 *			  interpolator.  Must have room for len(input)
 *			  more samples; the orchestrator guarantees
 *			  this by draining between chunks.
 *
 * Description:	The phase at the end of chunk j is the starting phase
 *		of chunk j+1.  Wrapping to (-pi, pi] only subtracts
 *		whole turns, so continuity is preserved exactly.
 *
 *----------------------------------------------------------------*/

func (fm *fm_mod_t) fm_modulate(input []float32, out *iq_ring_t) {

	for _, samp := range input {
		fm.phase += float64(samp) * fm.sensitivity
		for fm.phase > math.Pi {
			fm.phase -= 2 * math.Pi
		}
		for fm.phase <= -math.Pi {
			fm.phase += 2 * math.Pi
		}
		out.insert(complex(float32(math.Cos(fm.phase)), float32(math.Sin(fm.phase))))
	}
}
