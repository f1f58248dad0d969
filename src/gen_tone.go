package aprstx

/*------------------------------------------------------------------
 *
 * Purpose:	Convert bits to Bell 202 AFSK audio.
 *
 *		1200 Hz mark, 2200 Hz space, 1200 baud at a 48000 Hz
 *		sample rate gives exactly 40 samples per symbol.  The
 *		phase accumulator runs continuously across bit
 *		boundaries; a phase jump would splatter energy outside
 *		the narrowband channel.
 *
 *----------------------------------------------------------------*/

import "math"

type tone_gen_t struct {
	phase           float64 /* Phase accumulator, kept within [0, 2 pi). */
	amplitude       float64
	samples_per_bit int
	mark_phase_inc  float64
	space_phase_inc float64
	mark_for_one    bool /* Polarity: true means NRZI level 1 selects the mark tone. */
}

func tone_gen_init(mc *ModemConfig) *tone_gen_t {

	var tg = &tone_gen_t{
		amplitude:       mc.TxAmplitude,
		samples_per_bit: mc.SamplesPerSec / mc.Baud,
		mark_phase_inc:  2 * math.Pi * float64(mc.MarkFreq) / float64(mc.SamplesPerSec),
		space_phase_inc: 2 * math.Pi * float64(mc.SpaceFreq) / float64(mc.SamplesPerSec),
		mark_for_one:    mc.MarkForOne,
	}
	return tg
}

/*------------------------------------------------------------------
 *
 * Name:	tone_gen_put_bit
 *
 * Purpose:	Append one symbol time of audio for the given line bit.
 *
 * Inputs:	wave	- Audio accumulated so far.
 *
 *		b	- NRZI line level for this symbol.
 *
 * Returns:	wave with samples_per_bit more samples.
 *
 *----------------------------------------------------------------*/

func (tg *tone_gen_t) tone_gen_put_bit(wave []float32, b bool) []float32 {

	var inc = tg.space_phase_inc
	if b == tg.mark_for_one {
		inc = tg.mark_phase_inc
	}

	for i := 0; i < tg.samples_per_bit; i++ {
		wave = append(wave, float32(math.Sin(tg.phase)*tg.amplitude))
		tg.phase += inc
		if tg.phase >= 2*math.Pi {
			tg.phase -= 2 * math.Pi
		}
	}
	return wave
}

/*------------------------------------------------------------------
 *
 * Name:	afsk_gen
 *
 * Purpose:	Synthesize the audio waveform for a whole frame.
 *
 * Inputs:	bits	- NRZI line bits from hdlc_send.
 *
 *		mc	- Modem parameters.
 *
 * Returns:	Mono float audio at mc.SamplesPerSec, amplitude within
 *		[-TxAmplitude, +TxAmplitude], with TxSilenceMs of
 *		silence either side of the packet.
 *
 *----------------------------------------------------------------*/

func afsk_gen(bits []bool, mc *ModemConfig) []float32 {

	var silence = mc.SamplesPerSec * mc.TxSilenceMs / 1000

	var tg = tone_gen_init(mc)
	var wave = make([]float32, 0, 2*silence+len(bits)*tg.samples_per_bit)

	for i := 0; i < silence; i++ {
		wave = append(wave, 0)
	}
	for _, b := range bits {
		wave = tg.tone_gen_put_bit(wave, b)
	}
	for i := 0; i < silence; i++ {
		wave = append(wave, 0)
	}
	return wave
}
