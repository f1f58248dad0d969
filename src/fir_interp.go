package aprstx

/*------------------------------------------------------------------
 *
 * Purpose:	Polyphase FIR interpolator.
 *
 *		Upsamples complex baseband by an integer factor L.
 *		Rather than zero-stuffing and running one long FIR at
 *		the output rate, the taps are decomposed into L
 *		sub-filters that each run at the input rate; every
 *		input sample yields L output samples, one per
 *		sub-filter.  Identical output, L times the speed.
 *
 *----------------------------------------------------------------*/

/*
 * Ring buffer between the FM modulator and the interpolator.
 * Single producer, single consumer, same goroutine.  The interpolator
 * needs random access to the window of pending samples, so this keeps
 * a flat slice with explicit head/size bookkeeping rather than
 * wrapping indices.
 */

type iq_ring_t struct {
	buf  []complex64
	head int /* Index of oldest unconsumed sample. */
	size int /* Number of unconsumed samples. */
}

func iq_ring_init(capacity int) *iq_ring_t {
	return &iq_ring_t{buf: make([]complex64, 0, capacity)}
}

func (rb *iq_ring_t) insert(s complex64) {
	rb.buf = append(rb.buf, s)
	rb.size++
}

func (rb *iq_ring_t) read_available() int {
	return rb.size
}

func (rb *iq_ring_t) at(i int) complex64 {
	return rb.buf[rb.head+i]
}

/* Consume n samples.  Compacts once the dead prefix dominates so the
   backing slice stays bounded by a few chunk sizes. */

func (rb *iq_ring_t) remove(n int) {
	rb.head += n
	rb.size -= n
	if rb.head > len(rb.buf)/2 && rb.head > BUFSIZE {
		rb.buf = append(rb.buf[:0], rb.buf[rb.head:]...)
		rb.head = 0
	}
}

type fir_interp_t struct {
	factor int
	ntaps  int         /* Taps per sub-filter. */
	xtaps  [][]float32 /* factor sub-filters, each ntaps long. */
}

/*------------------------------------------------------------------
 *
 * Name:	fir_interp_init
 *
 * Purpose:	Decompose the prototype lowpass into polyphase branches.
 *
 * Inputs:	factor	- Interpolation factor L.
 *
 *		taps	- Prototype filter designed at the output rate,
 *			  DC gain L.  Zero padded to a multiple of L.
 *
 *----------------------------------------------------------------*/

func fir_interp_init(factor int, taps []float64) *fir_interp_t {

	var padded = append([]float64(nil), taps...)
	for len(padded)%factor != 0 {
		padded = append(padded, 0)
	}

	var fi = &fir_interp_t{
		factor: factor,
		ntaps:  len(padded) / factor,
	}

	fi.xtaps = make([][]float32, factor)
	for j := range fi.xtaps {
		fi.xtaps[j] = make([]float32, fi.ntaps)
	}
	for i, t := range padded {
		fi.xtaps[i%factor][i/factor] = float32(t)
	}
	return fi
}

/*------------------------------------------------------------------
 *
 * Name:	interpolate
 *
 * Purpose:	Consume input samples from the ring, produce L output
 *		samples for each.
 *
 * Inputs:	in	- Ring buffer of baseband samples.
 *
 *		out	- Output accumulated so far.
 *
 * Returns:	Number of input samples consumed (0 if fewer than
 *		ntaps are available - the caller retains the rest and
 *		tries again with more input), and the extended output.
 *		The caller must in.remove() the consumed count.
 *
 *----------------------------------------------------------------*/

func (fi *fir_interp_t) interpolate(in *iq_ring_t, out []complex64) (int, []complex64) {

	var avail = in.read_available()
	if avail < fi.ntaps {
		return 0, out
	}

	var processed = avail - fi.ntaps + 1

	for i := 0; i < processed; i++ {
		for j := 0; j < fi.factor; j++ {
			var acc complex64
			var sub = fi.xtaps[j]
			for k := 0; k < fi.ntaps; k++ {
				var t = sub[fi.ntaps-k-1]
				acc += in.at(i+k) * complex(t, 0)
			}
			out = append(out, acc)
		}
	}

	return processed, out
}

/*------------------------------------------------------------------
 *
 * Name:	naive_interpolate
 *
 * Purpose:	Reference implementation: zero-stuff then convolve at
 *		the output rate.  Kept for the equivalence test of the
 *		polyphase path; far too slow for real use.
 *
 *----------------------------------------------------------------*/

func naive_interpolate(input []complex64, factor int, taps []float64) []complex64 {

	var padded = append([]float64(nil), taps...)
	for len(padded)%factor != 0 {
		padded = append(padded, 0)
	}

	var up = make([]complex64, 0, len(input)*factor)
	for _, s := range input {
		for i := 0; i < factor-1; i++ {
			up = append(up, 0)
		}
		up = append(up, s)
	}

	var ntaps = len(padded)
	var processed = len(up) - ntaps + 1
	if processed < 0 {
		processed = 0
	}

	var out = make([]complex64, 0, processed)
	for i := 0; i < processed; i++ {
		var acc complex64
		for j := 0; j < ntaps; j++ {
			acc += up[i+j] * complex(float32(padded[ntaps-j-1]), 0)
		}
		out = append(out, acc)
	}
	return out
}
