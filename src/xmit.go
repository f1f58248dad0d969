package aprstx

/*------------------------------------------------------------------
 *
 * Purpose:	Pipeline orchestrator.
 *
 *		Composes the stages for one transmission:
 *
 *		frame -> stuffed bits -> NRZI -> AFSK audio
 *		      -> FM baseband -> x50 interpolation -> sink
 *
 *		Strictly single threaded and synchronous.  All buffers
 *		are scoped to one call; nothing survives between
 *		transmissions.
 *
 *----------------------------------------------------------------*/

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/lestrrat-go/strftime"
)

/*------------------------------------------------------------------
 *
 * Name:	Generate
 *
 * Purpose:	Produce one complete transmission as a byte stream.
 *
 * Inputs:	config	- Addressing, payload, modem parameters and
 *			  output format.
 *
 *		sink	- Where the bytes go.  The orchestrator never
 *			  seeks; any writer works.
 *
 * Returns:	nil on success.  ErrInvalidCallsign / ErrInvalidPath /
 *		ErrOversizedInfo for bad input, ErrSinkWrite if the
 *		writer fails, ErrInvariant for internal post-condition
 *		failures.
 *
 *----------------------------------------------------------------*/

func Generate(config *Config, sink io.Writer) error {

	var mc = &config.Modem

	var format, err = FormatFromText(config.Format)
	if err != nil {
		return err
	}

	/*
	 * Layer 2: frame bytes.
	 */

	pp, err := ax25_u_frame(config.Callsign, config.Dest, config.Path, []byte(config.Info), mc.InfoMax)
	if err != nil {
		return err
	}

	var fbuf = pp.ax25_pack()

	var fcs = fcs_calc(fbuf[:len(fbuf)-2])
	if fbuf[len(fbuf)-2] != byte(fcs&0xff) || fbuf[len(fbuf)-1] != byte(fcs>>8) {
		return fmt.Errorf("%w: FCS mismatch after packing", ErrInvariant)
	}

	logger.Debug("packet", "addrs", pp.ax25_format_addrs(), "frame_len", len(fbuf))

	/*
	 * Bits: flags, stuffing, NRZI.
	 */

	var bits = hdlc_serialize_frame(fbuf, mc.TxDelayFlags, mc.TxTailFlags)
	if err := hdlc_check_stuffing(bits, mc.TxDelayFlags, mc.TxTailFlags); err != nil {
		return err
	}

	var line = nrzi_encode(bits)

	if config.Debug {
		var sb strings.Builder
		for _, b := range bits {
			if b {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('0')
			}
		}
		logger.Debug("bit stream", "bits", sb.String())
	}

	/*
	 * Audio.  The whole frame fits comfortably in memory; a 300
	 * byte packet is around 100 KiB of samples.
	 */

	var audio = afsk_gen(line, mc)

	if !format.IsIQ() {
		var sk = &sample_sink_t{w: sink, format: format}
		return sk.put_audio(audio, mc.SamplesPerSec)
	}

	/*
	 * FM baseband and interpolation, streamed in chunks.
	 */

	var halfband = 0.5
	var fractional_bw = 0.4
	var trans_width = halfband - fractional_bw
	var mid_transition_band = halfband - trans_width/2

	/* Cutoff and width are relative to the input rate, expressed
	   against a "sample rate" of L, firdes style: the transition
	   band is centered at 0.45 of the input Nyquist interval. */

	var factor = float64(mc.Interpolation)
	var taps = gen_lowpass(factor, factor, mid_transition_band, trans_width)

	var fm = fm_mod_init(mc.Deviation, mc.SamplesPerSec)
	var interp = fir_interp_init(mc.Interpolation, taps)
	var ring = iq_ring_init(2 * BUFSIZE)
	var sk = &sample_sink_t{w: sink, format: format}

	var outbuf []complex64
	var total_out = 0

	var drain = func() error {
		var processed int
		processed, outbuf = interp.interpolate(ring, outbuf[:0])
		if processed == 0 {
			return nil
		}
		ring.remove(processed)
		total_out += len(outbuf)
		return sk.put_iq(outbuf)
	}

	for offset := 0; offset < len(audio); offset += BUFSIZE {
		var end = offset + BUFSIZE
		if end > len(audio) {
			end = len(audio)
		}
		fm.fm_modulate(audio[offset:end], ring)
		if err := drain(); err != nil {
			return err
		}
	}

	/* Flush the filter delay line so the last real samples clear it. */

	for i := 0; i < interp.ntaps-1; i++ {
		ring.insert(0)
	}
	if err := drain(); err != nil {
		return err
	}

	if total_out != len(audio)*mc.Interpolation {
		return fmt.Errorf("%w: interpolator emitted %d samples, want %d", ErrInvariant, total_out, len(audio)*mc.Interpolation)
	}

	return nil
}

/*------------------------------------------------------------------
 *
 * Name:	GenerateToFile
 *
 * Purpose:	Resolve the configured output name and run Generate.
 *
 * Description:	The output name may contain strftime conversions
 *		("beacon-%Y%m%d-%H%M%S.s8") so a beacon loop gets a
 *		fresh file per transmission.  Empty name means stdout.
 *
 * Returns:	The resolved file name and any pipeline error.
 *
 *----------------------------------------------------------------*/

func GenerateToFile(config *Config) (string, error) {

	if config.Output == "" {
		return "(stdout)", Generate(config, os.Stdout)
	}

	var name, err = strftime.Format(config.Output, time.Now())
	if err != nil {
		return "", fmt.Errorf("output name %q: %w", config.Output, err)
	}

	f, err := os.Create(name)
	if err != nil {
		return name, fmt.Errorf("%w: %v", ErrSinkWrite, err)
	}

	if err := Generate(config, f); err != nil {
		f.Close()
		return name, err
	}

	if err := f.Close(); err != nil {
		return name, fmt.Errorf("%w: %v", ErrSinkWrite, err)
	}
	return name, nil
}
