// Package aprstx generates APRS transmissions as baseband I/Q samples.
//
// The pipeline is a strict linear dataflow: AX.25 UI frame construction,
// HDLC bit-stuffing and NRZI line coding, Bell-202 AFSK tone synthesis,
// narrowband FM modulation, and polyphase FIR interpolation up to the
// SDR sample rate.  Each transmission runs to completion before the
// next begins; no state is shared across invocations.
package aprstx

import "errors"

/* Sizes for the AX.25 address field. */

const AX25_MAX_ADDRS = 10 /* Destination, source, up to 8 digipeaters. */
const AX25_MAX_REPEATERS = 8
const AX25_MAX_ADDR_LEN = 12 /* In theory, you would expect the maximum line length */
/* to be 6 letters, dash, 2 digits, and nul for a */
/* total of 10.  However, object labels can be 10 */
/* characters so throw in a couple extra bytes */
/* to be safe. */

const AX25_UI_FRAME = 3 /* Control field value. */
const AX25_PID_NO_LAYER_3 = 0xf0

/* HDLC framing. */

const HDLC_FLAG = 0x7e

/* Number of audio samples processed per chunk through the FM modulator
   and interpolator.  The ring buffer between them holds twice this. */

const BUFSIZE = 4096

/* Modem defaults.  Bell 202 on 2m APRS. */

const DEFAULT_SAMPLES_PER_SEC = 48000
const DEFAULT_BAUD = 1200
const DEFAULT_MARK_FREQ = 1200
const DEFAULT_SPACE_FREQ = 2200
const DEFAULT_DEVIATION = 5000
const DEFAULT_INTERPOLATION = 50

const DEFAULT_INFO_MAX = 256

/*
 * Error kinds surfaced to the caller.  The pipeline never retries;
 * everything propagates to the orchestrator which logs and decides.
 */

var ErrInvalidCallsign = errors.New("invalid callsign")
var ErrInvalidPath = errors.New("invalid digipeater path")
var ErrOversizedInfo = errors.New("oversized information field")
var ErrSinkWrite = errors.New("sink write failed")

// ErrInvariant indicates a bit-stuffing or FCS post-condition check
// failed.  Should be impossible; indicates a bug rather than bad input.
var ErrInvariant = errors.New("internal invariant failure")
