package aprstx

/*------------------------------------------------------------------
 *
 * Purpose:	Terminal stage: quantize and write samples.
 *
 *		The pipeline hands complete sample chunks to a sink
 *		which owns the byte-level format.  The CLI decides
 *		whether the sink is a file, stdout, or a sound card.
 *
 *----------------------------------------------------------------*/

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strings"
)

func f32bits(x float32) uint32 { return math.Float32bits(x) }

type OutputFormat int

const (
	FORMAT_IQ_S8   OutputFormat = iota /* Interleaved int8 I/Q, scale 127.  HackRF native. */
	FORMAT_IQ_F32                      /* Interleaved little-endian float32 I/Q. */
	FORMAT_PCM_F32                     /* Mono little-endian float32 audio, pre-FM. */
	FORMAT_PCM_WAV                     /* Same audio wrapped in a RIFF header. */
)

func FormatFromText(text string) (OutputFormat, error) {
	switch strings.ToLower(text) {
	case "s8", "iq_s8":
		return FORMAT_IQ_S8, nil
	case "f32", "iq_f32":
		return FORMAT_IQ_F32, nil
	case "pcm", "pcm_f32":
		return FORMAT_PCM_F32, nil
	case "wav":
		return FORMAT_PCM_WAV, nil
	}
	return 0, fmt.Errorf("unknown sample format %q (want s8, f32, pcm or wav)", text)
}

func (f OutputFormat) String() string {
	switch f {
	case FORMAT_IQ_S8:
		return "IQ_S8"
	case FORMAT_IQ_F32:
		return "IQ_F32"
	case FORMAT_PCM_F32:
		return "PCM_F32"
	case FORMAT_PCM_WAV:
		return "PCM_WAV"
	}
	return fmt.Sprintf("OutputFormat(%d)", int(f))
}

// IsIQ reports whether the format carries modulated baseband rather
// than the AFSK stage's audio.
func (f OutputFormat) IsIQ() bool {
	return f == FORMAT_IQ_S8 || f == FORMAT_IQ_F32
}

type sample_sink_t struct {
	w      io.Writer
	format OutputFormat
}

/*------------------------------------------------------------------
 *
 * Name:	f32_to_s8
 *
 * Purpose:	Quantize float I/Q to interleaved signed bytes.
 *
 * Description:	Scale by 127, round toward zero, clamp to [-128, 127].
 *		Unit amplitude input can never wrap.
 *
 *----------------------------------------------------------------*/

func f32_to_s8(input []complex64) []byte {

	var clamp = func(x float32) int8 {
		var v = x * 127
		if v > 127 {
			return 127
		}
		if v < -128 {
			return -128
		}
		return int8(v)
	}

	var out = make([]byte, 0, len(input)*2)
	for _, s := range input {
		out = append(out, byte(clamp(real(s))), byte(clamp(imag(s))))
	}
	return out
}

/*------------------------------------------------------------------
 *
 * Name:	put_iq
 *
 * Purpose:	Write one chunk of interpolator output.
 *
 * Errors:	ErrSinkWrite wrapping the underlying cause.  Partially
 *		written output is not rolled back.
 *
 *----------------------------------------------------------------*/

func (sk *sample_sink_t) put_iq(samples []complex64) error {

	var err error

	switch sk.format {
	case FORMAT_IQ_S8:
		_, err = sk.w.Write(f32_to_s8(samples))
	case FORMAT_IQ_F32:
		var buf = make([]byte, 0, len(samples)*8)
		for _, s := range samples {
			buf = binary.LittleEndian.AppendUint32(buf, f32bits(real(s)))
			buf = binary.LittleEndian.AppendUint32(buf, f32bits(imag(s)))
		}
		_, err = sk.w.Write(buf)
	default:
		return fmt.Errorf("%w: format %v does not accept I/Q samples", ErrSinkWrite, sk.format)
	}

	if err != nil {
		return fmt.Errorf("%w: %v", ErrSinkWrite, err)
	}
	return nil
}

/*------------------------------------------------------------------
 *
 * Name:	put_audio
 *
 * Purpose:	Write the AFSK stage's audio directly, bypassing FM
 *		and interpolation.
 *
 *----------------------------------------------------------------*/

func (sk *sample_sink_t) put_audio(samples []float32, samples_per_sec int) error {

	var err error

	switch sk.format {
	case FORMAT_PCM_WAV:
		err = wav_write(sk.w, samples, samples_per_sec)
	case FORMAT_PCM_F32:
		var buf = make([]byte, 0, len(samples)*4)
		for _, s := range samples {
			buf = binary.LittleEndian.AppendUint32(buf, f32bits(s))
		}
		_, err = sk.w.Write(buf)
	default:
		return fmt.Errorf("%w: format %v does not accept audio samples", ErrSinkWrite, sk.format)
	}

	if err != nil {
		return fmt.Errorf("%w: %v", ErrSinkWrite, err)
	}
	return nil
}

/*------------------------------------------------------------------
 *
 * Name:	wav_write
 *
 * Purpose:	Wrap float32 audio in a RIFF/WAVE container
 *		(format 3, IEEE float, mono).
 *
 * Description:	The whole waveform is in memory before the sink runs,
 *		so sizes are known up front and the writer never seeks.
 *
 *----------------------------------------------------------------*/

func wav_write(w io.Writer, samples []float32, samples_per_sec int) error {

	var datasize = uint32(len(samples) * 4)

	var header = make([]byte, 0, 44)
	header = append(header, "RIFF"...)
	header = binary.LittleEndian.AppendUint32(header, 36+datasize)
	header = append(header, "WAVE"...)
	header = append(header, "fmt "...)
	header = binary.LittleEndian.AppendUint32(header, 16)
	header = binary.LittleEndian.AppendUint16(header, 3) /* IEEE float */
	header = binary.LittleEndian.AppendUint16(header, 1) /* mono */
	header = binary.LittleEndian.AppendUint32(header, uint32(samples_per_sec))
	header = binary.LittleEndian.AppendUint32(header, uint32(samples_per_sec*4))
	header = binary.LittleEndian.AppendUint16(header, 4)
	header = binary.LittleEndian.AppendUint16(header, 32)
	header = append(header, "data"...)
	header = binary.LittleEndian.AppendUint32(header, datasize)

	if _, err := w.Write(header); err != nil {
		return err
	}

	var buf = make([]byte, 0, len(samples)*4)
	for _, s := range samples {
		buf = binary.LittleEndian.AppendUint32(buf, f32bits(s))
	}
	var _, err = w.Write(buf)
	return err
}
