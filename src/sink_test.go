package aprstx

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatFromText(t *testing.T) {
	for text, want := range map[string]OutputFormat{
		"s8": FORMAT_IQ_S8, "S8": FORMAT_IQ_S8, "iq_s8": FORMAT_IQ_S8,
		"f32": FORMAT_IQ_F32, "pcm": FORMAT_PCM_F32, "wav": FORMAT_PCM_WAV,
	} {
		var got, err = FormatFromText(text)
		require.NoError(t, err, text)
		assert.Equal(t, want, got, text)
	}

	var _, err = FormatFromText("u16")
	assert.Error(t, err)
}

func TestF32ToS8(t *testing.T) {
	var out = f32_to_s8([]complex64{
		complex(1, -1),
		complex(0.5, -0.5),
		complex(0, 0.0039), // just under half an LSB
	})

	require.Len(t, out, 6)
	assert.Equal(t, int8(127), int8(out[0]))
	assert.Equal(t, int8(-127), int8(out[1]))
	assert.Equal(t, int8(63), int8(out[2]), "0.5 * 127 = 63.5 rounds toward zero")
	assert.Equal(t, int8(-63), int8(out[3]))
	assert.Equal(t, int8(0), int8(out[4]))
	assert.Equal(t, int8(0), int8(out[5]))
}

func TestS8NoWraparound(t *testing.T) {
	// Unit amplitude and a little over must clamp, never wrap.
	var out = f32_to_s8([]complex64{
		complex(1.0, 1.1),
		complex(-1.0, -1.1),
		complex(100, -100),
	})

	assert.Equal(t, int8(127), int8(out[0]))
	assert.Equal(t, int8(127), int8(out[1]))
	assert.Equal(t, int8(-127), int8(out[2]), "exactly -1.0 is in range, no clamp needed")
	assert.Equal(t, int8(-128), int8(out[3]))
	assert.Equal(t, int8(127), int8(out[4]))
	assert.Equal(t, int8(-128), int8(out[5]))
}

func TestS8Clamping(t *testing.T) {
	var out = f32_to_s8([]complex64{complex(100, -100)})
	assert.Equal(t, int8(127), int8(out[0]))
	assert.Equal(t, int8(-128), int8(out[1]))
}

func TestPutIQFloat32Layout(t *testing.T) {
	var buf bytes.Buffer
	var sk = &sample_sink_t{w: &buf, format: FORMAT_IQ_F32}

	require.NoError(t, sk.put_iq([]complex64{complex(0.25, -0.75)}))

	var out = buf.Bytes()
	require.Len(t, out, 8)
	assert.Equal(t, float32(0.25), math.Float32frombits(binary.LittleEndian.Uint32(out[0:4])))
	assert.Equal(t, float32(-0.75), math.Float32frombits(binary.LittleEndian.Uint32(out[4:8])))
}

func TestPutAudioPCM(t *testing.T) {
	var buf bytes.Buffer
	var sk = &sample_sink_t{w: &buf, format: FORMAT_PCM_F32}

	var samples = []float32{0, 0.5, -0.5, 1}
	require.NoError(t, sk.put_audio(samples, 48000))

	var out = buf.Bytes()
	require.Len(t, out, len(samples)*4)
	for i, want := range samples {
		assert.Equal(t, want, math.Float32frombits(binary.LittleEndian.Uint32(out[i*4:i*4+4])))
	}
}

func TestWAVHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, wav_write(&buf, make([]float32, 100), 48000))

	var out = buf.Bytes()
	require.Len(t, out, 44+400)

	assert.Equal(t, "RIFF", string(out[0:4]))
	assert.Equal(t, uint32(36+400), binary.LittleEndian.Uint32(out[4:8]))
	assert.Equal(t, "WAVE", string(out[8:12]))
	assert.Equal(t, "fmt ", string(out[12:16]))
	assert.Equal(t, uint16(3), binary.LittleEndian.Uint16(out[20:22]), "IEEE float format tag")
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(out[22:24]), "mono")
	assert.Equal(t, uint32(48000), binary.LittleEndian.Uint32(out[24:28]))
	assert.Equal(t, uint32(192000), binary.LittleEndian.Uint32(out[28:32]))
	assert.Equal(t, uint16(32), binary.LittleEndian.Uint16(out[34:36]))
	assert.Equal(t, "data", string(out[36:40]))
	assert.Equal(t, uint32(400), binary.LittleEndian.Uint32(out[40:44]))
}

type failing_writer struct{}

func (failing_writer) Write(p []byte) (int, error) {
	return 0, errors.New("device gone")
}

func TestSinkWriteErrors(t *testing.T) {
	var sk = &sample_sink_t{w: failing_writer{}, format: FORMAT_IQ_S8}
	assert.ErrorIs(t, sk.put_iq([]complex64{1}), ErrSinkWrite)

	sk = &sample_sink_t{w: failing_writer{}, format: FORMAT_PCM_F32}
	assert.ErrorIs(t, sk.put_audio([]float32{1}, 48000), ErrSinkWrite)

	// Format/stage mismatches are also sink errors.
	sk = &sample_sink_t{w: failing_writer{}, format: FORMAT_PCM_F32}
	assert.ErrorIs(t, sk.put_iq([]complex64{1}), ErrSinkWrite)
}
