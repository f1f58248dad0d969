package aprstx

/*------------------------------------------------------------------
 *
 * Purpose:	Play PCM output on the default sound card.
 *
 *		Lets you hear a packet (or feed a radio's mic input)
 *		without an SDR attached.  Only meaningful for the
 *		audio formats; I/Q baseband is not listenable.
 *
 *----------------------------------------------------------------*/

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

const audio_play_chunk = 1024

/*------------------------------------------------------------------
 *
 * Name:	AudioPlay
 *
 * Purpose:	Blocking playback of a whole waveform.
 *
 * Inputs:	samples		- Mono float audio.
 *
 *		samples_per_sec	- Sample rate.
 *
 * Returns:	Error if the audio system or stream cannot be opened.
 *
 *----------------------------------------------------------------*/

func AudioPlay(samples []float32, samples_per_sec int) error {

	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("portaudio: %w", err)
	}
	defer portaudio.Terminate()

	var buf = make([]float32, audio_play_chunk)

	var stream, err = portaudio.OpenDefaultStream(0, 1, float64(samples_per_sec), len(buf), &buf)
	if err != nil {
		return fmt.Errorf("portaudio open: %w", err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return fmt.Errorf("portaudio start: %w", err)
	}
	defer stream.Stop()

	for offset := 0; offset < len(samples); offset += len(buf) {
		var n = copy(buf, samples[offset:])
		for i := n; i < len(buf); i++ {
			buf[i] = 0
		}
		if err := stream.Write(); err != nil {
			return fmt.Errorf("portaudio write: %w", err)
		}
	}
	return nil
}

/*------------------------------------------------------------------
 *
 * Name:	GenerateAudio
 *
 * Purpose:	Run the front half of the pipeline (through AFSK) and
 *		return the audio instead of writing it anywhere.
 *		Used by the play path and handy for tests.
 *
 *----------------------------------------------------------------*/

func GenerateAudio(config *Config) ([]float32, error) {

	var mc = &config.Modem

	var pp, err = ax25_u_frame(config.Callsign, config.Dest, config.Path, []byte(config.Info), mc.InfoMax)
	if err != nil {
		return nil, err
	}

	var fbuf = pp.ax25_pack()
	var bits = hdlc_serialize_frame(fbuf, mc.TxDelayFlags, mc.TxTailFlags)
	if err := hdlc_check_stuffing(bits, mc.TxDelayFlags, mc.TxTailFlags); err != nil {
		return nil, err
	}

	return afsk_gen(nrzi_encode(bits), mc), nil
}
