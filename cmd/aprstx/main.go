package main

/*------------------------------------------------------------------
 *
 * Name:	aprstx
 *
 * Purpose:	One-shot APRS transmission generator.
 *
 * Description:	Build a single frame and write the samples to a file
 *		or stdout.  Useful for piping straight into an SDR
 *		transmit tool:
 *
 *			aprstx -c N0CALL -f s8 -o packet.s8 "Hello"
 *			hackrf_transfer -t packet.s8 -f 144390000 -s 2400000 -x 40 -a 1
 *
 *		With -f wav the result opens in any audio editor; with
 *		--play it goes to the sound card instead.
 *
 *------------------------------------------------------------------*/

import (
	"os"

	"github.com/spf13/pflag"

	aprstx "github.com/kg7x/aprstx/src"
)

func main() {

	var configFile = pflag.String("config", "", "YAML configuration file.")
	var callsign = pflag.StringP("callsign", "c", "", "Your callsign, e.g. N0CALL-9.")
	var dest = pflag.StringP("destination", "d", "", "AX.25 destination address (default APRS).")
	var path = pflag.StringP("path", "p", "", "Digipeater path (default WIDE1-1,WIDE2-1).")
	var output = pflag.StringP("output", "o", "", "Output file, strftime conversions allowed (default stdout).")
	var format = pflag.StringP("format", "f", "", "Sample format: f32 (default), s8 (HackRF), pcm, wav.")
	var play = pflag.Bool("play", false, "Play the packet audio on the default sound card instead of writing samples.")
	var verbose = pflag.BoolP("verbose", "v", false, "Print debug info.")
	pflag.Parse()

	var logger = aprstx.Logger()

	var config, err = aprstx.LoadConfig(*configFile)
	if err != nil {
		logger.Fatal("configuration", "err", err)
	}

	if *callsign != "" {
		config.Callsign = *callsign
	}
	if *dest != "" {
		config.Dest = *dest
	}
	if *path != "" {
		config.Path = *path
	}
	if *output != "" {
		config.Output = *output
	}
	if *format != "" {
		config.Format = *format
	}
	if *verbose {
		config.Debug = true
	}
	if pflag.NArg() > 0 {
		config.Info = pflag.Arg(0)
	}

	aprstx.SetDebug(config.Debug)

	if config.Callsign == "" {
		logger.Error("a callsign is required (-c)")
		pflag.Usage()
		os.Exit(1)
	}

	if err := config.Validate(); err != nil {
		logger.Fatal("configuration", "err", err)
	}

	if *play {
		var audio, err = aprstx.GenerateAudio(config)
		if err != nil {
			logger.Fatal("generate", "err", err)
		}
		if err := aprstx.AudioPlay(audio, config.Modem.SamplesPerSec); err != nil {
			logger.Fatal("playback", "err", err)
		}
		return
	}

	var name string
	if name, err = aprstx.GenerateToFile(config); err != nil {
		logger.Fatal("generate", "err", err)
	}

	logger.Info("transmission written", "output", name, "format", config.Format)
}
