package main

/*------------------------------------------------------------------
 *
 * Name:	francd
 *
 * Purpose:	Telemetry beacon daemon.
 *
 * Description:	Polls the sensor board over the serial interconnect
 *		once per cycle, formats the report as an APRS status
 *		text, and writes a fresh transmission for each one.
 *		The SDR side picks the files up on its own clock; the
 *		generator never blocks on the radio.
 *
 *------------------------------------------------------------------*/

import (
	"time"

	"github.com/spf13/pflag"

	aprstx "github.com/kg7x/aprstx/src"
)

func main() {

	var configFile = pflag.String("config", "franc.yaml", "YAML configuration file.")
	var callsign = pflag.StringP("callsign", "c", "", "Your callsign, e.g. N0CALL-9.")
	var serialPort = pflag.StringP("serial", "s", "", "Serial port of the sensor board.")
	var output = pflag.StringP("output", "o", "beacon-%Y%m%d-%H%M%S.s8", "Output file pattern, strftime conversions allowed.")
	var interval = pflag.DurationP("interval", "i", time.Second, "Delay between polling cycles.")
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
	if *serialPort != "" {
		config.Serial.Port = *serialPort
	}
	if *output != "" {
		config.Output = *output
	}
	if *verbose {
		config.Debug = true
	}
	if config.Format == "" || config.Format == "pcm" || config.Format == "wav" {
		config.Format = "s8"
	}

	aprstx.SetDebug(config.Debug)

	if config.Callsign == "" {
		logger.Fatal("a callsign is required (-c or config file)")
	}
	if err := config.Validate(); err != nil {
		logger.Fatal("configuration", "err", err)
	}

	logger.Info("connecting to sensor board", "port", config.Serial.Port, "baud", config.Serial.Baud)

	port, err := aprstx.InterconnectOpen(&config.Serial)
	if err != nil {
		logger.Fatal("interconnect", "err", err)
	}
	defer port.Close()

	logger.Info("serial handshake successful", "port", config.Serial.Port)

	for {
		var tm, pollErr = aprstx.PollTelemetry(port)
		if pollErr != nil {
			logger.Error("telemetry", "err", pollErr)
			time.Sleep(*interval)
			continue
		}

		config.Info = tm.InfoText()
		logger.Info("telemetry received", "timestamp", tm.Timestamp, "info", config.Info)

		var name, genErr = aprstx.GenerateToFile(config)
		if genErr != nil {
			logger.Error("generate", "err", genErr)
		} else {
			logger.Info("transmission written", "output", name)
		}

		time.Sleep(*interval)
	}
}
