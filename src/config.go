package aprstx

/*------------------------------------------------------------------
 *
 * Purpose:	Configuration for the transmitter.
 *
 *		Defaults are built in; a YAML file can override them;
 *		command line flags override the file.  Same precedence
 *		as the original flight software.
 *
 *----------------------------------------------------------------*/

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type ModemConfig struct {
	SamplesPerSec int     `yaml:"sample_rate"`   /* Audio rate, 48000. */
	Baud          int     `yaml:"baud"`          /* 1200. */
	MarkFreq      int     `yaml:"mark_freq"`     /* 1200 Hz. */
	SpaceFreq     int     `yaml:"space_freq"`    /* 2200 Hz. */
	MarkForOne    bool    `yaml:"mark_for_one"`  /* NRZI level 1 -> mark tone.  Verified on air. */
	Deviation     float64 `yaml:"deviation"`     /* Peak FM deviation, Hz. */
	Interpolation int     `yaml:"interpolation"` /* Upsampling factor to the SDR rate. */
	TxDelayFlags  int     `yaml:"txdelay_flags"` /* Opening flags before the frame. */
	TxTailFlags   int     `yaml:"txtail_flags"`  /* Closing flags after the frame. */
	TxAmplitude   float64 `yaml:"tx_amplitude"`  /* Audio amplitude, 0 .. 1. */
	TxSilenceMs   int     `yaml:"tx_silence_ms"` /* Silence either side of the packet. */
	InfoMax       int     `yaml:"info_max"`      /* Reject info fields longer than this. */
}

type SerialConfig struct {
	Port string `yaml:"port"` /* e.g. /dev/ttyACM0 */
	Baud int    `yaml:"baud"` /* 115200. */
}

type Config struct {
	Callsign string `yaml:"callsign"`
	Dest     string `yaml:"destination"`
	Path     string `yaml:"path"`
	Info     string `yaml:"info"`
	Output   string `yaml:"output"` /* File name, may contain strftime conversions.  Empty for stdout. */
	Format   string `yaml:"format"` /* s8, f32, pcm, wav. */
	Debug    bool   `yaml:"debug"`

	Modem  ModemConfig  `yaml:"modem"`
	Serial SerialConfig `yaml:"serial"`
}

func DefaultConfig() *Config {
	return &Config{
		Dest:   "APRS",
		Path:   "WIDE1-1,WIDE2-1",
		Format: "f32",
		Modem: ModemConfig{
			SamplesPerSec: DEFAULT_SAMPLES_PER_SEC,
			Baud:          DEFAULT_BAUD,
			MarkFreq:      DEFAULT_MARK_FREQ,
			SpaceFreq:     DEFAULT_SPACE_FREQ,
			MarkForOne:    true,
			Deviation:     DEFAULT_DEVIATION,
			Interpolation: DEFAULT_INTERPOLATION,
			TxDelayFlags:  8,
			TxTailFlags:   2,
			TxAmplitude:   0.5,
			TxSilenceMs:   500,
			InfoMax:       DEFAULT_INFO_MAX,
		},
		Serial: SerialConfig{
			Port: "/dev/ttyACM0",
			Baud: 115200,
		},
	}
}

/*------------------------------------------------------------------
 *
 * Name:	LoadConfig
 *
 * Purpose:	Read a YAML configuration file over the defaults.
 *
 * Inputs:	path	- File name.  A missing file is not an error;
 *			  you just get the defaults, like the original
 *			  falling back when franc.cfg is absent.
 *
 *----------------------------------------------------------------*/

func LoadConfig(path string) (*Config, error) {

	var config = DefaultConfig()

	var data, err = os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return config, nil
}

func (config *Config) Validate() error {

	var mc = &config.Modem

	if mc.SamplesPerSec <= 0 || mc.Baud <= 0 {
		return fmt.Errorf("sample_rate and baud must be positive")
	}
	if mc.SamplesPerSec%mc.Baud != 0 {
		return fmt.Errorf("sample_rate %d must be an integer multiple of baud %d", mc.SamplesPerSec, mc.Baud)
	}
	if mc.MarkFreq <= 0 || mc.SpaceFreq <= 0 || mc.MarkFreq >= mc.SamplesPerSec/2 || mc.SpaceFreq >= mc.SamplesPerSec/2 {
		return fmt.Errorf("tone frequencies must sit below the Nyquist rate")
	}
	if mc.Interpolation < 1 {
		return fmt.Errorf("interpolation factor must be at least 1")
	}
	if mc.TxAmplitude <= 0 || mc.TxAmplitude > 1 {
		return fmt.Errorf("tx_amplitude must be in (0, 1]")
	}
	if _, err := FormatFromText(config.Format); err != nil {
		return err
	}
	return nil
}
