package aprstx

/*------------------------------------------------------------------
 *
 * Purpose:	Serial link to the telemetry source.
 *
 *		The flight computer's sensor board sits on the other
 *		end of a USB serial line.  The protocol is line based:
 *
 *		  us:   HELLO\n		(once, at startup)
 *		  them: ACKHELLO\n
 *		  us:   SEND\n		(each polling cycle)
 *		  them: {"timestamp": ... }\n
 *		  us:   ACK\n
 *
 *		The JSON report is parsed and rendered as the APRS
 *		information field (see InfoText).
 *		The pipeline itself never touches the serial port; the
 *		beacon daemon polls here and hands the resulting text
 *		to Generate.
 *
 *----------------------------------------------------------------*/

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"go.bug.st/serial"
)

var interconnect_attempts = 50
var interconnect_poll_interval = 100 * time.Millisecond

/*------------------------------------------------------------------
 *
 * Name:	InterconnectOpen
 *
 * Purpose:	Open the serial port (8N1, no flow control) and
 *		perform the HELLO handshake.
 *
 * Returns:	The open port, or an error if the port cannot be
 *		opened or the peer never answers.
 *
 *----------------------------------------------------------------*/

func InterconnectOpen(sc *SerialConfig) (serial.Port, error) {

	var mode = &serial.Mode{
		BaudRate: sc.Baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	var port, err = serial.Open(sc.Port, mode)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", sc.Port, err)
	}

	if err := interconnect_handshake(port); err != nil {
		port.Close()
		return nil, fmt.Errorf("handshake on %s: %w", sc.Port, err)
	}

	return port, nil
}

func interconnect_handshake(port io.ReadWriter) error {

	if _, err := port.Write([]byte("HELLO\n")); err != nil {
		return err
	}

	var buf [128]byte
	for attempt := 0; attempt < interconnect_attempts; attempt++ {
		time.Sleep(interconnect_poll_interval)
		var n, err = port.Read(buf[:])
		if err != nil && err != io.EOF {
			return err
		}
		if strings.Contains(string(buf[:n]), "ACKHELLO") {
			return nil
		}
	}
	return fmt.Errorf("no ACKHELLO after %d attempts", interconnect_attempts)
}

/*------------------------------------------------------------------
 *
 * Name:	request_json
 *
 * Purpose:	Ask the sensor board for one telemetry report.
 *
 * Description:	Send SEND, read lines until one looks like a complete
 *		JSON object, acknowledge, return it.  Gives up after
 *		the usual attempt budget and returns what it has
 *		(possibly empty); the caller decides what an empty
 *		report means.
 *
 *----------------------------------------------------------------*/

func request_json(port io.ReadWriter) (string, error) {

	if _, err := port.Write([]byte("SEND\n")); err != nil {
		return "", err
	}

	var line string
	for attempt := 0; attempt < interconnect_attempts; attempt++ {
		var next, err = read_line(port)
		if err != nil {
			return "", err
		}
		line = strings.TrimSpace(next)
		if strings.HasPrefix(line, "{") && strings.HasSuffix(line, "}") {
			break
		}
	}

	if _, err := port.Write([]byte("ACK\n")); err != nil {
		return line, err
	}
	return line, nil
}

func read_line(port io.Reader) (string, error) {

	var sb strings.Builder
	var buf [1]byte

	for {
		var n, err = port.Read(buf[:])
		if err == io.EOF || n == 0 {
			time.Sleep(interconnect_poll_interval)
			return sb.String(), nil
		}
		if err != nil {
			return sb.String(), err
		}
		if buf[0] == '\n' {
			return sb.String(), nil
		}
		sb.WriteByte(buf[0])
	}
}

/*
 * Telemetry fields used for the information text.  The sensor board
 * sends a much larger record; unknown fields are ignored.
 */

type Telemetry struct {
	Timestamp     int64   `json:"timestamp"`
	Temperature   float64 `json:"bme_temperature"`
	Pressure      float64 `json:"bme_pressure"`
	Humidity      float64 `json:"bme_humidity"`
	Altitude      float64 `json:"bme_altitude"`
	AirQualityIdx int     `json:"ens_aqi"`
}

/*------------------------------------------------------------------
 *
 * Name:	PollTelemetry
 *
 * Purpose:	One polling cycle: request and parse.  Formatting
 *		the report is left to InfoText.
 *
 * Returns:	The parsed report, or an error when the reply was
 *		empty or not valid JSON (matching the original's
 *		"JSON empty" / "JSON parse error" cases).
 *
 *----------------------------------------------------------------*/

func PollTelemetry(port io.ReadWriter) (*Telemetry, error) {

	var line, err = request_json(port)
	if err != nil {
		return nil, err
	}
	if line == "" {
		return nil, fmt.Errorf("empty telemetry reply")
	}

	var tm Telemetry
	if err := json.Unmarshal([]byte(line), &tm); err != nil {
		return nil, fmt.Errorf("telemetry parse: %w", err)
	}
	if tm.Timestamp == 0 {
		return nil, fmt.Errorf("telemetry report missing timestamp")
	}
	return &tm, nil
}

// InfoText renders the report as an APRS status text.  The leading
// ">" marks an APRS status report; receivers show it verbatim.
func (tm *Telemetry) InfoText() string {
	return fmt.Sprintf(">T=%.1fC P=%.1fhPa H=%.0f%% Alt=%.0fm AQI=%d @%d",
		tm.Temperature, tm.Pressure, tm.Humidity, tm.Altitude, tm.AirQualityIdx, tm.Timestamp)
}
