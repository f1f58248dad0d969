package aprstx

/*------------------------------------------------------------------
 *
 * Purpose:	Shared logger for the commands.
 *
 *		The pipeline itself never prints; it returns errors.
 *		Anything chatty happens here, at the edges.
 *
 *----------------------------------------------------------------*/

import (
	"os"

	"github.com/charmbracelet/log"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "aprstx",
})

// Logger returns the package logger for use by the commands.
func Logger() *log.Logger {
	return logger
}

// SetDebug switches the package logger between Info and Debug levels.
func SetDebug(debug bool) {
	if debug {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.InfoLevel)
	}
}
