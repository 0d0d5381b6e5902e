// Package logger centralizes logrus setup so every command logs the same way.
package logger

import (
	"os"

	log "github.com/sirupsen/logrus"
)

func init() {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
}

// SetVerbosity maps the CLI verbosity knob onto logrus levels:
// 0 errors only, 1 info, 2 debug, 3+ trace.
func SetVerbosity(v int) {
	switch {
	case v <= 0:
		log.SetLevel(log.ErrorLevel)
	case v == 1:
		log.SetLevel(log.InfoLevel)
	case v == 2:
		log.SetLevel(log.DebugLevel)
	default:
		log.SetLevel(log.TraceLevel)
	}
}
