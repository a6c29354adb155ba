package client

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
)

// restyLogger routes resty's debug output into zerolog.
type restyLogger struct{}

func (restyLogger) Errorf(format string, v ...any) {
	log.Error().Str("component", "dayminder-client").Msg(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (restyLogger) Warnf(format string, v ...any) {
	log.Warn().Str("component", "dayminder-client").Msg(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (restyLogger) Debugf(format string, v ...any) {
	log.Debug().Str("component", "dayminder-client").Msg(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// debugLoggingRequested reports whether DAYMINDER_DEBUG or DEBUG is "true".
func debugLoggingRequested() bool {
	return os.Getenv("DAYMINDER_DEBUG") == "true" || os.Getenv("DEBUG") == "true"
}
