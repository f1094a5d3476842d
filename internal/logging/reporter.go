package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DiagnosticReporter writes one error line per rejected control option.
// A nil Logger uses the global logger.
type DiagnosticReporter struct {
	Logger *zerolog.Logger
}

func (r DiagnosticReporter) Report(err error) {
	if err == nil {
		return
	}
	logger := r.Logger
	if logger == nil {
		logger = &log.Logger
	}
	logger.Error().Msg(err.Error())
}
