package main

import (
	"errors"
	"os"

	"github.com/danmuck/rtcctl/internal/logging"
	"github.com/rs/zerolog/log"
)

func main() {
	logging.ConfigureRuntime()
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errReported) {
			log.Error().Err(err).Msg("rtcctl failed")
		}
		os.Exit(1)
	}
}
