package main

import (
	"os"

	"github.com/urfave/cli/v3"

	"github.com/MitchMatt/Kenyan-Generative-Lit/internal/logger"
)

var (
	checkpointPath string
	corpusPath     string
	logLevel       string
	logFormat      string
)

func checkpointFlag() cli.Flag {
	return &cli.StringFlag{
		Name:        "checkpoint",
		Aliases:     []string{"m"},
		Usage:       "path to a trained checkpoint file",
		Value:       "kenlit.json",
		Destination: &checkpointPath,
	}
}

func corpusFlag() cli.Flag {
	return &cli.StringFlag{
		Name:        "corpus",
		Usage:       "path to a corpus file (one sentence per line); built-in corpus when empty",
		Destination: &corpusPath,
	}
}

func loggingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (text, json)",
			Value:       "text",
			Destination: &logFormat,
		},
	}
}

// newLogger builds the logger the current command's logging flags ask for.
func newLogger() logger.Logger {
	level := logger.ParseLevel(logLevel)
	if logFormat == "json" {
		return logger.JSON(os.Stderr, level)
	}
	return logger.Text(os.Stderr, level)
}
