package main

import (
	"os"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-odds/internal/server"
)

// ServeCmd runs the WebSocket odds service
type ServeCmd struct {
	Config string `short:"c" help:"HCL configuration file" default:"holdem-odds.hcl"`
	Debug  bool   `help:"Enable debug logging"`
}

func (c *ServeCmd) Run() error {
	config, err := server.LoadConfig(c.Config)
	if err != nil {
		return err
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
	if c.Debug {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(parseLogLevel(config.Server.LogLevel))
	}

	srv, err := server.NewServer(config, logger)
	if err != nil {
		return err
	}
	return srv.Start()
}

func parseLogLevel(level string) log.Level {
	switch level {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
