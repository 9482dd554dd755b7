// Copyright (C) 2025 Kevnet IO (oss@kevnet.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"log"
	"os"

	"github.com/kevnet-io/rulate/cmd/rulate/config"
	"github.com/kevnet-io/rulate/pkg/logging"
)

// logger is the process-wide structured logger, configured from the
// loaded config in initLogger.
var logger = logging.Default()

func main() {
	if err := config.Load(); err != nil {
		log.Fatalf("Error loading the configuration: %v", err)
	}
	initLogger()
	defer logger.Close()

	if err := rootCmd.Execute(); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func initLogger() {
	level := logging.LevelInfo
	switch config.Global.Logging.Level {
	case "debug":
		level = logging.LevelDebug
	case "warn":
		level = logging.LevelWarn
	case "error":
		level = logging.LevelError
	}
	logger = logging.New(logging.Config{
		Level:   level,
		LogDir:  config.Global.Logging.Dir,
		Service: "cli",
		Quiet:   true, // the ux package owns the terminal
	})
}
