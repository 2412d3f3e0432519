package main

import (
	"fmt"
	"os"
	"strings"

	"optionscout/internal/cli"
	"optionscout/internal/config"
	"optionscout/internal/logging"
)

// configDirFromArgs pre-scans the arguments for --config so the config
// is loaded before cobra parses flags.
func configDirFromArgs(args []string) string {
	for i, arg := range args {
		if arg == "--config" && i+1 < len(args) {
			return args[i+1]
		}
		if strings.HasPrefix(arg, "--config=") {
			return strings.TrimPrefix(arg, "--config=")
		}
	}
	return config.DefaultConfigDir()
}

func main() {
	logger := logging.NewLogger()

	cfg, err := config.Load(configDirFromArgs(os.Args[1:]))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load configuration")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	rootCmd, err := cli.NewRootCmd(cfg, logger)
	if err != nil {
		logger.Error().Err(err).Msg("failed to wire application")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := rootCmd.Execute(); err != nil {
		logger.Error().Err(err).Msg("command failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
