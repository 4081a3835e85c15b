package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"modelgen/internal/logs"
	"modelgen/internal/project"
)

var cleanups []func(failed bool)

func runCleanups(failed bool) {
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i](failed)
	}
	cleanups = nil
}

// setupCommand applies --color, installs the logger, attaches a tracer to
// the command context and starts the requested profilers.
func setupCommand(cmd *cobra.Command, _ []string) error {
	useColor, err := colorEnabled(cmd, os.Stdout)
	if err != nil {
		return err
	}
	color.NoColor = !useColor

	if err := setupLogging(cmd); err != nil {
		return err
	}
	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	cleanups = append(cleanups, cleanup)

	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	cleanups = append(cleanups, stopProfiling)
	return nil
}

func colorEnabled(cmd *cobra.Command, f *os.File) (bool, error) {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(colorFlag)) {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "", "auto":
		return isTerminal(f), nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorFlag)
	}
}

// setupLogging merges the manifest [log] table (when a valid manifest is
// found) with the --log-* flags.
func setupLogging(cmd *cobra.Command) error {
	cfg := logs.Config{Level: "warn"}
	if m, ok, err := project.LoadManifest("."); err == nil && ok {
		cfg = m.Config.Log.LogsConfig()
		if cfg.Level == "" {
			cfg.Level = "warn"
		}
	}
	flags := cmd.Root().PersistentFlags()
	if flags.Changed("log-level") {
		level, err := flags.GetString("log-level")
		if err != nil {
			return fmt.Errorf("failed to get log-level flag: %w", err)
		}
		cfg.Level = level
	}
	if flags.Changed("log-file") {
		file, err := flags.GetString("log-file")
		if err != nil {
			return fmt.Errorf("failed to get log-file flag: %w", err)
		}
		cfg.File = file
	}
	useColor, err := colorEnabled(cmd, os.Stderr)
	if err != nil {
		return err
	}
	cfg.Color = useColor
	return logs.Init("modelgen", cfg)
}

func quietFlag(cmd *cobra.Command) (bool, error) {
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return false, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	return quiet, nil
}
