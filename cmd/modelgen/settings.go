package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"modelgen/internal/emit"
	"modelgen/internal/merge"
	"modelgen/internal/project"
)

const noManifestMessage = "no " + project.ManifestName + " found\nplease name the model explicitly, e.g.:\n  modelgen gen path/to/model.toml"

// genSettings is the resolved generation setup shared by every model of
// one invocation.
type genSettings struct {
	Models   []string
	Emit     emit.Options
	Strategy merge.Strategy
	Update   bool
	// Root anchors the paths printed to the user.
	Root string
}

// resolveSettings starts from the manifest found above the working directory
// (required when no model is named) and applies the command flags on top.
func resolveSettings(cmd *cobra.Command, args []string) (*genSettings, error) {
	manifest, found, err := project.LoadManifest(".")
	if err != nil {
		return nil, err
	}
	s := &genSettings{Emit: emit.Options{Newline: emit.HostNewline()}}
	if found {
		gen := manifest.Config.Generate
		s.Emit = gen.EmitOptions()
		s.Strategy = gen.Strategy()
		s.Update = gen.Update
		s.Root = manifest.Root
	}

	switch {
	case len(args) > 0:
		for _, arg := range args {
			path, err := filepath.Abs(arg)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve %q: %w", arg, err)
			}
			s.Models = append(s.Models, path)
		}
	case found:
		s.Models = []string{manifest.ModelPath()}
	default:
		return nil, errors.New(noManifestMessage)
	}
	if s.Root == "" {
		if wd, err := os.Getwd(); err == nil {
			s.Root = wd
		}
	}

	if err := applyGenFlags(cmd, s); err != nil {
		return nil, err
	}
	return s, nil
}

func applyGenFlags(cmd *cobra.Command, s *genSettings) error {
	flags := cmd.Flags()
	if flags.Lookup("update") != nil && flags.Changed("update") {
		update, err := flags.GetBool("update")
		if err != nil {
			return err
		}
		s.Update = update
	}
	if flags.Lookup("merge") != nil && flags.Changed("merge") {
		value, err := flags.GetString("merge")
		if err != nil {
			return err
		}
		strategy, err := merge.ParseStrategy(value)
		if err != nil {
			return err
		}
		s.Strategy = strategy
		s.Emit.Fenced = strategy == merge.StrategyFenced
	}
	if flags.Lookup("newline") != nil && flags.Changed("newline") {
		value, err := flags.GetString("newline")
		if err != nil {
			return err
		}
		nl, ok := emit.ParseNewline(value)
		if !ok {
			return fmt.Errorf("invalid --newline value %q (expected auto|lf|crlf)", value)
		}
		s.Emit.Newline = nl
	}
	if flags.Lookup("indent") != nil && flags.Changed("indent") {
		indent, err := flags.GetInt("indent")
		if err != nil {
			return err
		}
		if indent < 0 {
			return fmt.Errorf("--indent must not be negative")
		}
		s.Emit.IndentWidth = indent
	}
	if flags.Lookup("ext") != nil && flags.Changed("ext") {
		ext, err := flags.GetString("ext")
		if err != nil {
			return err
		}
		if strings.ContainsAny(ext, `/\`) {
			return fmt.Errorf("invalid --ext value %q", ext)
		}
		s.Emit.Ext = ext
	}
	return nil
}

func formatPathForOutput(root, path string) string {
	if root == "" || path == "" {
		return path
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	if strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}

// progressView is the --ui choice of gen.
type progressView string

const (
	viewAuto   progressView = "auto"
	viewAlways progressView = "on"
	viewNever  progressView = "off"
)

func parseProgressView(value string) (progressView, error) {
	switch v := progressView(strings.ToLower(strings.TrimSpace(value))); v {
	case "":
		return viewAuto, nil
	case viewAuto, viewAlways, viewNever:
		return v, nil
	}
	return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
}

// interactive reports whether gen draws the progress view. Quiet runs never
// do; auto draws only when out is a terminal.
func (v progressView) interactive(quiet bool, out *os.File) bool {
	switch {
	case quiet || v == viewNever:
		return false
	case v == viewAlways:
		return true
	}
	return isTerminal(out)
}
