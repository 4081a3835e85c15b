package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"modelgen/internal/logs"
	"modelgen/internal/pipeline"
	"modelgen/internal/project"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [model]",
	Short: "Validate a model without writing files",
	Long: `Load a model, flatten its class diagrams and replay its sequence diagrams,
then print every diagnostic. Nothing is written.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().Bool("warnings-as-errors", false, "exit non-zero when warnings are reported")
}

func runCheck(cmd *cobra.Command, args []string) error {
	strict, err := cmd.Flags().GetBool("warnings-as-errors")
	if err != nil {
		return err
	}
	quiet, err := quietFlag(cmd)
	if err != nil {
		return err
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	modelPath, err := checkTarget(args)
	if err != nil {
		return err
	}

	res, runErr := pipeline.Run(cmd.Context(), &pipeline.Request{
		ModelPath:      modelPath,
		CheckOnly:      true,
		MaxDiagnostics: maxDiagnostics,
		Logger:         logs.L(),
	})
	printDiagnostics(os.Stderr, res.Diagnostics, quiet)
	if runErr != nil {
		return runErr
	}
	errs, warnings := countSeverities(res.Diagnostics)
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d classifier(s), %d message(s) accepted, %d rejected, %d warning(s)\n",
			filepath.Base(modelPath), len(res.Classifiers), res.Trace.Accepted, res.Trace.Rejected, warnings)
	}
	if errs > 0 {
		return fmt.Errorf("%d error(s) found", errs)
	}
	if strict && warnings > 0 {
		return fmt.Errorf("%d warning(s) treated as errors", warnings)
	}
	return nil
}

func checkTarget(args []string) (string, error) {
	if len(args) == 1 {
		return filepath.Abs(args[0])
	}
	manifest, found, err := project.LoadManifest(".")
	if err != nil {
		return "", err
	}
	if !found {
		return "", errors.New(noManifestMessage)
	}
	return manifest.ModelPath(), nil
}
