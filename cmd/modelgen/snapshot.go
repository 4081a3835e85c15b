package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"modelgen/internal/diag"
	"modelgen/internal/modelfile"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot [flags] <model>",
	Short: "Write a model as a binary snapshot",
	Long: `Validate a TOML model and write it as a msgpack snapshot that gen and check
accept in place of the TOML file.`,
	Args: cobra.ExactArgs(1),
	RunE: runSnapshot,
}

func init() {
	snapshotCmd.Flags().StringP("output", "o", "", "snapshot path (default: the model path with "+modelfile.SnapshotExt+")")
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	quiet, err := quietFlag(cmd)
	if err != nil {
		return err
	}
	input := args[0]
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + modelfile.SnapshotExt
	}
	if filepath.Clean(output) == filepath.Clean(input) {
		return fmt.Errorf("snapshot would overwrite its input %s", input)
	}

	doc, err := modelfile.ReadDocument(input)
	if err != nil {
		return err
	}
	bag := diag.NewBag(256)
	if _, err := modelfile.Resolve(doc, input, diag.BagReporter{Bag: bag}); err != nil {
		printDiagnostics(cmd.ErrOrStderr(), bag, quiet)
		return err
	}
	if err := modelfile.WriteSnapshot(output, doc); err != nil {
		return err
	}
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", output)
	}
	return nil
}
