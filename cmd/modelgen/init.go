package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"modelgen/internal/project"
)

const sampleModelName = "model.toml"

var initCmd = &cobra.Command{
	Use:   "init [path|name]",
	Short: "Initialize a new modelgen project",
	Long: `Initialize a modelgen project by creating a manifest (modelgen.toml) and a
sample model (model.toml). If [path|name] is omitted, initializes the current
directory. A non-existing directory is created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

// runInit writes modelgen.toml and, unless one exists, the sample model into
// the target directory. An existing manifest is never overwritten.
func runInit(cmd *cobra.Command, args []string) error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	target := wd
	if len(args) == 1 && args[0] != "." {
		target = args[0]
		if !filepath.IsAbs(target) {
			target = filepath.Join(wd, target)
		}
	}

	if st, err := os.Stat(target); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err := os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", target, err)
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	name := strings.TrimSpace(filepath.Base(target))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "model-project"
	}

	manifestPath := filepath.Join(target, project.ManifestName)
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("project already initialized: %s exists", manifestPath)
	}
	if err := os.WriteFile(manifestPath, []byte(project.Template(name, sampleModelName)), 0o644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	modelPath := filepath.Join(target, sampleModelName)
	createdModel := false
	if _, err := os.Stat(modelPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(modelPath, []byte(sampleModel(name)), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", sampleModelName, err)
		}
		createdModel = true
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Initialized modelgen project in %s\n", formatPathForOutput(wd, target))
	fmt.Fprintf(out, "  - %s\n", project.ManifestName)
	if createdModel {
		fmt.Fprintf(out, "  - %s\n", sampleModelName)
	} else {
		fmt.Fprintf(out, "  - %s (existing)\n", sampleModelName)
	}
	return nil
}

// sampleModel is a small model with one association and one traced call.
func sampleModel(name string) string {
	return fmt.Sprintf(`[project]
name = %q

[[class]]
name = "Customer"

  [[class.attribute]]
  name = "name"
  type = "String"

  [[class.method]]
  name = "getName"
  return = "String"

[[class]]
name = "Order"

  [[class.method]]
  name = "Order"
  params = ["Customer customer"]

[[class_diagram]]
name = "structure"

  [[class_diagram.element]]
  kind = "class"
  class = "Customer"

  [[class_diagram.element]]
  kind = "class"
  class = "Order"

  [[class_diagram.element]]
  kind = "association"
  a = "Order"
  b = "Customer"
  role_b = "customer"
  direction = "ab"

[[sequence_diagram]]
name = "label"

  [[sequence_diagram.participant]]
  name = "clerk"
  kind = "actor"

  [[sequence_diagram.participant]]
  name = "order"
  kind = "object"
  class = "Order"

  [[sequence_diagram.participant]]
  name = "customer"
  kind = "object"
  class = "Customer"

  [[sequence_diagram.message]]
  kind = "call"
  rank = 1
  from = "clerk"
  to = "order"
  name = "label"
  return = "String"

  [[sequence_diagram.message]]
  kind = "call"
  rank = 2
  from = "order"
  to = "customer"
  name = "getName"
  return = "String"

  [[sequence_diagram.message]]
  kind = "return"
  rank = 3
  from = "customer"
  to = "order"
  name = "who"

  [[sequence_diagram.message]]
  kind = "return"
  rank = 4
  from = "order"
  to = "clerk"
`, name)
}
