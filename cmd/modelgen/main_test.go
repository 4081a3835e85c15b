package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"modelgen/internal/codegen"
	"modelgen/internal/diag"
	"modelgen/internal/model"
	"modelgen/internal/pipeline"
)

// resetFlags restores every flag of cmd and its children to its default.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	runCleanups(err != nil)
	return out.String(), err
}

func readText(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func TestInitThenGenFromManifest(t *testing.T) {
	root := filepath.Join(t.TempDir(), "shop")
	out, err := execute(t, "init", root)
	if err != nil {
		t.Fatalf("init: %v\n%s", err, out)
	}
	if _, err := execute(t, "init", root); err == nil || !strings.Contains(err.Error(), "already initialized") {
		t.Fatalf("second init err = %v", err)
	}

	t.Chdir(root)
	out, err = execute(t, "gen", "--ui", "off")
	if err != nil {
		t.Fatalf("gen: %v\n%s", err, out)
	}
	if !strings.Contains(out, "generated 2 file(s) for model.toml") {
		t.Fatalf("unexpected output:\n%s", out)
	}

	order := readText(t, filepath.Join(root, "model", "Order.java"))
	for _, want := range []string{
		"    private Customer customer;\n",
		"        this.customer = customer;\n",
		"    public String label() {\n",
		"        String who = customer.getName();\n",
	} {
		if !strings.Contains(order, want) {
			t.Fatalf("Order.java missing %q:\n%s", want, order)
		}
	}
	customer := readText(t, filepath.Join(root, "model", "Customer.java"))
	if !strings.Contains(customer, "        return name;\n") {
		t.Fatalf("getter body missing:\n%s", customer)
	}
}

func TestGenUpdateKeepsEdits(t *testing.T) {
	root := t.TempDir()
	if _, err := execute(t, "init", root); err != nil {
		t.Fatal(err)
	}
	model := filepath.Join(root, "model.toml")
	if _, err := execute(t, "gen", "--ui", "off", "--quiet", model); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(root, "model", "Customer.java")
	edited := strings.Replace(readText(t, path), "        return name;\n", "        log(name);\n        return name;\n", 1)
	if err := os.WriteFile(path, []byte(edited), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := execute(t, "gen", "--ui", "off", "--update", model); err != nil {
		t.Fatal(err)
	}
	if got := readText(t, path); got != edited {
		t.Fatalf("update lost the edit:\n%s", got)
	}
	if _, err := execute(t, "gen", "--ui", "off", model); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(readText(t, path), "log(name)") {
		t.Fatalf("overwrite kept the edit")
	}
}

func TestGenWithoutManifestOrArgs(t *testing.T) {
	t.Chdir(t.TempDir())
	_, err := execute(t, "gen", "--ui", "off")
	if err == nil || !strings.Contains(err.Error(), "no modelgen.toml found") {
		t.Fatalf("err = %v", err)
	}
}

func TestGenRejectsBadFlags(t *testing.T) {
	root := t.TempDir()
	if _, err := execute(t, "init", root); err != nil {
		t.Fatal(err)
	}
	model := filepath.Join(root, "model.toml")
	tests := [][]string{
		{"gen", "--ui", "maybe", model},
		{"gen", "--ui", "off", "--merge", "diff3", model},
		{"gen", "--ui", "off", "--newline", "cr", model},
		{"--color", "sometimes", "gen", "--ui", "off", model},
		{"--trace-level", "loud", "gen", "--ui", "off", model},
	}
	for _, args := range tests {
		if _, err := execute(t, args...); err == nil {
			t.Errorf("%v: expected an error", args)
		}
	}
}

func TestCheckReportsTraceWarnings(t *testing.T) {
	dir := t.TempDir()
	model := filepath.Join(dir, "m.toml")
	body := `[[class]]
name = "A"

[[sequence_diagram]]
name = "s"

  [[sequence_diagram.participant]]
  name = "a"
  class = "A"

  [[sequence_diagram.message]]
  kind = "return"
  rank = 1
  from = "a"
  to = "a"
`
	if err := os.WriteFile(model, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := execute(t, "check", model)
	if err != nil {
		t.Fatalf("check: %v\n%s", err, out)
	}
	if !strings.Contains(out, "1 rejected") || !strings.Contains(out, "1 warning(s)") {
		t.Fatalf("summary:\n%s", out)
	}
	if _, err := execute(t, "check", "--warnings-as-errors", model); err == nil {
		t.Fatalf("warnings-as-errors passed")
	}
	if _, err := os.Stat(filepath.Join(dir, "m")); !os.IsNotExist(err) {
		t.Fatalf("check wrote output: %v", err)
	}
}

func TestSnapshotCommand(t *testing.T) {
	root := t.TempDir()
	if _, err := execute(t, "init", root); err != nil {
		t.Fatal(err)
	}
	model := filepath.Join(root, "model.toml")
	snapDir := t.TempDir()
	snap := filepath.Join(snapDir, "model.mpk")
	if _, err := execute(t, "snapshot", model, "-o", snap); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "gen", "--ui", "off", model, snap); err != nil {
		t.Fatal(err)
	}
	want := readText(t, filepath.Join(root, "model", "Order.java"))
	if got := readText(t, filepath.Join(snapDir, "model", "Order.java")); got != want {
		t.Fatalf("snapshot output differs:\n%s\nwant:\n%s", got, want)
	}
	if _, err := execute(t, "snapshot", model, "-o", model); err == nil {
		t.Fatalf("snapshot over its input accepted")
	}
}

func TestVersionJSON(t *testing.T) {
	out, err := execute(t, "version", "--format", "json", "--full")
	if err != nil {
		t.Fatal(err)
	}
	var payload versionPayload
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if payload.Tool != "modelgen" || payload.Version == "" || payload.GitCommit == "" {
		t.Fatalf("payload = %+v", payload)
	}
	if _, err := execute(t, "version", "--format", "yaml"); err == nil {
		t.Fatalf("yaml format accepted")
	}
}

func TestReportGen(t *testing.T) {
	bag := diag.NewBag(8)
	diag.Warnf(diag.BagReporter{Bag: bag}, diag.TrcOrphanReturn, diag.AtRank("s", 3), "return without an open call")
	outcomes := []genOutcome{
		{model: "/p/a.toml", res: pipeline.Result{Written: 2, Classifiers: make([]model.Classifier, 3), Diagnostics: bag}},
		{model: "/p/b.toml", res: pipeline.Result{Written: codegen.NoOutput}},
		{model: "/p/c.toml", err: errors.New("load model: boom")},
	}
	var out, errOut bytes.Buffer
	err := reportGen(&out, &errOut, "/p", outcomes, false, false)
	if err == nil || !strings.Contains(err.Error(), "c.toml: load model: boom") {
		t.Fatalf("err = %v", err)
	}
	for _, want := range []string{
		"generated 2 file(s) for a.toml\n",
		"  1 classifier(s) skipped, see the log\n",
		"b.toml: nothing to generate\n",
	} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("missing %q in:\n%s", want, out.String())
		}
	}
	if !strings.Contains(errOut.String(), "return without an open call") {
		t.Fatalf("diagnostic not printed: %q", errOut.String())
	}
}

func TestProgressViewSelection(t *testing.T) {
	for in, want := range map[string]progressView{"": viewAuto, "AUTO": viewAuto, "on": viewAlways, " off ": viewNever} {
		got, err := parseProgressView(in)
		if err != nil || got != want {
			t.Errorf("parseProgressView(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := parseProgressView("tui"); err == nil {
		t.Fatalf("expected error")
	}
	if !viewAlways.interactive(false, nil) || viewNever.interactive(false, nil) {
		t.Fatalf("explicit choices ignored")
	}
	if viewAlways.interactive(true, nil) {
		t.Fatalf("quiet run drew the progress view")
	}
}

func TestFormatPathForOutput(t *testing.T) {
	tests := []struct{ root, path, want string }{
		{"/p", "/p/m/a.toml", "m/a.toml"},
		{"/p", "/q/a.toml", "/q/a.toml"},
		{"", "/q/a.toml", "/q/a.toml"},
	}
	for _, tt := range tests {
		if got := formatPathForOutput(tt.root, filepath.FromSlash(tt.path)); got != tt.want && got != filepath.FromSlash(tt.want) {
			t.Errorf("formatPathForOutput(%q, %q) = %q", tt.root, tt.path, got)
		}
	}
}
