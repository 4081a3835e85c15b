package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"modelgen/internal/emit"
	"modelgen/internal/merge"
)

func writeManifest(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, Template("shop", "models/shop.toml"))
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	m, ok, err := LoadManifest(nested)
	if err != nil || !ok {
		t.Fatalf("LoadManifest: ok=%v err=%v", ok, err)
	}
	if m.Root != root {
		t.Fatalf("root = %q, want %q", m.Root, root)
	}
	if got, want := m.ModelPath(), filepath.Join(root, "models", "shop.toml"); got != want {
		t.Fatalf("ModelPath = %q, want %q", got, want)
	}
	if m.Name() != "shop" {
		t.Fatalf("Name = %q", m.Name())
	}
	if !m.Config.Generate.Update || m.Config.Generate.Strategy() != merge.StrategyLines {
		t.Fatalf("generate = %+v", m.Config.Generate)
	}
	opt := m.Config.Generate.EmitOptions()
	if opt.IndentWidth != 4 || opt.Ext != ".java" || opt.Fenced {
		t.Fatalf("emit options = %+v", opt)
	}
	if lc := m.Config.Log.LogsConfig(); lc.Level != "info" {
		t.Fatalf("log config = %+v", lc)
	}
}

func TestLoadManifestMissing(t *testing.T) {
	m, ok, err := LoadManifest(t.TempDir())
	if err != nil || ok || m != nil {
		t.Fatalf("LoadManifest = %v, %v, %v", m, ok, err)
	}
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"no package", "[generate]\nindent = 2\n", "missing [package]"},
		{"no model", "[package]\nname = \"x\"\n", "missing [package].model"},
		{"blank model", "[package]\nmodel = \"  \"\n", "missing [package].model"},
		{"unknown key", "[package]\nmodel = \"m.toml\"\nmain = \"x\"\n", "unknown key \"package.main\""},
		{"bad newline", "[package]\nmodel = \"m.toml\"\n[generate]\nnewline = \"cr\"\n", "invalid newline"},
		{"bad merge", "[package]\nmodel = \"m.toml\"\n[generate]\nmerge = \"diff3\"\n", "unknown merge strategy"},
		{"negative indent", "[package]\nmodel = \"m.toml\"\n[generate]\nindent = -1\n", "indent must not be negative"},
		{"negative rotation", "[package]\nmodel = \"m.toml\"\n[log]\nmax_age = -3\n", "rotation limits"},
		{"syntax", "[package\n", "failed to parse TOML"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeManifest(t, t.TempDir(), tt.body)
			_, err := LoadConfig(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestFencedMergeEnablesRegions(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "[package]\nmodel = \"m.toml\"\n[generate]\nmerge = \"fenced\"\nnewline = \"crlf\"\ntabs = true\nextension = \"kt\"\n")
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	opt := cfg.Generate.EmitOptions()
	if !opt.Fenced || !opt.UseTabs || opt.Newline != emit.NewlineCRLF || opt.Ext != "kt" {
		t.Fatalf("emit options = %+v", opt)
	}
	if cfg.Generate.Strategy() != merge.StrategyFenced {
		t.Fatalf("strategy = %v", cfg.Generate.Strategy())
	}
}

func TestNameFallsBackToDirectory(t *testing.T) {
	root := filepath.Join(t.TempDir(), "inventory")
	m := &Manifest{Root: root, Config: Config{Package: PackageConfig{Model: "/abs/m.toml"}}}
	if m.Name() != "inventory" {
		t.Fatalf("Name = %q", m.Name())
	}
	if got := m.ModelPath(); got != filepath.FromSlash("/abs/m.toml") {
		t.Fatalf("ModelPath = %q", got)
	}
}
