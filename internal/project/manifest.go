package project

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"modelgen/internal/emit"
	"modelgen/internal/logs"
	"modelgen/internal/merge"
)

// ErrNoManifest is returned when no modelgen.toml is found.
var ErrNoManifest = errors.New("no " + ManifestName + " found")

// Manifest is a loaded modelgen.toml.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config mirrors the manifest tables.
type Config struct {
	Package  PackageConfig  `toml:"package"`
	Generate GenerateConfig `toml:"generate"`
	Log      LogConfig      `toml:"log"`
}

type PackageConfig struct {
	Name  string `toml:"name"`
	Model string `toml:"model"`
}

// GenerateConfig holds the emission and merge settings.
type GenerateConfig struct {
	Extension string `toml:"extension"`
	Indent    int    `toml:"indent"`
	Tabs      bool   `toml:"tabs"`
	Newline   string `toml:"newline"`
	Update    bool   `toml:"update"`
	Merge     string `toml:"merge"`
}

type LogConfig struct {
	Level      string `toml:"level"`
	File       string `toml:"file"`
	MaxSize    int    `toml:"max_size"`
	MaxBackups int    `toml:"max_backups"`
	MaxAge     int    `toml:"max_age"`
	Compress   bool   `toml:"compress"`
}

// LoadManifest finds and loads the manifest above startDir. ok is false
// when there is none.
func LoadManifest(startDir string) (*Manifest, bool, error) {
	manifestPath, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := LoadConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

// LoadConfig decodes and validates the manifest at path.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return Config{}, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "model") || strings.TrimSpace(cfg.Package.Model) == "" {
		return Config{}, fmt.Errorf("%s: missing [package].model", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.Generate.validate(); err != nil {
		return Config{}, fmt.Errorf("%s: [generate]: %w", path, err)
	}
	if cfg.Log.MaxSize < 0 || cfg.Log.MaxBackups < 0 || cfg.Log.MaxAge < 0 {
		return Config{}, fmt.Errorf("%s: [log]: rotation limits must not be negative", path)
	}
	return cfg, nil
}

func (g GenerateConfig) validate() error {
	if g.Indent < 0 {
		return fmt.Errorf("indent must not be negative, got %d", g.Indent)
	}
	if _, ok := emit.ParseNewline(g.Newline); !ok {
		return fmt.Errorf("invalid newline %q (expected auto|lf|crlf)", g.Newline)
	}
	if _, err := merge.ParseStrategy(g.Merge); err != nil {
		return err
	}
	if strings.ContainsAny(g.Extension, `/\`) {
		return fmt.Errorf("invalid extension %q", g.Extension)
	}
	return nil
}

// ModelPath returns the model file resolved against the manifest directory.
func (m *Manifest) ModelPath() string {
	model := filepath.FromSlash(strings.TrimSpace(m.Config.Package.Model))
	if filepath.IsAbs(model) {
		return model
	}
	return filepath.Join(m.Root, model)
}

// Name returns [package].name, or the manifest directory name.
func (m *Manifest) Name() string {
	if name := strings.TrimSpace(m.Config.Package.Name); name != "" {
		return name
	}
	return filepath.Base(m.Root)
}

// EmitOptions converts [generate] into emitter options. The merge strategy
// decides whether user regions are fenced.
func (g GenerateConfig) EmitOptions() emit.Options {
	nl, _ := emit.ParseNewline(g.Newline)
	strategy, _ := merge.ParseStrategy(g.Merge)
	return emit.Options{
		IndentWidth: g.Indent,
		UseTabs:     g.Tabs,
		Newline:     nl,
		Ext:         strings.TrimSpace(g.Extension),
		Fenced:      strategy == merge.StrategyFenced,
	}
}

// Strategy returns the configured merge strategy.
func (g GenerateConfig) Strategy() merge.Strategy {
	s, _ := merge.ParseStrategy(g.Merge)
	return s
}

// LogsConfig converts [log] into logger settings.
func (l LogConfig) LogsConfig() logs.Config {
	return logs.Config{
		Level:      l.Level,
		File:       l.File,
		MaxSize:    l.MaxSize,
		MaxBackups: l.MaxBackups,
		MaxAge:     l.MaxAge,
		Compress:   l.Compress,
	}
}

// Template returns the manifest written by `modelgen init`.
func Template(name, model string) string {
	return fmt.Sprintf(`# modelgen project manifest
[package]
name = %q
model = %q

[generate]
extension = ".java"
indent = 4
newline = "auto"
update = true
merge = "lines"

[log]
level = "info"
`, name, model)
}
