package modelfile

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"modelgen/internal/diag"
	"modelgen/internal/model"
)

// SnapshotExt selects the msgpack decoder in Load.
const SnapshotExt = ".mpk"

// DecodeTOML parses a TOML model document. Keys the document does not
// define are reported as an error.
func DecodeTOML(data []byte, file string) (*Document, error) {
	var doc Document
	meta, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&doc)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", file, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", file, strings.Join(keys, ", "))
	}
	return &doc, nil
}

// ReadDocument reads a TOML document or a msgpack snapshot, chosen by
// extension.
func ReadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), SnapshotExt) {
		return DecodeSnapshot(data, path)
	}
	return DecodeTOML(data, path)
}

// Load reads and resolves the model at path.
func Load(path string, rep diag.Reporter) (*model.Project, error) {
	doc, err := ReadDocument(path)
	if err != nil {
		return nil, err
	}
	p, err := Resolve(doc, path, rep)
	if err != nil {
		return nil, err
	}
	if p.Name == "" {
		base := filepath.Base(path)
		p.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return p, nil
}
