package modelfile

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"
)

// snapshotVersion guards against decoding snapshots of another layout.
const snapshotVersion = 1

type snapshot struct {
	Version  int       `msgpack:"v"`
	Document *Document `msgpack:"doc"`
}

// EncodeSnapshot serializes doc as msgpack.
func EncodeSnapshot(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(snapshot{Version: snapshotVersion, Document: doc}); err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeSnapshot parses a msgpack snapshot.
func DecodeSnapshot(data []byte, file string) (*Document, error) {
	var snap snapshot
	if err := msgpack.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%s: failed to decode snapshot: %w", file, err)
	}
	if snap.Version != snapshotVersion {
		return nil, fmt.Errorf("%s: unsupported snapshot version %d", file, snap.Version)
	}
	if snap.Document == nil {
		return nil, fmt.Errorf("%s: snapshot has no document", file)
	}
	return snap.Document, nil
}

// WriteSnapshot writes doc to path atomically.
func WriteSnapshot(path string, doc *Document) error {
	data, err := EncodeSnapshot(doc)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".snapshot-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name()) //nolint:errcheck
	if _, err := f.Write(data); err != nil {
		_ = f.Close() //nolint:errcheck
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}
