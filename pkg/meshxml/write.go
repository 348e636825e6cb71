package meshxml

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
)

const xmlHeader = "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n"

// DefaultIndent is the indentation unit used when none is configured.
const DefaultIndent = "    "

// Marshal serializes the document with the standard XML declaration.
func Marshal(m *Mesh, indent string) ([]byte, error) {
	if indent == "" {
		indent = DefaultIndent
	}
	body, err := xml.MarshalIndent(m, "", indent)
	if err != nil {
		return nil, fmt.Errorf("serializing mesh xml: %w", err)
	}
	out := make([]byte, 0, len(xmlHeader)+len(body)+1)
	out = append(out, xmlHeader...)
	out = append(out, body...)
	out = append(out, '\n')
	return out, nil
}

// Save serializes the document and atomically replaces the file at path:
// the content is written to a temporary file in the same directory first,
// then renamed over the target. A failed save never leaves the original
// file partially overwritten.
func Save(m *Mesh, path, indent string) error {
	data, err := Marshal(m, indent)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing mesh file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing mesh file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing mesh file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
