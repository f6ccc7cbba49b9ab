// FILE: lixenwraith/petmaster/document_io.go
package petmaster

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// BackupSuffix is appended to a document's path to form its backup location.
const BackupSuffix = ".bak"

// documentIndent matches the two-space layout of the bundled default documents.
const documentIndent = 2

// LoadDocument reads the YAML document at path.
//
// When the file is absent the defaults are parsed and written to path.
// An unreadable file, or defaults that cannot be written, yield an error of kind
// KindIO together with a usable Document holding the defaults.
// Malformed content yields an error of kind KindSyntax and a nil Document.
func LoadDocument(path string, defaults []byte) (*Document, error) {
	d := &Document{path: path, defaults: defaults}
	if err := d.load("load"); err != nil {
		if IsFatal(err) {
			return nil, err
		}
		return d, err
	}
	return d, nil
}

// Reload discards the in-memory state and reads the file again with the same defaults.
// On a syntax failure the previous content is kept.
func (d *Document) Reload() error {
	return d.load("reload")
}

// Save writes the document back to its path, keeping comments and key order.
func (d *Document) Save() error {
	data, err := d.Bytes()
	if err != nil {
		return ioError("save", d.path, err)
	}
	if err := atomicWriteFile(d.path, data); err != nil {
		return ioError("save", d.path, err)
	}
	return nil
}

// Backup copies the on-disk file to path+BackupSuffix and returns the backup path.
// Any previous backup is replaced.
func (d *Document) Backup() (string, error) {
	data, err := os.ReadFile(d.path)
	if err != nil {
		return "", ioError("backup", d.path, err)
	}
	dst := d.path + BackupSuffix
	if err := atomicWriteFile(dst, data); err != nil {
		return "", ioError("backup", dst, err)
	}
	return dst, nil
}

// Bytes returns the encoded YAML form of the in-memory document.
func (d *Document) Bytes() ([]byte, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return encodeDocument(d.root)
}

func (d *Document) load(op string) error {
	data, readErr := os.ReadFile(d.path)

	switch {
	case readErr == nil:
		root, err := parseDocument(d.path, data)
		if err != nil {
			return syntaxError(op, d.path, err)
		}
		d.setRoot(root)
		return nil

	case errors.Is(readErr, fs.ErrNotExist):
		root, err := parseDocument(d.path, d.defaults)
		if err != nil {
			return syntaxError("defaults", d.path, err)
		}
		d.setRoot(root)
		if err := atomicWriteFile(d.path, d.defaults); err != nil {
			return ioError("create", d.path, err)
		}
		return nil

	default:
		root, err := parseDocument(d.path, d.defaults)
		if err != nil {
			return syntaxError("defaults", d.path, err)
		}
		d.setRoot(root)
		return ioError("read", d.path, readErr)
	}
}

func (d *Document) setRoot(root *yaml.Node) {
	d.mu.Lock()
	d.root = root
	d.mu.Unlock()
}

// parseDocument decodes data into a DocumentNode whose only child is a mapping.
// Empty and null documents become an empty mapping.
func parseDocument(path string, data []byte) (*yaml.Node, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}

	if root.Kind == 0 {
		return emptyRoot(), nil
	}
	if root.Kind != yaml.DocumentNode {
		return nil, fmt.Errorf("unexpected node kind %d at top level of %s", root.Kind, filepath.Base(path))
	}
	if len(root.Content) == 0 {
		root.Content = emptyRoot().Content
		return &root, nil
	}

	top := root.Content[0]
	switch {
	case top.Kind == yaml.MappingNode:
		return &root, nil
	case top.Kind == yaml.ScalarNode && top.Tag == "!!null":
		root.Content = emptyRoot().Content
		return &root, nil
	default:
		return nil, fmt.Errorf("yaml: line %d: top-level value of %s must be a mapping", top.Line, filepath.Base(path))
	}
}

func encodeDocument(root *yaml.Node) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(documentIndent)
	if err := enc.Encode(root); err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to flush document: %w", err)
	}
	return buf.Bytes(), nil
}

// atomicWriteFile writes data to a temporary file in the target directory and renames it into place.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory '%s': %w", dir, err)
	}

	tempFile, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	tempPath := tempFile.Name()
	defer os.Remove(tempPath)

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := tempFile.Sync(); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to sync temporary file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	if err := os.Chmod(tempPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}
