// FILE: lixenwraith/petmaster/document.go
package petmaster

import (
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Document is one externally editable YAML settings document.
// The mapping is kept as a yaml.Node tree so key order and comments survive a save.
// All methods are safe for concurrent use.
type Document struct {
	mu       sync.RWMutex
	path     string
	defaults []byte
	root     *yaml.Node // DocumentNode wrapping a single MappingNode
}

// Path returns the file backing the document.
func (d *Document) Path() string {
	return d.path
}

// Has reports whether key is present, whatever its value.
func (d *Document) Has(key string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.index(key) >= 0
}

// Get returns the decoded value of key: bool, int, float64, string, nil,
// or a map/slice for nested content.
func (d *Document) Get(key string) (any, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	i := d.index(key)
	if i < 0 {
		return nil, false
	}
	var v any
	if err := d.mapping().Content[i+1].Decode(&v); err != nil {
		// Present but undecodable, typed getters fall back to their default
		return nil, true
	}
	return v, true
}

// Keys returns the top-level keys in document order.
func (d *Document) Keys() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	content := d.mapping().Content
	keys := make([]string, 0, len(content)/2)
	for i := 0; i+1 < len(content); i += 2 {
		keys = append(keys, content[i].Value)
	}
	return keys
}

// Len returns the number of top-level keys.
func (d *Document) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.mapping().Content) / 2
}

// Comments returns the comment block attached above key, without comment markers.
func (d *Document) Comments(key string) []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	i := d.index(key)
	if i < 0 {
		return nil
	}
	return splitComment(d.mapping().Content[i].HeadComment)
}

// Set inserts key at the end of the document or overwrites it in place.
// The comment block is replaced only when comments are given. Nothing is persisted.
func (d *Document) Set(key string, value any, comments ...string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if i := d.index(key); i >= 0 {
		return d.replace(i, value, comments)
	}
	return d.insert(len(d.mapping().Content), key, value, comments)
}

// SetAfter inserts key directly after anchor, or appends it when anchor is absent.
// An existing key is overwritten in place.
func (d *Document) SetAfter(anchor, key string, value any, comments ...string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if i := d.index(key); i >= 0 {
		return d.replace(i, value, comments)
	}
	at := len(d.mapping().Content)
	if a := d.index(anchor); a >= 0 {
		at = a + 2
	}
	return d.insert(at, key, value, comments)
}

// SetBefore inserts key directly before anchor, or appends it when anchor is absent.
// An existing key is overwritten in place.
func (d *Document) SetBefore(anchor, key string, value any, comments ...string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if i := d.index(key); i >= 0 {
		return d.replace(i, value, comments)
	}
	at := len(d.mapping().Content)
	if a := d.index(anchor); a >= 0 {
		at = a
	}
	return d.insert(at, key, value, comments)
}

// mapping returns the top-level mapping node. Callers hold d.mu.
func (d *Document) mapping() *yaml.Node {
	return d.root.Content[0]
}

// index returns the position of key's key node in the mapping content, or -1.
func (d *Document) index(key string) int {
	content := d.mapping().Content
	for i := 0; i+1 < len(content); i += 2 {
		if content[i].Value == key {
			return i
		}
	}
	return -1
}

func (d *Document) replace(i int, value any, comments []string) error {
	node, err := valueNode(value)
	if err != nil {
		return fmt.Errorf("failed to encode value for key %q: %w", d.mapping().Content[i].Value, err)
	}
	content := d.mapping().Content
	node.LineComment = content[i+1].LineComment
	content[i+1] = node
	if len(comments) > 0 {
		content[i].HeadComment = joinComment(comments)
	}
	return nil
}

func (d *Document) insert(at int, key string, value any, comments []string) error {
	node, err := valueNode(value)
	if err != nil {
		return fmt.Errorf("failed to encode value for key %q: %w", key, err)
	}
	keyNode := &yaml.Node{
		Kind:        yaml.ScalarNode,
		Tag:         "!!str",
		Value:       key,
		HeadComment: joinComment(comments),
	}

	m := d.mapping()
	content := make([]*yaml.Node, 0, len(m.Content)+2)
	content = append(content, m.Content[:at]...)
	content = append(content, keyNode, node)
	content = append(content, m.Content[at:]...)
	m.Content = content
	return nil
}

func valueNode(value any) (*yaml.Node, error) {
	node := &yaml.Node{}
	if err := node.Encode(value); err != nil {
		return nil, err
	}
	return node, nil
}

func emptyRoot() *yaml.Node {
	return &yaml.Node{
		Kind:    yaml.DocumentNode,
		Content: []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}},
	}
}

func joinComment(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, line := range lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString("# ")
		sb.WriteString(line)
	}
	return sb.String()
}

func splitComment(comment string) []string {
	if comment == "" {
		return nil
	}
	raw := strings.Split(comment, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		line = strings.TrimPrefix(line, "#")
		line = strings.TrimPrefix(line, " ")
		lines = append(lines, line)
	}
	return lines
}
