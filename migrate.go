// FILE: lixenwraith/petmaster/migrate.go
package petmaster

import "fmt"

// Migrate inserts every catalog entry missing from doc and reports whether anything was added.
// Existing keys are never touched, so a second pass over the result is a no-op.
//
// A missing key is placed after the nearest earlier catalog key present in doc,
// else before the nearest later one, else at the end. Insertions therefore follow
// catalog order rather than key order. Migrate performs no I/O.
func Migrate(doc *Document, catalog Catalog) bool {
	changed := false
	for i, entry := range catalog {
		if doc.Has(entry.Key) {
			continue
		}

		var err error
		if prev, ok := catalog.presentBefore(doc, i); ok {
			err = doc.SetAfter(prev, entry.Key, entry.Default, entry.Comments...)
		} else if next, ok := catalog.presentAfter(doc, i); ok {
			err = doc.SetBefore(next, entry.Key, entry.Default, entry.Comments...)
		} else {
			err = doc.Set(entry.Key, entry.Default, entry.Comments...)
		}
		if err != nil {
			// Catalog defaults are plain scalars; an unencodable one is skipped
			continue
		}
		changed = true
	}
	return changed
}

// MigrateAndPersist runs Migrate and, only when something was inserted,
// saves the document and loads it again from disk.
func MigrateAndPersist(doc *Document, catalog Catalog) (bool, error) {
	if !Migrate(doc, catalog) {
		return false, nil
	}
	if err := doc.Save(); err != nil {
		return true, fmt.Errorf("failed to save migrated document: %w", err)
	}
	if err := doc.Reload(); err != nil {
		return true, fmt.Errorf("failed to reload migrated document: %w", err)
	}
	return true, nil
}

func (c Catalog) presentBefore(doc *Document, i int) (string, bool) {
	for j := i - 1; j >= 0; j-- {
		if doc.Has(c[j].Key) {
			return c[j].Key, true
		}
	}
	return "", false
}

func (c Catalog) presentAfter(doc *Document, i int) (string, bool) {
	for j := i + 1; j < len(c); j++ {
		if doc.Has(c[j].Key) {
			return c[j].Key, true
		}
	}
	return "", false
}
