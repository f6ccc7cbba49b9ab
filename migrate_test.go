// FILE: lixenwraith/petmaster/migrate_test.go
package petmaster

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate(t *testing.T) {
	catalog := Catalog{
		{Key: "k1", Default: "v1", Comments: []string{"First setting."}},
		{Key: "k2", Default: true},
		{Key: "k3", Default: 3, Comments: []string{"Third setting."}},
	}

	t.Run("InsertsMissingInCatalogOrder", func(t *testing.T) {
		doc, err := LoadDocument(filepath.Join(t.TempDir(), "config.yml"), []byte("other: x\n"))
		require.NoError(t, err)

		// Reverse alphabetical keys to rule out sorting
		reversed := Catalog{{Key: "zeta", Default: 1}, {Key: "alpha", Default: 2}, {Key: "mid", Default: 3}}
		assert.True(t, Migrate(doc, reversed))
		assert.Equal(t, []string{"other", "zeta", "alpha", "mid"}, doc.Keys())
	})

	t.Run("OrderPreservation", func(t *testing.T) {
		doc, err := LoadDocument(filepath.Join(t.TempDir(), "config.yml"), []byte("k2: false\nother: x\n"))
		require.NoError(t, err)

		assert.True(t, Migrate(doc, catalog[:2]))
		assert.Equal(t, []string{"k1", "k2", "other"}, doc.Keys())
		assert.Equal(t, "v1", doc.String("k1", ""))
		assert.False(t, doc.Bool("k2", true), "existing values are never touched")
		assert.Equal(t, []string{"First setting."}, doc.Comments("k1"))
	})

	t.Run("PlacesAfterPresentPredecessor", func(t *testing.T) {
		doc, err := LoadDocument(filepath.Join(t.TempDir(), "config.yml"), []byte("a: 1\nk1: mine\nb: 2\n"))
		require.NoError(t, err)

		assert.True(t, Migrate(doc, catalog))
		assert.Equal(t, []string{"a", "k1", "k2", "k3", "b"}, doc.Keys())
		assert.Equal(t, "mine", doc.String("k1", ""))
	})

	t.Run("NoChangeWhenComplete", func(t *testing.T) {
		doc, err := LoadDocument(filepath.Join(t.TempDir(), "config.yml"), []byte("k1: a\nk2: true\nk3: 1\n"))
		require.NoError(t, err)
		assert.False(t, Migrate(doc, catalog))
		assert.False(t, Migrate(doc, nil))
	})

	t.Run("Idempotence", func(t *testing.T) {
		doc, err := LoadDocument(filepath.Join(t.TempDir(), "config.yml"), []byte("k2: true\n"))
		require.NoError(t, err)

		require.True(t, Migrate(doc, catalog))
		once, err := doc.Bytes()
		require.NoError(t, err)

		assert.False(t, Migrate(doc, catalog))
		twice, err := doc.Bytes()
		require.NoError(t, err)
		assert.Equal(t, string(once), string(twice))
	})
}

func TestMigrateAndPersist(t *testing.T) {
	t.Run("SavesAndReloadsOnlyWhenChanged", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yml")
		writeFile(t, path, "languageFileName: lang.yml\n")
		doc, err := LoadDocument(path, nil)
		require.NoError(t, err)

		changed, err := MigrateAndPersist(doc, SettingsCatalog())
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, SettingsCatalog().Keys(), doc.Keys())
		assert.Equal(t, []string{"Take parrots into account."}, doc.Comments(KeyDisplayParrot))

		first, err := os.ReadFile(path)
		require.NoError(t, err)
		info, err := os.Stat(path)
		require.NoError(t, err)

		// Make any rewrite observable through the modification time
		past := time.Now().Add(-time.Hour)
		require.NoError(t, os.Chtimes(path, past, past))

		changed, err = MigrateAndPersist(doc, SettingsCatalog())
		require.NoError(t, err)
		assert.False(t, changed)

		second, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, first, second, "second migration must leave the file byte-for-byte identical")

		after, err := os.Stat(path)
		require.NoError(t, err)
		assert.True(t, after.ModTime().Equal(past), "no write may happen when nothing changed")
		assert.Equal(t, info.Size(), after.Size())
	})

	t.Run("SaveFailureReported", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "lang.yml")
		require.NoError(t, os.Mkdir(path, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(path, "blocker"), nil, 0644))

		// Unreadable file: document holds the defaults
		doc, err := LoadDocument(path, []byte("pet-freed: bye\n"))
		require.Error(t, err)
		require.NotNil(t, doc)

		changed, err := MigrateAndPersist(doc, TextCatalog())
		assert.True(t, changed)
		assert.ErrorIs(t, err, ErrIO)
	})
}

func TestCatalogs(t *testing.T) {
	t.Run("SettingsCatalogOrder", func(t *testing.T) {
		assert.Equal(t, []string{
			"languageFileName", "checkForUpdate", "changeOwnerPrice",
			"displayDog", "displayCat", "displayHorse", "displayLlama", "displayParrot",
			"actionBarMessage", "displayToOwner", "freePetPrice",
		}, SettingsCatalog().Keys())
	})

	t.Run("TextCatalogHasNoComments", func(t *testing.T) {
		c := TextCatalog()
		require.Len(t, c, 12)
		assert.Equal(t, "petmaster-command-setowner-hover", c[0].Key)
		assert.Equal(t, "not-enough-money", c[len(c)-1].Key)
		for _, e := range c {
			assert.Empty(t, e.Comments, e.Key)
		}
	})

	t.Run("BundledDocumentsAreComplete", func(t *testing.T) {
		dir := t.TempDir()
		settings, err := LoadDocument(filepath.Join(dir, "config.yml"), DefaultSettingsDocument())
		require.NoError(t, err)
		text, err := LoadDocument(filepath.Join(dir, "lang.yml"), DefaultTextDocument())
		require.NoError(t, err)

		assert.False(t, Migrate(settings, SettingsCatalog()))
		assert.False(t, Migrate(text, TextCatalog()))
		assert.True(t, text.Has(MsgMisusedCommand))
	})
}
