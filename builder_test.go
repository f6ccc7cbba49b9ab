// FILE: lixenwraith/petmaster/builder_test.go
package petmaster

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBuilder tests the builder pattern
func TestBuilder(t *testing.T) {
	t.Run("BasicBuilder", func(t *testing.T) {
		m, err := NewBuilder().WithDataDir(t.TempDir()).Build()
		require.NoError(t, err)
		assert.NotNil(t, m)
		assert.True(t, m.Enabled())
		assert.Equal(t, StateUninitialized, m.State())
		assert.Nil(t, m.Snapshot())
		assert.Equal(t, DefaultSettings(), m.Settings(), "defaults served before the first run")
	})

	t.Run("BuilderWithAllOptions", func(t *testing.T) {
		dir := t.TempDir()
		var disabled error
		m, err := NewBuilder().
			WithDataDir(dir).
			WithSettingsFile("settings.yml").
			WithSettingsDefaults([]byte("greeting: hi\n")).
			WithTextDefaults([]byte("misused-command: \"?\"\n")).
			WithSettingsCatalog(Catalog{{Key: "greeting", Default: "hi"}, {Key: "limit", Default: 3}}).
			WithTextCatalog(Catalog{}).
			WithRequirements().
			WithProbes(Probes{}).
			WithRegistry(StaticRegistry{}).
			WithHost(HostFunc(func(err error) { disabled = err })).
			Build()
		require.NoError(t, err)

		rep, err := m.Start(context.Background())
		require.NoError(t, err)
		assert.Nil(t, disabled)
		assert.Equal(t, StateReady, rep.State, "no requirements means nothing to degrade")
		assert.True(t, rep.Readiness.UpdatedSettings)
		assert.Equal(t, filepath.Join(dir, "settings.yml"), m.SettingsPath())
		assert.FileExists(t, filepath.Join(dir, "settings.yml"))
		assert.Equal(t, "?", m.Text().Get(MsgMisusedCommand, ""))
	})

	t.Run("ValidationErrors", func(t *testing.T) {
		tests := []struct {
			name    string
			builder *Builder
		}{
			{"missing data dir", NewBuilder()},
			{"empty settings file", NewBuilder().WithDataDir("x").WithSettingsFile("")},
			{"bad requirement", NewBuilder().WithDataDir("x").WithRequirements(Requirement{Flag: "a", Needs: "plugins +"})},
			{"bad settings defaults", NewBuilder().WithDataDir("x").WithSettingsDefaults([]byte("a: [\n"))},
			{"text defaults not a mapping", NewBuilder().WithDataDir("x").WithTextDefaults([]byte("- a\n"))},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := tt.builder.Build()
				assert.Error(t, err)
			})
		}
	})

	t.Run("MustBuildPanics", func(t *testing.T) {
		assert.Panics(t, func() { NewBuilder().MustBuild() })
		assert.NotPanics(t, func() { NewBuilder().WithDataDir(t.TempDir()).MustBuild() })
	})

	t.Run("ValidatorsRunInOrder", func(t *testing.T) {
		var order []string
		m := NewBuilder().
			WithDataDir(t.TempDir()).
			WithRegistry(fullRegistry).
			WithValidator(func(Settings) error { order = append(order, "first"); return nil }).
			WithValidator(nil).
			WithValidator(func(Settings) error { order = append(order, "second"); return errors.New("rejected") }).
			MustBuild()

		rep, err := m.Start(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"first", "second"}, order)
		assert.Equal(t, StateDegraded, rep.State)
	})
}

func TestValidatePrices(t *testing.T) {
	s := DefaultSettings()
	assert.NoError(t, ValidatePrices(s))

	s.ChangeOwnerPrice = -1
	s.FreePetPrice = -2
	err := ValidatePrices(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), KeyChangeOwnerPrice)
	assert.Contains(t, err.Error(), KeyFreePetPrice)
}
