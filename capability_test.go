// FILE: lixenwraith/petmaster/capability_test.go
package petmaster

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	overlay := Requirement{
		Flag:     "overlayEnabled",
		Needs:    `"Overlay" in plugins`,
		Fallback: "fallbackEnabled",
		Warning:  "overlay plugin missing",
		Degrades: true,
	}

	t.Run("CapabilityDowngrade", func(t *testing.T) {
		in := map[string]bool{"overlayEnabled": true, "fallbackEnabled": false}

		res, err := Resolve(in, Environment{}, []Requirement{overlay})
		require.NoError(t, err)
		assert.False(t, res.Flags["overlayEnabled"])
		assert.True(t, res.Flags["fallbackEnabled"])
		assert.NotEmpty(t, res.Warnings)
		assert.True(t, res.Degraded)
		require.Len(t, res.Missing, 1)
		assert.True(t, errors.Is(res.Missing[0], ErrDependencyUnavailable))

		// Inputs are untouched
		assert.True(t, in["overlayEnabled"])
		assert.False(t, in["fallbackEnabled"])
	})

	t.Run("DependencyPresent", func(t *testing.T) {
		in := map[string]bool{"overlayEnabled": true}
		res, err := Resolve(in, Environment{Plugins: []string{"Overlay"}}, []Requirement{overlay})
		require.NoError(t, err)
		assert.True(t, res.Flags["overlayEnabled"])
		assert.Empty(t, res.Warnings)
		assert.False(t, res.Degraded)
	})

	t.Run("DisabledFlagIsNotChecked", func(t *testing.T) {
		in := map[string]bool{"overlayEnabled": false, "fallbackEnabled": false}
		res, err := Resolve(in, Environment{}, []Requirement{overlay})
		require.NoError(t, err)
		assert.False(t, res.Flags["fallbackEnabled"])
		assert.Empty(t, res.Warnings)
		assert.False(t, res.Degraded)
	})

	t.Run("NonDegradingRequirement", func(t *testing.T) {
		reqs := DefaultRequirements()
		in := map[string]bool{KeyHologramMessage: true, KeyPayments: true}
		env := Environment{Plugins: []string{PluginHolographicDisplays}}

		res, err := Resolve(in, env, reqs)
		require.NoError(t, err)
		assert.True(t, res.Flags[KeyHologramMessage])
		assert.False(t, res.Flags[KeyPayments])
		assert.Equal(t, []string{"Attempt to hook up with Vault failed. Payment ignored."}, res.Warnings)
		assert.False(t, res.Degraded)
	})

	t.Run("InvalidExpression", func(t *testing.T) {
		bad := Requirement{Flag: "x", Needs: `plugins +`}
		_, err := Resolve(map[string]bool{"x": true}, Environment{}, []Requirement{bad})
		assert.Error(t, err)
		assert.Error(t, ValidateRequirements([]Requirement{bad}))
		assert.NoError(t, ValidateRequirements(DefaultRequirements()))
	})

	t.Run("Deterministic", func(t *testing.T) {
		in := map[string]bool{KeyHologramMessage: true, KeyActionBarMessage: false}
		a, err := Resolve(in, Environment{}, DefaultRequirements())
		require.NoError(t, err)
		b, err := Resolve(in, Environment{}, DefaultRequirements())
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})
}

func TestDetect(t *testing.T) {
	reg := StaticRegistry{Plugins: []string{PluginHolographicDisplays, "Other"}, Services: []string{}}

	env := Detect(reg, DefaultProbes())
	assert.Equal(t, []string{PluginHolographicDisplays}, env.Plugins)
	assert.Empty(t, env.Services)

	env = Detect(nil, DefaultProbes())
	assert.Empty(t, env.Plugins)
	assert.Empty(t, env.Services)
}
