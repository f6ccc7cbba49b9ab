// FILE: lixenwraith/petmaster/convenience.go
package petmaster

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"
)

// Quick builds a Manager for dataDir with the bundled defaults and runs the initial lifecycle.
// reg may be nil, in which case no optional dependency is detected.
func Quick(ctx context.Context, dataDir string, reg Registry, logger *zap.Logger) (*Manager, *Report, error) {
	m, err := NewBuilder().
		WithDataDir(dataDir).
		WithRegistry(reg).
		WithLogger(logger).
		WithValidator(ValidatePrices).
		Build()
	if err != nil {
		return nil, nil, err
	}
	rep, err := m.Start(ctx)
	return m, rep, err
}

// Dump writes s to w in TOML format
func (s Settings) Dump(w io.Writer) error {
	return toml.NewEncoder(w).Encode(s)
}

// Dump writes the published settings to stdout in TOML format
func (m *Manager) Dump() error {
	return m.Settings().Dump(os.Stdout)
}

// Debug returns a formatted summary of the last run
func (m *Manager) Debug() string {
	var b strings.Builder
	b.WriteString("Configuration Debug Info:\n")
	b.WriteString(fmt.Sprintf("State: %s\n", m.State()))
	b.WriteString(fmt.Sprintf("Enabled: %t\n", m.Enabled()))

	snap := m.Snapshot()
	if snap == nil {
		b.WriteString("No configuration loaded\n")
		return b.String()
	}

	b.WriteString(fmt.Sprintf("Run: %s\n", snap.RunID))
	b.WriteString(fmt.Sprintf("Settings file: %s\n", snap.SettingsPath))
	b.WriteString(fmt.Sprintf("Language file: %s\n", snap.TextPath))
	b.WriteString(fmt.Sprintf("Successful load: %t\n", snap.Readiness.SuccessfulLoad))
	b.WriteString(fmt.Sprintf("Updated settings: %t, updated text: %t\n",
		snap.Readiness.UpdatedSettings, snap.Readiness.UpdatedText))

	if len(snap.Readiness.Failures) > 0 {
		b.WriteString("Failures:\n")
		for _, err := range snap.Readiness.Failures {
			b.WriteString(fmt.Sprintf("  - %v\n", err))
		}
	}
	if len(snap.Warnings) > 0 {
		b.WriteString("Warnings:\n")
		for _, w := range snap.Warnings {
			b.WriteString(fmt.Sprintf("  - %s\n", w))
		}
	}
	return b.String()
}
