// FILE: lixenwraith/petmaster/lifecycle.go
package petmaster

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// syntaxRemediation is logged ahead of every fatal syntax error.
const syntaxRemediation = "Verify your syntax by visiting yaml-online-parser.appspot.com and using the following logs: "

// Host is the program embedding the Manager.
type Host interface {
	// Disable deactivates the whole program after a fatal lifecycle error.
	Disable(reason error)
}

// HostFunc adapts a function to Host.
type HostFunc func(reason error)

func (f HostFunc) Disable(reason error) { f(reason) }

// ValidatorFunc checks extracted settings. A failure degrades the run.
type ValidatorFunc func(s Settings) error

// Manager drives the configuration lifecycle and publishes its result.
type Manager struct {
	dataDir          string
	settingsFile     string
	settingsDefaults []byte
	textDefaults     []byte
	settingsCatalog  Catalog
	textCatalog      Catalog
	requirements     []Requirement
	probes           Probes
	registry         Registry
	host             Host
	logger           *zap.Logger
	validators       []ValidatorFunc

	runMu    sync.Mutex
	snapshot atomic.Pointer[Snapshot]
	state    atomic.Int32
	enabled  atomic.Bool

	watchMu sync.Mutex
	watcher *watcher
}

// Start performs the initial run, migrating both documents.
// It returns an error satisfying IsFatal when a document is malformed; the host has
// already been disabled by then. Recoverable failures only show in the report.
func (m *Manager) Start(ctx context.Context) (*Report, error) {
	return m.run(ctx, true)
}

// Reload re-reads both documents without migrating them, so manual edits are picked up as-is.
func (m *Manager) Reload(ctx context.Context) (*Report, error) {
	return m.run(ctx, false)
}

// Snapshot returns the result of the last non-fatal run, or nil before the first one.
func (m *Manager) Snapshot() *Snapshot {
	return m.snapshot.Load()
}

// Settings returns the published settings, or DefaultSettings before the first run.
func (m *Manager) Settings() Settings {
	if snap := m.snapshot.Load(); snap != nil {
		return snap.Settings
	}
	return DefaultSettings()
}

// Text returns the published text document view.
func (m *Manager) Text() *Messages {
	if snap := m.snapshot.Load(); snap != nil {
		return snap.Text
	}
	return NewMessages(nil)
}

// State returns the state of the current or last run.
func (m *Manager) State() State {
	return State(m.state.Load())
}

// Enabled reports whether the feature gate is open.
func (m *Manager) Enabled() bool {
	return m.enabled.Load()
}

// SetEnabled opens or closes the feature gate until the next successful run.
func (m *Manager) SetEnabled(enabled bool) {
	m.enabled.Store(enabled)
}

// SettingsPath returns the settings document location.
func (m *Manager) SettingsPath() string {
	return filepath.Join(m.dataDir, m.settingsFile)
}

func (m *Manager) textPath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(m.dataDir, name)
}

func (m *Manager) run(ctx context.Context, initial bool) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.runMu.Lock()
	defer m.runMu.Unlock()

	rep := &Report{RunID: uuid.NewString(), Initial: initial, Started: time.Now()}
	log := m.logger.With(zap.String("run", rep.RunID), zap.Bool("initial", initial))
	ready := newReadiness()

	m.transition(log, StateUninitialized)
	log.Info("Backing up and loading configuration files...")

	settingsDoc, err := LoadDocument(m.SettingsPath(), m.settingsDefaults)
	if err != nil {
		if IsFatal(err) {
			return m.fatal(log, rep, "configuration file", err)
		}
		log.Error("Error while loading configuration file", zap.Error(err))
		ready = ready.fail(err)
	}

	textName := settingsDoc.String(KeyLanguageFileName, DefaultLanguageFileName)
	textDoc, err := LoadDocument(m.textPath(textName), m.textDefaults)
	if err != nil {
		if IsFatal(err) {
			return m.fatal(log, rep, "language file", err)
		}
		log.Error("Error while loading language file", zap.Error(err))
		ready = ready.fail(err)
	}
	m.transition(log, StateDocumentsLoaded)

	ready = m.backup(log, ready, "configuration file", settingsDoc)
	ready = m.backup(log, ready, "language file", textDoc)
	m.transition(log, StateBackedUp)

	if initial {
		// Each document tracks its own change flag
		var changed bool
		changed, ready = m.migrate(log, ready, "configuration file", settingsDoc, m.settingsCatalog)
		ready.UpdatedSettings = changed
		changed, ready = m.migrate(log, ready, "language file", textDoc, m.textCatalog)
		ready.UpdatedText = changed
	}
	m.transition(log, StateMigrated)

	settings, warnings := ExtractSettings(settingsDoc)
	for _, w := range warnings {
		log.Warn(w)
	}
	for _, validate := range m.validators {
		if err := validate(settings); err != nil {
			log.Error("Invalid configuration", zap.Error(err))
			ready = ready.fail(fmt.Errorf("configuration validation failed: %w", err))
		}
	}
	m.transition(log, StateSettingsExtracted)

	env := Detect(m.registry, m.probes)
	res, err := Resolve(settings.Flags(), env, m.requirements)
	if err != nil {
		log.Error("Error while resolving optional dependencies", zap.Error(err))
		ready = ready.fail(err)
	} else {
		settings = settings.WithFlags(res.Flags)
		for _, w := range res.Warnings {
			log.Warn(w)
		}
		warnings = append(warnings, res.Warnings...)
		if res.Degraded {
			ready = ready.fail(errors.Join(res.Missing...))
		}
	}
	m.transition(log, StateCapabilitiesResolved)

	final := ready.final()
	m.snapshot.Store(&Snapshot{
		RunID:        rep.RunID,
		State:        final,
		Settings:     settings,
		Text:         NewMessages(textDoc),
		Readiness:    ready,
		Warnings:     warnings,
		SettingsPath: settingsDoc.Path(),
		TextPath:     textDoc.Path(),
	})
	m.enabled.Store(true)
	m.transition(log, final)

	rep.State = final
	rep.Readiness = ready
	rep.Warnings = warnings
	rep.Duration = time.Since(rep.Started)

	if final == StateReady {
		log.Info("Configuration successfully loaded and ready to run!", zap.Duration("took", rep.Duration))
	} else {
		log.Error("Error(s) while loading configuration. Please view previous logs for more information.",
			zap.Int("failures", len(ready.Failures)))
	}
	return rep, nil
}

func (m *Manager) backup(log *zap.Logger, ready Readiness, what string, doc *Document) Readiness {
	path, err := doc.Backup()
	if err != nil {
		log.Error("Error while backing up "+what, zap.Error(err))
		return ready.fail(err)
	}
	log.Debug("Backed up "+what, zap.String("backup", path))
	return ready
}

func (m *Manager) migrate(log *zap.Logger, ready Readiness, what string, doc *Document, catalog Catalog) (bool, Readiness) {
	changed, err := MigrateAndPersist(doc, catalog)
	if err != nil {
		log.Error("Error while saving changes to the "+what, zap.Error(err))
		return changed, ready.fail(err)
	}
	if changed {
		log.Info("Added missing settings to the "+what, zap.String("path", doc.Path()))
	}
	return changed, ready
}

// fatal stops the run, leaves the previous snapshot in place and disables the host.
func (m *Manager) fatal(log *zap.Logger, rep *Report, what string, err error) (*Report, error) {
	log.Error("Error while loading " + what + ", disabling plugin.")
	log.Error(syntaxRemediation, zap.Error(err))

	m.transition(log, StateFatal)
	rep.State = StateFatal
	rep.Readiness = newReadiness().fail(err)
	rep.Duration = time.Since(rep.Started)

	m.enabled.Store(false)
	m.host.Disable(err)
	return rep, fmt.Errorf("failed to load %s: %w", what, err)
}

func (m *Manager) transition(log *zap.Logger, s State) {
	m.state.Store(int32(s))
	log.Debug("Lifecycle state changed", zap.Stringer("state", s))
}
