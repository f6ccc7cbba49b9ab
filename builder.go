// File: lixenwraith/petmaster/builder.go
package petmaster

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// DefaultSettingsFile is the settings document name inside the data directory.
const DefaultSettingsFile = "config.yml"

// Builder provides a fluent interface for building a Manager
type Builder struct {
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
	err              error
}

// NewBuilder creates a builder preloaded with the bundled documents, catalogs and requirements.
func NewBuilder() *Builder {
	return &Builder{
		settingsFile:     DefaultSettingsFile,
		settingsDefaults: DefaultSettingsDocument(),
		textDefaults:     DefaultTextDocument(),
		settingsCatalog:  SettingsCatalog(),
		textCatalog:      TextCatalog(),
		requirements:     DefaultRequirements(),
		probes:           DefaultProbes(),
		validators:       make([]ValidatorFunc, 0),
	}
}

// WithDataDir sets the directory holding both documents and their backups
func (b *Builder) WithDataDir(dir string) *Builder {
	b.dataDir = dir
	return b
}

// WithSettingsFile sets the settings document name, relative to the data directory
func (b *Builder) WithSettingsFile(name string) *Builder {
	if name == "" {
		b.err = errors.Join(b.err, errors.New("settings file name cannot be empty"))
		return b
	}
	b.settingsFile = name
	return b
}

// WithSettingsDefaults replaces the document written when config.yml is absent
func (b *Builder) WithSettingsDefaults(data []byte) *Builder {
	b.settingsDefaults = data
	return b
}

// WithTextDefaults replaces the document written when the language file is absent
func (b *Builder) WithTextDefaults(data []byte) *Builder {
	b.textDefaults = data
	return b
}

// WithSettingsCatalog replaces the settings migration catalog
func (b *Builder) WithSettingsCatalog(c Catalog) *Builder {
	b.settingsCatalog = c
	return b
}

// WithTextCatalog replaces the text migration catalog
func (b *Builder) WithTextCatalog(c Catalog) *Builder {
	b.textCatalog = c
	return b
}

// WithRequirements replaces the capability requirements
func (b *Builder) WithRequirements(reqs ...Requirement) *Builder {
	b.requirements = reqs
	return b
}

// WithProbes replaces the dependency names looked up in the registry
func (b *Builder) WithProbes(p Probes) *Builder {
	b.probes = p
	return b
}

// WithRegistry sets the host registry used for dependency detection
func (b *Builder) WithRegistry(reg Registry) *Builder {
	b.registry = reg
	return b
}

// WithHost sets the program disabled on fatal errors
func (b *Builder) WithHost(h Host) *Builder {
	b.host = h
	return b
}

// WithLogger sets the logger. Defaults to a no-op logger.
func (b *Builder) WithLogger(l *zap.Logger) *Builder {
	b.logger = l
	return b
}

// WithValidator adds a check run on every extracted Settings value.
// Validators run in the order they are added.
func (b *Builder) WithValidator(fn ValidatorFunc) *Builder {
	if fn != nil {
		b.validators = append(b.validators, fn)
	}
	return b
}

// Build creates the Manager. Nothing is read from disk until Start.
func (b *Builder) Build() (*Manager, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.dataDir == "" {
		return nil, errors.New("data directory is required")
	}
	if err := ValidateRequirements(b.requirements); err != nil {
		return nil, err
	}
	if _, err := parseDocument(DefaultSettingsFile, b.settingsDefaults); err != nil {
		return nil, fmt.Errorf("invalid settings defaults: %w", err)
	}
	if _, err := parseDocument(DefaultLanguageFileName, b.textDefaults); err != nil {
		return nil, fmt.Errorf("invalid text defaults: %w", err)
	}

	m := &Manager{
		dataDir:          b.dataDir,
		settingsFile:     b.settingsFile,
		settingsDefaults: b.settingsDefaults,
		textDefaults:     b.textDefaults,
		settingsCatalog:  b.settingsCatalog,
		textCatalog:      b.textCatalog,
		requirements:     b.requirements,
		probes:           b.probes,
		registry:         b.registry,
		host:             b.host,
		logger:           b.logger,
		validators:       b.validators,
	}
	if m.host == nil {
		m.host = HostFunc(func(error) {})
	}
	if m.logger == nil {
		m.logger = zap.NewNop()
	}
	m.enabled.Store(true)
	return m, nil
}

// MustBuild is like Build but panics on error
func (b *Builder) MustBuild() *Manager {
	m, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("petmaster build failed: %v", err))
	}
	return m
}

// ValidatePrices rejects negative command prices.
func ValidatePrices(s Settings) error {
	var errs []error
	if s.ChangeOwnerPrice < 0 {
		errs = append(errs, fmt.Errorf("%s must not be negative, got %d", KeyChangeOwnerPrice, s.ChangeOwnerPrice))
	}
	if s.FreePetPrice < 0 {
		errs = append(errs, fmt.Errorf("%s must not be negative, got %d", KeyFreePetPrice, s.FreePetPrice))
	}
	return errors.Join(errs...)
}
