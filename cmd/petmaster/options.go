// FILE: lixenwraith/petmaster/cmd/petmaster/options.go
package main

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lixenwraith/petmaster"
)

// options holds the process configuration: PETMASTER_* variables overlaid by explicit flags.
type options struct {
	DataDir      string   `env:"PETMASTER_DATA_DIR"`
	SettingsFile string   `env:"PETMASTER_SETTINGS_FILE" envDefault:"config.yml"`
	Plugins      []string `env:"PETMASTER_PLUGINS" envSeparator:","`
	Services     []string `env:"PETMASTER_SERVICES" envSeparator:","`
	LogLevel     string   `env:"PETMASTER_LOG_LEVEL" envDefault:"info"`
	UpdateURL    string   `env:"PETMASTER_UPDATE_URL" envDefault:"https://raw.githubusercontent.com/PyvesB/PetMaster/master/pom.xml"`
}

// flagValues mirrors options for the command line.
type flagValues struct {
	dataDir      *string
	settingsFile *string
	plugins      *[]string
	services     *[]string
	logLevel     *string
	updateURL    *string
}

func registerFlags(f *pflag.FlagSet) *flagValues {
	return &flagValues{
		dataDir:      f.StringP("data-dir", "d", "", "Directory holding config.yml and the language file (overrides PETMASTER_DATA_DIR)"),
		settingsFile: f.String("settings-file", petmaster.DefaultSettingsFile, "Settings document name inside the data directory"),
		plugins:      f.StringSlice("plugins", nil, "Plugins reported as enabled, e.g. HolographicDisplays"),
		services:     f.StringSlice("services", nil, "Services reported as registered, e.g. economy"),
		logLevel:     f.String("log-level", "info", "Log level: debug, info, warn, error"),
		updateURL:    f.String("update-url", petmaster.DefaultUpdateURL, "Project descriptor checked for new releases"),
	}
}

// loadOptions parses the environment, then applies only the flags that were explicitly set.
func loadOptions(f *pflag.FlagSet, fv *flagValues) (options, error) {
	var opts options
	if err := env.Parse(&opts); err != nil {
		return options{}, fmt.Errorf("parse env: %w", err)
	}

	if f.Changed("data-dir") {
		opts.DataDir = *fv.dataDir
	}
	if f.Changed("settings-file") {
		opts.SettingsFile = *fv.settingsFile
	}
	if f.Changed("plugins") {
		opts.Plugins = *fv.plugins
	}
	if f.Changed("services") {
		opts.Services = *fv.services
	}
	if f.Changed("log-level") {
		opts.LogLevel = *fv.logLevel
	}
	if f.Changed("update-url") {
		opts.UpdateURL = *fv.updateURL
	}

	opts.DataDir = petmaster.DiscoverDataDir(petmaster.DiscoveryOptions{
		Name:         "petmaster",
		SettingsFile: opts.SettingsFile,
		Explicit:     opts.DataDir,
		UseXDG:       true,
	})
	opts.Plugins = trimAll(opts.Plugins)
	opts.Services = trimAll(opts.Services)
	return opts, nil
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// newLogger builds a development logger at debug level and a production logger otherwise.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	if lvl == zapcore.DebugLevel {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}
