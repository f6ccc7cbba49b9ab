// FILE: lixenwraith/petmaster/update.go
package petmaster

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/mod/semver"
)

// DefaultUpdateURL serves the project descriptor of the latest release.
const DefaultUpdateURL = "https://raw.githubusercontent.com/PyvesB/PetMaster/master/pom.xml"

// maxDescriptorSize bounds the body read from the update endpoint.
const maxDescriptorSize = 1 << 20

// UpdateOptions configures an UpdateChecker.
type UpdateOptions struct {
	URL     string
	Current string
	Client  *http.Client
	Timeout time.Duration
	Logger  *zap.Logger
}

// UpdateResult is the outcome of one check.
type UpdateResult struct {
	Current   string
	Latest    string
	Available bool
}

// UpdateChecker compares the running version with the one published remotely.
// Failures are only logged; they never affect the configuration lifecycle.
type UpdateChecker struct {
	opts UpdateOptions

	mu     sync.RWMutex
	latest *UpdateResult
	done   chan struct{}
}

// NewUpdateChecker fills unset options with DefaultUpdateURL, Version and DefaultUpdateTimeout.
func NewUpdateChecker(opts UpdateOptions) *UpdateChecker {
	if opts.URL == "" {
		opts.URL = DefaultUpdateURL
	}
	if opts.Current == "" {
		opts.Current = Version
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultUpdateTimeout
	}
	if opts.Client == nil {
		opts.Client = &http.Client{Timeout: opts.Timeout}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &UpdateChecker{opts: opts}
}

// Check fetches the remote descriptor once.
func (u *UpdateChecker) Check(ctx context.Context) (UpdateResult, error) {
	ctx, cancel := context.WithTimeout(ctx, u.opts.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.opts.URL, nil)
	if err != nil {
		return UpdateResult{}, fmt.Errorf("failed to build update request: %w", err)
	}
	resp, err := u.opts.Client.Do(req)
	if err != nil {
		return UpdateResult{}, fmt.Errorf("failed to reach update endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return UpdateResult{}, fmt.Errorf("update endpoint returned %s", resp.Status)
	}

	latest, err := parseDescriptorVersion(io.LimitReader(resp.Body, maxDescriptorSize))
	if err != nil {
		return UpdateResult{}, err
	}

	res := UpdateResult{
		Current:   u.opts.Current,
		Latest:    latest,
		Available: newerVersion(latest, u.opts.Current),
	}
	u.mu.Lock()
	u.latest = &res
	u.mu.Unlock()
	return res, nil
}

// Start runs one check in the background and logs its outcome.
// Calling Start again while a check is running is a no-op.
func (u *UpdateChecker) Start(ctx context.Context) {
	u.mu.Lock()
	if u.done != nil {
		select {
		case <-u.done:
		default:
			u.mu.Unlock()
			return
		}
	}
	done := make(chan struct{})
	u.done = done
	u.mu.Unlock()

	go func() {
		defer close(done)
		res, err := u.Check(ctx)
		switch {
		case err != nil:
			u.opts.Logger.Warn("Update check failed", zap.String("url", u.opts.URL), zap.Error(err))
		case res.Available:
			u.opts.Logger.Warn("Update available",
				zap.String("current", res.Current), zap.String("latest", res.Latest))
		default:
			u.opts.Logger.Info("Plugin is up to date", zap.String("version", res.Current))
		}
	}()
}

// Wait blocks until the check launched by Start has finished.
func (u *UpdateChecker) Wait() {
	u.mu.RLock()
	done := u.done
	u.mu.RUnlock()
	if done != nil {
		<-done
	}
}

// Latest returns the last successful result.
func (u *UpdateChecker) Latest() (UpdateResult, bool) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	if u.latest == nil {
		return UpdateResult{}, false
	}
	return *u.latest, true
}

// parseDescriptorVersion reads the top-level <version> of a Maven project descriptor.
func parseDescriptorVersion(r io.Reader) (string, error) {
	var project struct {
		XMLName xml.Name `xml:"project"`
		Version string   `xml:"version"`
	}
	if err := xml.NewDecoder(r).Decode(&project); err != nil {
		return "", fmt.Errorf("failed to parse project descriptor: %w", err)
	}
	v := strings.TrimSpace(project.Version)
	if v == "" {
		return "", errors.New("project descriptor has no version")
	}
	return v, nil
}

// newerVersion reports whether latest is strictly greater than current.
// Unparsable versions are never considered newer.
func newerVersion(latest, current string) bool {
	l, c := canonicalVersion(latest), canonicalVersion(current)
	if l == "" || c == "" {
		return false
	}
	return semver.Compare(l, c) > 0
}

// canonicalVersion turns Maven style "1.6", "1.7-SNAPSHOT" into "v1.6.0", "v1.7.0-SNAPSHOT".
func canonicalVersion(v string) string {
	v = strings.TrimPrefix(strings.TrimSpace(v), "v")
	core, pre, hasPre := strings.Cut(v, "-")
	parts := strings.Split(core, ".")
	for len(parts) < 3 {
		parts = append(parts, "0")
	}
	out := "v" + strings.Join(parts, ".")
	if hasPre {
		out += "-" + pre
	}
	if !semver.IsValid(out) {
		return ""
	}
	return semver.Canonical(out)
}
