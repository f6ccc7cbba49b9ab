// FILE: lixenwraith/petmaster/readiness.go
package petmaster

import (
	"slices"
	"time"
)

// State is the position of a lifecycle run.
type State int32

const (
	StateUninitialized State = iota
	StateDocumentsLoaded
	StateBackedUp
	StateMigrated
	StateSettingsExtracted
	StateCapabilitiesResolved
	StateReady
	StateDegraded
	StateFatal
)

var stateNames = [...]string{
	StateUninitialized:        "uninitialized",
	StateDocumentsLoaded:      "documents-loaded",
	StateBackedUp:             "backed-up",
	StateMigrated:             "migrated",
	StateSettingsExtracted:    "settings-extracted",
	StateCapabilitiesResolved: "capabilities-resolved",
	StateReady:                "ready",
	StateDegraded:             "degraded",
	StateFatal:                "fatal",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// Terminal reports whether s ends a run.
func (s State) Terminal() bool {
	return s == StateReady || s == StateDegraded || s == StateFatal
}

// Readiness aggregates the outcome of one lifecycle run.
// Values are never mutated in place; each phase derives a new one.
type Readiness struct {
	SuccessfulLoad  bool
	UpdatedSettings bool
	UpdatedText     bool
	Failures        []error
}

func newReadiness() Readiness {
	return Readiness{SuccessfulLoad: true}
}

// fail returns r with err recorded and the load marked unsuccessful.
func (r Readiness) fail(err error) Readiness {
	r.SuccessfulLoad = false
	r.Failures = append(slices.Clip(r.Failures), err)
	return r
}

// final maps the aggregate onto a terminal state.
func (r Readiness) final() State {
	if r.SuccessfulLoad {
		return StateReady
	}
	return StateDegraded
}

// Report summarizes a Start or Reload call.
type Report struct {
	RunID     string
	Initial   bool
	State     State
	Readiness Readiness
	Warnings  []string
	Started   time.Time
	Duration  time.Duration
}

// Snapshot is the published result of the last non-fatal run.
// It is replaced as a whole and must not be modified by readers.
type Snapshot struct {
	RunID        string
	State        State
	Settings     Settings
	Text         *Messages
	Readiness    Readiness
	Warnings     []string
	SettingsPath string
	TextPath     string
}
