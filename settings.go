// FILE: lixenwraith/petmaster/settings.go
package petmaster

import "fmt"

// Settings document keys.
const (
	KeyLanguageFileName = "languageFileName"
	KeyCheckForUpdate   = "checkForUpdate"
	KeyChatMessage      = "chatMessage"
	KeyHologramMessage  = "hologramMessage"
	KeyActionBarMessage = "actionBarMessage"
	KeyChangeOwnerPrice = "changeOwnerPrice"
	KeyFreePetPrice     = "freePetPrice"
	KeyDisplayDog       = "displayDog"
	KeyDisplayCat       = "displayCat"
	KeyDisplayHorse     = "displayHorse"
	KeyDisplayLlama     = "displayLlama"
	KeyDisplayParrot    = "displayParrot"
	KeyDisplayToOwner   = "displayToOwner"

	// KeyPayments is derived from the prices and never read from the document.
	KeyPayments = "payments"
)

// DefaultLanguageFileName is used until the settings document names another text document.
const DefaultLanguageFileName = "lang.yml"

// Settings is the typed view of the settings document plus derived feature flags.
// A value is built once per lifecycle run and never modified after publication.
type Settings struct {
	LanguageFileName string `yaml:"languageFileName" toml:"languageFileName"`
	CheckForUpdate   bool   `yaml:"checkForUpdate" toml:"checkForUpdate"`
	ChatMessage      bool   `yaml:"chatMessage" toml:"chatMessage"`
	HologramMessage  bool   `yaml:"hologramMessage" toml:"hologramMessage"`
	ActionBarMessage bool   `yaml:"actionBarMessage" toml:"actionBarMessage"`
	ChangeOwnerPrice int    `yaml:"changeOwnerPrice" toml:"changeOwnerPrice"`
	FreePetPrice     int    `yaml:"freePetPrice" toml:"freePetPrice"`
	DisplayDog       bool   `yaml:"displayDog" toml:"displayDog"`
	DisplayCat       bool   `yaml:"displayCat" toml:"displayCat"`
	DisplayHorse     bool   `yaml:"displayHorse" toml:"displayHorse"`
	DisplayLlama     bool   `yaml:"displayLlama" toml:"displayLlama"`
	DisplayParrot    bool   `yaml:"displayParrot" toml:"displayParrot"`
	DisplayToOwner   bool   `yaml:"displayToOwner" toml:"displayToOwner"`
	Payments         bool   `yaml:"payments" toml:"payments"`
}

// DefaultSettings returns the values used for keys missing from the settings document.
func DefaultSettings() Settings {
	return Settings{
		LanguageFileName: DefaultLanguageFileName,
		CheckForUpdate:   true,
		ChatMessage:      false,
		HologramMessage:  true,
		ActionBarMessage: true,
		DisplayDog:       true,
		DisplayCat:       true,
		DisplayHorse:     true,
		DisplayLlama:     true,
		DisplayParrot:    true,
		DisplayToOwner:   false,
	}
}

// ExtractSettings reads every recognized key of doc over DefaultSettings.
// Keys are decoded one at a time so a bad value only costs its own field;
// such values keep their default and are reported as warnings.
// A nil doc yields the defaults.
func ExtractSettings(doc *Document) (Settings, []string) {
	s := DefaultSettings()
	if doc == nil {
		return s, nil
	}

	var warnings []string
	for _, key := range doc.Keys() {
		if key == KeyPayments {
			continue
		}
		val, _ := doc.Get(key)
		if err := decodeSettings(map[string]any{key: val}, &s); err != nil {
			warnings = append(warnings, fmt.Sprintf("ignoring invalid value for %s in %s: %v", key, doc.Path(), err))
		}
	}
	s.Payments = s.ChangeOwnerPrice > 0 || s.FreePetPrice > 0
	return s, warnings
}

// Flags returns the boolean settings keyed by their document key.
func (s Settings) Flags() map[string]bool {
	raw := make(map[string]any)
	if err := encodeSettings(s, &raw); err != nil {
		return map[string]bool{}
	}
	flags := make(map[string]bool, len(raw))
	for k, v := range raw {
		if b, ok := v.(bool); ok {
			flags[k] = b
		}
	}
	return flags
}

// WithFlags returns a copy of s with the given boolean settings applied. Unknown keys are ignored.
func (s Settings) WithFlags(flags map[string]bool) Settings {
	in := make(map[string]any, len(flags))
	for k, v := range flags {
		in[k] = v
	}
	out := s
	if err := decodeSettings(in, &out); err != nil {
		return s
	}
	return out
}

// Messages is a read-only view of the text document.
type Messages struct {
	doc *Document
}

// NewMessages wraps doc. A nil doc serves only fallbacks.
func NewMessages(doc *Document) *Messages {
	return &Messages{doc: doc}
}

// Get returns the message stored under key, or fallback.
func (m *Messages) Get(key, fallback string) string {
	if m == nil || m.doc == nil {
		return fallback
	}
	return m.doc.String(key, fallback)
}

// Has reports whether the text document defines key.
func (m *Messages) Has(key string) bool {
	if m == nil || m.doc == nil {
		return false
	}
	return m.doc.Has(key)
}

// Path returns the text document's file, or "" when none was loaded.
func (m *Messages) Path() string {
	if m == nil || m.doc == nil {
		return ""
	}
	return m.doc.Path()
}
