// FILE: lixenwraith/petmaster/catalog.go
package petmaster

import _ "embed"

// Bundled documents written to disk on first start.
var (
	//go:embed defaults/config.yml
	defaultSettingsDocument []byte

	//go:embed defaults/lang.yml
	defaultTextDocument []byte
)

// DefaultSettingsDocument returns a copy of the bundled config.yml.
func DefaultSettingsDocument() []byte {
	return append([]byte(nil), defaultSettingsDocument...)
}

// DefaultTextDocument returns a copy of the bundled lang.yml.
func DefaultTextDocument() []byte {
	return append([]byte(nil), defaultTextDocument...)
}

// MigrationEntry is one setting introduced by some release, with the value and
// comment block written for documents that predate it.
type MigrationEntry struct {
	Key      string
	Default  any
	Comments []string
}

// Catalog is the ordered history of every setting ever introduced into a document.
// Entries are only ever appended; removing or reordering one breaks migration of old files.
type Catalog []MigrationEntry

// Keys returns the catalog keys in order.
func (c Catalog) Keys() []string {
	keys := make([]string, len(c))
	for i, e := range c {
		keys[i] = e.Key
	}
	return keys
}

// SettingsCatalog lists the settings added to config.yml since 1.2.
// Upgrades from older files are not supported.
func SettingsCatalog() Catalog {
	return Catalog{
		{KeyLanguageFileName, DefaultLanguageFileName, []string{"Name of the language file."}},
		{KeyCheckForUpdate, true, []string{"Check for update on plugin launch and notify when an OP joins the game."}},
		{KeyChangeOwnerPrice, 0, []string{"Price of the /petm setowner command (requires Vault)."}},
		{KeyDisplayDog, true, []string{"Take dogs into account."}},
		{KeyDisplayCat, true, []string{"Take cats into account."}},
		{KeyDisplayHorse, true, []string{"Take horses into account."}},
		{KeyDisplayLlama, true, []string{"Take llamas into account."}},
		{KeyDisplayParrot, true, []string{"Take parrots into account."}},
		{KeyActionBarMessage, false, []string{"Enable or disable action bar messages when right-clicking on a pet."}},
		{KeyDisplayToOwner, false, []string{"Enable or disable showing ownership information for a player's own pets."}},
		{KeyFreePetPrice, 0, []string{"Price of the /petm free command (requires Vault)."}},
	}
}

// TextCatalog lists the messages added to the language file since 1.2.
func TextCatalog() Catalog {
	return Catalog{
		{Key: "petmaster-command-setowner-hover", Default: "You can only change the ownership of your own pets, unless you're admin!"},
		{Key: "petmaster-command-disable-hover", Default: "The plugin will not work until next reload or /petm enable."},
		{Key: "petmaster-command-enable-hover", Default: "Plugin enabled by default. Use this if you entered /petm disable before!"},
		{Key: "petmaster-command-reload-hover", Default: "Reload most settings in config.yml and lang.yml files."},
		{Key: "petmaster-command-info-hover", Default: "Some extra info about the plugin and its awesome author!"},
		{Key: "petmaster-tip", Default: "&lHINT&r &8You can &7&n&ohover&r &8or &7&n&oclick&r &8on the commands!"},
		{Key: "change-owner-price", Default: "You payed: AMOUNT !"},
		{Key: "petmaster-action-bar", Default: "Pet owned by "},
		{Key: "petmaster-command-free", Default: "Free a pet."},
		{Key: "petmaster-command-free-hover", Default: "You can only free your own pets, unless you're admin!"},
		{Key: "pet-freed", Default: "Say goodbye: this pet returned to the wild!"},
		{Key: "not-enough-money", Default: "You do not have the required amount: AMOUNT !"},
	}
}
