// File: lixenwraith/petmaster/doc.go

// Package petmaster manages the configuration lifecycle of the PetMaster plugin:
// two user-editable YAML documents (config.yml and a language file), additive
// migration of both across releases, and a single readiness verdict for every run.
//
// Features:
//   - Comment and order preserving YAML documents with typed, never-failing getters
//   - Append-only migration catalogs applied only on initial start
//   - Backups written next to each document before any migrating save
//   - Capability requirements that downgrade features when optional plugins are missing
//   - Atomic publication of an immutable settings snapshot
//   - Optional polling watcher that reloads on file changes
//
// Quick Start:
//
//	m, rep, err := petmaster.Quick(ctx, "plugins/PetMaster", registry, logger)
//	if petmaster.IsFatal(err) {
//	    return err // host already disabled
//	}
//	if rep.State == petmaster.StateDegraded {
//	    log.Println("running with reduced functionality")
//	}
//
//	if m.Settings().HologramMessage {
//	    // render holograms
//	}
//
// Lifecycle:
//
//	Uninitialized → DocumentsLoaded → BackedUp → Migrated → SettingsExtracted
//	    → CapabilitiesResolved → Ready | Degraded
//
// A malformed document ends the run in Fatal straight from loading. I/O failures,
// failed backups, failed validators and unmet degrading requirements end it in Degraded.
// Reload follows the same path but never migrates, so manual edits are read as written.
//
// Thread Safety:
// Runs are serialized. Readers use Snapshot, Settings and Text without locking.
package petmaster
