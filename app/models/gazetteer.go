package models

import "time"

// ChangeKind classifies a municipal merger event.
type ChangeKind string

const (
	// ChangeAbsorption: the old municipality was absorbed into an existing one (編入).
	ChangeAbsorption ChangeKind = "absorption"
	// ChangeConsolidation: several municipalities merged into a newly created one (新設).
	ChangeConsolidation ChangeKind = "consolidation"
)

// GazetteerEvent is one time-dated municipality rename/merger record.
// Events are keyed by (Prefecture, OldName) and totally ordered by
// EffectiveDate within a key; a name may chain through several events.
type GazetteerEvent struct {
	Prefecture    string     `json:"prefecture"`
	OldName       string     `json:"old_name"`
	NewName       string     `json:"new_name"`
	EffectiveDate time.Time  `json:"effective_date"`
	Kind          ChangeKind `json:"kind"`
	Reading       string     `json:"reading,omitempty"`      // kana reading of the old name, when known
	ReadingASCII  string     `json:"reading_ascii,omitempty"` // romanized reading, derived at load time
}

// AppliedChange records one substitution performed by the resolver,
// so callers can report which historical names were rewritten.
type AppliedChange struct {
	OldName       string    `json:"old_name"`
	NewName       string    `json:"new_name"`
	EffectiveDate time.Time `json:"effective_date"`
}
