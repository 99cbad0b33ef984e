// Package validation checks archive contents for inconsistencies the schema
// cannot rule out on its own.
package validation

import (
	"fmt"
	"strings"

	"github.com/julianstephens/archiver/internal/models"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictBlankContent   ConflictType = "blank_content"
	ConflictOrphanEntry    ConflictType = "orphan_entry"
	ConflictDuplicateID    ConflictType = "duplicate_entry_id"
	ConflictTimestampOrder ConflictType = "timestamp_order"
	ConflictCountMismatch  ConflictType = "count_mismatch"
	ConflictInvalidDay     ConflictType = "invalid_day"
)

// Conflict is one detected inconsistency.
type Conflict struct {
	Type        ConflictType
	Description string
	Date        string   // YYYY-MM-DD, if applicable
	EntryIDs    []string // entries involved
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, c := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", c.Description)
	}
	return b.String()
}

type Validator struct{}

func New() *Validator {
	return &Validator{}
}

// ValidateArchive cross-checks the day list against every stored entry.
func (v *Validator) ValidateArchive(days []models.DayRecord, entries []models.Entry) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	registered := make(map[string]int, len(days))
	for _, d := range days {
		if d.Day.IsZero() {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDay,
				Description: "Day list contains an empty date",
			})
			continue
		}
		registered[d.Day.Canonical()] = d.EntryCount
	}

	counted := make(map[string]int)
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		key := e.Day.Canonical()
		counted[key]++

		if seen[e.ID] {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateID,
				Description: fmt.Sprintf("Entry ID %s is used more than once", e.ID),
				Date:        key,
				EntryIDs:    []string{e.ID},
			})
		}
		seen[e.ID] = true

		if _, ok := registered[key]; !ok {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictOrphanEntry,
				Description: fmt.Sprintf("Entry %s belongs to unregistered day %s", e.ID, key),
				Date:        key,
				EntryIDs:    []string{e.ID},
			})
		}
		if strings.TrimSpace(e.Content) == "" {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictBlankContent,
				Description: fmt.Sprintf("Entry %s on %s has no content", e.ID, key),
				Date:        key,
				EntryIDs:    []string{e.ID},
			})
		}
		if e.UpdatedAt.Before(e.CreatedAt) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictTimestampOrder,
				Description: fmt.Sprintf("Entry %s was updated before it was created", e.ID),
				Date:        key,
				EntryIDs:    []string{e.ID},
			})
		}
	}

	for _, d := range days {
		if d.Day.IsZero() {
			continue
		}
		key := d.Day.Canonical()
		if got := counted[key]; got != d.EntryCount {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictCountMismatch,
				Description: fmt.Sprintf("Day %s reports %d entries but %d were found", key, d.EntryCount, got),
				Date:        key,
			})
		}
	}

	return result
}
