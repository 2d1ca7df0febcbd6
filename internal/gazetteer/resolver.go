package gazetteer

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/address-resolver/app/models"
)

// key identifies a chain of rename events.
type key struct {
	prefecture string
	oldName    string
}

// Table is the read-only set of municipality rename/merger events. It is
// built once at startup and never mutated afterwards, so a single Table may
// be shared by any number of goroutines.
type Table struct {
	events map[key][]models.GazetteerEvent // sorted by EffectiveDate
	// old names per prefecture, longest first, for longest-match-first
	// substring replacement
	namesByPref map[string][]string
	version     string
}

// NewTable builds a Table from loader-supplied events. Events are grouped by
// (prefecture, old name) and sorted by effective date within each group.
func NewTable(events []models.GazetteerEvent, version string) *Table {
	t := &Table{
		events:      make(map[key][]models.GazetteerEvent),
		namesByPref: make(map[string][]string),
		version:     version,
	}
	for _, ev := range events {
		k := key{ev.Prefecture, ev.OldName}
		t.events[k] = append(t.events[k], ev)
	}
	seen := make(map[key]bool)
	for k, chain := range t.events {
		sort.Slice(chain, func(i, j int) bool {
			return chain[i].EffectiveDate.Before(chain[j].EffectiveDate)
		})
		t.events[k] = chain
		if !seen[k] {
			seen[k] = true
			t.namesByPref[k.prefecture] = append(t.namesByPref[k.prefecture], k.oldName)
		}
	}
	for pref, names := range t.namesByPref {
		sort.Slice(names, func(i, j int) bool {
			if len(names[i]) != len(names[j]) {
				return len(names[i]) > len(names[j])
			}
			return names[i] < names[j]
		})
		t.namesByPref[pref] = names
	}
	return t
}

// Version returns the version string the table was loaded with.
func (t *Table) Version() string { return t.version }

// Len returns the number of (prefecture, old name) chains.
func (t *Table) Len() int { return len(t.events) }

// Resolver rewrites historical municipality names to their name as of a
// reference date. Pure over the read-only table; safe for concurrent use.
type Resolver struct {
	table *Table

	// 市…区 compound detection for the designated-city bypass
	reCityWard *regexp.Regexp
}

// NewResolver creates a Resolver over table.
func NewResolver(table *Table) *Resolver {
	return &Resolver{
		table:      table,
		reCityWard: regexp.MustCompile(`市[^市]*区`),
	}
}

// Resolve rewrites any historical municipality names embedded in text to
// their name as of asOf. A zero asOf means "latest". The substitution is a
// substring replacement: ward/street text around the old name is preserved.
// Designated-city compounds (市…区) are already current and bypass rewriting.
func (r *Resolver) Resolve(prefecture, text string, asOf time.Time) (string, []models.AppliedChange) {
	if text == "" || prefecture == "" {
		return text, nil
	}

	// Ordinance-designated cities carry a 市…区 compound and never need
	// historical rewriting.
	if r.reCityWard.MatchString(text) {
		return text, nil
	}

	// Longest old name first, one substitution per text. Trying shorter
	// names after a rewrite could falsely match inside the replacement.
	for _, oldName := range r.table.namesByPref[prefecture] {
		if !strings.Contains(text, oldName) {
			continue
		}
		final, applied := r.followChain(prefecture, oldName, asOf)
		if final == oldName {
			continue
		}
		return strings.Replace(text, oldName, final, 1), applied
	}
	return text, nil
}

// followChain walks old→intermediate→final through chained merger events,
// stopping at the last event effective on or before asOf. A municipality may
// have merged several times, so one substitution is not enough.
func (r *Resolver) followChain(prefecture, name string, asOf time.Time) (string, []models.AppliedChange) {
	var changes []models.AppliedChange
	current := name
	// A rename graph over real data is acyclic; the bound guards against a
	// malformed table.
	for hop := 0; hop < 16; hop++ {
		chain, ok := r.table.events[key{prefecture, current}]
		if !ok {
			break
		}
		// Latest event with effective date <= asOf (or just latest).
		var next *models.GazetteerEvent
		for i := range chain {
			if asOf.IsZero() || !chain[i].EffectiveDate.After(asOf) {
				next = &chain[i]
			}
		}
		if next == nil || next.NewName == current {
			break
		}
		changes = append(changes, models.AppliedChange{
			OldName:       current,
			NewName:       next.NewName,
			EffectiveDate: next.EffectiveDate,
		})
		current = next.NewName
	}
	return current, changes
}
