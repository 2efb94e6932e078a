// Package match implements prefix completion with cycling
// disambiguation over the item catalog. The matcher is UI-agnostic: the
// caller translates its input events (keystrokes, next/previous
// navigation) into Filter and Cycle calls and owns the field contents.
package match

import (
	"sort"
	"strings"
)

// Matcher holds a case-insensitively sorted copy of the catalog plus the
// hit list and cycle position from the previous Cycle call. It is not
// safe for concurrent use; sessions are single-threaded.
type Matcher struct {
	entries  []string
	hits     []string
	hitIndex int
}

func New(items []string) *Matcher {
	entries := make([]string, len(items))
	copy(entries, items)
	sort.SliceStable(entries, func(i, j int) bool {
		return strings.ToLower(entries[i]) < strings.ToLower(entries[j])
	})
	return &Matcher{entries: entries}
}

// Filter returns, in sorted order, every entry whose lowercase form
// starts with text's lowercase form. Empty text matches everything.
func (m *Matcher) Filter(text string) []string {
	prefix := strings.ToLower(text)
	var hits []string
	for _, entry := range m.entries {
		if strings.HasPrefix(strings.ToLower(entry), prefix) {
			hits = append(hits, entry)
		}
	}
	return hits
}

// Cycle recomputes the hit list for text and returns the current
// completion choice. A changed hit list resets the cycle position to the
// first hit before delta is applied; an unchanged one advances the
// position by delta with wraparound, so delta 0 repeats the current
// choice and ±1 steps forward or back. Returns false when nothing
// matches.
func (m *Matcher) Cycle(text string, delta int) (string, bool) {
	hits := m.Filter(text)
	if !equal(hits, m.hits) {
		m.hitIndex = 0
		m.hits = hits
	}
	if len(m.hits) == 0 {
		return "", false
	}
	n := len(m.hits)
	m.hitIndex = ((m.hitIndex+delta)%n + n) % n
	return m.hits[m.hitIndex], true
}

// Entries returns the sorted catalog view backing the matcher.
func (m *Matcher) Entries() []string {
	return m.entries
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
