package board

import (
	"fmt"
	"strings"
)

// DefaultEventLogLimit bounds the interaction log kept by a running board.
const DefaultEventLogLimit = 2048

// EventEntry is one handled pointer interaction.
type EventEntry struct {
	Frame    int
	Pointer  string // e.g. "mouse#0", "touch#3"
	Category string // select, drag, draw, erase, pointer
	Key      string // specific event name within the category
	Value    string // human-readable detail
}

// String formats the entry as a fixed-width log line.
//
//	[F=0042] touch#3  draw     commit          arrow 4 pts
func (e EventEntry) String() string {
	return fmt.Sprintf("[F=%04d] %-8s %-8s %-15s %s",
		e.Frame, e.Pointer, e.Category, e.Key, e.Value)
}

// EventLog collects interaction events. Unlike StatusLog it is
// machine-readable and meant for tests and traces. Oldest entries are
// dropped once the limit is reached; a limit <= 0 keeps everything.
type EventLog struct {
	entries []EventEntry
	limit   int
	verbose bool
}

// NewEventLog creates an EventLog. If verbose is true, per-move entries are
// also recorded.
func NewEventLog(limit int, verbose bool) *EventLog {
	return &EventLog{limit: limit, verbose: verbose}
}

// Add records a new entry.
func (el *EventLog) Add(frame int, ptr, category, key, value string) {
	el.entries = append(el.entries, EventEntry{
		Frame:    frame,
		Pointer:  ptr,
		Category: category,
		Key:      key,
		Value:    value,
	})
	if el.limit > 0 && len(el.entries) > el.limit {
		n := len(el.entries) - el.limit
		el.entries = append(el.entries[:0], el.entries[n:]...)
	}
}

// AddVerbose records an entry only when verbose mode is on.
func (el *EventLog) AddVerbose(frame int, ptr, category, key, value string) {
	if !el.verbose {
		return
	}
	el.Add(frame, ptr, category, key, value)
}

// Entries returns all recorded entries.
func (el *EventLog) Entries() []EventEntry {
	return el.entries
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (el *EventLog) Filter(category, key string) []EventEntry {
	var out []EventEntry
	for _, e := range el.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Count returns how many entries match category and key.
func (el *EventLog) Count(category, key string) int {
	return len(el.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (el *EventLog) LastOf(category, key string) (EventEntry, bool) {
	entries := el.Filter(category, key)
	if len(entries) == 0 {
		return EventEntry{}, false
	}
	return entries[len(entries)-1], true
}

// HasEntry reports whether an entry matches category, key and value substring.
func (el *EventLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range el.Filter(category, key) {
		if valueSubstr == "" || strings.Contains(e.Value, valueSubstr) {
			return true
		}
	}
	return false
}

// Format returns the full log as a single string for t.Log output.
func (el *EventLog) Format() string {
	var sb strings.Builder
	for _, e := range el.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
