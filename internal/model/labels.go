package model

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Label formatting constants
const (
	NoneLabel             = "None"
	DefaultBitrateLabel   = "30kbps"
	BitrateLabelSuffix    = "kbps"
	ResolutionLabelFormat = "%s @ %dfps"
)

// LabelEntry maps one display label to a stream
type LabelEntry struct {
	Label string
	Itag  Itag
}

// LabelMap is an ordered label -> itag mapping used to fill a selection
// control. It always contains the "None" entry.
type LabelMap struct {
	entries []LabelEntry
}

// NewLabelMap returns a map holding only the "None" entry
func NewLabelMap() LabelMap {
	return LabelMap{entries: []LabelEntry{{Label: NoneLabel, Itag: NoItag}}}
}

// Set inserts label or replaces the itag of an existing label, keeping the
// position of its first insertion.
func (m *LabelMap) Set(label string, itag Itag) {
	if len(m.entries) == 0 {
		*m = NewLabelMap()
	}
	for i := range m.entries {
		if m.entries[i].Label == label {
			m.entries[i].Itag = itag
			return
		}
	}
	m.entries = append(m.entries, LabelEntry{Label: label, Itag: itag})
}

// Lookup returns the itag behind label
func (m LabelMap) Lookup(label string) (Itag, bool) {
	for _, e := range m.entries {
		if e.Label == label {
			return e.Itag, true
		}
	}
	if label == NoneLabel {
		return NoItag, true
	}
	return NoItag, false
}

// Len returns the number of entries including "None"
func (m LabelMap) Len() int {
	if len(m.entries) == 0 {
		return 1
	}
	return len(m.entries)
}

// Labels returns labels in insertion order
func (m LabelMap) Labels() []string {
	if len(m.entries) == 0 {
		return []string{NoneLabel}
	}
	labels := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		labels = append(labels, e.Label)
	}
	return labels
}

// Entries returns a copy of the entries in insertion order
func (m LabelMap) Entries() []LabelEntry {
	if len(m.entries) == 0 {
		return []LabelEntry{{Label: NoneLabel, Itag: NoItag}}
	}
	out := make([]LabelEntry, len(m.entries))
	copy(out, m.entries)
	return out
}

// BitrateOrder returns labels sorted by descending numeric kbps with "None"
// last
func (m LabelMap) BitrateOrder() []string {
	return m.sortedBy(func(label string) []int {
		return []int{leadingNumber(label)}
	})
}

// ResolutionOrder returns labels sorted by descending height then frame
// rate with "None" last
func (m LabelMap) ResolutionOrder() []string {
	return m.sortedBy(func(label string) []int {
		res, fps, found := strings.Cut(label, " @ ")
		if !found {
			return []int{leadingNumber(label), 0}
		}
		return []int{leadingNumber(res), leadingNumber(fps)}
	})
}

func (m LabelMap) sortedBy(key func(string) []int) []string {
	labels := m.Labels()
	sort.SliceStable(labels, func(i, j int) bool {
		if labels[i] == NoneLabel {
			return false
		}
		if labels[j] == NoneLabel {
			return true
		}
		ki, kj := key(labels[i]), key(labels[j])
		for n := range ki {
			if ki[n] != kj[n] {
				return ki[n] > kj[n]
			}
		}
		return false
	})
	return labels
}

// ResolutionLabel formats "{resolution} @ {fps}fps"
func ResolutionLabel(resolution string, fps int) string {
	return fmt.Sprintf(ResolutionLabelFormat, resolution, fps)
}

// BitrateLabel formats "{kbps}kbps", falling back to "30kbps" when unset
func BitrateLabel(kbps int) string {
	if kbps <= 0 {
		return DefaultBitrateLabel
	}
	return strconv.Itoa(kbps) + BitrateLabelSuffix
}

// leadingNumber parses the digits at the start of s, 0 if there are none
func leadingNumber(s string) int {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}
