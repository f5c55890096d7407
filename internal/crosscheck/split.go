// Package crosscheck decides whether paragraph text is already indexed by
// searching a short fragment of it and looking for the adjacent fragment
// in the results page.
package crosscheck

import "strings"

const (
	minSplit   = 20
	queryRunes = 9
	probeRunes = 5
)

// Split picks the two fragments around the paragraph midpoint: query is
// up to nine characters before it, probe up to five after it. Offsets are
// in characters and clamped to the text, so short text may yield an empty
// probe.
func Split(p string) (query, probe string) {
	r := []rune(p)
	pos := len(r) / 2
	if pos < minSplit {
		pos = minSplit
	}
	query = strings.TrimSpace(slice(r, pos-queryRunes, pos))
	probe = strings.TrimSpace(slice(r, pos, pos+probeRunes))
	return query, probe
}

func slice(r []rune, from, to int) string {
	if from < 0 {
		from = 0
	}
	if to > len(r) {
		to = len(r)
	}
	if from >= to {
		return ""
	}
	return string(r[from:to])
}
