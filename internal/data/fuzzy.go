package data

import (
	"sort"

	"github.com/agnivade/levenshtein"
)

// maxSuggestions caps the result of Closest.
const maxSuggestions = 3

// Closest returns up to three candidates within a length-scaled edit
// distance of query, nearest first. Comparison ignores case.
func Closest(query string, candidates []string) []string {
	q := foldName(query)
	if q == "" {
		return nil
	}
	type scored struct {
		name string
		dist int
	}
	var hits []scored
	seen := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		key := foldName(c)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		dist := levenshtein.ComputeDistance(q, key)
		if dist > distanceLimit(len([]rune(key))) {
			continue
		}
		hits = append(hits, scored{name: c, dist: dist})
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].dist < hits[j].dist
	})
	if len(hits) > maxSuggestions {
		hits = hits[:maxSuggestions]
	}
	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.name
	}
	return out
}

func distanceLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
