package utils

import (
	"sort"
	"strings"
)

// NormalizeTags trims whitespace and drops case-insensitive duplicates,
// keeping the first spelling seen.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		key := strings.ToLower(t)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, t)
	}
	return out
}

type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// CountTags aggregates tags across skills, folding case so "React" and
// "react" count together under the first spelling seen. Results are ordered
// by count, then tag.
func CountTags(tagLists ...[]string) []TagCount {
	idx := make(map[string]int)
	out := []TagCount{}
	for _, tags := range tagLists {
		for _, t := range tags {
			t = strings.TrimSpace(t)
			if t == "" {
				continue
			}
			key := strings.ToLower(t)
			if i, ok := idx[key]; ok {
				out[i].Count++
				continue
			}
			idx[key] = len(out)
			out = append(out, TagCount{Tag: t, Count: 1})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return strings.ToLower(out[i].Tag) < strings.ToLower(out[j].Tag)
	})
	return out
}
