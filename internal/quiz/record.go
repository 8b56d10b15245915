package quiz

import (
	"slices"
	"strconv"
	"strings"
)

// Record is one street-to-district fact loaded from the data source.
type Record struct {
	Street    string `json:"street"`
	Districts []int  `json:"districts"`
}

// Normalized returns a copy with districts sorted ascending and duplicates removed.
func (r Record) Normalized() Record {
	districts := slices.Clone(r.Districts)
	slices.Sort(districts)
	return Record{
		Street:    r.Street,
		Districts: slices.Compact(districts),
	}
}

// NormalizeKey is the uniqueness/correctness key of a district set: "1,3".
func NormalizeKey(districts []int) string {
	return joinSorted(districts, ",")
}

// FormatSet renders a district set for display: "1, 3".
func FormatSet(districts []int) string {
	return joinSorted(districts, ", ")
}

func formatKey(key string) string {
	return strings.ReplaceAll(key, ",", ", ")
}

func joinSorted(districts []int, sep string) string {
	sorted := slices.Clone(districts)
	slices.Sort(sorted)
	parts := make([]string, len(sorted))
	for i, d := range sorted {
		parts[i] = strconv.Itoa(d)
	}
	return strings.Join(parts, sep)
}
