package dataprep

import (
	"sort"
	"strings"
)

// CompositeKey joins categorical attributes into one stratification label,
// e.g. CompositeKey("_", "Adult", "Male") is "Adult_Male".
func CompositeKey(sep string, parts ...string) string {
	return strings.Join(parts, sep)
}

// LabelEncode encodes labels as integers. Codes follow the sorted order of the
// distinct labels, which are returned as classes.
func LabelEncode(labels []string) (codes []int, classes []string) {
	index := map[string]int{}
	for _, v := range labels {
		if _, ok := index[v]; !ok {
			index[v] = 0
			classes = append(classes, v)
		}
	}
	sort.Strings(classes)
	for i, c := range classes {
		index[c] = i
	}
	codes = make([]int, len(labels))
	for i, v := range labels {
		codes[i] = index[v]
	}
	return codes, classes
}

// CountLabels returns the number of occurrences of each label.
func CountLabels(labels []string) map[string]int {
	counts := map[string]int{}
	for _, v := range labels {
		counts[v]++
	}
	return counts
}
