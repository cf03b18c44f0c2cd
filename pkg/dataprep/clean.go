package dataprep

import "strings"

// IsMissing reports whether a raw cell is one of the missing-value spellings
// found in DepMap exports.
func IsMissing(v string) bool {
	switch strings.TrimSpace(v) {
	case "", "NA", "NaN", "nan", "None":
		return true
	}
	return false
}

// preview joins up to n identifiers for an error message.
func preview(ids []string, n int) string {
	if len(ids) <= n {
		return strings.Join(ids, ", ")
	}
	return strings.Join(ids[:n], ", ") + ", ..."
}
