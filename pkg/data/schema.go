package data

import "fmt"

// Schema names the columns the split reads from the source tables and the
// column it derives for stratification.
type Schema struct {
	IDColumn      string // join key shared by both tables, e.g. "DepMap_ID"
	SexColumn     string
	AgeColumn     string
	StratumColumn string // derived composite label, e.g. "age_and_sex"
	Separator     string // placed between age category and sex
}

// DefaultSchema matches the DepMap sample_info and gene dependency exports.
func DefaultSchema() Schema {
	return Schema{
		IDColumn:      "DepMap_ID",
		SexColumn:     "sex",
		AgeColumn:     "age_categories",
		StratumColumn: "age_and_sex",
		Separator:     "_",
	}
}

// Validate reports an empty or clashing column name.
func (s Schema) Validate() error {
	names := map[string]string{
		"id":      s.IDColumn,
		"sex":     s.SexColumn,
		"age":     s.AgeColumn,
		"stratum": s.StratumColumn,
	}
	seen := make(map[string]string, len(names))
	for _, role := range []string{"id", "sex", "age", "stratum"} {
		col := names[role]
		if col == "" {
			return fmt.Errorf("%w: %s column name is empty", ErrInvalidSchema, role)
		}
		if other, dup := seen[col]; dup {
			return fmt.Errorf("%w: %s and %s columns are both %q", ErrInvalidSchema, other, role, col)
		}
		seen[col] = role
	}
	return nil
}
