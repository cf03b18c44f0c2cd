package dataprep

import (
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"vaeprep/pkg/data"
)

// DefaultCategories are the age cohorts kept for VAE training.
var DefaultCategories = []string{"Adult", "Pediatric"}

// FilterPopulation keeps the annotated dependency rows whose sample has an
// age category in categories (exact match, no case folding). The result keeps
// the annotated table's row order with dense positions 0..n-1.
func FilterPopulation(samples, annotated dataframe.DataFrame, schema data.Schema, categories []string) (dataframe.DataFrame, error) {
	if len(categories) == 0 {
		return dataframe.DataFrame{}, ErrNoCategories
	}
	if err := data.RequireColumns(samples, "sample", schema.IDColumn, schema.SexColumn, schema.AgeColumn); err != nil {
		return dataframe.DataFrame{}, err
	}
	if err := data.RequireColumns(annotated, "dependency", schema.IDColumn); err != nil {
		return dataframe.DataFrame{}, err
	}

	eligible := samples.Filter(dataframe.F{
		Colname:    schema.AgeColumn,
		Comparator: series.In,
		Comparando: categories,
	})
	if eligible.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("filter %s: %w", schema.AgeColumn, eligible.Err)
	}

	sexOf := make(map[string]string, eligible.Nrow())
	sexes := eligible.Col(schema.SexColumn).Records()
	for i, id := range eligible.Col(schema.IDColumn).Records() {
		sexOf[id] = sexes[i]
	}

	var keep []int
	for i, id := range annotated.Col(schema.IDColumn).Records() {
		sex, ok := sexOf[id]
		if !ok {
			continue
		}
		if IsMissing(sex) {
			return dataframe.DataFrame{}, fmt.Errorf("%w: %s of %q", ErrMissingAttribute, schema.SexColumn, id)
		}
		keep = append(keep, i)
	}
	if len(keep) == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("%w: categories %v", ErrEmptyPopulation, categories)
	}

	out := annotated.Subset(keep)
	if out.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("subset: %w", out.Err)
	}
	return out, nil
}
