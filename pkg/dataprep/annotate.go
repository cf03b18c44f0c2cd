package dataprep

import (
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"vaeprep/pkg/data"
)

// Annotate attaches the composite age/sex label of each sample to the
// dependency row with the same identifier. The join is explicit: every
// dependency identifier must have exactly one sample row, otherwise
// ErrUnmatchedIdentifier is returned. Dependency row order is kept, the
// identifier column comes first and the label column is appended last,
// replacing any column of the same name.
func Annotate(samples, dependency dataframe.DataFrame, schema data.Schema) (dataframe.DataFrame, error) {
	if err := data.RequireColumns(samples, "sample", schema.IDColumn, schema.SexColumn, schema.AgeColumn); err != nil {
		return dataframe.DataFrame{}, err
	}
	if err := data.RequireColumns(dependency, "dependency", schema.IDColumn); err != nil {
		return dataframe.DataFrame{}, err
	}
	if err := data.CheckUnique(samples, "sample", schema.IDColumn); err != nil {
		return dataframe.DataFrame{}, err
	}

	ids := samples.Col(schema.IDColumn).Records()
	ages := samples.Col(schema.AgeColumn).Records()
	sexes := samples.Col(schema.SexColumn).Records()

	keys := make([]string, len(ids))
	known := make(map[string]struct{}, len(ids))
	for i, id := range ids {
		keys[i] = CompositeKey(schema.Separator, ages[i], sexes[i])
		known[id] = struct{}{}
	}

	var unmatched []string
	for _, id := range dependency.Col(schema.IDColumn).Records() {
		if _, ok := known[id]; !ok {
			unmatched = append(unmatched, id)
		}
	}
	if len(unmatched) > 0 {
		return dataframe.DataFrame{}, fmt.Errorf("%w: %d row(s): %s",
			ErrUnmatchedIdentifier, len(unmatched), preview(unmatched, 5))
	}

	if data.HasColumn(dependency, schema.StratumColumn) {
		dependency = dependency.Drop(schema.StratumColumn)
	}
	labels := dataframe.New(
		series.New(ids, series.String, schema.IDColumn),
		series.New(keys, series.String, schema.StratumColumn),
	)
	joined := dependency.InnerJoin(labels, schema.IDColumn)
	if joined.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("annotate: %w", joined.Err)
	}
	return joined, nil
}
