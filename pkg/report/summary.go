package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/go-gota/gota/dataframe"

	"vaeprep/pkg/data"
	"vaeprep/pkg/dataprep"
	"vaeprep/pkg/stats"
)

// StratumCount is the number of rows of one stratum in each partition.
type StratumCount struct {
	Label string
	Train int
	Test  int
}

// TestFraction is the share of the stratum's rows that went to test.
func (s StratumCount) TestFraction() float64 {
	return stats.Proportion(s.Test, s.Train+s.Test)
}

// ScoreSummary describes the numeric score cells of one partition.
type ScoreSummary struct {
	Cells int
	Mean  float64
	Std   float64
}

// Summary describes a finished split.
type Summary struct {
	Strata      []StratumCount // sorted by label
	Train       int
	Test        int
	TrainScores ScoreSummary
	TestScores  ScoreSummary
}

// TestFraction is the share of all rows that went to test.
func (s Summary) TestFraction() float64 {
	return stats.Proportion(s.Test, s.Train+s.Test)
}

// Summarize counts strata per partition and summarises the score columns,
// i.e. every column except the identifier and the stratum label. Cells that
// do not parse as numbers are skipped.
func Summarize(train, test dataframe.DataFrame, schema data.Schema) Summary {
	trainCounts := dataprep.CountLabels(train.Col(schema.StratumColumn).Records())
	testCounts := dataprep.CountLabels(test.Col(schema.StratumColumn).Records())

	labels := make([]string, 0, len(trainCounts))
	for l := range trainCounts {
		labels = append(labels, l)
	}
	for l := range testCounts {
		if _, ok := trainCounts[l]; !ok {
			labels = append(labels, l)
		}
	}
	sort.Strings(labels)

	s := Summary{
		Train:       train.Nrow(),
		Test:        test.Nrow(),
		TrainScores: scoreSummary(train, schema),
		TestScores:  scoreSummary(test, schema),
	}
	for _, l := range labels {
		s.Strata = append(s.Strata, StratumCount{Label: l, Train: trainCounts[l], Test: testCounts[l]})
	}
	return s
}

func scoreSummary(df dataframe.DataFrame, schema data.Schema) ScoreSummary {
	var m stats.Moments
	for _, name := range df.Names() {
		if name == schema.IDColumn || name == schema.StratumColumn {
			continue
		}
		m.AddAll(df.Col(name).Float())
	}
	return ScoreSummary{Cells: m.N, Mean: m.Mean(), Std: m.Std()}
}

// Fprint writes the summary as a fixed-width table.
func (s Summary) Fprint(w io.Writer) {
	fmt.Fprintf(w, "%-24s%10s%10s%10s\n", "Stratum", "Train", "Test", "Test %")
	for _, st := range s.Strata {
		fmt.Fprintf(w, "%-24s%10d%10d%9.1f%%\n", st.Label, st.Train, st.Test, st.TestFraction()*100)
	}
	fmt.Fprintf(w, "%-24s%10d%10d%9.1f%%\n", "total", s.Train, s.Test, s.TestFraction()*100)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-24s%10s%12s%12s\n", "Scores", "Cells", "Mean", "Std")
	fmt.Fprintf(w, "%-24s%10d%12.6f%12.6f\n", "train", s.TrainScores.Cells, s.TrainScores.Mean, s.TrainScores.Std)
	fmt.Fprintf(w, "%-24s%10d%12.6f%12.6f\n", "test", s.TestScores.Cells, s.TestScores.Mean, s.TestScores.Std)
}
