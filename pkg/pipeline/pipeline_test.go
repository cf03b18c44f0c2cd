package pipeline_test

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"vaeprep/pkg/config"
	"vaeprep/pkg/data"
	"vaeprep/pkg/dataprep"
	"vaeprep/pkg/pipeline"
	"vaeprep/pkg/split"
)

var quiet = log.New(io.Discard, "", 0)

// writeCohort writes 10 Adult and 10 Pediatric samples (5 Male, 5 Female each)
// plus two Unknown samples, and a dependency table covering all of them.
func writeCohort(t *testing.T, dir string) (kept []string) {
	t.Helper()
	var samples, deps strings.Builder
	samples.WriteString("DepMap_ID,sex,age_categories\n")
	deps.WriteString("DepMap_ID,A1BG (1),TP53 (7157)\n")
	n := 0
	add := func(age, sex string) string {
		n++
		id := fmt.Sprintf("ACH-%06d", n)
		fmt.Fprintf(&samples, "%s,%s,%s\n", id, sex, age)
		fmt.Fprintf(&deps, "%s,0.%d,-1.%d\n", id, n, n)
		return id
	}
	for _, age := range []string{"Adult", "Pediatric"} {
		for _, sex := range []string{"Male", "Female"} {
			for i := 0; i < 5; i++ {
				kept = append(kept, add(age, sex))
			}
		}
	}
	add("Unknown", "Male")
	add("Unknown", "Female")

	require.NoError(t, os.WriteFile(filepath.Join(dir, data.DefaultSampleFile), []byte(samples.String()), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, data.DefaultDependencyFile), []byte(deps.String()), 0o644))
	return kept
}

type PipelineSuite struct {
	suite.Suite
	cfg  config.Config
	kept []string
}

func (s *PipelineSuite) SetupTest() {
	dir := s.T().TempDir()
	s.kept = writeCohort(s.T(), dir)
	s.cfg = config.Default()
	s.cfg.DataDir = dir
}

func (s *PipelineSuite) ids(path string) []string {
	df, err := data.ReadPartition(path, data.FormatFromPath(path))
	require.NoError(s.T(), err)
	return df.Col("DepMap_ID").Records()
}

func (s *PipelineSuite) TestRun() {
	st, err := pipeline.New(s.cfg, quiet).Run()
	require.NoError(s.T(), err)
	require.Equal(s.T(), 22, st.Annotated.Nrow())
	require.Equal(s.T(), 20, st.Filtered.Nrow())

	train := s.ids(s.cfg.TrainPath())
	test := s.ids(s.cfg.TestPath())
	require.Len(s.T(), test, 3)
	require.Len(s.T(), train, 17)
	require.ElementsMatch(s.T(), s.kept, append(append([]string{}, train...), test...),
		"partitions are disjoint and cover the filtered rows")

	for _, id := range append(train, test...) {
		require.NotEqual(s.T(), "ACH-000021", id, "Unknown samples are excluded")
		require.NotEqual(s.T(), "ACH-000022", id, "Unknown samples are excluded")
	}

	require.Equal(s.T(), 17, st.Summary.Train)
	require.Equal(s.T(), 3, st.Summary.Test)
	require.Len(s.T(), st.Summary.Strata, 4)
}

func (s *PipelineSuite) TestPartitionLayout() {
	_, err := pipeline.New(s.cfg, quiet).Run()
	require.NoError(s.T(), err)

	raw, err := os.ReadFile(s.cfg.TestPath())
	require.NoError(s.T(), err)
	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	require.Equal(s.T(), ",DepMap_ID,A1BG (1),TP53 (7157),age_and_sex", lines[0])
	for i, line := range lines[1:] {
		require.True(s.T(), strings.HasPrefix(line, fmt.Sprintf("%d,ACH-", i)), line)
	}

	df, err := data.ReadPartition(s.cfg.TrainPath(), data.FormatCSV)
	require.NoError(s.T(), err)
	for i, label := range df.Col("age_and_sex").Records() {
		require.Contains(s.T(), []string{"Adult_Male", "Adult_Female", "Pediatric_Male", "Pediatric_Female"}, label, "row %d", i)
	}
}

func (s *PipelineSuite) TestSeedReproducible() {
	_, err := pipeline.New(s.cfg, quiet).Run()
	require.NoError(s.T(), err)
	first := s.ids(s.cfg.TestPath())

	_, err = pipeline.New(s.cfg, quiet).Run()
	require.NoError(s.T(), err)
	require.Equal(s.T(), first, s.ids(s.cfg.TestPath()))
}

func (s *PipelineSuite) TestOutputDirTSVAndPlot() {
	out := filepath.Join(s.T().TempDir(), "splits")
	s.cfg.OutputDir = out
	s.cfg.TrainFile = "train.tsv"
	s.cfg.TestFile = "test.tsv"
	s.cfg.PlotPath = filepath.Join(out, "strata.png")
	s.cfg.TestSize = 0.25

	_, err := pipeline.New(s.cfg, quiet).Run()
	require.NoError(s.T(), err)
	require.Len(s.T(), s.ids(filepath.Join(out, "test.tsv")), 5)
	require.Len(s.T(), s.ids(filepath.Join(out, "train.tsv")), 15)
	require.FileExists(s.T(), s.cfg.PlotPath)
}

func (s *PipelineSuite) TestPediatricScope() {
	s.cfg.Scope = "pediatric"
	s.cfg.TestSize = 0.4

	st, err := pipeline.New(s.cfg, quiet).Run()
	require.NoError(s.T(), err)
	require.Equal(s.T(), 10, st.Filtered.Nrow())
	require.Len(s.T(), st.Split.Test, 4)
	for _, sc := range st.Summary.Strata {
		require.True(s.T(), strings.HasPrefix(sc.Label, "Pediatric_"), sc.Label)
		require.Positive(s.T(), sc.Test, sc.Label)
	}
}

func (s *PipelineSuite) TestUnmatchedIdentifierAborts() {
	path := filepath.Join(s.cfg.DataDir, data.DefaultDependencyFile)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
	require.NoError(s.T(), err)
	_, err = f.WriteString("ACH-999999,0.5,0.5\n")
	require.NoError(s.T(), err)
	require.NoError(s.T(), f.Close())

	_, err = pipeline.New(s.cfg, quiet).Run()
	require.ErrorIs(s.T(), err, dataprep.ErrUnmatchedIdentifier)
	require.True(s.T(), strings.HasPrefix(err.Error(), "annotate: "))
	require.NoFileExists(s.T(), s.cfg.TrainPath())
	require.NoFileExists(s.T(), s.cfg.TestPath())
}

func (s *PipelineSuite) TestSingletonStratumAborts() {
	// swap the roles so every sample passes the filter and strata read sex_age;
	// the two Unknown samples then form singleton strata
	s.cfg.Schema.SexColumn = "age_categories"
	s.cfg.Schema.AgeColumn = "sex"
	s.cfg.Categories = []string{"Male", "Female"}

	_, err := pipeline.New(s.cfg, quiet).Run()
	var se *split.StratumError
	require.True(s.T(), errors.As(err, &se), "got %v", err)
	require.True(s.T(), strings.HasSuffix(se.Label, "_Unknown"), se.Label)
	require.NoFileExists(s.T(), s.cfg.TestPath())
}

func (s *PipelineSuite) TestTrainWriteFailureRemovesTest() {
	// a non-empty directory at the train path makes the final rename fail
	blocker := s.cfg.TrainPath()
	require.NoError(s.T(), os.MkdirAll(filepath.Join(blocker, "keep"), 0o755))

	_, err := pipeline.New(s.cfg, quiet).Run()
	require.Error(s.T(), err)
	require.True(s.T(), strings.HasPrefix(err.Error(), "write: "), err.Error())
	require.NoFileExists(s.T(), s.cfg.TestPath())
	require.DirExists(s.T(), blocker)
}

func (s *PipelineSuite) TestMissingDataDir() {
	s.cfg.DataDir = filepath.Join(s.T().TempDir(), "absent")
	_, err := pipeline.New(s.cfg, quiet).Run()
	require.True(s.T(), errors.Is(err, os.ErrNotExist))
	require.True(s.T(), strings.HasPrefix(err.Error(), "load: "))
}

func TestPipelineSuite(t *testing.T) {
	suite.Run(t, new(PipelineSuite))
}

func TestNewPipelineStopsAtFirstError(t *testing.T) {
	boom := errors.New("boom")
	var ran []string
	step := func(name string, err error) pipeline.Step {
		return pipeline.StepFunc{Label: name, Fn: func(*pipeline.State) error {
			ran = append(ran, name)
			return err
		}}
	}

	_, err := pipeline.NewPipeline(quiet, step("a", nil), step("b", boom), step("c", nil)).Run()
	require.ErrorIs(t, err, boom)
	require.EqualError(t, err, "b: boom")
	require.Equal(t, []string{"a", "b"}, ran)
}
