package pipeline

import (
	"bytes"
	"fmt"
	"log"
	"os"

	"vaeprep/pkg/config"
	"vaeprep/pkg/data"
	"vaeprep/pkg/dataprep"
	"vaeprep/pkg/report"
	"vaeprep/pkg/split"
)

// New builds the split run described by cfg:
// load, annotate, filter, split, write, report.
func New(cfg config.Config, logger *log.Logger) *Pipeline {
	r := runner{cfg: cfg, log: logger}
	return NewPipeline(logger,
		StepFunc{Label: "load", Fn: r.load},
		StepFunc{Label: "annotate", Fn: r.annotate},
		StepFunc{Label: "filter", Fn: r.filter},
		StepFunc{Label: "split", Fn: r.split},
		StepFunc{Label: "write", Fn: r.write},
		StepFunc{Label: "report", Fn: r.report},
	)
}

type runner struct {
	cfg config.Config
	log *log.Logger
}

func (r runner) load(st *State) error {
	scope, err := data.ParseScope(r.cfg.Scope)
	if err != nil {
		return err
	}
	tables, err := data.Load(r.cfg.DataDir, scope, r.cfg.LoadOptions())
	if err != nil {
		return err
	}
	st.Tables = tables
	r.log.Printf("load: %d samples, %d dependency rows x %d columns",
		tables.Samples.Nrow(), tables.Dependency.Nrow(), tables.Dependency.Ncol())
	return nil
}

func (r runner) annotate(st *State) error {
	annotated, err := dataprep.Annotate(st.Tables.Samples, st.Tables.Dependency, r.cfg.Schema)
	if err != nil {
		return err
	}
	st.Annotated = annotated
	return nil
}

func (r runner) filter(st *State) error {
	filtered, err := dataprep.FilterPopulation(st.Tables.Samples, st.Annotated, r.cfg.Schema, r.cfg.Categories)
	if err != nil {
		return err
	}
	st.Filtered = filtered
	r.log.Printf("filter: kept %d of %d rows for %v", filtered.Nrow(), st.Annotated.Nrow(), r.cfg.Categories)
	return nil
}

func (r runner) split(st *State) error {
	labels := st.Filtered.Col(r.cfg.Schema.StratumColumn).Records()
	res, err := split.Stratified(labels, r.cfg.SplitOptions())
	if err != nil {
		return err
	}
	st.Split = res
	st.Train = st.Filtered.Subset(res.Train)
	st.Test = st.Filtered.Subset(res.Test)
	if st.Train.Err != nil {
		return fmt.Errorf("train subset: %w", st.Train.Err)
	}
	if st.Test.Err != nil {
		return fmt.Errorf("test subset: %w", st.Test.Err)
	}
	r.log.Printf("split: %d train, %d test (seed %d)", len(res.Train), len(res.Test), r.cfg.Seed)
	return nil
}

func (r runner) write(st *State) error {
	testPath := r.cfg.TestPath()
	if err := data.WritePartition(testPath, st.Test, r.cfg.FormatFor(testPath)); err != nil {
		return err
	}
	trainPath := r.cfg.TrainPath()
	if err := data.WritePartition(trainPath, st.Train, r.cfg.FormatFor(trainPath)); err != nil {
		// a test partition without its train partition is unusable
		os.Remove(testPath)
		return err
	}
	r.log.Printf("write: %s, %s", testPath, trainPath)
	return nil
}

func (r runner) report(st *State) error {
	st.Summary = report.Summarize(st.Train, st.Test, r.cfg.Schema)
	var buf bytes.Buffer
	st.Summary.Fprint(&buf)
	r.log.Printf("report:\n%s", buf.String())
	if r.cfg.PlotPath == "" {
		return nil
	}
	if err := report.Plot(st.Summary, r.cfg.PlotPath); err != nil {
		return err
	}
	r.log.Printf("report: chart saved to %s", r.cfg.PlotPath)
	return nil
}
