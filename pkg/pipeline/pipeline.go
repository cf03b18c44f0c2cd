// Package pipeline runs the DepMap train/test split end to end:
// load the source tables, attach the age/sex label, keep the Adult and
// Pediatric samples, split, write both partitions and report.
package pipeline

import (
	"fmt"
	"log"

	"github.com/go-gota/gota/dataframe"

	"vaeprep/pkg/data"
	"vaeprep/pkg/report"
	"vaeprep/pkg/split"
)

// State is passed from step to step; each step reads what earlier steps left.
type State struct {
	Tables    *data.Tables
	Annotated dataframe.DataFrame
	Filtered  dataframe.DataFrame
	Split     split.Result
	Train     dataframe.DataFrame
	Test      dataframe.DataFrame
	Summary   report.Summary
}

// Step is one stage of a run.
type Step interface {
	Name() string
	Run(st *State) error
}

// StepFunc adapts a function to Step.
type StepFunc struct {
	Label string
	Fn    func(st *State) error
}

func (s StepFunc) Name() string { return s.Label }
func (s StepFunc) Run(st *State) error { return s.Fn(st) }

// Pipeline chains steps and stops at the first failure.
type Pipeline struct {
	log   *log.Logger
	steps []Step
}

func NewPipeline(logger *log.Logger, steps ...Step) *Pipeline {
	return &Pipeline{log: logger, steps: steps}
}

// Run executes every step in order. On failure the returned State holds what
// the completed steps produced and the error names the failing step.
func (p *Pipeline) Run() (*State, error) {
	st := &State{}
	for _, step := range p.steps {
		p.log.Printf("%s: start", step.Name())
		if err := step.Run(st); err != nil {
			return st, fmt.Errorf("%s: %w", step.Name(), err)
		}
	}
	return st, nil
}
