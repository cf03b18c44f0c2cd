package config

import (
	"errors"
	"flag"
	"fmt"
	"path/filepath"
	"strings"

	"vaeprep/pkg/data"
	"vaeprep/pkg/dataprep"
	"vaeprep/pkg/split"
)

// ErrInvalid wraps every configuration error returned by Validate.
var ErrInvalid = errors.New("config: invalid")

const (
	DefaultDataDir   = "../0.data-download/data"
	DefaultTrainFile = "VAE_train_df.csv"
	DefaultTestFile  = "VAE_test_df.csv"
)

// Config holds every input of a split run. The zero value is not usable;
// start from Default.
type Config struct {
	DataDir        string
	OutputDir      string // empty means DataDir
	SampleFile     string
	DependencyFile string
	Scope          string
	Schema         data.Schema
	Categories     []string
	TestSize       float64
	Seed           int64
	// RequireCoverage rejects splits that cannot put every stratum in both partitions.
	RequireCoverage bool
	TrainFile       string
	TestFile        string
	Format          string // csv, tsv, or empty to follow each file's extension
	PlotPath        string // empty disables the chart
	Quiet           bool
}

// Default matches the upstream download layout: DepMap tables in
// ../0.data-download/data, Adult and Pediatric samples, a 15% test split.
func Default() Config {
	opts := split.DefaultOptions()
	return Config{
		DataDir:        DefaultDataDir,
		SampleFile:     data.DefaultSampleFile,
		DependencyFile: data.DefaultDependencyFile,
		Scope:          string(data.ScopeAll),
		Schema:         data.DefaultSchema(),
		Categories:     append([]string(nil), dataprep.DefaultCategories...),
		TestSize:       opts.TestSize,
		Seed:           opts.Seed,
		TrainFile:      DefaultTrainFile,
		TestFile:       DefaultTestFile,
	}
}

// RegisterFlags binds every field to a flag on fs, using the current values
// as defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.DataDir, "data-dir", c.DataDir, "Directory holding the sample and dependency tables")
	fs.StringVar(&c.OutputDir, "output-dir", c.OutputDir, "Directory for the partitions (default: data-dir)")
	fs.StringVar(&c.SampleFile, "sample-file", c.SampleFile, "Sample metadata file inside data-dir")
	fs.StringVar(&c.DependencyFile, "dependency-file", c.DependencyFile, "Gene dependency file inside data-dir")
	fs.StringVar(&c.Scope, "scope", c.Scope, "Population loaded: all, adult or pediatric")
	fs.StringVar(&c.Schema.IDColumn, "id-col", c.Schema.IDColumn, "Identifier column shared by both tables")
	fs.StringVar(&c.Schema.SexColumn, "sex-col", c.Schema.SexColumn, "Sex column of the sample table")
	fs.StringVar(&c.Schema.AgeColumn, "age-col", c.Schema.AgeColumn, "Age category column of the sample table")
	fs.StringVar(&c.Schema.StratumColumn, "stratum-col", c.Schema.StratumColumn, "Name of the derived age/sex column")
	fs.StringVar(&c.Schema.Separator, "separator", c.Schema.Separator, "Separator between age category and sex")
	fs.Var((*listValue)(&c.Categories), "categories", "Comma separated age categories to keep")
	fs.Float64Var(&c.TestSize, "test-size", c.TestSize, "Fraction of rows in the test partition")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "Random seed of the split")
	fs.BoolVar(&c.RequireCoverage, "require-coverage", c.RequireCoverage, "Fail unless every stratum lands in both partitions")
	fs.StringVar(&c.TrainFile, "train-file", c.TrainFile, "Training partition file name")
	fs.StringVar(&c.TestFile, "test-file", c.TestFile, "Testing partition file name")
	fs.StringVar(&c.Format, "format", c.Format, "Output format: csv or tsv (default: from file extension)")
	fs.StringVar(&c.PlotPath, "plot", c.PlotPath, "Write a per-stratum bar chart to this path")
	fs.BoolVar(&c.Quiet, "quiet", c.Quiet, "Suppress progress logging")
}

// Validate checks the configuration before any file is touched.
func (c Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("%w: data directory is empty", ErrInvalid)
	}
	if c.SampleFile == "" || c.DependencyFile == "" {
		return fmt.Errorf("%w: input file names must be set", ErrInvalid)
	}
	if c.TrainFile == "" || c.TestFile == "" {
		return fmt.Errorf("%w: output file names must be set", ErrInvalid)
	}
	if c.TrainPath() == c.TestPath() {
		return fmt.Errorf("%w: train and test files are both %s", ErrInvalid, c.TrainPath())
	}
	if _, err := data.ParseScope(c.Scope); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.Format != "" {
		if _, err := data.ParseFormat(c.Format); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalid, err)
		}
	}
	if err := c.Schema.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if len(c.Categories) == 0 {
		return fmt.Errorf("%w: no age categories", ErrInvalid)
	}
	if !(c.TestSize > 0 && c.TestSize < 1) {
		return fmt.Errorf("%w: test size %v outside (0, 1)", ErrInvalid, c.TestSize)
	}
	return nil
}

// LoadOptions returns the loader settings.
func (c Config) LoadOptions() data.LoadOptions {
	return data.LoadOptions{
		SampleFile:     c.SampleFile,
		DependencyFile: c.DependencyFile,
		Schema:         c.Schema,
	}
}

// SplitOptions returns the splitter settings.
func (c Config) SplitOptions() split.Options {
	return split.Options{TestSize: c.TestSize, Seed: c.Seed, RequireCoverage: c.RequireCoverage}
}

func (c Config) outputDir() string {
	if c.OutputDir != "" {
		return c.OutputDir
	}
	return c.DataDir
}

// TrainPath is the full path of the training partition.
func (c Config) TrainPath() string { return filepath.Join(c.outputDir(), c.TrainFile) }

// TestPath is the full path of the testing partition.
func (c Config) TestPath() string { return filepath.Join(c.outputDir(), c.TestFile) }

// FormatFor returns the configured format, or the one implied by path.
func (c Config) FormatFor(path string) data.Format {
	if f, err := data.ParseFormat(c.Format); err == nil {
		return f
	}
	return data.FormatFromPath(path)
}

// listValue is a comma separated flag; setting it replaces the default list.
type listValue []string

func (l *listValue) String() string {
	if l == nil {
		return ""
	}
	return strings.Join(*l, ",")
}

func (l *listValue) Set(s string) error {
	var out []string
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	*l = out
	return nil
}
