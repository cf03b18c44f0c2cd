package data

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

const (
	DefaultSampleFile     = "sample_info.csv"
	DefaultDependencyFile = "CRISPR_gene_dependency.csv"
)

// Scope selects which age cohort Load returns.
type Scope string

const (
	ScopeAll       Scope = "all"
	ScopeAdult     Scope = "adult"
	ScopePediatric Scope = "pediatric"
)

// ParseScope accepts all, adult or pediatric in any case.
func ParseScope(s string) (Scope, error) {
	switch sc := Scope(strings.ToLower(strings.TrimSpace(s))); sc {
	case ScopeAll, ScopeAdult, ScopePediatric:
		return sc, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownScope, s)
}

// category is the age category a scope keeps; empty for ScopeAll.
func (s Scope) category() string {
	switch s {
	case ScopeAdult:
		return "Adult"
	case ScopePediatric:
		return "Pediatric"
	}
	return ""
}

// LoadOptions names the source files inside the data directory.
type LoadOptions struct {
	SampleFile     string
	DependencyFile string
	Schema         Schema
}

// DefaultLoadOptions returns the DepMap file names and DefaultSchema.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{
		SampleFile:     DefaultSampleFile,
		DependencyFile: DefaultDependencyFile,
		Schema:         DefaultSchema(),
	}
}

// Tables holds the two source tables keyed by the Schema identifier column.
type Tables struct {
	Samples    dataframe.DataFrame
	Dependency dataframe.DataFrame
}

// Load reads the sample metadata and gene dependency tables from dir.
// Identifiers must be unique in each table. For ScopeAdult and ScopePediatric
// the samples are restricted to that age category and the dependency table to
// the remaining identifiers.
func Load(dir string, scope Scope, opts LoadOptions) (*Tables, error) {
	if err := opts.Schema.Validate(); err != nil {
		return nil, err
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("data directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	}

	sc := opts.Schema
	samples, err := ReadTable(filepath.Join(dir, opts.SampleFile), FormatCSV)
	if err != nil {
		return nil, err
	}
	if err := RequireColumns(samples, "sample", sc.IDColumn, sc.SexColumn, sc.AgeColumn); err != nil {
		return nil, err
	}
	if err := CheckUnique(samples, "sample", sc.IDColumn); err != nil {
		return nil, err
	}

	dependency, err := ReadTable(filepath.Join(dir, opts.DependencyFile), FormatCSV)
	if err != nil {
		return nil, err
	}
	if err := RequireColumns(dependency, "dependency", sc.IDColumn); err != nil {
		return nil, err
	}
	if err := CheckUnique(dependency, "dependency", sc.IDColumn); err != nil {
		return nil, err
	}

	if cat := scope.category(); cat != "" {
		samples = samples.Filter(dataframe.F{Colname: sc.AgeColumn, Comparator: series.Eq, Comparando: cat})
		if samples.Err != nil {
			return nil, fmt.Errorf("scope %s: %w", scope, samples.Err)
		}
		dependency = dependency.Filter(dataframe.F{
			Colname:    sc.IDColumn,
			Comparator: series.In,
			Comparando: samples.Col(sc.IDColumn).Records(),
		})
		if dependency.Err != nil {
			return nil, fmt.Errorf("scope %s: %w", scope, dependency.Err)
		}
	}

	return &Tables{Samples: samples, Dependency: dependency}, nil
}

// ReadTable loads a delimited file keeping every cell as its original
// string, so score columns are written back unchanged.
func ReadTable(path string, format Format) (dataframe.DataFrame, error) {
	file, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("open table: %w", err)
	}
	defer file.Close()

	opts := []dataframe.LoadOption{
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues([]string{}),
	}
	if format == FormatTSV {
		opts = append(opts, dataframe.WithDelimiter('\t'), dataframe.WithLazyQuotes(true))
	}
	df := dataframe.ReadCSV(bufio.NewReader(file), opts...)
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("%w: %s: %v", ErrMalformedTable, path, df.Err)
	}
	if df.Nrow() == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("%w: %s", ErrEmptyTable, path)
	}
	return df, nil
}

// RequireColumns fails with ErrMissingColumn naming the first absent column.
func RequireColumns(df dataframe.DataFrame, table string, cols ...string) error {
	for _, col := range cols {
		if !HasColumn(df, col) {
			return fmt.Errorf("%w: %q in %s table", ErrMissingColumn, col, table)
		}
	}
	return nil
}

// HasColumn reports whether df has a column called name.
func HasColumn(df dataframe.DataFrame, name string) bool {
	for _, n := range df.Names() {
		if n == name {
			return true
		}
	}
	return false
}

// CheckUnique fails with ErrDuplicateIdentifier on the first repeated value of col.
func CheckUnique(df dataframe.DataFrame, table, col string) error {
	seen := make(map[string]struct{}, df.Nrow())
	for _, id := range df.Col(col).Records() {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: %q in %s table", ErrDuplicateIdentifier, id, table)
		}
		seen[id] = struct{}{}
	}
	return nil
}
