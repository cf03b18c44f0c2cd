package split

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTestSize indicates a test fraction outside (0, 1).
	ErrInvalidTestSize = errors.New("split: test size must be in (0, 1)")
	// ErrEmptyPartition indicates the row count leaves one partition empty.
	ErrEmptyPartition = errors.New("split: partition would be empty")
	// ErrStratumTooSmall indicates a stratum with fewer than two rows.
	ErrStratumTooSmall = errors.New("split: stratum too small")
	// ErrInsufficientCoverage indicates fewer partition rows than strata.
	ErrInsufficientCoverage = errors.New("split: partitions too small to cover every stratum")
)

// StratumError names the stratum that cannot appear in both partitions.
type StratumError struct {
	Label string
	Count int
}

func (e *StratumError) Error() string {
	return fmt.Sprintf("split: stratum %q has %d row(s), at least 2 are needed to appear in train and test", e.Label, e.Count)
}

func (e *StratumError) Unwrap() error { return ErrStratumTooSmall }
