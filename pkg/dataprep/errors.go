package dataprep

import "errors"

var (
	// ErrUnmatchedIdentifier indicates dependency rows without sample metadata.
	ErrUnmatchedIdentifier = errors.New("dataprep: dependency identifier has no sample row")
	// ErrNoCategories indicates an empty age category whitelist.
	ErrNoCategories = errors.New("dataprep: no age categories to keep")
	// ErrEmptyPopulation indicates no row survived the population filter.
	ErrEmptyPopulation = errors.New("dataprep: population filter kept no rows")
	// ErrMissingAttribute indicates a kept sample lacks a stratification attribute.
	ErrMissingAttribute = errors.New("dataprep: missing stratification attribute")
)
