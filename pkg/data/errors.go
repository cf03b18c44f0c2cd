package data

import "errors"

var (
	// ErrNotDirectory indicates the data directory path is a regular file.
	ErrNotDirectory = errors.New("data: not a directory")
	// ErrMalformedTable indicates a source file could not be parsed as a table.
	ErrMalformedTable = errors.New("data: malformed table")
	// ErrEmptyTable indicates a source table has a header but no rows.
	ErrEmptyTable = errors.New("data: table has no rows")
	// ErrMissingColumn indicates a column named by the Schema is absent.
	ErrMissingColumn = errors.New("data: required column missing")
	// ErrDuplicateIdentifier indicates an identifier occurs twice in one table.
	ErrDuplicateIdentifier = errors.New("data: duplicate identifier")
	// ErrInvalidSchema indicates an empty or repeated Schema column name.
	ErrInvalidSchema = errors.New("data: invalid schema")
	// ErrUnknownScope indicates a population scope other than all, adult or pediatric.
	ErrUnknownScope = errors.New("data: unknown population scope")
	// ErrUnknownFormat indicates an output format other than csv or tsv.
	ErrUnknownFormat = errors.New("data: unknown table format")
	// ErrUnencodableCell indicates a cell that cannot be written unescaped to a TSV file.
	ErrUnencodableCell = errors.New("data: cell not representable in tsv")
)
