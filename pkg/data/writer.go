package data

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/grailbio/base/tsv"
)

// Format is the on-disk layout of a partition file.
type Format string

const (
	FormatCSV Format = "csv"
	FormatTSV Format = "tsv"
)

// ParseFormat accepts csv or tsv in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatTSV:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// FormatFromPath picks FormatTSV for a .tsv extension and FormatCSV otherwise.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		return FormatTSV
	}
	return FormatCSV
}

// WritePartition writes df with a leading zero-based row index column whose
// header is empty. The file is staged next to path and renamed into place,
// so an interrupted write never leaves a truncated partition behind.
func WritePartition(path string, df dataframe.DataFrame, format Format) (err error) {
	if df.Err != nil {
		return fmt.Errorf("write %s: %w", path, df.Err)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	switch format {
	case FormatTSV:
		err = writeTSV(tmp, df)
	case FormatCSV:
		err = writeCSV(tmp, df)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err = tmp.Chmod(0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func writeCSV(w io.Writer, df dataframe.DataFrame) error {
	records := df.Records()
	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{""}, records[0]...)); err != nil {
		return err
	}
	row := make([]string, df.Ncol()+1)
	for i, rec := range records[1:] {
		row[0] = strconv.Itoa(i)
		copy(row[1:], rec)
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// writeTSV writes cells unescaped, so it refuses any cell the lazy-quote
// reader in ReadTable would not give back verbatim.
func writeTSV(w io.Writer, df dataframe.DataFrame) error {
	records := df.Records()
	for i, rec := range records {
		for _, cell := range rec {
			if !tsvSafe(cell) {
				return fmt.Errorf("%w: row %d: %q", ErrUnencodableCell, i, cell)
			}
		}
	}
	tw := tsv.NewWriter(w)
	tw.WriteBytes(nil)
	for _, name := range records[0] {
		tw.WriteBytes([]byte(name))
	}
	if err := tw.EndLine(); err != nil {
		return err
	}
	var idx []byte
	for i, rec := range records[1:] {
		idx = strconv.AppendInt(idx[:0], int64(i), 10)
		tw.WriteBytes(idx)
		for _, cell := range rec {
			tw.WriteBytes([]byte(cell))
		}
		if err := tw.EndLine(); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// tsvSafe rejects field and line separators, and a leading quote, which the
// reader takes as the start of a quoted field.
func tsvSafe(cell string) bool {
	return !strings.ContainsAny(cell, "\t\r\n") && !strings.HasPrefix(cell, `"`)
}

// ReadPartition loads a file written by WritePartition and drops its index
// column.
func ReadPartition(path string, format Format) (dataframe.DataFrame, error) {
	df, err := ReadTable(path, format)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	df = df.Drop(0)
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("%w: %s: %v", ErrMalformedTable, path, df.Err)
	}
	return df, nil
}
