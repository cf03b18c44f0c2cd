package data_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/require"

	"vaeprep/pkg/data"
)

func TestWritePartitionCSV(t *testing.T) {
	df, err := data.ReadTable(filepath.Join("testdata", data.DefaultDependencyFile), data.FormatCSV)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "nested", "VAE_test_df.csv")
	require.NoError(t, data.WritePartition(path, df.Subset([]int{3, 1}), data.FormatCSV))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	require.Equal(t, []string{
		",DepMap_ID,A1BG (1),A1CF (29974),A2M (2)",
		"0,ACH-000004,0.3,0.4,0.5",
		"1,ACH-000002,0.98,0.25,0.031",
	}, lines)
}

func TestPartitionRoundTrip(t *testing.T) {
	df, err := data.ReadTable(filepath.Join("testdata", data.DefaultDependencyFile), data.FormatCSV)
	require.NoError(t, err)

	for _, format := range []data.Format{data.FormatCSV, data.FormatTSV} {
		path := filepath.Join(t.TempDir(), "partition."+string(format))
		require.NoError(t, data.WritePartition(path, df, format))

		back, err := data.ReadPartition(path, format)
		require.NoError(t, err, format)
		require.Equal(t, df.Names(), back.Names(), format)
		require.Equal(t, df.Records(), back.Records(), format)
	}
}

func TestWritePartitionTSVLayout(t *testing.T) {
	df, err := data.ReadTable(filepath.Join("testdata", data.DefaultSampleFile), data.FormatCSV)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "samples.tsv")
	require.NoError(t, data.WritePartition(path, df.Subset([]int{0}), data.FormatTSV))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "\tDepMap_ID\tsex\tage_categories\tlineage\n0\tACH-000001\tFemale\tAdult\tlung\n", string(raw))
}

func TestWritePartitionOverwrites(t *testing.T) {
	df, err := data.ReadTable(filepath.Join("testdata", data.DefaultSampleFile), data.FormatCSV)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, os.WriteFile(path, []byte("stale contents that are longer than nothing\n"), 0o644))
	require.NoError(t, data.WritePartition(path, df.Subset([]int{4}), data.FormatCSV))

	back, err := data.ReadPartition(path, data.FormatCSV)
	require.NoError(t, err)
	require.Equal(t, 1, back.Nrow())
	require.Equal(t, []string{"ACH-000005"}, back.Col("DepMap_ID").Records())
}

func TestWritePartitionUnknownFormat(t *testing.T) {
	df, err := data.ReadTable(filepath.Join("testdata", data.DefaultSampleFile), data.FormatCSV)
	require.NoError(t, err)

	dir := t.TempDir()
	err = data.WritePartition(filepath.Join(dir, "out.parquet"), df, data.Format("parquet"))
	require.ErrorIs(t, err, data.ErrUnknownFormat)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries, "staging file must be removed on failure")
}

func TestFormatSelection(t *testing.T) {
	require.Equal(t, data.FormatTSV, data.FormatFromPath("a/b/train.TSV"))
	require.Equal(t, data.FormatCSV, data.FormatFromPath("train.csv"))
	require.Equal(t, data.FormatCSV, data.FormatFromPath("train"))

	f, err := data.ParseFormat("TSV")
	require.NoError(t, err)
	require.Equal(t, data.FormatTSV, f)

	_, err = data.ParseFormat("xlsx")
	require.ErrorIs(t, err, data.ErrUnknownFormat)
}

func quotedFrame(cells ...string) dataframe.DataFrame {
	ids := make([]string, len(cells))
	for i := range cells {
		ids[i] = "ACH-" + string(rune('1'+i))
	}
	return dataframe.New(
		series.New(ids, series.String, "DepMap_ID"),
		series.New(cells, series.String, "note"),
	)
}

func TestPartitionRoundTripQuotedCell(t *testing.T) {
	df := quotedFrame(`a"b`, `x,y`)
	for _, format := range []data.Format{data.FormatCSV, data.FormatTSV} {
		path := filepath.Join(t.TempDir(), "quoted."+string(format))
		require.NoError(t, data.WritePartition(path, df, format))

		back, err := data.ReadPartition(path, format)
		require.NoError(t, err, format)
		require.Equal(t, df.Records(), back.Records(), format)
	}
}

func TestWritePartitionTSVRejectsSeparators(t *testing.T) {
	for _, cell := range []string{"a\tb", "a\nb", `"lead`} {
		dir := t.TempDir()
		path := filepath.Join(dir, "bad.tsv")
		err := data.WritePartition(path, quotedFrame("ok", cell), data.FormatTSV)
		require.ErrorIs(t, err, data.ErrUnencodableCell, "%q", cell)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Empty(t, entries, "no partition or temp file is left for %q", cell)
	}
}
