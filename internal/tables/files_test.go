package tables

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFileSourceCSV(t *testing.T) {
	dir := t.TempDir()
	centres := writeFile(t, dir, "centres.csv", "HS Code,Centers\n1006,11\n1006,12\n1001,21\n")
	commods := writeFile(t, dir, "commods.csv", "Name,HS Code\nRice,1006\n\"Wheat, durum\",1001\n")

	centresTable, commodsTable, err := NewFileSource(centres, commods).Tables(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"HS Code", "Centers"}, centresTable.Header)
	assert.Len(t, centresTable.Rows, 3)
	assert.Equal(t, [][]string{{"Rice", "1006"}, {"Wheat, durum", "1001"}}, commodsTable.Rows)
}

type centreRow struct {
	HSCode  int64  `parquet:"HS Code"`
	Centers string `parquet:"Centers"`
}

type commodRow struct {
	Name   string `parquet:"Name"`
	HSCode int64  `parquet:"HS Code"`
}

func TestFileSourceParquet(t *testing.T) {
	dir := t.TempDir()
	centres := filepath.Join(dir, "centres.parquet")
	commods := filepath.Join(dir, "commods.parquet")
	require.NoError(t, parquet.WriteFile(centres, []centreRow{
		{HSCode: 1006, Centers: "11"},
		{HSCode: 1006, Centers: "12"},
		{HSCode: 1001, Centers: "21"},
	}))
	require.NoError(t, parquet.WriteFile(commods, []commodRow{
		{Name: "Rice", HSCode: 1006},
		{Name: "Wheat", HSCode: 1001},
	}))

	idx, err := Load(context.Background(), NewFileSource(centres, commods))
	require.NoError(t, err)

	rice, err := idx.Lookup("rice")
	require.NoError(t, err)
	assert.Equal(t, int64(1006), rice.HSCode)
	assert.Equal(t, []string{"11", "12"}, idx.Centres(rice.HSCode))
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFile(writeFile(t, dir, "centres.xlsx", ""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file format")

	_, err = LoadFile(filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)

	_, err = LoadFile(writeFile(t, dir, "empty.csv", ""))
	assert.Error(t, err)

	_, _, err = NewFileSource("", "commods.csv").Tables(context.Background())
	assert.Error(t, err)
}
