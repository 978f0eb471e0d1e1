package leaderboard

import (
	"bytes"
	"encoding/csv"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jamjudge/internal/judge"
)

func TestWriteCSVShape(t *testing.T) {
	entries := Rank(sampleEvals(), SortTotal, nil)
	require.Len(t, entries, 3)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, entries))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 4, "1 header + 3 data rows")

	records, err := csv.NewReader(bytes.NewReader(buf.Bytes())).ReadAll()
	require.NoError(t, err)

	header := records[0]
	assert.Equal(t, "Rank", header[0])
	assert.Equal(t, "Game", header[1])
	assert.Equal(t, "Team", header[2])
	// Six fixed columns followed by the nine criteria in canonical order.
	require.Len(t, header, 6+len(judge.Criteria))
	assert.Equal(t, judge.CriterionLabel(judge.Criteria[0]), header[6])
	assert.Equal(t, judge.CriterionLabel(judge.Criteria[len(judge.Criteria)-1]), header[len(header)-1])

	for i, rec := range records[1:] {
		assert.Equal(t, entries[i].Saved.Result.GameName, rec[1])
		// Rank column equals the 1-based sorted position.
		assert.Equal(t, byte('1'+i), rec[0][0])
	}

	// Percentage formatted to two decimals; compliance rendered Yes/No.
	assert.Equal(t, "91.00", records[1][4])
	assert.Equal(t, "No", records[1][5])
	assert.Equal(t, "Yes", records[2][5])

	// Gamma has no breakdown: every criterion column renders as 0.
	gamma := records[2]
	for _, cell := range gamma[6:] {
		assert.Equal(t, "0", cell)
	}
}

func TestExportFilenameEmbedsISODate(t *testing.T) {
	now := time.Date(2026, 8, 14, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "leaderboard-2026-08-14.csv", ExportFilename(now))
}

func TestExportWritesFile(t *testing.T) {
	dir := t.TempDir()
	entries := Rank(sampleEvals(), SortTotal, nil)

	path, err := Export(dir, entries)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, dir))
	assert.True(t, strings.HasSuffix(path, ".csv"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Rank,Game,Team")
}
