package services

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roomanhq/resume-screener/internal/models"
)

func ptr(v float64) *float64 { return &v }

func readCSV(t *testing.T, buf *bytes.Buffer) [][]string {
	t.Helper()
	records, err := csv.NewReader(buf).ReadAll()
	require.NoError(t, err)
	return records
}

func TestWriteResultsCSV(t *testing.T) {
	rows := []models.CandidateRow{
		{
			Candidate:       "Jane Doe",
			File:            "jane_doe.pdf",
			Status:          string(models.CandidateScored),
			MatchPercent:    ptr(87.5),
			SimilarityPct:   ptr(91.2),
			SkillOverlapPct: ptr(75),
			ExperienceYears: ptr(6),
			Strengths:       "Strong python, sql background",
			Weaknesses:      "Limited cloud exposure",
			Reasoning:       "Good fit overall,\nsome gaps remain",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteResultsCSV(&buf, rows))

	records := readCSV(t, &buf)
	require.Len(t, records, 2)
	assert.Equal(t, csvHeader, records[0])

	row := records[1]
	assert.Equal(t, "Jane Doe", row[0])
	assert.Equal(t, "jane_doe.pdf", row[1])
	assert.Equal(t, "87.50", row[2])
	assert.Equal(t, "91.20", row[3])
	assert.Equal(t, "75.00", row[4])
	assert.Equal(t, "6", row[5])
	// Commas become semicolons, newlines become spaces.
	assert.Equal(t, "Strong python; sql background", row[6])
	assert.Equal(t, "Good fit overall; some gaps remain", row[8])
}

func TestWriteResultsCSVFailedRow(t *testing.T) {
	rows := []models.CandidateRow{
		{
			Candidate:     "Broken",
			File:          "broken.pdf",
			Status:        string(models.CandidateFailed),
			FailureReason: "could not extract text from file",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteResultsCSV(&buf, rows))

	records := readCSV(t, &buf)
	require.Len(t, records, 2)

	row := records[1]
	assert.Equal(t, "Broken", row[0])
	assert.Equal(t, "", row[2])
	assert.Equal(t, "", row[5])
	assert.Equal(t, "FAILED: could not extract text from file", row[8])
}

func TestWriteResultsCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteResultsCSV(&buf, nil))

	records := readCSV(t, &buf)
	require.Len(t, records, 1)
	assert.Equal(t, csvHeader, records[0])
}
