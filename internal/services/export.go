package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/roomanhq/resume-screener/internal/models"
)

var csvHeader = []string{
	"Candidate",
	"File",
	"Match %",
	"Similarity %",
	"Skill Overlap %",
	"Experience Years",
	"Strengths",
	"Weaknesses",
	"Reasoning",
}

// WriteResultsCSV renders candidate rows as the downloadable CSV. Commentary
// cells get newlines flattened to spaces and commas turned into semicolons so
// the file stays friendly to naive spreadsheet imports.
func WriteResultsCSV(w io.Writer, rows []models.CandidateRow) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			row.Candidate,
			row.File,
			formatPct(row.MatchPercent),
			formatPct(row.SimilarityPct),
			formatPct(row.SkillOverlapPct),
			formatYears(row.ExperienceYears),
			csvCommentary(row.Strengths),
			csvCommentary(row.Weaknesses),
			csvCommentary(row.Reasoning),
		}
		if row.Status == string(models.CandidateFailed) {
			record[8] = csvCommentary("FAILED: " + row.FailureReason)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatPct(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}

func formatYears(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func csvCommentary(text string) string {
	text = strings.ReplaceAll(text, "\n", " ")
	return strings.ReplaceAll(text, ",", ";")
}
