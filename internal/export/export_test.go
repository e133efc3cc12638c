package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/spigell/cv-ranker/internal/ranking"
)

func sampleRanking() *ranking.Ranking {
	return &ranking.Ranking{
		RunID: "run-42",
		Items: []*ranking.ScoredCandidate{
			{CandidateID: 1, Name: "John Doe", Score: 100, Skills: "React, Node.js", Experience: "5 years", Reasoning: "Score: 100/100. <strong> & fit"},
			{CandidateID: 2, Name: "Jane Smith", Score: 63, Skills: "Java", Experience: "7 years", Reasoning: "Score: 63/100."},
			{CandidateID: 3, Name: "Mike Johnson", Score: 50, Fallback: true, Reasoning: "fallback"},
		},
	}
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		opts   Options
		expect []string
		absent []string
	}{
		{
			name:   "minimal projection",
			opts:   Options{},
			expect: []string{`"candidateId": 1`, `"name": "John Doe"`, `"score": 100`},
			absent: []string{"reasoning", "skills", "experience", `"candidate"`},
		},
		{
			name:   "all optional fields",
			opts:   Options{IncludeReasoning: true, IncludeSkills: true, IncludeExperience: true},
			expect: []string{`"reasoning": "Score: 100/100. <strong> & fit"`, `"skills": "React, Node.js"`, `"experience": "5 years"`},
		},
		{
			name:   "reasoning only",
			opts:   Options{IncludeReasoning: true},
			expect: []string{`"reasoning": "fallback"`},
			absent: []string{"skills", "experience"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			if err := WriteJSON(&buf, sampleRanking(), tt.opts); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			out := buf.String()
			if !strings.HasPrefix(out, "[\n  {\n    \"candidateId\"") {
				t.Fatalf("expected two-space indented array, got:\n%s", out)
			}
			for _, want := range tt.expect {
				if !strings.Contains(out, want) {
					t.Fatalf("expected %s in:\n%s", want, out)
				}
			}
			for _, unwanted := range tt.absent {
				if strings.Contains(out, unwanted) {
					t.Fatalf("did not expect %s in:\n%s", unwanted, out)
				}
			}
		})
	}
}

func TestWriteJSONKeepsOrder(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleRanking(), Options{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var entries []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entries); err != nil {
		t.Fatalf("output is not valid json: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	for i, want := range []float64{1, 2, 3} {
		if entries[i]["candidateId"] != want {
			t.Fatalf("entry %d: expected id %v, got %v", i, want, entries[i]["candidateId"])
		}
		if len(entries[i]) != 3 {
			t.Fatalf("entry %d: expected exactly 3 fields, got %v", i, entries[i])
		}
	}
}

func TestWriteJSONEmptyRanking(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WriteJSON(&buf, &ranking.Ranking{}, Options{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Fatalf("expected empty array, got %q", buf.String())
	}
}

func TestToJSONFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.json")
	written, err := ToJSONFile(path, sampleRanking(), Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if written != path {
		t.Fatalf("expected %s, got %s", path, written)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), `"name": "Jane Smith"`) {
		t.Fatalf("unexpected file content:\n%s", data)
	}

	if _, err := ToJSONFile(filepath.Join(t.TempDir(), "missing", "out.json"), sampleRanking(), Options{}); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}

func TestToExcel(t *testing.T) {
	t.Parallel()

	generated := time.Date(2026, 5, 4, 10, 30, 0, 0, time.UTC)
	path, err := ToExcel(sampleRanking(), filepath.Join(t.TempDir(), "report"), generated)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(path, "report.xlsx") {
		t.Fatalf("expected .xlsx suffix, got %s", path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != SummarySheet || sheets[1] != CandidatesSheet {
		t.Fatalf("unexpected sheets: %v", sheets)
	}

	summary := map[string]string{
		"B3":  "run-42",
		"B4":  "2026-05-04 10:30:00",
		"B5":  "3",
		"B6":  "1",
		"B7":  "1",
		"B8":  "71",
		"B11": "1",
	}
	for cell, want := range summary {
		got, err := f.GetCellValue(SummarySheet, cell)
		if err != nil {
			t.Fatalf("read %s: %v", cell, err)
		}
		if got != want {
			t.Fatalf("summary %s: expected %q, got %q", cell, want, got)
		}
	}

	rows, err := f.GetRows(CandidatesSheet)
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected header and 3 rows, got %d", len(rows))
	}
	if rows[0][0] != "Rank" || rows[0][7] != "Reasoning" {
		t.Fatalf("unexpected header: %v", rows[0])
	}

	first := rows[1]
	if first[0] != "1 🥇" || first[1] != "1" || first[2] != "John Doe" || first[3] != "100" || first[4] != "outstanding" {
		t.Fatalf("unexpected first row: %v", first)
	}
	if rows[2][4] != "fair" || rows[3][4] != "weak" {
		t.Fatalf("unexpected tiers: %v / %v", rows[2], rows[3])
	}
}

func TestToExcelKeepsExtension(t *testing.T) {
	t.Parallel()

	path, err := ToExcel(&ranking.Ranking{RunID: "empty"}, filepath.Join(t.TempDir(), "Report.XLSX"), time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(path, "Report.XLSX") {
		t.Fatalf("expected original name, got %s", path)
	}
}
