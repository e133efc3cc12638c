package export

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/spigell/cv-ranker/internal/ranking"
	"github.com/spigell/cv-ranker/internal/report"
)

const (
	SummarySheet    = "Summary"
	CandidatesSheet = "Ranked Candidates"
)

var tierColors = map[string]string{
	"outstanding": "C6EFCE",
	"excellent":   "DDEBF7",
	"good":        "FFEB9C",
	"fair":        "FCE4D6",
	"weak":        "FFC7CE",
}

var thinBorder = []excelize.Border{
	{Type: "left", Color: "000000", Style: 1},
	{Type: "right", Color: "000000", Style: 1},
	{Type: "top", Color: "000000", Style: 1},
	{Type: "bottom", Color: "000000", Style: 1},
}

// ToExcel writes the ranking report workbook and returns the path written.
// The ".xlsx" extension is appended when missing.
func ToExcel(r *ranking.Ranking, path string, generated time.Time) (string, error) {
	if !strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		path += ".xlsx"
	}
	path = filepath.Clean(path)

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return "", err
	}
	if _, err := f.NewSheet(CandidatesSheet); err != nil {
		return "", err
	}

	if err := writeSummarySheet(f, r, generated); err != nil {
		return "", fmt.Errorf("failed to create summary sheet: %w", err)
	}
	if err := writeCandidatesSheet(f, r); err != nil {
		return "", fmt.Errorf("failed to create ranked candidates sheet: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save Excel file: %w", err)
	}
	return path, nil
}

func writeSummarySheet(f *excelize.File, r *ranking.Ranking, generated time.Time) error {
	sheet := SummarySheet

	if err := f.SetColWidth(sheet, "A", "A", 28); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "B", "B", 40); err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})
	if err != nil {
		return err
	}
	labelStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	if err := f.SetCellValue(sheet, "A1", "Candidate Ranking Report"); err != nil {
		return err
	}
	if err := f.MergeCell(sheet, "A1", "B1"); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", "B1", headerStyle); err != nil {
		return err
	}

	s := report.Summarize(r)
	rows := [][2]any{
		{"Run ID:", r.RunID},
		{"Generated:", generated.Format("2006-01-02 15:04:05")},
		{"Total Candidates:", s.Total},
		{"Excellent (80+):", s.Excellent},
		{"Good (60-79):", s.Good},
		{"Average Score:", s.Average},
		{"Highest Score:", s.Highest},
		{"Lowest Score:", s.Lowest},
		{"Fallback Scores:", s.Fallbacks},
	}

	for i, kv := range rows {
		row := i + 3
		label := fmt.Sprintf("A%d", row)
		if err := f.SetCellValue(sheet, label, kv[0]); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, label, label, labelStyle); err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, fmt.Sprintf("B%d", row), kv[1]); err != nil {
			return err
		}
	}

	return nil
}

func writeCandidatesSheet(f *excelize.File, r *ranking.Ranking) error {
	sheet := CandidatesSheet

	widths := map[string]float64{"A": 8, "B": 14, "C": 25, "D": 10, "E": 14, "F": 16, "G": 40, "H": 80}
	for col, width := range widths {
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorder,
	})
	if err != nil {
		return err
	}

	tierStyles := make(map[string]int, len(tierColors))
	for tier, color := range tierColors {
		style, err := f.NewStyle(&excelize.Style{
			Fill:      excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
			Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
			Border:    thinBorder,
		})
		if err != nil {
			return err
		}
		tierStyles[tier] = style
	}

	headers := []any{"Rank", "Candidate ID", "Name", "Score", "Tier", "Experience", "Skills", "Reasoning"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", "H1", headerStyle); err != nil {
		return err
	}

	for i, item := range r.Items {
		row := i + 2
		tier := report.Tier(item.Score)
		values := []any{
			strings.TrimSpace(fmt.Sprintf("%d %s", i+1, report.Medal(i))),
			item.CandidateID,
			item.Name,
			item.Score,
			tier,
			item.Experience,
			item.Skills,
			item.Reasoning,
		}

		start := fmt.Sprintf("A%d", row)
		if err := f.SetSheetRow(sheet, start, &values); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, start, fmt.Sprintf("H%d", row), tierStyles[tier]); err != nil {
			return err
		}
	}

	if r.Len() > 0 {
		if err := f.AutoFilter(sheet, fmt.Sprintf("A1:H%d", r.Len()+1), []excelize.AutoFilterOptions{}); err != nil {
			return err
		}
	}

	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}
