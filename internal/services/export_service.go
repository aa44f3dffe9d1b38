package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/kartikp36/github-org-stats/internal/models"
)

// exportColumns is the fixed column order shared by every export format.
var exportColumns = []string{"User", "Commits", "Lines Added", "Lines Removed", "Reviews"}

// ExportService renders an already-fetched aggregation result into the
// supported download formats. Pure transforms, no network.
type ExportService struct{}

func NewExportService() *ExportService {
	return &ExportService{}
}

// CSV renders the contributor list as comma-joined rows under a fixed
// header. Values are written as-is, without quoting.
func (s *ExportService) CSV(contributors []models.ContributorStats) string {
	lines := make([]string, 0, len(contributors)+1)
	lines = append(lines, strings.Join(exportColumns, ","))

	for _, c := range contributors {
		lines = append(lines, strings.Join([]string{
			c.User,
			strconv.Itoa(c.Commits),
			strconv.Itoa(c.LinesAdded),
			strconv.Itoa(c.LinesRemoved),
			strconv.Itoa(c.Reviews),
		}, ","))
	}
	return strings.Join(lines, "\n")
}

// JSON pretty-prints the full result object.
func (s *ExportService) JSON(data *models.StatsData) ([]byte, error) {
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal stats: %w", err)
	}
	return out, nil
}

// Excel renders the contributor list into a single-sheet workbook.
func (s *ExportService) Excel(data *models.StatsData) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Contributors"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	for col, title := range exportColumns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for row, c := range data.Stats {
		values := []interface{}{c.User, c.Commits, c.LinesAdded, c.LinesRemoved, c.Reviews}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write row %d: %w", row+1, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}
	return buf, nil
}
