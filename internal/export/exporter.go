// Package export writes the review schedule to a spreadsheet and bulk
// imports topic lists from one.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/PixelCode01/syllabo/internal/spaced_repetition"
)

const exportSheet = "Schedule"

var exportHeader = []string{
	"Topic", "Description", "Mastery", "Success Rate %", "Streak",
	"Total Reviews", "Interval (days)", "Days Until Review", "Next Review",
}

// Export writes the schedule snapshot to path. The format follows the
// file extension: .csv writes CSV, anything else writes an Excel
// workbook.
func Export(path string, stats []spaced_repetition.TopicStats) error {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return exportCSV(path, stats)
	}
	return exportExcel(path, stats)
}

func exportExcel(path string, stats []spaced_repetition.TopicStats) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetActiveSheet(f.NewSheet(exportSheet))
	f.DeleteSheet("Sheet1")

	for col, title := range exportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(exportSheet, cell, title); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	for i, s := range stats {
		row := i + 2
		values := []interface{}{
			s.Name, s.Description, string(s.Mastery), s.SuccessRate, s.SuccessStreak,
			s.TotalReviews, s.IntervalDays, s.DaysUntilReview, s.NextReviewAt.Format("2006-01-02"),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return fmt.Errorf("cell for row %d: %w", row, err)
			}
			if err := f.SetCellValue(exportSheet, cell, v); err != nil {
				return fmt.Errorf("write row %d: %w", row, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func exportCSV(path string, stats []spaced_repetition.TopicStats) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(exportHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, s := range stats {
		record := []string{
			s.Name,
			s.Description,
			string(s.Mastery),
			strconv.FormatFloat(s.SuccessRate, 'f', 1, 64),
			strconv.Itoa(s.SuccessStreak),
			strconv.Itoa(s.TotalReviews),
			strconv.Itoa(s.IntervalDays),
			strconv.Itoa(s.DaysUntilReview),
			s.NextReviewAt.Format("2006-01-02"),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}
