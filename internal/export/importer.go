package export

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/PixelCode01/syllabo/internal/database"
	"github.com/PixelCode01/syllabo/internal/spaced_repetition"
)

// ImportResult summarizes a bulk topic import.
type ImportResult struct {
	TotalProcessed int
	Created        int
	Skipped        int // Duplicates and blank rows
	Errors         []string
}

// Import bulk-adds topics from a spreadsheet: column A is the topic
// name, column B an optional description. The first row is treated as a
// header when its first cell is "Topic" or "Name". Duplicates are
// skipped, not errors.
func Import(ctx context.Context, engine *spaced_repetition.Engine, path string) (*ImportResult, error) {
	var rows [][]string
	var err error
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		rows, err = readCSV(path)
	} else {
		rows, err = readExcel(path)
	}
	if err != nil {
		return nil, err
	}

	result := &ImportResult{}
	for i, row := range rows {
		if i == 0 && isHeaderRow(row) {
			continue
		}
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			result.Skipped++
			continue
		}
		result.TotalProcessed++

		name := strings.TrimSpace(row[0])
		description := ""
		if len(row) > 1 {
			description = strings.TrimSpace(row[1])
		}

		_, err := engine.AddTopic(ctx, name, description)
		switch {
		case err == nil:
			result.Created++
		case errors.Is(err, database.ErrDuplicateTopic):
			result.Skipped++
		default:
			result.Errors = append(result.Errors, fmt.Sprintf("row %d (%s): %v", i+1, name, err))
		}
	}
	return result, nil
}

func readExcel(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		rows = append(rows, record)
	}
	return rows, nil
}

func isHeaderRow(row []string) bool {
	if len(row) == 0 {
		return false
	}
	first := strings.ToLower(strings.TrimSpace(row[0]))
	return first == "topic" || first == "name"
}
