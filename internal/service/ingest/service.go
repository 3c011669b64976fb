// Package ingest parses uploaded attendance exports (xlsx, legacy xls, csv)
// into raw records. It is the defect boundary of the system: rows with
// missing names or unparsable timestamps are dropped here and never reach the
// core, and files without the expected columns are skipped, not fatal.
package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/andina-labs/asistencia-backend-go/internal/domain/attendance"
	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// Column headers of the videoconferencing tool's export.
const (
	columnName  = "Nombre (nombre original)"
	columnEntry = "Hora de entrada"
	columnExit  = "Hora de salida"
)

const maxXLSRows = 100000

// Timestamps come day-first; the export is not consistent about seconds or
// separators.
var timestampLayouts = []string{
	"02/01/2006 15:04:05",
	"2/1/2006 15:04:05",
	"02/01/2006 15:04",
	"2/1/2006 15:04",
	"02-01-2006 15:04:05",
	"02-01-2006 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// UploadedFile is one uploaded export, already read into memory.
type UploadedFile struct {
	Name string
	Data []byte
}

// Service parses uploaded files into raw attendance records.
type Service struct{}

// NewService creates an ingest service.
func NewService() *Service {
	return &Service{}
}

// ParseAll parses every file and concatenates the usable rows. Files that
// cannot be read or lack the required columns are logged and skipped.
func (s *Service) ParseAll(files []UploadedFile) []attendance.RawRecord {
	var records []attendance.RawRecord
	for _, file := range files {
		rows, err := s.ParseFile(file.Name, file.Data)
		if err != nil {
			slog.Warn("Skipping uploaded file", "file", file.Name, "error", err)
			continue
		}
		records = append(records, rows...)
	}
	return records
}

// ParseFile parses a single export by extension: .csv, .xls, or xlsx
// (the default for anything else excelize can open).
func (s *Service) ParseFile(filename string, data []byte) ([]attendance.RawRecord, error) {
	var (
		rows [][]string
		err  error
	)

	switch {
	case strings.HasSuffix(strings.ToLower(filename), ".csv"):
		rows, err = readCSV(data)
	case strings.HasSuffix(strings.ToLower(filename), ".xls"):
		rows, err = readXLS(data)
	default:
		rows, err = readXLSX(data)
	}
	if err != nil {
		return nil, err
	}

	return mapRows(rows)
}

func readCSV(data []byte) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	return rows, nil
}

func readXLS(data []byte) ([][]string, error) {
	workbook, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("failed to open xls workbook: %w", err)
	}
	if workbook.NumSheets() == 0 {
		return nil, fmt.Errorf("xls workbook has no worksheet")
	}
	rows := workbook.ReadAllCells(maxXLSRows)
	if len(rows) == 0 {
		return nil, fmt.Errorf("xls worksheet is empty")
	}
	return rows, nil
}

func readXLSX(data []byte) ([][]string, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = file.Close() }()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("workbook has no worksheet")
	}

	rows, err := file.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read worksheet: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("worksheet is empty")
	}
	return rows, nil
}

// mapRows locates the required columns in the header row and converts the
// remaining rows, dropping any row whose fields are missing or unparsable.
func mapRows(rows [][]string) ([]attendance.RawRecord, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("file has no rows")
	}

	nameCol, entryCol, exitCol := -1, -1, -1
	for i, header := range rows[0] {
		switch strings.TrimSpace(header) {
		case columnName:
			nameCol = i
		case columnEntry:
			entryCol = i
		case columnExit:
			exitCol = i
		}
	}
	if nameCol < 0 || entryCol < 0 || exitCol < 0 {
		return nil, fmt.Errorf("required columns not found (%q, %q, %q)", columnName, columnEntry, columnExit)
	}

	var records []attendance.RawRecord
	for _, row := range rows[1:] {
		name := cell(row, nameCol)
		entry, okEntry := parseTimestamp(cell(row, entryCol))
		exit, okExit := parseTimestamp(cell(row, exitCol))
		if name == "" || !okEntry || !okExit {
			continue
		}
		if exit.Before(entry) {
			continue
		}
		records = append(records, attendance.RawRecord{
			RawName: name,
			Entry:   entry,
			Exit:    exit,
		})
	}
	return records, nil
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseTimestamp tries the known day-first layouts, then falls back to Excel
// serial datetimes for workbooks that store raw numbers.
func parseTimestamp(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	if serial, err := strconv.ParseFloat(value, 64); err == nil {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
