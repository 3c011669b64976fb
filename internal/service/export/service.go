// Package export renders a generated report as a downloadable file. The XLSX
// output mirrors the styling of the original tool: bold filled header, thin
// borders, centered cells, width-capped columns.
package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	domainReport "github.com/andina-labs/asistencia-backend-go/internal/domain/report"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

var headers = []string{
	"#", "Nombre Practicante", "Turno Mañana", "Turno Tarde",
	"Horas T.", "Minutos Totales", "Área", "Estado",
}

const (
	headerFillColor = "DCE6F1"
	maxColumnWidth  = 50
)

// Service renders report rows to exportable bytes.
type Service struct{}

// NewService creates an export service.
func NewService() *Service {
	return &Service{}
}

// Filename builds a unique download name for the given scope and format.
func Filename(scope, format string) string {
	stamp := time.Now().Format("20060102_150405")
	return fmt.Sprintf("reporte_%s_%s_%s.%s", scope, stamp, uuid.NewString()[:8], format)
}

// XLSX renders the report as a styled workbook.
func (s *Service) XLSX(rows []domainReport.Row) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	sheet := f.GetSheetName(0)

	for col, header := range headers {
		cellRef, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to address header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cellRef, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	widths := make([]int, len(headers))
	for i, header := range headers {
		widths[i] = len(header)
	}

	for i, row := range rows {
		values := cellValues(row)
		for col, value := range values {
			cellRef, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, fmt.Errorf("failed to address cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cellRef, value); err != nil {
				return nil, fmt.Errorf("failed to write cell: %w", err)
			}
			if n := len(fmt.Sprint(value)); n > widths[col] {
				widths[col] = n
			}
		}
	}

	if err := applyStyles(f, sheet, len(rows)+1); err != nil {
		return nil, err
	}

	for col, width := range widths {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve column name: %w", err)
		}
		w := float64(width + 3)
		if w > maxColumnWidth {
			w = maxColumnWidth
		}
		if err := f.SetColWidth(sheet, name, name, w); err != nil {
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// CSV renders the report as plain comma-separated values.
func (s *Service) CSV(rows []domainReport.Row) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(strings.Join(headers, ",") + "\n")
	for _, row := range rows {
		fields := make([]string, 0, len(headers))
		for _, value := range cellValues(row) {
			fields = append(fields, csvEscape(fmt.Sprint(value)))
		}
		buf.WriteString(strings.Join(fields, ",") + "\n")
	}
	return buf.Bytes(), nil
}

// cellValues flattens a row into export column order. Date headers keep the
// label in the name column and leave everything else blank.
func cellValues(row domainReport.Row) []interface{} {
	if row.DateHeader {
		return []interface{}{"", row.Name, "", "", "", "", "", ""}
	}
	number := ""
	if row.Number != nil {
		number = fmt.Sprint(*row.Number)
	}
	return []interface{}{
		number,
		row.Name,
		row.MorningShift,
		row.AfternoonShift,
		row.TotalHours,
		row.TotalMinutes,
		row.Area,
		row.Status,
	}
}

func applyStyles(f *excelize.File, sheet string, rowCount int) error {
	border := []excelize.Border{
		{Type: "left", Style: 1, Color: "000000"},
		{Type: "right", Style: 1, Color: "000000"},
		{Type: "top", Style: 1, Color: "000000"},
		{Type: "bottom", Style: 1, Color: "000000"},
	}
	alignment := &excelize.Alignment{Horizontal: "center", Vertical: "center"}

	bodyStyle, err := f.NewStyle(&excelize.Style{Border: border, Alignment: alignment})
	if err != nil {
		return fmt.Errorf("failed to create body style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Border:    border,
		Alignment: alignment,
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{headerFillColor}},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	lastCell, err := excelize.CoordinatesToCellName(len(headers), rowCount)
	if err != nil {
		return fmt.Errorf("failed to address style range: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", lastCell, bodyStyle); err != nil {
		return fmt.Errorf("failed to apply body style: %w", err)
	}
	headerLast, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return fmt.Errorf("failed to address header range: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", headerLast, headerStyle); err != nil {
		return fmt.Errorf("failed to apply header style: %w", err)
	}
	return nil
}

func csvEscape(field string) string {
	if strings.ContainsAny(field, ",\"\n") {
		return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
	}
	return field
}
