package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const csvHeader = "Nombre (nombre original),Hora de entrada,Hora de salida\n"

func TestParseFileCSV(t *testing.T) {
	svc := NewService()
	data := []byte(csvHeader +
		"Juan Perez,11/03/2024 09:00:00,11/03/2024 13:00:00\n" +
		"Maria Lopez,11/03/2024 15:00,11/03/2024 18:00\n")

	records, err := svc.ParseFile("asistencia.csv", data)
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, "Juan Perez", records[0].RawName)
	assert.Equal(t, "11/03/2024 09:00:00", records[0].Entry.Format("02/01/2006 15:04:05"))
	assert.Equal(t, "11/03/2024 18:00:00", records[1].Exit.Format("02/01/2006 15:04:05"))
}

func TestParseFileDropsBadRows(t *testing.T) {
	svc := NewService()
	data := []byte(csvHeader +
		",11/03/2024 09:00:00,11/03/2024 13:00:00\n" + // missing name
		"Pedro Ruiz,not a time,11/03/2024 13:00:00\n" + // bad entry
		"Ana Diaz,11/03/2024 14:00:00,11/03/2024 13:00:00\n" + // exit before entry
		"Juan Perez,11/03/2024 09:00:00,11/03/2024 13:00:00\n")

	records, err := svc.ParseFile("asistencia.csv", data)
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, "Juan Perez", records[0].RawName)
}

func TestParseFileMissingColumns(t *testing.T) {
	svc := NewService()
	data := []byte("Nombre,Entrada,Salida\nJuan Perez,09:00,13:00\n")

	_, err := svc.ParseFile("asistencia.csv", data)
	assert.Error(t, err)
}

func TestParseFileColumnOrderIndependent(t *testing.T) {
	svc := NewService()
	data := []byte("Hora de salida,Nombre (nombre original),Hora de entrada\n" +
		"11/03/2024 13:00:00,Juan Perez,11/03/2024 09:00:00\n")

	records, err := svc.ParseFile("asistencia.csv", data)
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.True(t, records[0].Entry.Before(records[0].Exit))
}

func TestParseFileXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetCellValue(sheet, "A1", "Nombre (nombre original)"))
	require.NoError(t, f.SetCellValue(sheet, "B1", "Hora de entrada"))
	require.NoError(t, f.SetCellValue(sheet, "C1", "Hora de salida"))
	require.NoError(t, f.SetCellValue(sheet, "A2", "Juan Perez"))
	require.NoError(t, f.SetCellValue(sheet, "B2", "11/03/2024 09:00:00"))
	require.NoError(t, f.SetCellValue(sheet, "C2", "11/03/2024 13:00:00"))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	records, err := NewService().ParseFile("asistencia.xlsx", buf.Bytes())
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, "Juan Perez", records[0].RawName)
}

func TestParseTimestampExcelSerial(t *testing.T) {
	// Workbooks sometimes surface raw serial datetimes as text.
	parsed, ok := parseTimestamp("45357.5")
	require.True(t, ok)
	assert.Equal(t, 12, parsed.Hour())
}

func TestParseAllSkipsUnreadableFiles(t *testing.T) {
	svc := NewService()
	good := []byte(csvHeader + "Juan Perez,11/03/2024 09:00:00,11/03/2024 13:00:00\n")

	records := svc.ParseAll([]UploadedFile{
		{Name: "broken.xlsx", Data: []byte("this is not a workbook")},
		{Name: "ok.csv", Data: good},
	})

	require.Len(t, records, 1)
	assert.Equal(t, "Juan Perez", records[0].RawName)
}
