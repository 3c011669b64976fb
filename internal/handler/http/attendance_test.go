package http

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/andina-labs/asistencia-backend-go/internal/domain/attendance"
	attendanceService "github.com/andina-labs/asistencia-backend-go/internal/service/attendance"
	exportService "github.com/andina-labs/asistencia-backend-go/internal/service/export"
	historyService "github.com/andina-labs/asistencia-backend-go/internal/service/history"
	"github.com/andina-labs/asistencia-backend-go/internal/service/identity"
	ingestService "github.com/andina-labs/asistencia-backend-go/internal/service/ingest"
	reportService "github.com/andina-labs/asistencia-backend-go/internal/service/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedAreas struct{}

func (fixedAreas) Area(name string) string             { return "Sistemas" }
func (fixedAreas) FullName(name string) (string, bool) { return "", false }

func newTestServer() *httptest.Server {
	core := attendanceService.NewService(identity.NewResolver(), fixedAreas{}, reportService.NewBuilder())
	histSvc := historyService.NewService(nil, core)

	attendanceHandler := NewAttendanceHandler(core, ingestService.NewService(), exportService.NewService(), histSvc)
	historyHandler := NewHistoryHandler(histSvc)

	return httptest.NewServer(NewRouter("test", attendanceHandler, historyHandler))
}

func uploadCSV(t *testing.T, server *httptest.Server) {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("files", "asistencia.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("Nombre (nombre original),Hora de entrada,Hora de salida\n" +
		"Juan Perez,11/03/2024 09:00:00,11/03/2024 13:00:00\n"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	resp, err := http.Post(server.URL+"/api/v1/attendance/upload", writer.FormDataContentType(), &body)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func decodeEnvelope(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var envelope map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return envelope
}

func TestUploadAndReport(t *testing.T) {
	server := newTestServer()
	defer server.Close()

	uploadCSV(t, server)

	resp, err := http.Get(server.URL + "/api/v1/attendance/report")
	require.NoError(t, err)
	envelope := decodeEnvelope(t, resp)

	require.Equal(t, true, envelope["success"])
	rows, ok := envelope["data"].([]interface{})
	require.True(t, ok)
	assert.Len(t, rows, 2) // header + one person
}

func TestUploadRejectsMissingFiles(t *testing.T) {
	server := newTestServer()
	defer server.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.Close())

	resp, err := http.Post(server.URL+"/api/v1/attendance/upload", writer.FormDataContentType(), &body)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUploadRejectsUnusableFiles(t *testing.T) {
	server := newTestServer()
	defer server.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("files", "garbage.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("columna,equivocada\nx,y\n"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	resp, err := http.Post(server.URL+"/api/v1/attendance/upload", writer.FormDataContentType(), &body)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestFilterEndpoint(t *testing.T) {
	server := newTestServer()
	defer server.Close()
	uploadCSV(t, server)

	payload := `{"area":"Sistemas","dates":["11/03/2024"],"shift":"TODOS"}`
	resp, err := http.Post(server.URL+"/api/v1/attendance/filters", "application/json", strings.NewReader(payload))
	require.NoError(t, err)
	envelope := decodeEnvelope(t, resp)

	require.Equal(t, true, envelope["success"])
	rows := envelope["data"].([]interface{})
	assert.Len(t, rows, 2)
}

func TestSearchEndpoint(t *testing.T) {
	server := newTestServer()
	defer server.Close()
	uploadCSV(t, server)

	resp, err := http.Post(server.URL+"/api/v1/attendance/search", "application/json", strings.NewReader(`{"text":"nadie asi"}`))
	require.NoError(t, err)
	envelope := decodeEnvelope(t, resp)

	require.Equal(t, true, envelope["success"])
	assert.Empty(t, envelope["data"])
}

func TestOptionsEndpoint(t *testing.T) {
	server := newTestServer()
	defer server.Close()
	uploadCSV(t, server)

	resp, err := http.Get(server.URL + "/api/v1/attendance/options")
	require.NoError(t, err)
	envelope := decodeEnvelope(t, resp)

	data := envelope["data"].(map[string]interface{})
	assert.Equal(t, []interface{}{"11/03/2024"}, data["dates"])
	assert.Equal(t, []interface{}{attendance.AreaAll, "Sistemas"}, data["areas"])
}

func TestExportEndpoint(t *testing.T) {
	server := newTestServer()
	defer server.Close()
	uploadCSV(t, server)

	resp, err := http.Get(server.URL + "/api/v1/attendance/export?scope=full&format=csv")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "reporte_full_")
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	server := newTestServer()
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/v1/attendance/export?format=pdf")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestHistoryUnavailableWithoutDatabase(t *testing.T) {
	server := newTestServer()
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/v1/history/")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
