package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/andina-labs/asistencia-backend-go/internal/domain/attendance"
	"github.com/andina-labs/asistencia-backend-go/internal/handler/http/response"
	"github.com/andina-labs/asistencia-backend-go/internal/pkg/validator"
	"github.com/andina-labs/asistencia-backend-go/internal/service/export"
	"github.com/andina-labs/asistencia-backend-go/internal/service/history"
	"github.com/andina-labs/asistencia-backend-go/internal/service/ingest"
)

type AttendanceHandler interface {
	Upload(w http.ResponseWriter, r *http.Request)
	Report(w http.ResponseWriter, r *http.Request)
	FullReport(w http.ResponseWriter, r *http.Request)
	ApplyFilters(w http.ResponseWriter, r *http.Request)
	Search(w http.ResponseWriter, r *http.Request)
	ClearFilters(w http.ResponseWriter, r *http.Request)
	Reset(w http.ResponseWriter, r *http.Request)
	FilterState(w http.ResponseWriter, r *http.Request)
	Options(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.Service
	ingestService     *ingest.Service
	exportService     *export.Service
	historyService    history.Service
}

func NewAttendanceHandler(
	attendanceService attendance.Service,
	ingestService *ingest.Service,
	exportService *export.Service,
	historyService history.Service,
) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		ingestService:     ingestService,
		exportService:     exportService,
		historyService:    historyService,
	}
}

// Upload implements AttendanceHandler.
func (h *attendanceHandlerImpl) Upload(w http.ResponseWriter, r *http.Request) {
	// Parse multipart form (max 50MB across all exports)
	if err := r.ParseMultipartForm(50 << 20); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	fileHeaders := r.MultipartForm.File["files"]
	if len(fileHeaders) == 0 {
		response.BadRequest(w, "Field 'files' is required", nil)
		return
	}

	var uploads []ingest.UploadedFile
	var names []string
	for _, header := range fileHeaders {
		file, err := header.Open()
		if err != nil {
			slog.Error("Failed to open uploaded file", "file", header.Filename, "error", err)
			response.BadRequest(w, "Invalid file upload", nil)
			return
		}
		data, err := io.ReadAll(file)
		_ = file.Close()
		if err != nil {
			slog.Error("Failed to read uploaded file", "file", header.Filename, "error", err)
			response.BadRequest(w, "Invalid file upload", nil)
			return
		}
		uploads = append(uploads, ingest.UploadedFile{Name: header.Filename, Data: data})
		names = append(names, header.Filename)
	}

	records := h.ingestService.ParseAll(uploads)
	if len(records) == 0 {
		response.HandleError(w, attendance.ErrNoIngestRows)
		return
	}

	rows, err := h.attendanceService.Load(r.Context(), records)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	h.historyService.RecordLoad(r.Context(), names, h.attendanceService.Snapshot())

	response.SuccessWithMessage(w, "Files loaded successfully", rows)
}

// Report implements AttendanceHandler.
func (h *attendanceHandlerImpl) Report(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.attendanceService.CurrentReport())
}

// FullReport implements AttendanceHandler.
func (h *attendanceHandlerImpl) FullReport(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.attendanceService.FullReport())
}

// ApplyFilters implements AttendanceHandler.
func (h *attendanceHandlerImpl) ApplyFilters(w http.ResponseWriter, r *http.Request) {
	var req attendance.FilterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	rows, err := h.attendanceService.ApplyFilters(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	h.historyService.RecordFilters(r.Context(), h.attendanceService.Snapshot())

	response.Success(w, rows)
}

// Search implements AttendanceHandler.
func (h *attendanceHandlerImpl) Search(w http.ResponseWriter, r *http.Request) {
	var req attendance.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	rows, err := h.attendanceService.Search(r.Context(), req.Text)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if !validator.IsEmpty(req.Text) {
		h.historyService.RecordSearch(r.Context(), req.Text, h.attendanceService.Snapshot())
	}

	response.Success(w, rows)
}

// ClearFilters implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClearFilters(w http.ResponseWriter, r *http.Request) {
	rows, err := h.attendanceService.ClearFilters(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, rows)
}

// Reset implements AttendanceHandler.
func (h *attendanceHandlerImpl) Reset(w http.ResponseWriter, r *http.Request) {
	h.attendanceService.Reset(r.Context())
	response.SuccessWithMessage(w, "Dataset cleared", nil)
}

// FilterState implements AttendanceHandler.
func (h *attendanceHandlerImpl) FilterState(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.attendanceService.FilterState())
}

// Options implements AttendanceHandler.
func (h *attendanceHandlerImpl) Options(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.attendanceService.Options())
}

// Export implements AttendanceHandler.
func (h *attendanceHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	scope := strings.ToLower(r.URL.Query().Get("scope"))
	if scope == "" {
		scope = "current"
	}
	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = "xlsx"
	}

	var errs validator.ValidationErrors
	if !validator.IsInSlice(scope, []string{"current", "full"}) {
		errs = append(errs, validator.ValidationError{Field: "scope", Message: "must be 'current' or 'full'"})
	}
	if !validator.IsValidExportFormat(format) {
		errs = append(errs, validator.ValidationError{Field: "format", Message: "must be 'xlsx' or 'csv'"})
	}
	if len(errs) > 0 {
		response.HandleError(w, errs)
		return
	}

	rows := h.attendanceService.CurrentReport()
	if scope == "full" {
		rows = h.attendanceService.FullReport()
	}

	var (
		data        []byte
		err         error
		contentType string
	)
	switch format {
	case "csv":
		data, err = h.exportService.CSV(rows)
		contentType = "text/csv"
	default:
		data, err = h.exportService.XLSX(rows)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	if err != nil {
		slog.Error("Failed to render export", "scope", scope, "format", format, "error", err)
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename(scope, format)+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
