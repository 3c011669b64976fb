package http

import (
	"net/http"

	"github.com/andina-labs/asistencia-backend-go/internal/handler/http/response"
	"github.com/andina-labs/asistencia-backend-go/internal/service/history"
	"github.com/go-chi/chi/v5"
)

type HistoryHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Restore(w http.ResponseWriter, r *http.Request)
}

type historyHandlerImpl struct {
	historyService history.Service
}

func NewHistoryHandler(historyService history.Service) HistoryHandler {
	return &historyHandlerImpl{
		historyService: historyService,
	}
}

// List implements HistoryHandler.
func (h *historyHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.historyService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// Restore implements HistoryHandler.
func (h *historyHandlerImpl) Restore(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rows, err := h.historyService.Restore(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Snapshot restored successfully", rows)
}
