package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/andina-labs/asistencia-backend-go/internal/config"
	domainHistory "github.com/andina-labs/asistencia-backend-go/internal/domain/history"
	appHTTP "github.com/andina-labs/asistencia-backend-go/internal/handler/http"
	"github.com/andina-labs/asistencia-backend-go/internal/pkg/cron"
	"github.com/andina-labs/asistencia-backend-go/internal/pkg/database"
	rosterClient "github.com/andina-labs/asistencia-backend-go/internal/pkg/roster"
	"github.com/andina-labs/asistencia-backend-go/internal/repository/postgresql"
	attendanceService "github.com/andina-labs/asistencia-backend-go/internal/service/attendance"
	exportService "github.com/andina-labs/asistencia-backend-go/internal/service/export"
	historyService "github.com/andina-labs/asistencia-backend-go/internal/service/history"
	"github.com/andina-labs/asistencia-backend-go/internal/service/identity"
	ingestService "github.com/andina-labs/asistencia-backend-go/internal/service/ingest"
	reportService "github.com/andina-labs/asistencia-backend-go/internal/service/report"
	rosterService "github.com/andina-labs/asistencia-backend-go/internal/service/roster"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	// Roster resolution. A failed initial fetch is not fatal: everyone
	// resolves to OTROS until the scheduler manages a refresh.
	client := rosterClient.NewClient(cfg.Roster.URL)
	areaResolver := rosterService.NewResolver(client)
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	if err := areaResolver.Refresh(ctx); err != nil {
		slog.Warn("Initial roster fetch failed, continuing without roster data", "error", err)
	}
	cancel()

	// History persistence is optional. Without a database the service
	// still runs; history endpoints report unavailability.
	var historyRepo domainHistory.Repository
	if cfg.HistoryEnabled() {
		db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
		if err != nil {
			slog.Warn("Database unavailable, history persistence disabled", "error", err)
		} else {
			historyRepo, err = postgresql.NewHistoryRepository(db)
			if err != nil {
				slog.Warn("History migration failed, history persistence disabled", "error", err)
				historyRepo = nil
			}
		}
	} else {
		slog.Info("No DB_HOST configured, history persistence disabled")
	}

	attendanceSvc := attendanceService.NewService(
		identity.NewResolver(),
		areaResolver,
		reportService.NewBuilder(),
	)
	historySvc := historyService.NewService(historyRepo, attendanceSvc)
	ingestSvc := ingestService.NewService()
	exportSvc := exportService.NewService()

	scheduler := cron.NewScheduler()
	if cfg.Roster.RefreshInterval > 0 {
		cron.RegisterRosterRefresh(scheduler, areaResolver, cfg.Roster.RefreshInterval)
	}
	scheduler.Start()
	defer scheduler.Stop()

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc, ingestSvc, exportSvc, historySvc)
	historyHandler := appHTTP.NewHistoryHandler(historySvc)

	router := appHTTP.NewRouter(cfg.App.Env, attendanceHandler, historyHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
