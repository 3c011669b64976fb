package cron

import (
	"context"
	"time"

	"github.com/andina-labs/asistencia-backend-go/internal/service/roster"
)

// RegisterRosterRefresh schedules a periodic reload of the intern roster so
// area and full-name resolution tracks upstream changes.
func RegisterRosterRefresh(scheduler *Scheduler, resolver *roster.Resolver, interval time.Duration) {
	scheduler.AddJob("roster-refresh", interval, func(ctx context.Context) error {
		return resolver.Refresh(ctx)
	})
}
