// Package daemon runs the background watch process that keeps every active
// routine's event window rolled forward.
package daemon

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"routinely/internal/logger"
	"routinely/internal/materializer"
	"routinely/internal/storage"
)

// Daemon schedules a daily refresh job. Each run re-materializes every active
// routine; the storage layer's conflict-ignore insert means only the newly
// entered window day actually gains events.
type Daemon struct {
	store storage.Provider
	mat   *materializer.Materializer
	cron  *cron.Cron
	now   func() time.Time
}

func New(store storage.Provider) *Daemon {
	return &Daemon{
		store: store,
		mat:   materializer.New(store),
		cron:  cron.New(cron.WithLocation(time.Local), cron.WithSeconds()),
		now:   time.Now,
	}
}

// Start registers the daily refresh at the given HH:MM local time, runs one
// refresh immediately to catch up after downtime, and starts the scheduler.
func (d *Daemon) Start(refreshAt string) error {
	spec, err := dailySpec(refreshAt)
	if err != nil {
		return err
	}

	if _, err := d.cron.AddFunc(spec, d.refresh); err != nil {
		return fmt.Errorf("failed to schedule refresh: %w", err)
	}

	d.refresh()
	d.cron.Start()
	logger.Info("watch daemon started", "refresh_at", refreshAt)
	return nil
}

// Stop halts the scheduler and waits for any running job to finish.
func (d *Daemon) Stop() {
	ctx := d.cron.Stop()
	<-ctx.Done()
	logger.Info("watch daemon stopped")
}

func (d *Daemon) refresh() {
	now := d.now()

	routines, err := d.store.GetActiveRoutines()
	if err != nil {
		logger.Error("refresh failed to list active routines", "error", err)
		return
	}

	total := 0
	for _, routine := range routines {
		inserted, err := d.mat.Extend(routine.ID, now)
		if err != nil {
			logger.Error("refresh failed for routine", "routine", routine.ID, "error", err)
			continue
		}
		total += inserted
	}
	logger.Info("refreshed active routines", "routines", len(routines), "inserted", total)
}

func dailySpec(timeStr string) (string, error) {
	parts := strings.Split(timeStr, ":")
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid time %q, expected HH:MM", timeStr)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return "", fmt.Errorf("invalid hour in %q", timeStr)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return "", fmt.Errorf("invalid minute in %q", timeStr)
	}
	// cron format: second minute hour dom month dow
	return fmt.Sprintf("0 %d %d * * *", minute, hour), nil
}
