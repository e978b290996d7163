package system

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"routinely/internal/cli"
	"routinely/internal/constants"
	"routinely/internal/daemon"
)

type WatchCmd struct {
	RefreshAt string `help:"Local time (HH:MM) at which the daily schedule refresh runs." default:"00:05"`
}

func (c *WatchCmd) Run(ctx *cli.Context) error {
	refreshAt := c.RefreshAt
	if refreshAt == "" {
		refreshAt = constants.DefaultRefreshTime
	}

	d := daemon.New(ctx.Store)
	if err := d.Start(refreshAt); err != nil {
		return err
	}

	fmt.Printf("Watching active routines; daily refresh at %s. Press Ctrl+C to stop.\n", refreshAt)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	d.Stop()
	return nil
}
