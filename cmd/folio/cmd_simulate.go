package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/phanxgames/folio"
	"github.com/phanxgames/folio/site"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// ErrLeak is returned by simulate when the page leaves frames, timeouts, or
// listeners behind after disposal.
var ErrLeak = errors.New("page leaked window resources")

const simulateTick = time.Second / 60

func newSimulateCmd(a *app) *cobra.Command {
	var (
		duration   time.Duration
		scriptPath string
		variant    string
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run the page headless at 60Hz and report its bookkeeping",
		Long: `Advances the page for the given duration of simulated time without a
window, optionally replaying an input script, then disposes it and checks
that nothing was left registered on the window.

Example:
  folio simulate --duration 30s --script tour.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, projects, err := a.loadConfig()
			if err != nil {
				return err
			}
			if variant != "" {
				cfg.Variant = site.Variant(variant)
			}
			script, err := loadScript(scriptPath)
			if err != nil {
				return err
			}
			page, err := site.NewPage(cfg, projects, a.log)
			if err != nil {
				return err
			}
			w := page.Window()
			start := time.Now()
			peak := 0
			for w.Now() < duration {
				if script != nil {
					script.Step(w)
				}
				w.Advance(simulateTick)
				peak = max(peak, page.Stats().Transients)
			}
			before := page.Stats()
			page.Dispose()
			after := folio.CollectStats(w, nil)

			a.log.Info("simulation finished",
				zap.Object("stats", before),
				zap.Int("peak_transients", peak),
				zap.Duration("wall", time.Since(start)))
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "frames %d  layers %d  peak transients %d  scroll %.0f\n",
				before.Frame, before.Layers, peak, before.ScrollY)
			if after.Frames != 0 || after.Timeouts != 0 || after.Listeners != 0 {
				fmt.Fprintf(out, "leaked: frames %d  timeouts %d  listeners %d\n",
					after.Frames, after.Timeouts, after.Listeners)
				return ErrLeak
			}
			fmt.Fprintln(out, "no leaks")
			return nil
		},
	}
	cmd.Flags().DurationVarP(&duration, "duration", "d", 10*time.Second, "simulated time to run")
	cmd.Flags().StringVar(&scriptPath, "script", "", "JSON input script to replay")
	cmd.Flags().StringVar(&variant, "variant", "", "override the configured variant (classic or works)")
	return cmd
}
