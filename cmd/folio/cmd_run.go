package main

import (
	"fmt"
	"os"

	"github.com/phanxgames/folio"
	"github.com/phanxgames/folio/content"
	"github.com/phanxgames/folio/site"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRunCmd(a *app) *cobra.Command {
	var scriptPath, shotDir string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the portfolio in a window",
		Long: `Opens the page in a resizable window. With --script, the JSON input
script is replayed before live input takes over. With --screenshots, F12
and script screenshot steps save PNGs there. Escape quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, projects, err := a.loadConfig()
			if err != nil {
				return err
			}
			script, err := loadScript(scriptPath)
			if err != nil {
				return err
			}
			page, err := site.NewPage(cfg, projects, a.log, site.WithFontData(a.loadFont(cfg)))
			if err != nil {
				return err
			}
			if cfg.Content.Watch && cfg.Content.Path != "" {
				w, err := content.NewWatcher(cfg.Content.Path, content.DefaultDebounce, a.log)
				if err != nil {
					a.log.Warn("project watch disabled", zap.Error(err))
				} else {
					defer w.Close()
					page.WatchProjects(w.Updates())
				}
			}
			return folio.Run(page, folio.RunConfig{
				Title:      cfg.Title,
				Width:      cfg.Width,
				Height:     cfg.Height,
				Resizable:  true,
				Background: page.Context().Theme.Palette().Background,
				WheelStep:  cfg.Scroll.WheelStep,
				Script:     script,

				ScreenshotDir: shotDir,
				Logger:        a.log,
			})
		},
	}
	cmd.Flags().StringVar(&scriptPath, "script", "", "JSON input script to replay")
	cmd.Flags().StringVar(&shotDir, "screenshots", "", "directory for F12 and scripted screenshots")
	return cmd
}

func loadScript(path string) (*folio.ScriptRunner, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return folio.LoadScript(data)
}
