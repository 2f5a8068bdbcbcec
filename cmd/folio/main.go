// Command folio runs the portfolio page in a window, replays it headless, or
// inspects its project list.
package main

import (
	"fmt"
	"os"

	"github.com/phanxgames/folio/content"
	"github.com/phanxgames/folio/site"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// app holds the state shared by every command of one invocation.
type app struct {
	configPath string
	verbose    bool
	log        *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{log: zap.NewNop()}
	root := &cobra.Command{
		Use:   "folio",
		Short: "Animated portfolio page",
		Long: `folio renders the portfolio: scroll-driven sections, a pinned project
showcase, particle and lightning backgrounds, and a contact form.

Run without a subcommand to open the window.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config := zap.NewProductionConfig()
			if a.verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			log, err := config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.log = log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.log.Sync()
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "site.yaml", "site configuration file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	run := newRunCmd(a)
	root.RunE = run.RunE
	root.Flags().AddFlagSet(run.Flags())
	root.AddCommand(run, newSimulateCmd(a), newProjectsCmd(a))
	return root
}

// loadConfig reads the site configuration and the project list it points at.
func (a *app) loadConfig() (*site.Config, []content.Project, error) {
	cfg, err := site.LoadConfig(a.configPath)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Content.Path == "" {
		return cfg, content.Default(), nil
	}
	projects, err := content.LoadFile(cfg.Content.Path)
	if err != nil {
		return nil, nil, err
	}
	return cfg, projects, nil
}

// loadFont reads the configured font file. A missing file falls back to the
// bundled face with a warning.
func (a *app) loadFont(cfg *site.Config) []byte {
	if cfg.Font == "" {
		return nil
	}
	data, err := os.ReadFile(cfg.Font)
	if err != nil {
		a.log.Warn("font not loaded", zap.String("path", cfg.Font), zap.Error(err))
		return nil
	}
	return data
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
