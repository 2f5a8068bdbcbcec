package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/phanxgames/folio/content"
	"github.com/spf13/cobra"
)

func newProjectsCmd(a *app) *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Validate and list the project records",
		Long: `Loads the configured project list, reports every validation problem,
and prints the projects. With --watch, the file is reloaded on every change
until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, projects, err := a.loadConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printProjects(out, projects)
			if !watch {
				return nil
			}
			if cfg.Content.Path == "" {
				return fmt.Errorf("--watch needs content.path in %s", a.configPath)
			}
			w, err := content.NewWatcher(cfg.Content.Path, content.DefaultDebounce, a.log)
			if err != nil {
				return err
			}
			defer w.Close()
			fmt.Fprintf(out, "watching %s\n", cfg.Content.Path)
			ctx := cmd.Context()
			for {
				select {
				case <-ctx.Done():
					return nil
				case u, ok := <-w.Updates():
					if !ok {
						return nil
					}
					if u.Err != nil {
						fmt.Fprintf(out, "rejected: %v\n", u.Err)
						continue
					}
					fmt.Fprintf(out, "reloaded %d projects\n", len(u.Projects))
					printProjects(out, u.Projects)
				}
			}
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "reload on change")
	return cmd
}

func printProjects(out io.Writer, ps []content.Project) {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tURL\tSTACK")
	for _, p := range ps {
		url := p.URL
		if url == "" {
			url = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", p.ID, p.Title, url, len(p.TechStack))
	}
	_ = tw.Flush()
}
