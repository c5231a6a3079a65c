package main

import (
	"fmt"
	"sort"

	"github.com/juju/ansiterm"
	"github.com/spf13/cobra"

	"github.com/smtdfc/bootstrap"
	"github.com/smtdfc/bootstrap/binding"
)

var targetColor = map[binding.Target]*ansiterm.Context{
	binding.Field:     ansiterm.Foreground(ansiterm.Cyan),
	binding.Parameter: ansiterm.Foreground(ansiterm.Yellow),
	binding.Method:    ansiterm.Foreground(ansiterm.Magenta),
}

func newSitesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sites [root]",
		Short: "List every qualifier site in the module",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := opts.logger()
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			project, err := bootstrap.NewScanner(log).Scan(rootArg(args))
			if err != nil {
				return err
			}

			sites := project.Sites
			sort.SliceStable(sites, func(i, j int) bool {
				if sites[i].File != sites[j].File {
					return sites[i].File < sites[j].File
				}
				return sites[i].Line < sites[j].Line
			})

			w := ansiterm.NewTabWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, s := range sites {
				fmt.Fprintf(w, "@%s\t", s.Qualifier)
				if ctx, ok := targetColor[s.Site.Target]; ok {
					ctx.Fprint(w, s.Site.Target.String())
				} else {
					fmt.Fprint(w, s.Site.Target.String())
				}
				fmt.Fprintf(w, "\t%s\t%s:%d\n", s.Site.Name, s.File, s.Line)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d qualifier site(s)\n", len(sites))
			return nil
		},
	}
}
