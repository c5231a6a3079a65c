// Command dix generates wiring code from @factory/@wire annotations and lists
// qualifier sites.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/smtdfc/bootstrap/logging"
)

type rootOptions struct {
	verbose bool
}

func (o *rootOptions) logger() (*zap.Logger, error) {
	level := "info"
	if o.verbose {
		level = "debug"
	}
	return logging.New(logging.Config{Level: level, Development: true})
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:          "dix",
		Short:        "Annotation driven dependency wiring",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log every scanned file")

	cmd.AddCommand(newGenCmd(opts), newSitesCmd(opts))
	return cmd
}

func rootArg(args []string) string {
	if len(args) == 0 {
		return "."
	}
	return args[0]
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
