package main

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/smtdfc/bootstrap"
)

func newGenCmd(opts *rootOptions) *cobra.Command {
	var (
		out        string
		pkg        string
		importPath string
	)
	cmd := &cobra.Command{
		Use:   "gen [root]",
		Short: "Generate the wiring file for annotated providers",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := rootArg(args)
			log, err := opts.logger()
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			src, err := bootstrap.NewScanner(log).ScanProjectAndGenerateDI(root, bootstrap.GenOptions{
				Package:    pkg,
				ImportPath: importPath,
			})
			if err != nil {
				return err
			}

			if out == "-" {
				_, err := fmt.Fprint(cmd.OutOrStdout(), src)
				return err
			}
			path := out
			if !filepath.IsAbs(path) {
				path = filepath.Join(root, path)
			}
			if err := bootstrap.WriteGoFile(src, path); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", color.GreenString("wrote"), path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "dix_gen.go", `output file relative to root, "-" for stdout`)
	cmd.Flags().StringVarP(&pkg, "package", "p", "main", "package clause of the generated file")
	cmd.Flags().StringVar(&importPath, "import-path", "", "import path of the generated package")
	return cmd
}
