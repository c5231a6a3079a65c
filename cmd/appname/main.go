// Command appname boots the fx application and logs the name bound under the
// appName qualifier.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/smtdfc/bootstrap/app"
	"github.com/smtdfc/bootstrap/config"
)

func report(p app.NameParams, log *zap.Logger) {
	log.Info("application name resolved", zap.String("appName", p.AppName))
}

func run(args []string) error {
	flags := pflag.NewFlagSet("appname", pflag.ContinueOnError)
	file := flags.StringP("config", "c", "", "YAML configuration file")
	dotenv := flags.StringSlice("env-file", []string{".env"}, ".env files to load")
	if err := flags.Parse(args); err != nil {
		return err
	}

	a := app.New(config.Options{File: *file, DotEnv: *dotenv}, fx.Invoke(report))
	if err := a.Err(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := a.Start(ctx); err != nil {
		return err
	}
	return a.Stop(ctx)
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
