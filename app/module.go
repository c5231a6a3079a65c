// Package app wires configuration, logging and the application name into an
// fx application.
package app

import (
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/smtdfc/bootstrap/binding"
	"github.com/smtdfc/bootstrap/config"
	"github.com/smtdfc/bootstrap/logging"
)

// LoggerParams receives the qualified application name through a field.
type LoggerParams struct {
	fx.In

	AppName string `name:"appName"`
	Config  *config.App
}

// NameParams is a parameter struct for consumers of the application name.
type NameParams struct {
	fx.In

	AppName string `name:"appName"`
}

func appName(cfg *config.App) string {
	return cfg.Name
}

func newLogger(p LoggerParams) (*zap.Logger, error) {
	return logging.New(logging.Config{
		Level:       p.Config.LogLevel,
		Development: p.Config.Env == "development",
		AppName:     p.AppName,
	})
}

// Module provides *config.App, the appName-qualified string and a
// *zap.Logger.
func Module(opts config.Options) fx.Option {
	return fx.Module("bootstrap",
		fx.Provide(func() (*config.App, error) { return config.Load(opts) }),
		binding.Provide(binding.AppName{}, appName),
		fx.Provide(newLogger),
	)
}

// New builds an fx application around Module, logging fx events with zap.
func New(opts config.Options, extra ...fx.Option) *fx.App {
	return fx.New(
		Module(opts),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return logging.FxLogger(log)
		}),
		fx.Options(extra...),
	)
}
