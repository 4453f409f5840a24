package main

import (
	"embed"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/3-lines-studio/sdui"
	"github.com/3-lines-studio/sdui/internal/config"
)

//go:embed demo.json
var demoFS embed.FS

const demoPath = "demo.json"

type app struct {
	v       *viper.Viper
	cfgFile string
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.New()}

	cmd := &cobra.Command{
		Use:           "sdui",
		Short:         "Render server-driven screen documents",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.Load(a.v, a.cfgFile)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (yaml, json or toml)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "text", "log format (text, json)")
	flags.Bool("opaque-known-items", false, "keep items of built-in components as data instead of child nodes")
	_ = a.v.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = a.v.BindPFlag("log.format", flags.Lookup("log-format"))
	_ = a.v.BindPFlag("opaque_known_items", flags.Lookup("opaque-known-items"))

	cmd.AddCommand(newRenderCmd(a), newServeCmd(a))
	return cmd
}

func (a *app) config() config.Config {
	return config.FromViper(a.v)
}

func (a *app) logger(c config.Config) *slog.Logger {
	return config.NewLogger(os.Stderr, c)
}

func (a *app) engine(c config.Config, logger *slog.Logger, opts ...sdui.Option) *sdui.Engine {
	opts = append([]sdui.Option{
		sdui.WithLogger(logger),
		sdui.WithBuildOptions(sdui.BuildOptions{OpaqueKnownItems: c.OpaqueKnownItems}),
		sdui.WithDefaults(),
	}, opts...)
	return sdui.New(opts...)
}
