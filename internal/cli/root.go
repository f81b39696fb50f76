package cli

import (
	"context"
	"errors"

	"github.com/goliatone/go-theme"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/goliatone/go-ebookform/internal/config"
	"github.com/goliatone/go-ebookform/pkg/formatter"
	"github.com/goliatone/go-ebookform/pkg/renderers/tui"
)

type ctxKey string

const appKey ctxKey = "app"

// app carries the loaded configuration and shared services to subcommands.
type app struct {
	viper     *viper.Viper
	cfg       config.Config
	formatter *formatter.Formatter
	driver    tui.PromptDriver
}

// Option customises the root command, mostly for tests.
type Option func(*rootOptions)

type rootOptions struct {
	driver tui.PromptDriver
}

// WithPromptDriver replaces the terminal prompts used by `new`.
func WithPromptDriver(driver tui.PromptDriver) Option {
	return func(o *rootOptions) {
		o.driver = driver
	}
}

// Execute builds the root command and runs it.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// NewRootCmd constructs the Cobra root command and wires dependencies.
func NewRootCmd(options ...Option) *cobra.Command {
	var opts rootOptions
	for _, opt := range options {
		if opt != nil {
			opt(&opts)
		}
	}

	var cfgPath string

	cmd := &cobra.Command{
		Use:           "ebookform-cli",
		Short:         "Ebook placeholder forms and text formatting helpers",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			v := viper.New()
			if cfgPath != "" {
				v.SetConfigFile(cfgPath)
			}
			if err := config.Load(ctx, v); err != nil {
				return err
			}
			if err := config.CheckConfigValidity(v); err != nil {
				return err
			}
			cfg, err := config.Decode(v)
			if err != nil {
				return err
			}
			driver := opts.driver
			if driver == nil {
				driver = tui.NewSurveyDriver()
			}
			a := &app{
				viper:     v,
				cfg:       cfg,
				formatter: formatter.New(),
				driver:    driver,
			}
			cmd.SetContext(context.WithValue(ctx, appKey, a))
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (yaml|toml|json)")

	cmd.AddCommand(newSlugCmd())
	cmd.AddCommand(newDiacriticsCmd())
	cmd.AddCommand(newEscapeCmd())
	cmd.AddCommand(newMarkdownCmd())
	cmd.AddCommand(newFilesizeCmd())
	cmd.AddCommand(newFormCmd())
	cmd.AddCommand(newNewCmd())
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newConfigCmd())

	cmd.Run = func(cmd *cobra.Command, args []string) { _ = cmd.Help() }

	return cmd
}

func getApp(cmd *cobra.Command) (*app, error) {
	if ctx := cmd.Context(); ctx != nil {
		if a, ok := ctx.Value(appKey).(*app); ok {
			return a, nil
		}
	}
	return nil, errors.New("internal error: app not initialized")
}

// themeConfig returns nil when neither a theme nor assets are configured.
func (a *app) themeConfig(assetURL func(key string) string) *theme.RendererConfig {
	if a.cfg.Theme.Name == "" && assetURL == nil {
		return nil
	}
	return &theme.RendererConfig{
		Theme:    a.cfg.Theme.Name,
		Variant:  a.cfg.Theme.Variant,
		AssetURL: assetURL,
	}
}
