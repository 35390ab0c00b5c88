package main

import (
	"context"
	"fmt"
	"log/slog"

	theme "github.com/goliatone/go-theme"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-gallery/internal/config"
	"github.com/goliatone/go-gallery/internal/logging"
	"github.com/goliatone/go-gallery/pkg/client"
	"github.com/goliatone/go-gallery/pkg/csrf"
	"github.com/goliatone/go-gallery/pkg/hostdata"
	"github.com/goliatone/go-gallery/pkg/model"
	"github.com/goliatone/go-gallery/pkg/render"
	"github.com/goliatone/go-gallery/pkg/renderers/preact"
	"github.com/goliatone/go-gallery/pkg/renderers/vanilla"
)

// app carries the resolved configuration shared by subcommands.
type app struct {
	configPath string
	flags      config.Config
	cfg        *config.Config
	logger     *slog.Logger
}

func NewRootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:   "gallery",
		Short: "Browse and edit gallery records held by a remote backend",
		Long: `Gallery lists, searches, and pages through a snapshot of gallery records,
and sends create, update, and delete requests to the backend that owns them.

Settings come from gallery.toml (or --config), GALLERY_* environment
variables, and a .env file in the working directory.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()
			return a.init(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "config file (default gallery.toml when present)")
	flags.StringVar(&a.flags.Data.Snapshot, "snapshot", "", "host data snapshot: JSON/YAML file or http(s) URL")
	flags.StringVar(&a.flags.Backend.BaseURL, "base-url", "", "backend base URL")
	flags.StringVar(&a.flags.Backend.Token, "token", "", "security token (overrides the snapshot token)")
	flags.IntVar(&a.flags.List.PageSize, "page-size", 0, "rows per page")
	flags.StringVar(&a.flags.Storage.ImagePrefix, "image-prefix", "", "static prefix for image references")
	flags.StringVar((*string)(&a.flags.Logging.Level), "log-level", "", "debug, info, warn, or error")

	cmd.AddCommand(
		newListCmd(a),
		newBrowseCmd(a),
		newCreateCmd(a),
		newUpdateCmd(a),
		newDeleteCmd(a),
		newPreviewCmd(a),
	)
	return cmd
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	cfg.Merge(&a.flags)
	if err := cfg.Finalize(); err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logging.New(&cfg.Logging, cmd.ErrOrStderr())
	return nil
}

// snapshot loads the configured host data. Without a snapshot the widget
// starts empty.
func (a *app) snapshot(ctx context.Context) (hostdata.Snapshot, error) {
	snap := hostdata.Snapshot{Records: []model.Record{}}
	if a.cfg.Data.Snapshot != "" {
		src, err := hostdata.Parse(a.cfg.Data.Snapshot)
		if err != nil {
			return hostdata.Snapshot{}, err
		}
		loader := hostdata.NewLoader(hostdata.WithHTTPFallback(a.cfg.Backend.TimeoutDuration()))
		snap, err = loader.Load(ctx, src)
		if err != nil {
			return hostdata.Snapshot{}, err
		}
		a.logger.Debug("gallery snapshot loaded", "source", src.Location(), "records", len(snap.Records))
	}
	if a.cfg.Backend.Token != "" {
		snap.Token = a.cfg.Backend.Token
	}
	return snap, nil
}

func (a *app) client(token csrf.Token) (*client.Client, error) {
	if a.cfg.Backend.BaseURL == "" {
		return nil, fmt.Errorf("gallery: backend base URL is required (--base-url or %s)", config.EnvBaseURL)
	}
	return client.New(a.cfg.Backend.BaseURL, token,
		client.WithTimeout(a.cfg.Backend.TimeoutDuration()),
		client.WithLogger(a.logger),
	)
}

func (a *app) renderOptions(token csrf.Token) render.RenderOptions {
	return render.RenderOptions{
		ImagePrefix:  a.cfg.Storage.ImagePrefix,
		ActionBase:   a.cfg.Backend.BaseURL,
		HiddenFields: render.MergeHiddenFields(nil, render.CSRFToken(token)),
	}
}

func (a *app) themeConfig() *theme.RendererConfig {
	return vanilla.ThemeConfig(a.cfg.Theme.Manifest(), a.cfg.Theme.Variant)
}

func (a *app) preactOptions() []preact.Option {
	opts := []preact.Option{preact.WithAssetURLPrefix(a.cfg.Theme.AssetPrefix)}
	if cfg := a.themeConfig(); cfg != nil {
		opts = append(opts, preact.WithTheme(cfg))
	}
	return opts
}

func (a *app) vanillaOptions(basePath string) []vanilla.Option {
	opts := []vanilla.Option{vanilla.WithBasePath(basePath)}
	if cfg := a.themeConfig(); cfg != nil {
		opts = append(opts, vanilla.WithTheme(cfg))
	}
	return opts
}
