package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-gallery/internal/preview"
	"github.com/goliatone/go-gallery/pkg/renderers/vanilla"
)

func newPreviewCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Serve a read-only HTML preview of the gallery widget",
		Long: `Preview renders the list and form screens from the snapshot. Search,
paging, and the add/edit forms work through query parameters; form posts
and delete buttons target the configured backend.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			snap, err := a.snapshot(ctx)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = a.cfg.Preview.Addr
			}

			route := preview.MountPath("/")
			renderer, err := vanilla.New(a.vanillaOptions(route)...)
			if err != nil {
				return err
			}

			mux := http.NewServeMux()
			if _, err := preview.RegisterRoutes(mux, "/",
				preview.WithRecords(snap.Records),
				preview.WithToken(snap.CSRF()),
				preview.WithPageSize(a.cfg.List.PageSize),
				preview.WithRenderer(renderer),
				preview.WithRenderOptions(a.renderOptions(snap.CSRF())),
				preview.WithLogger(a.logger),
			); err != nil {
				return err
			}
			mux.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
				if _, err := w.Write([]byte("OK")); err != nil {
					a.logger.Error("unable to write healthcheck", "err", err)
				}
			})

			server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}
			serverErr := make(chan error, 1)
			go func() {
				a.logger.Info("gallery preview available", "url", "http://"+addr+route)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			select {
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					a.logger.Error("preview shutdown failed", "err", err)
					return err
				}
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from [preview] addr)")
	return cmd
}
