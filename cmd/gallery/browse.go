package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-gallery/pkg/listing"
	"github.com/goliatone/go-gallery/pkg/renderers/tui"
)

func newBrowseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Interactively search, page, add, edit, and delete galleries",
		Long: `Browse opens an interactive session over the snapshot. Without a backend
base URL the session is read-only: deletes and saves are not sent.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			snap, err := a.snapshot(ctx)
			if err != nil {
				return err
			}

			listOpts := []listing.Option{listing.WithPageSize(a.cfg.List.PageSize), listing.WithLogger(a.logger)}
			sessionOpts := []tui.Option{
				tui.WithPromptDriver(tui.NewSurveyDriver(cmd.OutOrStdout())),
				tui.WithRenderOptions(a.renderOptions(snap.CSRF())),
				tui.WithLogger(a.logger),
				tui.WithTheme(tui.Theme{ErrorPrefix: "! "}),
			}
			if a.cfg.Backend.BaseURL != "" {
				backend, err := a.client(snap.CSRF())
				if err != nil {
					return err
				}
				listOpts = append(listOpts, listing.WithDeleter(backend))
				sessionOpts = append(sessionOpts, tui.WithSubmitter(backend))
			}

			list := listing.New(snap.Records, snap.CSRF(), listOpts...)
			session, err := tui.NewSession(list, sessionOpts...)
			if err != nil {
				return err
			}
			if err := session.Run(ctx); err != nil && !errors.Is(err, tui.ErrAborted) {
				return err
			}
			return nil
		},
	}
}
