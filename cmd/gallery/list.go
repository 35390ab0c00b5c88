package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-gallery/pkg/listing"
	"github.com/goliatone/go-gallery/pkg/render"
	"github.com/goliatone/go-gallery/pkg/renderers/preact"
	"github.com/goliatone/go-gallery/pkg/renderers/text"
	"github.com/goliatone/go-gallery/pkg/renderers/vanilla"
)

func newListCmd(a *app) *cobra.Command {
	var (
		search   string
		page     int
		renderer string
		output   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Render one page of the gallery list",
		Example: `  # First page as a text table
  gallery list --snapshot snapshot.yaml

  # Second page of matches for "beach" as HTML
  gallery list --snapshot snapshot.yaml -q beach --page 2 --renderer vanilla -o list.html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			snap, err := a.snapshot(ctx)
			if err != nil {
				return err
			}

			vr, err := vanilla.New(a.vanillaOptions("")...)
			if err != nil {
				return err
			}
			pr, err := preact.New(a.preactOptions()...)
			if err != nil {
				return err
			}
			registry, err := render.NewRegistry(text.New(text.WithImageURLs(true)), vr, pr)
			if err != nil {
				return err
			}
			r, err := registry.Get(renderer)
			if err != nil {
				return fmt.Errorf("%w (available: %v)", err, registry.List())
			}

			list := listing.New(snap.Records, snap.CSRF(), listing.WithPageSize(a.cfg.List.PageSize), listing.WithLogger(a.logger))
			list.SetSearch(search)
			if page > 1 && !list.GoToPage(page) {
				return fmt.Errorf("gallery: page %d out of range", page)
			}

			out, err := r.RenderList(ctx, list.Page(), a.renderOptions(snap.CSRF()))
			if err != nil {
				return err
			}
			if output != "" {
				if err := os.WriteFile(output, out, 0o644); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "List written to %s\n", output)
				return nil
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().StringVarP(&search, "search", "q", "", "search term")
	cmd.Flags().IntVarP(&page, "page", "p", 1, "page number")
	cmd.Flags().StringVarP(&renderer, "renderer", "r", text.Name, "renderer (text, vanilla, or preact)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}
