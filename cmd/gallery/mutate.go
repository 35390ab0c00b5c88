package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-gallery/pkg/form"
	"github.com/goliatone/go-gallery/pkg/listing"
	"github.com/goliatone/go-gallery/pkg/model"
	"github.com/goliatone/go-gallery/pkg/renderers/tui"
)

type recordFlags struct {
	title       string
	description string
	status      string
	files       []string
	remove      []string
}

func (f *recordFlags) bind(cmd *cobra.Command, withRemove bool) {
	cmd.Flags().StringVar(&f.title, "title", "", "gallery title")
	cmd.Flags().StringVar(&f.description, "description", "", "gallery description")
	cmd.Flags().StringVar(&f.status, "status", "", "active or inactive (1/0)")
	cmd.Flags().StringArrayVarP(&f.files, "file", "f", nil, "image file to upload (repeatable)")
	if withRemove {
		cmd.Flags().StringArrayVar(&f.remove, "remove-image", nil, "existing image reference to drop (repeatable)")
	}
}

// apply copies the changed flags into the form.
func (f *recordFlags) apply(cmd *cobra.Command, fc *form.Controller) error {
	if cmd.Flags().Changed("title") {
		fc.SetTitle(f.title)
	}
	if cmd.Flags().Changed("description") {
		fc.SetDescription(f.description)
	}
	if cmd.Flags().Changed("status") {
		status, err := model.ParseStatus(f.status)
		if err != nil {
			return err
		}
		fc.SetStatus(status)
	}
	if err := removeRefs(fc, f.remove); err != nil {
		return err
	}
	uploads := make([]*model.Upload, 0, len(f.files))
	for _, path := range f.files {
		upload, err := model.UploadFromFile(path)
		if err != nil {
			return err
		}
		uploads = append(uploads, upload)
	}
	return attachFiles(fc, uploads)
}

// attachFiles fills empty new slots first, then adds one slot per remaining
// upload.
func attachFiles(fc *form.Controller, uploads []*model.Upload) error {
	for _, upload := range uploads {
		index := -1
		for _, slot := range fc.View().Slots {
			if slot.Kind == string(model.SlotKindNew) && slot.FileName == "" {
				index = slot.Index
				break
			}
		}
		if index < 0 {
			fc.AddImageSlot()
			index = len(fc.View().Slots) - 1
		}
		if err := fc.SetNewFile(index, upload); err != nil {
			return err
		}
	}
	return nil
}

func removeRefs(fc *form.Controller, refs []string) error {
	for _, ref := range refs {
		removed := false
		for _, slot := range fc.View().Slots {
			if slot.Kind == string(model.SlotKindExisting) && slot.Ref == ref {
				if err := fc.RemoveImageSlot(slot.Index); err != nil {
					return err
				}
				removed = true
				break
			}
		}
		if !removed {
			return fmt.Errorf("gallery: image %q is not attached to the record", ref)
		}
	}
	return nil
}

func reportResult(w io.Writer, result form.SubmitResult) {
	msg := fmt.Sprintf("saved (HTTP %d)", result.StatusCode)
	if result.Location != "" {
		msg += " -> " + result.Location
	}
	fmt.Fprintln(w, msg)
}

func newCreateCmd(a *app) *cobra.Command {
	var flags recordFlags
	cmd := &cobra.Command{
		Use:     "create",
		Short:   "Create a gallery on the backend",
		Example: `  gallery create --title "Beach Day" --description "Sand and sea" -f beach1.jpg -f beach2.jpg`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			snap, err := a.snapshot(ctx)
			if err != nil {
				return err
			}
			backend, err := a.client(snap.CSRF())
			if err != nil {
				return err
			}
			fc := form.NewCreate(snap.CSRF(), form.WithLogger(a.logger))
			if err := flags.apply(cmd, fc); err != nil {
				return err
			}
			result, err := fc.Submit(ctx, backend)
			if err != nil {
				return err
			}
			reportResult(cmd.OutOrStdout(), result)
			return nil
		},
	}
	flags.bind(cmd, false)
	return cmd
}

func newUpdateCmd(a *app) *cobra.Command {
	var flags recordFlags
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a gallery from the snapshot on the backend",
		Long: `Update starts from the record in the snapshot and sends the full form,
keeping every existing image unless --remove-image drops it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("gallery: invalid id %q", args[0])
			}
			ctx := cmd.Context()
			snap, err := a.snapshot(ctx)
			if err != nil {
				return err
			}
			list := listing.New(snap.Records, snap.CSRF(), listing.WithFormOptions(form.WithLogger(a.logger)))
			fc, err := list.Edit(id)
			if err != nil {
				return err
			}
			backend, err := a.client(snap.CSRF())
			if err != nil {
				return err
			}
			if err := flags.apply(cmd, fc); err != nil {
				return err
			}
			result, err := fc.Submit(ctx, backend)
			if err != nil {
				return err
			}
			reportResult(cmd.OutOrStdout(), result)
			return nil
		},
	}
	flags.bind(cmd, true)
	return cmd
}

// deleteConfirmer asks through survey unless the prompt was skipped.
func deleteConfirmer(out io.Writer, skip bool) listing.Confirmer {
	return listing.ConfirmFunc(func(ctx context.Context, message string) (bool, error) {
		if skip {
			return true, nil
		}
		return tui.NewSurveyDriver(out).Confirm(ctx, tui.ConfirmConfig{Message: message})
	})
}

func newDeleteCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a gallery on the backend",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("gallery: invalid id %q", args[0])
			}
			ctx := cmd.Context()
			snap, err := a.snapshot(ctx)
			if err != nil {
				return err
			}
			backend, err := a.client(snap.CSRF())
			if err != nil {
				return err
			}
			list := listing.New(snap.Records, snap.CSRF(),
				listing.WithDeleter(backend),
				listing.WithLogger(a.logger),
			)
			deletion, err := list.Delete(ctx, id, deleteConfirmer(cmd.OutOrStdout(), yes))
			if err != nil {
				return err
			}
			if !deletion.Confirmed {
				return nil
			}
			if result := <-deletion.Done; result.Err != nil {
				return result.Err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted #%d\n", id)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
