package tui

import (
	"log/slog"

	"github.com/goliatone/go-gallery/pkg/form"
	"github.com/goliatone/go-gallery/pkg/model"
	"github.com/goliatone/go-gallery/pkg/render"
)

// Theme captures optional message prefixes. Kept minimal so session logic
// does not depend on ANSI specifics.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// UploadReader turns a user supplied path into an upload.
type UploadReader func(path string) (*model.Upload, error)

// Option configures a Session.
type Option func(*Session)

// WithPromptDriver overrides the survey driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithSubmitter wires the backend used when a form is saved.
func WithSubmitter(submitter form.Submitter) Option {
	return func(s *Session) {
		s.submitter = submitter
	}
}

// WithRenderer overrides the renderer used to print screens.
func WithRenderer(renderer render.Renderer) Option {
	return func(s *Session) {
		if renderer != nil {
			s.renderer = renderer
		}
	}
}

// WithRenderOptions sets the options passed to the renderer.
func WithRenderOptions(opts render.RenderOptions) Option {
	return func(s *Session) {
		s.renderOpts = opts
	}
}

// WithUploadReader overrides how image paths are read.
func WithUploadReader(reader UploadReader) Option {
	return func(s *Session) {
		if reader != nil {
			s.readUpload = reader
		}
	}
}

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(s *Session) {
		s.theme = theme
	}
}
