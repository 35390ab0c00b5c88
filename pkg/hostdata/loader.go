package hostdata

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"time"
)

// Option configures a Loader.
type Option func(*Loader)

// WithFileSystem sets the fs.FS used by FromFS sources.
func WithFileSystem(files fs.FS) Option {
	return func(l *Loader) {
		l.fs = files
	}
}

// WithHTTPClient enables URL sources using a copy of client.
func WithHTTPClient(client *http.Client) Option {
	return func(l *Loader) {
		if client == nil {
			return
		}
		clone := *client
		l.http = &clone
	}
}

// WithHTTPFallback enables URL sources with a default client and timeout.
func WithHTTPFallback(timeout time.Duration) Option {
	return func(l *Loader) {
		l.timeout = timeout
		if l.http == nil {
			l.http = &http.Client{}
		}
	}
}

// Loader reads snapshots from files, an fs.FS, or HTTP.
type Loader struct {
	fs      fs.FS
	http    *http.Client
	timeout time.Duration
}

// NewLoader builds a Loader. URL sources stay disabled unless an HTTP option
// is given.
func NewLoader(options ...Option) *Loader {
	l := &Loader{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(l)
	}
	if l.http != nil && l.timeout > 0 && l.http.Timeout == 0 {
		l.http.Timeout = l.timeout
	}
	return l
}

// Load reads and decodes the snapshot at src.
func (l *Loader) Load(ctx context.Context, src Source) (Snapshot, error) {
	if src == nil {
		return Snapshot{}, ErrNilSource
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var (
		data []byte
		err  error
	)
	switch src.Kind() {
	case SourceKindFile:
		data, err = l.readFile(ctx, src.Location())
	case SourceKindFS:
		data, err = l.readFS(ctx, src.Location())
	case SourceKindURL:
		data, err = l.readHTTP(ctx, src.Location())
	default:
		err = fmt.Errorf("hostdata: unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return Snapshot{}, err
	}

	snap, err := Decode(data, FormatFor(src.Location()))
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w (%s)", err, src.Location())
	}
	return snap, nil
}

func (l *Loader) readFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("hostdata: read file: %w", err)
	}
	return data, nil
}

func (l *Loader) readFS(ctx context.Context, name string) ([]byte, error) {
	if l.fs == nil {
		return nil, ErrNoFileSystem
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(l.fs, name)
	if err != nil {
		return nil, fmt.Errorf("hostdata: read fs: %w", err)
	}
	return data, nil
}

func (l *Loader) readHTTP(ctx context.Context, url string) ([]byte, error) {
	if l.http == nil {
		return nil, ErrHTTPDisabled
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("hostdata: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json, application/yaml")

	resp, err := l.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("hostdata: fetch: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.New("hostdata: unexpected status " + resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("hostdata: read body: %w", err)
	}
	return data, nil
}
