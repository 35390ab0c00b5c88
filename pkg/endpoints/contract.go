package endpoints

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed gallery.openapi.yaml
var defaultContract []byte

// Operation ids declared by the embedded contract.
const (
	OpStore  = "storeGallery"
	OpUpdate = "updateGallery"
	OpDelete = "deleteGallery"
)

// Endpoint is a single resolved operation.
type Endpoint struct {
	OperationID string
	Method      string
	Path        string
	Summary     string
}

// Expand substitutes {name} placeholders in the path template. Substituted
// values are copied verbatim and never scanned for placeholders.
func (e Endpoint) Expand(params map[string]string) (string, error) {
	var b strings.Builder
	rest := e.Path
	for {
		start := strings.Index(rest, "{")
		if start < 0 {
			b.WriteString(rest)
			return b.String(), nil
		}
		end := strings.Index(rest[start:], "}")
		if end < 0 {
			return "", fmt.Errorf("endpoints: unterminated placeholder in %q", e.Path)
		}
		name := rest[start+1 : start+end]
		value, ok := params[name]
		if !ok || value == "" {
			return "", fmt.Errorf("%w: %s in %s", ErrMissingParameter, name, e.Path)
		}
		b.WriteString(rest[:start])
		b.WriteString(value)
		rest = rest[start+end+1:]
	}
}

// ForID expands the {id} placeholder.
func (e Endpoint) ForID(id int64) (string, error) {
	return e.Expand(map[string]string{"id": strconv.FormatInt(id, 10)})
}

// Contract indexes endpoints by operation id.
type Contract struct {
	endpoints map[string]Endpoint
}

// Option configures parsing.
type Option func(*parseConfig)

type parseConfig struct {
	validate bool
}

// WithValidation toggles full OpenAPI validation (enabled by default).
func WithValidation(enabled bool) Option {
	return func(cfg *parseConfig) {
		cfg.validate = enabled
	}
}

var (
	defaultOnce sync.Once
	defaultSet  *Contract
	defaultErr  error
)

// Default returns the embedded gallery contract.
func Default() (*Contract, error) {
	defaultOnce.Do(func() {
		defaultSet, defaultErr = Parse(context.Background(), defaultContract)
	})
	return defaultSet, defaultErr
}

// MustDefault panics when the embedded contract cannot be parsed.
func MustDefault() *Contract {
	contract, err := Default()
	if err != nil {
		panic(err)
	}
	return contract
}

// Parse loads an OpenAPI document (JSON or YAML) and indexes its operations.
func Parse(ctx context.Context, raw []byte, options ...Option) (*Contract, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if len(raw) == 0 {
		return nil, errors.New("endpoints: document payload is empty")
	}

	cfg := parseConfig{validate: true}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: false,
	}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("endpoints: load document: %w", err)
	}
	if cfg.validate {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("endpoints: validate: %w", err)
		}
	}

	contract := &Contract{endpoints: make(map[string]Endpoint)}
	if spec.Paths != nil {
		for path, item := range spec.Paths.Map() {
			if item == nil {
				continue
			}
			contract.collect(http.MethodGet, path, item.Get)
			contract.collect(http.MethodPut, path, item.Put)
			contract.collect(http.MethodPost, path, item.Post)
			contract.collect(http.MethodDelete, path, item.Delete)
			contract.collect(http.MethodPatch, path, item.Patch)
		}
	}
	if len(contract.endpoints) == 0 {
		return nil, errors.New("endpoints: no operations declared")
	}
	return contract, nil
}

func (c *Contract) collect(method, path string, operation *openapi3.Operation) {
	if operation == nil {
		return
	}
	id := operation.OperationID
	if id == "" {
		id = strings.ToLower(method) + ":" + path
	}
	c.endpoints[id] = Endpoint{
		OperationID: id,
		Method:      method,
		Path:        path,
		Summary:     operation.Summary,
	}
}

// Lookup returns the endpoint registered under the operation id.
func (c *Contract) Lookup(operationID string) (Endpoint, error) {
	if c == nil {
		return Endpoint{}, fmt.Errorf("%w: %s", ErrUnknownOperation, operationID)
	}
	endpoint, ok := c.endpoints[operationID]
	if !ok {
		return Endpoint{}, fmt.Errorf("%w: %s", ErrUnknownOperation, operationID)
	}
	return endpoint, nil
}

// Endpoints lists every operation sorted by id.
func (c *Contract) Endpoints() []Endpoint {
	if c == nil {
		return nil
	}
	out := make([]Endpoint, 0, len(c.endpoints))
	for _, endpoint := range c.endpoints {
		out = append(out, endpoint)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].OperationID < out[j].OperationID
	})
	return out
}
