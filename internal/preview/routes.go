package preview

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-gallery/pkg/renderers/vanilla"
)

// Mux is satisfied by *http.ServeMux.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// MountPath joins basePath and the configured route.
func MountPath(basePath string, fns ...OptionFn) string {
	return mountPath(basePath, NewOptions(fns...).RoutePath)
}

// RegisterRoutes mounts the page handler and the embedded stylesheet under
// basePath and returns the page pattern.
func RegisterRoutes(mux Mux, basePath string, fns ...OptionFn) (string, error) {
	if mux == nil {
		return "", fmt.Errorf("preview: missing mux")
	}
	opts := NewOptions(fns...)
	opts.RoutePath = mountPath(basePath, opts.RoutePath)

	handler, err := HandlerWithOptions(opts)
	if err != nil {
		return "", err
	}
	mux.Handle(opts.RoutePath, handler)

	assets := mountPath(basePath, opts.AssetsPath)
	if !strings.HasSuffix(assets, "/") {
		assets += "/"
	}
	mux.Handle(assets, http.StripPrefix(assets, http.FileServer(http.FS(vanilla.AssetsFS()))))
	return opts.RoutePath, nil
}

func mountPath(basePath, routePath string) string {
	basePath = strings.TrimSpace(basePath)
	routePath = strings.TrimSpace(routePath)

	if routePath == "" {
		routePath = "/"
	}
	if !strings.HasPrefix(routePath, "/") {
		routePath = "/" + routePath
	}
	if basePath == "" || basePath == "/" {
		return routePath
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	return strings.TrimRight(basePath, "/") + routePath
}
