package vanilla

import (
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

const stylesheetAssetKey = "gallery.stylesheet"

type themeContext struct {
	Name    string `json:"name"`
	Variant string `json:"variant"`
}

func buildThemeContext(cfg *theme.RendererConfig) themeContext {
	if cfg == nil {
		return themeContext{}
	}
	return themeContext{Name: cfg.Theme, Variant: cfg.Variant}
}

func themeAsset(cfg *theme.RendererConfig, key string) string {
	if cfg == nil || cfg.AssetURL == nil {
		return ""
	}
	return cfg.AssetURL(key)
}

func themeCSSVars(cfg *theme.RendererConfig) map[string]string {
	if cfg == nil {
		return nil
	}
	return cfg.CSSVars
}

// cssVarsStyle renders vars as a rule scoped to the widget root. Entries that
// could break out of the declaration block are dropped.
func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		if !strings.HasPrefix(key, "--") || unsafeCSS(key) || unsafeCSS(vars[key]) {
			continue
		}
		keys = append(keys, key)
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("." + string(ClassRoot) + " {")
	for _, key := range keys {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(strings.TrimSpace(vars[key]))
		b.WriteString("; ")
	}
	b.WriteString("}")
	return b.String()
}

func unsafeCSS(value string) bool {
	return strings.ContainsAny(value, "{};<>")
}

// ThemeConfig resolves a manifest and variant into the renderer
// configuration: variant tokens override base tokens, every token becomes a
// "--name" CSS variable, and asset keys resolve against the manifest prefix.
func ThemeConfig(manifest *theme.Manifest, variant string) *theme.RendererConfig {
	if manifest == nil {
		return nil
	}
	tokens := make(map[string]string, len(manifest.Tokens))
	for key, value := range manifest.Tokens {
		tokens[key] = value
	}
	partials := make(map[string]string, len(manifest.Templates))
	for key, value := range manifest.Templates {
		partials[key] = value
	}
	prefix := manifest.Assets.Prefix
	files := make(map[string]string, len(manifest.Assets.Files))
	for key, value := range manifest.Assets.Files {
		files[key] = value
	}

	if v, ok := manifest.Variants[variant]; ok {
		for key, value := range v.Tokens {
			tokens[key] = value
		}
		for key, value := range v.Templates {
			partials[key] = value
		}
		if v.Assets.Prefix != "" {
			prefix = v.Assets.Prefix
		}
		for key, value := range v.Assets.Files {
			files[key] = value
		}
	} else {
		variant = ""
	}

	vars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		vars["--"+strings.TrimPrefix(key, "--")] = value
	}

	return &theme.RendererConfig{
		Theme:    manifest.Name,
		Variant:  variant,
		Partials: partials,
		Tokens:   tokens,
		CSSVars:  vars,
		AssetURL: func(key string) string {
			file, ok := files[key]
			if !ok || file == "" {
				return ""
			}
			if strings.Contains(file, "://") || strings.HasPrefix(file, "/") {
				return file
			}
			return strings.TrimRight(prefix, "/") + "/" + file
		},
	}
}
