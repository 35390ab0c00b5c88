package config

import (
	theme "github.com/goliatone/go-theme"
)

// ThemeConfig is the [theme] section. Tokens become CSS variables on the
// widget root; Assets resolve against AssetPrefix.
type ThemeConfig struct {
	Name        string                       `toml:"name"`
	Variant     string                       `toml:"variant"`
	Tokens      map[string]string            `toml:"tokens"`
	AssetPrefix string                       `toml:"asset_prefix"`
	Assets      map[string]string            `toml:"assets"`
	Variants    map[string]map[string]string `toml:"variants"`
}

// Enabled reports whether any theme was configured.
func (t ThemeConfig) Enabled() bool {
	return t.Name != "" || len(t.Tokens) > 0 || len(t.Assets) > 0
}

// Manifest converts the section into a go-theme manifest, or nil when no
// theme is configured.
func (t ThemeConfig) Manifest() *theme.Manifest {
	if !t.Enabled() {
		return nil
	}
	name := t.Name
	if name == "" {
		name = "custom"
	}
	manifest := &theme.Manifest{
		Name:    name,
		Version: "0.0.0",
		Tokens:  copyMap(t.Tokens),
		Assets: theme.Assets{
			Prefix: t.AssetPrefix,
			Files:  copyMap(t.Assets),
		},
	}
	if len(t.Variants) > 0 {
		manifest.Variants = make(map[string]theme.Variant, len(t.Variants))
		for key, tokens := range t.Variants {
			manifest.Variants[key] = theme.Variant{Tokens: copyMap(tokens)}
		}
	}
	return manifest
}

// Merge overlays non-empty fields; maps are merged key by key.
func (t *ThemeConfig) Merge(overlay *ThemeConfig) {
	if overlay == nil {
		return
	}
	setString(&t.Name, overlay.Name)
	setString(&t.Variant, overlay.Variant)
	setString(&t.AssetPrefix, overlay.AssetPrefix)
	t.Tokens = mergeMap(t.Tokens, overlay.Tokens)
	t.Assets = mergeMap(t.Assets, overlay.Assets)
	for key, tokens := range overlay.Variants {
		if t.Variants == nil {
			t.Variants = map[string]map[string]string{}
		}
		t.Variants[key] = mergeMap(t.Variants[key], tokens)
	}
}

func copyMap(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func mergeMap(dst, src map[string]string) map[string]string {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]string, len(src))
	}
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
