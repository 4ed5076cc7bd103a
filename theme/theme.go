// Copyright © 2025 Texelview contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: theme/theme.go
// Summary: Shared color theme built from the config store.

package theme

import (
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelview/config"
)

// Section stores key/value pairs for a theme section.
type Section map[string]interface{}

// Config stores theme sections. Values are color strings, either a
// palette key ("lavender") or a literal ("#b4befe", "white").
type Config map[string]Section

var (
	mu      sync.Mutex
	once    sync.Once
	current Config
)

// Get returns the active theme. The returned map is shared; runtime
// overrides may mutate it in place.
func Get() Config {
	once.Do(load)
	mu.Lock()
	defer mu.Unlock()
	return current
}

// Reload re-reads the system config and rebuilds the theme from it.
func Reload() error {
	err := config.ReloadSystem()
	mu.Lock()
	current = build()
	mu.Unlock()
	return err
}

// ForApp returns the base theme merged with the app's theme_overrides
// config value, if any.
func ForApp(app string) Config {
	base := Get()
	if app == "" {
		return base
	}
	cfg := config.App(app)
	if cfg == nil {
		return base
	}
	overrides := ParseOverrides(cfg["theme_overrides"])
	if len(overrides) == 0 {
		return base
	}
	return WithOverrides(base, overrides)
}

func load() {
	mu.Lock()
	defer mu.Unlock()
	current = build()
}

func build() Config {
	sys := config.System()
	name := sys.GetString("", "activeTheme", "mocha")
	cfg := builtin(name)
	if sys != nil {
		if overrides := ParseOverrides(sys["theme"]); len(overrides) > 0 {
			cfg = WithOverrides(cfg, overrides)
		}
	}
	return cfg
}

// GetColor returns the color at section/key, or def when the key is
// missing or unparsable.
func (c Config) GetColor(section, key string, def tcell.Color) tcell.Color {
	if c == nil {
		return def
	}
	sec := c[section]
	if sec == nil {
		return def
	}
	raw, ok := sec[key]
	if !ok {
		return def
	}
	if col, ok := c.resolve(raw); ok {
		return col
	}
	return def
}

// GetSemanticColor returns the color bound to a semantic name such as
// "text.primary" or "bg.selection". Unknown names fall back to the
// built-in theme so widgets stay usable with a broken user theme.
func (c Config) GetSemanticColor(name string) tcell.Color {
	if col, ok := c.semanticLookup(name); ok {
		return col
	}
	if col, ok := defaultTheme.semanticLookup(name); ok {
		return col
	}
	return tcell.ColorDefault
}

func (c Config) semanticLookup(name string) (tcell.Color, bool) {
	if c == nil {
		return 0, false
	}
	sec := c["semantic"]
	if sec == nil {
		return 0, false
	}
	raw, ok := sec[name]
	if !ok {
		return 0, false
	}
	return c.resolve(raw)
}

// resolve turns a raw theme value into a color, following a single
// level of palette indirection.
func (c Config) resolve(raw interface{}) (tcell.Color, bool) {
	s, ok := raw.(string)
	if !ok || s == "" {
		return 0, false
	}
	if pal := c["palette"]; pal != nil {
		if pv, ok := pal[s]; ok {
			if ps, ok := pv.(string); ok && ps != "" {
				return parseColor(ps)
			}
			return 0, false
		}
	}
	return parseColor(s)
}

func parseColor(s string) (tcell.Color, bool) {
	if s == "" {
		return 0, false
	}
	if strings.HasPrefix(s, "#") {
		return tcell.GetColor(s), true
	}
	if col, ok := tcell.ColorNames[strings.ToLower(s)]; ok {
		return col, true
	}
	return 0, false
}
