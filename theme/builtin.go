// Copyright © 2025 Texelview contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: theme/builtin.go
// Summary: Built-in theme definitions.

package theme

import "log"

var defaultTheme = builtin("mocha")

// builtin returns a fresh copy of the named built-in theme. Unknown
// names fall back to mocha.
func builtin(name string) Config {
	switch name {
	case "", "mocha":
		return mocha()
	default:
		log.Printf("Theme: unknown theme %q, using mocha", name)
		return mocha()
	}
}

// mocha is the Catppuccin Mocha palette with the semantic bindings the
// widgets rely on.
func mocha() Config {
	return Config{
		"palette": Section{
			"base":     "#1e1e2e",
			"mantle":   "#181825",
			"crust":    "#11111b",
			"surface0": "#313244",
			"surface1": "#45475a",
			"surface2": "#585b70",
			"overlay0": "#6c7086",
			"overlay1": "#7f849c",
			"text":     "#cdd6f4",
			"subtext0": "#a6adc8",
			"subtext1": "#bac2de",
			"lavender": "#b4befe",
			"blue":     "#89b4fa",
			"sapphire": "#74c7ec",
			"teal":     "#94e2d5",
			"green":    "#a6e3a1",
			"yellow":   "#f9e2af",
			"peach":    "#fab387",
			"red":      "#f38ba8",
			"mauve":    "#cba6f7",
		},
		"semantic": Section{
			"text.primary":   "text",
			"text.secondary": "subtext1",
			"text.muted":     "overlay0",
			"text.inverse":   "crust",
			"text.active":    "lavender",
			"bg.base":        "base",
			"bg.mantle":      "mantle",
			"bg.crust":       "crust",
			"bg.surface":     "surface0",
			"bg.selection":   "surface1",
			"border.default": "surface1",
			"border.focus":   "lavender",
			"accent":         "mauve",
			"accent.primary": "mauve",
			"action.danger":  "red",
		},
	}
}
