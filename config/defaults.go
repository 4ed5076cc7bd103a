// Copyright © 2025 Texelview contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/defaults.go
// Summary: Default values for system and app configuration files.

package config

func applySystemDefaults(cfg Config) {
	if cfg == nil {
		return
	}
	cfg.RegisterDefaults("", Section{
		"defaultApp":  "biglist",
		"activeTheme": "mocha",
	})
	cfg.RegisterDefaults("listview", Section{
		"wheel_step":       3,
		"cleanup_delay_ms": 100,
		"indicators":       true,
	})
}

func applyAppDefaults(app string, cfg Config) {
	if cfg == nil {
		return
	}
	switch app {
	case "biglist":
		cfg.RegisterDefaults("biglist", Section{
			"rows":       1000000,
			"row_height": 1,
		})
	case "dbview":
		cfg.RegisterDefaults("dbview", Section{
			"db_path":    "",
			"table":      "entries",
			"batch_size": 256,
		})
	case "logview":
		cfg.RegisterDefaults("logview", Section{
			"path":      "",
			"max_lines": 100000,
			"style":     "catppuccin-mocha",
		})
	case "streamview":
		cfg.RegisterDefaults("streamview", Section{
			"command":    "",
			"follow":     true,
			"scrollback": 10000,
		})
	}
}
