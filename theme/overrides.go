// Copyright © 2025 Texelview contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: theme/overrides.go
// Summary: Theme override merging and parsing.

package theme

// WithOverrides returns a copy of base with the override sections
// merged on top. Neither input is modified.
func WithOverrides(base Config, overrides Config) Config {
	if len(overrides) == 0 {
		return base
	}
	out := make(Config, len(base)+len(overrides))
	for name, sec := range base {
		cp := make(Section, len(sec))
		for k, v := range sec {
			cp[k] = v
		}
		out[name] = cp
	}
	for name, sec := range overrides {
		dst := out[name]
		if dst == nil {
			dst = make(Section, len(sec))
			out[name] = dst
		}
		for k, v := range sec {
			dst[k] = v
		}
	}
	return out
}

// ParseOverrides converts a raw config value (a JSON object of
// sections) into a theme Config. Non-map values yield nil.
func ParseOverrides(raw interface{}) Config {
	switch v := raw.(type) {
	case Config:
		return v
	case map[string]interface{}:
		out := make(Config, len(v))
		for name, rawSec := range v {
			switch sec := rawSec.(type) {
			case map[string]interface{}:
				out[name] = Section(sec)
			case Section:
				out[name] = sec
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	}
	return nil
}
