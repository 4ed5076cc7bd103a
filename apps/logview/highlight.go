// Copyright © 2025 Texelview contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package logview

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gdamore/tcell/v2"
	"github.com/go-enry/go-enry/v2"
)

const defaultStyleName = "catppuccin-mocha"

// detection records which language a file was resolved to and by what
// means, mostly for the footer and the log line.
type detection struct {
	lexer  string // lowercase lexer name, "" when undetected
	method string // shebang, filename, heuristic, classifier or none
}

// detectLanguage resolves the language of text loaded from filename.
// Shebangs win, then the filename extension, then Chroma's content
// heuristics, then enry's Bayesian classifier over all known languages.
func detectLanguage(filename, text string) detection {
	if strings.TrimSpace(text) == "" {
		return detection{"", "none"}
	}
	content := []byte(text)

	if lang, ok := enry.GetLanguageByShebang(content); ok {
		return detection{strings.ToLower(lang), "shebang"}
	}
	if filename != "" {
		if lang, ok := enry.GetLanguageByExtension(filename); ok {
			return detection{strings.ToLower(lang), "filename"}
		}
	}
	if l := lexers.Analyse(text); l != nil {
		return detection{strings.ToLower(l.Config().Name), "heuristic"}
	}
	if lang := enry.GetLanguage(filename, content); lang != enry.OtherLanguage {
		return detection{strings.ToLower(lang), "classifier"}
	}
	return detection{"", "none"}
}

// chunk is a run of same-styled text within one line.
type chunk struct {
	text  string
	style tcell.Style
}

// chromaStyle resolves a style name, falling back to the default.
func chromaStyle(name string) *chroma.Style {
	if name == "" {
		name = defaultStyleName
	}
	return styles.Get(name)
}

// getLexer returns a Chroma lexer by name, or auto-detects from content.
func getLexer(name, text string) chroma.Lexer {
	if name != "" {
		if l := lexers.Get(name); l != nil {
			return l
		}
	}
	if l := lexers.Analyse(text); l != nil {
		return l
	}
	return lexers.Fallback
}

// highlightLines tokenizes the whole text in one pass, so the lexer sees
// full context, and splits the result into per-line chunk runs. Token
// colors become foregrounds over base; tokens matching the style's base
// text color keep base unchanged. The returned slice always has
// strings.Count(text, "\n")+1 entries.
func highlightLines(text, lexerName, styleName string, base tcell.Style) [][]chunk {
	style := chromaStyle(styleName)
	lexer := chroma.Coalesce(getLexer(lexerName, text))

	lines := [][]chunk{nil}
	tokens, err := chroma.Tokenise(lexer, nil, text)
	if err != nil {
		for i, ln := range strings.Split(text, "\n") {
			if i > 0 {
				lines = append(lines, nil)
			}
			if ln != "" {
				lines[i] = append(lines[i], chunk{ln, base})
			}
		}
		return lines
	}

	baseColour := style.Get(chroma.Text).Colour
	cur := 0
	for _, tok := range tokens {
		if tok.Type == chroma.EOFType {
			break
		}
		st := tokenStyle(style.Get(tok.Type), baseColour, base)
		for i, part := range strings.Split(tok.Value, "\n") {
			if i > 0 {
				lines = append(lines, nil)
				cur++
			}
			if part != "" {
				lines[cur] = append(lines[cur], chunk{part, st})
			}
		}
	}
	return lines
}

// tokenStyle maps a Chroma style entry onto base. Colors equal to the
// style's base text color are skipped so themed backgrounds show through
// with the default foreground.
func tokenStyle(entry chroma.StyleEntry, baseColour chroma.Colour, base tcell.Style) tcell.Style {
	st := base
	if entry.Colour.IsSet() && entry.Colour != baseColour {
		st = st.Foreground(tcell.NewRGBColor(
			int32(entry.Colour.Red()),
			int32(entry.Colour.Green()),
			int32(entry.Colour.Blue()),
		))
	}
	if entry.Bold == chroma.Yes {
		st = st.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		st = st.Italic(true)
	}
	if entry.Underline == chroma.Yes {
		st = st.Underline(true)
	}
	return st
}
