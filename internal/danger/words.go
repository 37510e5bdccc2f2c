package danger

import (
	"path/filepath"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// span returns the source text covered by node.
func span(src string, node syntax.Node) string {
	start, end := int(node.Pos().Offset()), int(node.End().Offset())
	if start < 0 || end > len(src) || start > end {
		return ""
	}
	return src[start:end]
}

// wordText returns the text of a word with quoting removed. Parts that
// would need expansion (parameters, arithmetic, substitutions) are kept as
// written, since the analyzer does not evaluate them.
func wordText(src string, w *syntax.Word) string {
	var b strings.Builder
	for _, part := range w.Parts {
		switch p := part.(type) {
		case *syntax.Lit:
			b.WriteString(unescape(p.Value))
		case *syntax.SglQuoted:
			b.WriteString(p.Value)
		case *syntax.DblQuoted:
			for _, dp := range p.Parts {
				if lit, ok := dp.(*syntax.Lit); ok {
					b.WriteString(unescapeQuoted(lit.Value))
					continue
				}
				b.WriteString(span(src, dp))
			}
		default:
			b.WriteString(span(src, part))
		}
	}
	return b.String()
}

// unescape removes backslash escapes from an unquoted literal.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// unescapeQuoted removes the escapes that are special inside double quotes.
func unescapeQuoted(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && strings.IndexByte("$`\"\\", s[i+1]) >= 0 {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// substitutionOnly reports whether a word consists solely of command or
// process substitutions, e.g. $(cat list) or "$(pwd)". Such a word names no
// path the analyzer can see.
func substitutionOnly(w *syntax.Word) bool {
	found := false
	for _, part := range w.Parts {
		switch p := part.(type) {
		case *syntax.CmdSubst, *syntax.ProcSubst:
			found = true
		case *syntax.DblQuoted:
			for _, dp := range p.Parts {
				if _, ok := dp.(*syntax.CmdSubst); !ok {
					return false
				}
				found = true
			}
		default:
			return false
		}
	}
	return found
}

// isFlag reports whether an argument is an option rather than an operand.
func isFlag(word string) bool {
	return strings.HasPrefix(word, "-") || strings.HasPrefix(word, "+")
}

// commandName returns the name used for classification. A command invoked
// by path, such as /bin/rm, classifies by its base name.
func commandName(word string) string {
	if strings.Contains(word, "/") {
		return filepath.Base(word)
	}
	return word
}
