package dom

import (
	"errors"
	"io"
	"strings"
	"unicode"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"golang.org/x/net/html"
)

// Style is the inline style declaration of an element, stored in its
// "style" attribute. Every write re-serializes the attribute.
type Style struct {
	node *html.Node
}

// declaration is one "name: value" pair.
type declaration struct {
	name  string
	value string
}

// StyleOf returns the inline style declaration of n.
func StyleOf(n *html.Node) Style {
	return Style{node: n}
}

// Get returns the value of a property by its CSS name (e.g. "background-color").
func (s Style) Get(name string) string {
	for _, d := range s.parse() {
		if d.name == name {
			return d.value
		}
	}
	return ""
}

// GetNamed returns a property by its camelCase name (e.g. "backgroundColor").
func (s Style) GetNamed(name string) string {
	return s.Get(CSSPropertyName(name))
}

// SetProperty sets a property by its CSS name. Custom properties ("--x") and
// vendor-prefixed names are passed through unchanged. An empty value removes
// the property.
func (s Style) SetProperty(name, value string) {
	if value == "" {
		s.RemoveProperty(name)
		return
	}
	decls := s.parse()
	for i := range decls {
		if decls[i].name == name {
			decls[i].value = value
			s.write(decls)
			return
		}
	}
	s.write(append(decls, declaration{name: name, value: value}))
}

// Set sets a property by its camelCase name, as element.style[name] = value.
func (s Style) Set(name, value string) {
	s.SetProperty(CSSPropertyName(name), value)
}

// RemoveProperty deletes a property by its CSS name.
func (s Style) RemoveProperty(name string) {
	decls := s.parse()
	for i := range decls {
		if decls[i].name == name {
			s.write(append(decls[:i], decls[i+1:]...))
			return
		}
	}
}

// Clear removes the style attribute entirely.
func (s Style) Clear() {
	RemoveAttribute(s.node, "style")
}

// Len returns the number of declared properties.
func (s Style) Len() int {
	return len(s.parse())
}

// Properties returns declared property names in declaration order.
func (s Style) Properties() []string {
	decls := s.parse()
	names := make([]string, len(decls))
	for i, d := range decls {
		names[i] = d.name
	}
	return names
}

func (s Style) parse() []declaration {
	raw, ok := GetAttribute(s.node, "style")
	if !ok {
		return nil
	}
	return parseDeclarations(raw)
}

// parseDeclarations splits an inline declaration list. Malformed
// declarations are skipped; semicolons inside strings, url() and other
// functions stay part of the value.
func parseDeclarations(raw string) []declaration {
	p := css.NewParser(parse.NewInputString(raw), true)
	var decls []declaration
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			if p.Err() == io.EOF {
				return decls
			}
			var perr *parse.Error
			if !errors.As(p.Err(), &perr) {
				return decls
			}
		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			name := strings.TrimSpace(string(data))
			if name == "" {
				continue
			}
			var b strings.Builder
			for _, tok := range p.Values() {
				b.Write(tok.Data)
			}
			decls = append(decls, declaration{name: name, value: strings.TrimSpace(b.String())})
		}
	}
}

func (s Style) write(decls []declaration) {
	if len(decls) == 0 {
		RemoveAttribute(s.node, "style")
		return
	}
	var b strings.Builder
	for i, d := range decls {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(d.name)
		b.WriteString(": ")
		b.WriteString(d.value)
		b.WriteByte(';')
	}
	SetAttribute(s.node, "style", b.String())
}

// vendorPrefixes are camelCase prefixes mapped to a leading dash.
var vendorPrefixes = []string{"webkit", "moz", "ms", "o"}

// CSSPropertyName converts a camelCase style name to its CSS form:
// "backgroundColor" → "background-color", "webkitTransform" →
// "-webkit-transform", "cssFloat" → "float". Names already containing a
// dash are returned unchanged.
func CSSPropertyName(name string) string {
	if strings.Contains(name, "-") {
		return name
	}
	if name == "cssFloat" {
		return "float"
	}

	var b strings.Builder
	b.Grow(len(name) + 4)
	for _, p := range vendorPrefixes {
		if len(name) > len(p) && strings.HasPrefix(name, p) && unicode.IsUpper(rune(name[len(p)])) {
			b.WriteByte('-')
			break
		}
	}
	// A leading capital is the vendor form, e.g. "MozAppearance".
	for _, r := range name {
		if unicode.IsUpper(r) {
			b.WriteByte('-')
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
