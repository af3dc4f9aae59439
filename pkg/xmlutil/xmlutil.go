// Package xmlutil builds the XML-tagged fragments used in Claude prompts.
package xmlutil

import (
	"encoding/xml"
	"strings"
)

// Escape replaces characters with special meaning in XML so user-entered
// text cannot open or close prompt tags.
func Escape(s string) string {
	var buf strings.Builder
	if err := xml.EscapeText(&buf, []byte(s)); err != nil {
		// EscapeText only fails on invalid UTF-8; return original on error.
		return s
	}
	return buf.String()
}

// Element wraps escaped content in <name>...</name>. The tag name is
// trusted and written as-is.
func Element(name, content string) string {
	return "<" + name + ">" + Escape(content) + "</" + name + ">"
}
