// Package render converts published Markdown into HTML for display surfaces.
package render

import (
	"bytes"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
)

var titleRe = regexp.MustCompile(`(?m)^#\s+(.+)$`)

// HTML renders Markdown with goldmark.
func HTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

// ExtractTitle returns the first level-one heading, if any.
func ExtractTitle(md string) string {
	m := titleRe.FindStringSubmatch(md)
	if len(m) >= 2 {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// Document renders Markdown into a standalone HTML page, titled from the
// story's first heading.
func Document(md string) (string, error) {
	body, err := HTML(md)
	if err != nil {
		return "", err
	}
	title := ExtractTitle(md)
	if title == "" {
		title = "Published Story"
	}
	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html>\n<head><meta charset=\"utf-8\"><title>")
	buf.WriteString(html.EscapeString(title))
	buf.WriteString("</title></head>\n<body>\n")
	buf.WriteString(body)
	buf.WriteString("</body>\n</html>\n")
	return buf.String(), nil
}
