package compiler

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// estimateLineNumber finds the approximate line on which text appears in the
// template source, for error reporting. Falls back to a distinctive prefix
// when the exact text spans lines.
func estimateLineNumber(source, text string) int {
	lines := strings.Split(source, "\n")
	for i, line := range lines {
		if strings.Contains(line, text) {
			return i + 1
		}
	}
	trimmed := strings.TrimSpace(text)
	if len(trimmed) > 10 {
		prefix := trimmed[:10]
		for i, line := range lines {
			if strings.Contains(line, prefix) {
				return i + 1
			}
		}
	}
	return 1
}

// getContextLines formats the lines around lineNumber with a marker on the
// offending line, for compile diagnostics.
func getContextLines(source string, lineNumber, contextSize int) string {
	lines := strings.Split(source, "\n")

	start := lineNumber - contextSize - 1
	if start < 0 {
		start = 0
	}
	end := lineNumber + contextSize
	if end > len(lines) {
		end = len(lines)
	}

	var b strings.Builder
	b.WriteString("\n")
	for i := start; i < end; i++ {
		prefix := "  "
		if i+1 == lineNumber {
			prefix = "> "
		}
		fmt.Fprintf(&b, "%s%4d | %s\n", prefix, i+1, lines[i])
	}
	return b.String()
}

// findBody locates the <body> node the HTML parser synthesizes around a
// template fragment.
func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findBody(c); found != nil {
			return found
		}
	}
	return nil
}

// findFirstElementChild returns the first element child of a node.
func findFirstElementChild(n *html.Node) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return c
		}
	}
	return nil
}
