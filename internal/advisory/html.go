package advisory

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"golang.org/x/net/html"
)

// contentClass is the class of the element holding the advisory body.
const contentClass = "weekly-content-adv"

// ExtractText returns the rainfall advisory text from an advisory web page.
// The rainfall table is often left in an HTML comment; comments are searched
// first and paragraphs second. An empty string with a nil error means the
// page carries no rainfall text.
func ExtractText(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", fmt.Errorf("parse advisory html: %w", err)
	}

	body := findByClass(doc, contentClass)
	if body == nil {
		return "", nil
	}

	for n := range body.Descendants() {
		if n.Type == html.CommentNode && mentionsRainfall(n.Data) {
			return html.UnescapeString(strings.TrimSpace(n.Data)), nil
		}
	}
	for n := range body.Descendants() {
		if n.Type != html.ElementNode || n.Data != "p" {
			continue
		}
		if text := strings.TrimSpace(textContent(n)); mentionsRainfall(text) {
			return text, nil
		}
	}
	return "", nil
}

func mentionsRainfall(s string) bool {
	lower := strings.ToLower(s)
	return strings.Contains(lower, "rainfall") || strings.Contains(lower, "mm)")
}

func findByClass(root *html.Node, class string) *html.Node {
	for n := range root.Descendants() {
		if n.Type != html.ElementNode || n.Data != "div" {
			continue
		}
		for _, a := range n.Attr {
			if a.Key == "class" && slices.Contains(strings.Fields(a.Val), class) {
				return n
			}
		}
	}
	return nil
}

func textContent(n *html.Node) string {
	var b strings.Builder
	for d := range n.Descendants() {
		if d.Type == html.TextNode {
			b.WriteString(d.Data)
		}
	}
	return b.String()
}
