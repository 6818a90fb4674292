// Package hocr reads word tokens from hOCR files produced by OCR engines.
package hocr

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/encoding/charmap"

	"github.com/jm-RBT/Pagasa-WebScraper/internal/domain"
)

var errNoPages = errors.New("no ocr_page elements")

// Parse returns one page per ocr_page element with its ocrx_word tokens in
// document order. Page text is the words of each ocr_line joined by spaces,
// one line per ocr_line. Documents declaring a non UTF-8 charset are decoded
// as ISO-8859-1.
func Parse(data []byte) ([]domain.Page, error) {
	if cs := declaredCharset(data); cs != "" && cs != "utf-8" && cs != "utf8" {
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("decode %s hocr: %w", cs, err)
		}
		data = decoded
	}

	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse hocr: %w", err)
	}

	var pages []domain.Page
	for n := range doc.Descendants() {
		if hasClass(n, "ocr_page") {
			pages = append(pages, readPage(n, len(pages)+1))
		}
	}
	if len(pages) == 0 {
		return nil, errNoPages
	}
	return pages, nil
}

func readPage(page *html.Node, number int) domain.Page {
	p := domain.Page{Number: number}
	var lines []string
	for n := range page.Descendants() {
		switch {
		case hasClass(n, "ocr_line"):
			if line := lineText(n); line != "" {
				lines = append(lines, line)
			}
		case hasClass(n, "ocrx_word"):
			box, ok := bbox(attr(n, "title"))
			text := strings.TrimSpace(textContent(n))
			if !ok || text == "" {
				continue
			}
			p.Tokens = append(p.Tokens, domain.Token{
				Text: text, X0: box[0], Top: box[1], X1: box[2], Bottom: box[3],
			})
		}
	}
	p.Text = strings.Join(lines, "\n")
	return p
}

func lineText(line *html.Node) string {
	var words []string
	for n := range line.Descendants() {
		if hasClass(n, "ocrx_word") {
			if w := strings.TrimSpace(textContent(n)); w != "" {
				words = append(words, w)
			}
		}
	}
	return strings.Join(words, " ")
}

// bbox reads "bbox x0 y0 x1 y1" from an hOCR title such as
// "bbox 100 200 300 400; x_wconf 95".
func bbox(title string) ([4]float64, bool) {
	var box [4]float64
	for _, prop := range strings.Split(title, ";") {
		fields := strings.Fields(prop)
		if len(fields) < 5 || fields[0] != "bbox" {
			continue
		}
		for i := range box {
			v, err := strconv.ParseFloat(fields[i+1], 64)
			if err != nil {
				return box, false
			}
			box[i] = v
		}
		return box, true
	}
	return box, false
}

func declaredCharset(data []byte) string {
	i := bytes.Index(bytes.ToLower(data), []byte("charset="))
	if i < 0 {
		return ""
	}
	rest := strings.TrimLeft(string(data[i+len("charset="):]), `"'`)
	end := strings.IndexAny(rest, "\"'; >/")
	if end < 0 {
		return ""
	}
	return strings.ToLower(rest[:end])
}

func hasClass(n *html.Node, class string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	return slices.Contains(strings.Fields(attr(n, "class")), class)
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
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
