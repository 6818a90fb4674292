// Package pdftext reads word tokens from the text layer of born-digital PDF
// bulletins. Coordinates are converted from PDF points (origin bottom-left)
// to image pixels (origin top-left) so they line up with detections made on
// the rendered page.
package pdftext

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"

	"github.com/jm-RBT/Pagasa-WebScraper/internal/domain"
)

// Letter size, used when a page has no MediaBox of its own.
const defaultPageHeight = 792.0

// Options scales PDF points to pixels. A page rendered at 200 dpi uses
// 200/72 on both axes. Zero values mean 1.
type Options struct {
	ScaleX float64
	ScaleY float64
}

func (o Options) scales() (float64, float64) {
	sx, sy := o.ScaleX, o.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	return sx, sy
}

// Open reads every page of the PDF at path.
func Open(path string, opts Options) ([]domain.Page, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()
	return readPages(r, opts)
}

// Read reads every page of a PDF held in ra.
func Read(ra io.ReaderAt, size int64, opts Options) ([]domain.Page, error) {
	r, err := pdf.NewReader(ra, size)
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}
	return readPages(r, opts)
}

func readPages(r *pdf.Reader, opts Options) ([]domain.Page, error) {
	var pages []domain.Page
	for n := 1; n <= r.NumPage(); n++ {
		p := r.Page(n)
		if p.V.IsNull() {
			continue
		}
		tokens := Words(p.Content().Text, pageHeight(p), opts)
		pages = append(pages, domain.Page{Number: n, Tokens: tokens, Text: LineText(tokens)})
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("read pdf: no pages")
	}
	return pages, nil
}

func pageHeight(p pdf.Page) float64 {
	if h, ok := mediaBoxHeight(p.V); ok {
		return h
	}
	return defaultPageHeight
}

// maxPageTreeDepth bounds the Parent walk against cyclic page trees.
const maxPageTreeDepth = 32

// pdfNode is the part of pdf.Value read while resolving MediaBox.
type pdfNode[V any] interface {
	Key(key string) V
	Kind() pdf.ValueKind
	Len() int
	Index(i int) V
	Float64() float64
}

// mediaBoxHeight returns the height of the page's MediaBox. MediaBox is
// inheritable, so a page without one takes it from the nearest Pages
// ancestor.
func mediaBoxHeight[V pdfNode[V]](v V) (float64, bool) {
	for range maxPageTreeDepth {
		if v.Kind() != pdf.Dict {
			return 0, false
		}
		box := v.Key("MediaBox")
		if box.Kind() == pdf.Array && box.Len() >= 4 {
			if h := box.Index(3).Float64() - box.Index(1).Float64(); h > 0 {
				return h, true
			}
		}
		v = v.Key("Parent")
	}
	return 0, false
}

// Words groups glyph runs into word tokens. Glyphs join a word while they
// share a baseline and the horizontal gap stays under a quarter of the font
// size; whitespace glyphs always end a word.
func Words(glyphs []pdf.Text, height float64, opts Options) []domain.Token {
	sx, sy := opts.scales()

	var (
		tokens []domain.Token
		cur    strings.Builder
		x0, x1 float64
		base   float64
		size   float64
	)
	flush := func() {
		text := strings.TrimSpace(cur.String())
		cur.Reset()
		if text == "" {
			return
		}
		top := height - base - size*0.8
		bottom := height - base + size*0.2
		tokens = append(tokens, domain.Token{
			Text: text, X0: x0 * sx, Top: top * sy, X1: x1 * sx, Bottom: bottom * sy,
		})
	}

	for _, g := range glyphs {
		if strings.TrimFunc(g.S, unicode.IsSpace) == "" {
			flush()
			continue
		}
		fs := g.FontSize
		if fs <= 0 {
			fs = 10
		}
		sameLine := cur.Len() > 0 && math.Abs(g.Y-base) < fs*0.5
		if !sameLine || g.X-x1 > fs*0.25 || g.X < x0 {
			flush()
			x0, base, size = g.X, g.Y, fs
		}
		cur.WriteString(g.S)
		x1 = g.X + g.W
		size = max(size, fs)
	}
	flush()
	return tokens
}

// LineText renders tokens as lines of text, grouping tokens whose vertical
// centres lie within half a line height of each other.
func LineText(tokens []domain.Token) string {
	if len(tokens) == 0 {
		return ""
	}
	sorted := make([]domain.Token, len(tokens))
	copy(sorted, tokens)
	sort.SliceStable(sorted, func(i, j int) bool {
		return centerY(sorted[i]) < centerY(sorted[j])
	})

	var (
		lines [][]domain.Token
		line  []domain.Token
	)
	for _, t := range sorted {
		if len(line) > 0 {
			ref := line[0]
			if math.Abs(centerY(t)-centerY(ref)) > (ref.Bottom-ref.Top)/2 {
				lines = append(lines, line)
				line = nil
			}
		}
		line = append(line, t)
	}
	lines = append(lines, line)

	out := make([]string, 0, len(lines))
	for _, l := range lines {
		sort.SliceStable(l, func(i, j int) bool { return l[i].X0 < l[j].X0 })
		words := make([]string, len(l))
		for i, t := range l {
			words[i] = t.Text
		}
		out = append(out, strings.Join(words, " "))
	}
	return strings.Join(out, "\n")
}

func centerY(t domain.Token) float64 { return (t.Top + t.Bottom) / 2 }
